package repository

import (
	"gorm.io/gorm"

	"inkpress/models"
)

// PostFilter narrows post listings. Zero values mean "no filter";
// Status accepts "all", "draft" or "published".
type PostFilter struct {
	Status     string
	Search     string
	CategoryID *uint
	Page       int
	PageSize   int
}

// PostRepository is the query surface for posts. Listing methods eagerly
// join author and category to avoid per-item lookups and order by the
// published timestamp, newest first.
type PostRepository interface {
	List(f PostFilter) ([]models.Post, int64, error)
	ByID(id uint) (*models.Post, error)
	ByAuthor(authorID uint, page, pageSize int) ([]models.Post, int64, error)
	ByCategory(categoryID uint, page, pageSize int) ([]models.Post, int64, error)
	Popular(limit int) ([]models.Post, error)
	Create(p *models.Post) error
	Update(p *models.Post) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a GORM backed PostRepository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) List(f PostFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{}).
		Preload("Author").Preload("Category").
		Order("published_at DESC")

	switch f.Status {
	case "", "all":
	default:
		query = query.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	if err := query.Offset(pageOffset(f.Page, f.PageSize)).Limit(f.PageSize).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Category").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ByAuthor(authorID uint, page, pageSize int) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Preload("Author").Preload("Category").
		Order("published_at DESC")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []models.Post
	if err := query.Offset(pageOffset(page, pageSize)).Limit(pageSize).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ByCategory(categoryID uint, page, pageSize int) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{}).
		Where("category_id = ?", categoryID).
		Preload("Author").Preload("Category").
		Order("published_at DESC")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []models.Post
	if err := query.Offset(pageOffset(page, pageSize)).Limit(pageSize).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Popular returns published posts by view count, highest first.
func (r *postRepository) Popular(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Where("published_at IS NOT NULL").
		Preload("Author").Preload("Category").
		Order("views DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		// published_at may be unusable on legacy rows; fall back to the status flag
		err = r.db.
			Where("LOWER(status) = ?", models.StatusPublished).
			Preload("Author").Preload("Category").
			Order("views DESC").
			Limit(limit).
			Find(&posts).Error
	}
	return posts, err
}

func (r *postRepository) Create(p *models.Post) error {
	return r.db.Create(p).Error
}

func (r *postRepository) Update(p *models.Post) error {
	return r.db.Save(p).Error
}

func pageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
