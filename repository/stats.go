package repository

import (
	"gorm.io/gorm"

	"inkpress/models"
)

// AuthorPostCount pairs an author with their post count for rankings.
type AuthorPostCount struct {
	Author     models.Author
	PostsCount int64
}

// StatsRepository provides the aggregate queries behind site-wide and
// per-category statistics. Every call recomputes from the store.
type StatsRepository interface {
	TotalPosts() (int64, error)
	// PublishedPosts counts posts with a non-null published timestamp.
	PublishedPosts() (int64, error)
	// PublishedPostsByStatus is the fallback count keyed on the status
	// flag, compared case-insensitively.
	PublishedPostsByStatus() (int64, error)
	TotalComments() (int64, error)
	TotalViews() (int64, error)
	TopPostsByViews(limit int) ([]models.Post, error)
	// TopAuthors ranks authors by post count descending, built from a
	// group-by over posts; authors with zero posts never appear.
	TopAuthors(limit int) ([]AuthorPostCount, error)
	PostCountsByAuthor(authorIDs []uint) (map[uint]int64, error)
	PostCountsByCategory(categoryIDs []uint) (map[uint]int64, error)
	ApprovedCommentCounts(postIDs []uint) (map[uint]int64, error)
	CategoryPostsCount(categoryID uint) (int64, error)
	CategoryViews(categoryID uint) (int64, error)
	CategoryComments(categoryID uint) (int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a GORM backed StatsRepository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) TotalPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *statsRepository) PublishedPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("published_at IS NOT NULL").Count(&count).Error
	return count, err
}

func (r *statsRepository) PublishedPostsByStatus() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("LOWER(status) = ?", models.StatusPublished).Count(&count).Error
	return count, err
}

func (r *statsRepository) TotalComments() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Count(&count).Error
	return count, err
}

func (r *statsRepository) TotalViews() (int64, error) {
	var total int64
	err := r.db.Model(&models.Post{}).Select("COALESCE(SUM(views),0)").Scan(&total).Error
	return total, err
}

func (r *statsRepository) TopPostsByViews(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Preload("Author").Preload("Category").
		Order("views DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *statsRepository) TopAuthors(limit int) ([]AuthorPostCount, error) {
	type row struct {
		AuthorID   uint
		PostsCount int64
	}
	var rows []row
	err := r.db.Model(&models.Post{}).
		Select("author_id, COUNT(*) AS posts_count").
		Group("author_id").
		Order("posts_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []AuthorPostCount{}, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, rw := range rows {
		ids = append(ids, rw.AuthorID)
	}
	var authors []models.Author
	if err := r.db.Find(&authors, ids).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Author, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}

	result := make([]AuthorPostCount, 0, len(rows))
	for _, rw := range rows {
		result = append(result, AuthorPostCount{Author: byID[rw.AuthorID], PostsCount: rw.PostsCount})
	}
	return result, nil
}

func (r *statsRepository) PostCountsByAuthor(authorIDs []uint) (map[uint]int64, error) {
	return r.groupCounts(&models.Post{}, "author_id", authorIDs, "")
}

func (r *statsRepository) PostCountsByCategory(categoryIDs []uint) (map[uint]int64, error) {
	return r.groupCounts(&models.Post{}, "category_id", categoryIDs, "")
}

func (r *statsRepository) ApprovedCommentCounts(postIDs []uint) (map[uint]int64, error) {
	return r.groupCounts(&models.Comment{}, "post_id", postIDs, "is_approved = true")
}

// groupCounts runs COUNT(*) grouped by column over the given ids.
// Ids absent from the result simply have no matching rows.
func (r *statsRepository) groupCounts(model interface{}, column string, ids []uint, extraCond string) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	type row struct {
		Key uint
		Cnt int64
	}
	query := r.db.Model(model).
		Select(column + " AS `key`, COUNT(*) AS cnt").
		Where(column+" IN ?", ids).
		Group(column)
	if extraCond != "" {
		query = query.Where(extraCond)
	}
	var rows []row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, rw := range rows {
		counts[rw.Key] = rw.Cnt
	}
	return counts, nil
}

func (r *statsRepository) CategoryPostsCount(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *statsRepository) CategoryViews(categoryID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.Post{}).
		Where("category_id = ?", categoryID).
		Select("COALESCE(SUM(views),0)").
		Scan(&total).Error
	return total, err
}

func (r *statsRepository) CategoryComments(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Joins("INNER JOIN posts ON posts.id = comments.post_id").
		Where("posts.category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
