package repository

import (
	"gorm.io/gorm"

	"inkpress/models"
)

// AuthorRepository is the query surface for author identities.
type AuthorRepository interface {
	ByID(id uint) (*models.Author, error)
	ByUsername(username string) (*models.Author, error)
	// WithPosts lists distinct authors having at least one post,
	// ordered by username ascending.
	WithPosts() ([]models.Author, error)
	// EmailTaken reports whether another author already uses the email,
	// compared case-insensitively. excludeID skips the author being edited.
	EmailTaken(email string, excludeID uint) (bool, error)
	Create(a *models.Author) error
	Update(a *models.Author) error
}

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates a GORM backed AuthorRepository.
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) ByID(id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) ByUsername(username string) (*models.Author, error) {
	var author models.Author
	if err := r.db.Where("username = ?", username).First(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) WithPosts() ([]models.Author, error) {
	var authors []models.Author
	err := r.db.Model(&models.Author{}).
		Joins("INNER JOIN posts ON posts.author_id = authors.id").
		Group("authors.id").
		Order("authors.username ASC").
		Find(&authors).Error
	return authors, err
}

func (r *authorRepository) EmailTaken(email string, excludeID uint) (bool, error) {
	query := r.db.Model(&models.Author{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *authorRepository) Create(a *models.Author) error {
	return r.db.Create(a).Error
}

func (r *authorRepository) Update(a *models.Author) error {
	return r.db.Save(a).Error
}
