package repository

import (
	"gorm.io/gorm"

	"inkpress/models"
)

// CategoryRepository is the query surface for categories.
type CategoryRepository interface {
	List() ([]models.Category, error)
	ByID(id uint) (*models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a GORM backed CategoryRepository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) ByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
