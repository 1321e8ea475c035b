package repository

import (
	"gorm.io/gorm"

	"inkpress/models"
)

// CommentRepository is the query surface for comments.
type CommentRepository interface {
	// ByPost returns every comment on the post, any nesting level,
	// ordered by creation time ascending, with authors preloaded.
	ByPost(postID uint) ([]models.Comment, error)
	ByID(id uint) (*models.Comment, error)
	Create(c *models.Comment) error
	// ApprovedCount reflects live state at call time; no caching.
	ApprovedCount(postID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a GORM backed CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Where("post_id = ?", postID).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(c *models.Comment) error {
	return r.db.Create(c).Error
}

func (r *commentRepository) ApprovedCount(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("post_id = ? AND is_approved = ?", postID, true).
		Count(&count).Error
	return count, err
}
