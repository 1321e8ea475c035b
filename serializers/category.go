package serializers

import "inkpress/models"

// CategoryView is the public rendering of a category.
type CategoryView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PostsCount  int64  `json:"posts_count"`
}

// Category renders a category; nil in, nil out (posts without a category).
func Category(c *models.Category, postsCount int64) *CategoryView {
	if c == nil || c.ID == 0 {
		return nil
	}
	return &CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		PostsCount:  postsCount,
	}
}
