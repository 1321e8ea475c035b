package serializers

import "inkpress/models"

// AuthorSummary is the public rendering of an author identity.
type AuthorSummary struct {
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Bio        *string `json:"bio"`
	Avatar     *string `json:"avatar"`
	PostsCount int64   `json:"posts_count"`
	FullName   string  `json:"full_name"`
}

// Author renders the public summary of an author. A nil or unloaded
// author renders as nil so callers can degrade instead of failing.
func Author(a *models.Author, postsCount int64) *AuthorSummary {
	if a == nil || a.ID == 0 {
		return nil
	}
	var bio *string
	if a.Bio != "" {
		bio = &a.Bio
	}
	return &AuthorSummary{
		Username:   a.Username,
		Email:      a.Email,
		Bio:        bio,
		Avatar:     MediaURL(a.AvatarPath),
		PostsCount: postsCount,
		FullName:   a.FullName(),
	}
}
