package models

import (
	"strings"
	"time"
)

// Author is a registered writer identity. Posts and comments reference it,
// so author rows are never hard-deleted.
type Author struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;index" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	FirstName    string    `gorm:"size:64" json:"first_name"`
	LastName     string    `gorm:"size:64" json:"last_name"`
	Bio          string    `gorm:"type:text" json:"bio"`
	AvatarPath   string    `gorm:"size:512" json:"avatar_path"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `json:"-"`
	Comments     []Comment `json:"-"`
}

// FullName joins the optional name parts, falling back to the username.
func (a *Author) FullName() string {
	first := strings.TrimSpace(a.FirstName)
	last := strings.TrimSpace(a.LastName)
	full := strings.TrimSpace(first + " " + last)
	if full == "" {
		return a.Username
	}
	return full
}
