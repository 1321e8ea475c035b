package models

import (
	"strings"
	"time"
)

// Post statuses. A post starts as a draft and may transition to published,
// at which point PublishedAt is stamped.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Words per minute assumed by the reading time estimate.
const readingWordsPerMinute = 200

// Post is a publishable article owned by an author, optionally grouped
// under a category.
type Post struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	AuthorID      uint       `gorm:"index;not null" json:"author_id"`
	Author        Author     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CategoryID    *uint      `gorm:"index" json:"category_id"`
	Category      *Category  `json:"-"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Excerpt       string     `gorm:"size:300" json:"excerpt"`
	FeaturedImage string     `gorm:"size:512" json:"featured_image"`
	Status        string     `gorm:"size:16;default:'draft'" json:"status"`
	Views         uint       `gorm:"not null;default:0" json:"views"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `gorm:"index" json:"published_at"`
	Comments      []Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// ReadingTime estimates minutes needed to read content at 200 words per
// minute, rounding up. Empty content yields 0.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := words / readingWordsPerMinute
	if words%readingWordsPerMinute > 0 {
		minutes++
	}
	return minutes
}

// ReadingTime estimates minutes needed to read this post's content.
func (p *Post) ReadingTime() int {
	return ReadingTime(p.Content)
}

// Publish marks the post published and stamps PublishedAt on the first
// transition. Republishing keeps the original timestamp.
func (p *Post) Publish(now time.Time) {
	p.Status = StatusPublished
	if p.PublishedAt == nil {
		p.PublishedAt = &now
	}
}
