package models

import "time"

// Comment is threaded feedback on a post. ParentID links a reply to another
// comment on the same post; deleting a parent cascades to its replies, and
// deleting a post cascades to all of its comments.
//
// The reply tree is never stored: it is derived by grouping a post's
// comments by ParentID at render time.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"index;not null" json:"post_id"`
	AuthorID   uint      `gorm:"index;not null" json:"author_id"`
	Author     Author    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentID   *uint     `gorm:"index" json:"parent_id"`
	Parent     *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsApproved bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}
