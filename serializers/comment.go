package serializers

import (
	"time"

	"inkpress/models"
)

// DefaultCommentDepth bounds reply nesting when the caller does not ask
// for a specific depth.
const DefaultCommentDepth = 3

// CommentView is the full rendering of a comment with nested replies.
type CommentView struct {
	ID         uint           `json:"id"`
	Post       uint           `json:"post"`
	Author     *AuthorSummary `json:"author"`
	Content    string         `json:"content"`
	Parent     *uint          `json:"parent"`
	IsApproved bool           `json:"is_approved"`
	CreatedAt  time.Time      `json:"created_at"`
	Replies    []any          `json:"replies"`
}

// DegradedCommentView is the minimal fallback used when the rich author
// rendering is impossible. Partial degradation beats failing the response.
type DegradedCommentView struct {
	ID        uint      `json:"id"`
	Author    *string   `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentTree renders a post's comments with replies nested to a bounded
// depth. The parent-to-children index is derived from the flat comment
// list, never stored; children keep their creation-time order.
type CommentTree struct {
	children    map[uint][]*models.Comment
	authorPosts map[uint]int64
}

// NewCommentTree indexes the flat comment list (ordered by creation time
// ascending) by parent. authorPosts supplies per-author post counts for
// the rendered author summaries.
func NewCommentTree(comments []models.Comment, authorPosts map[uint]int64) *CommentTree {
	t := &CommentTree{
		children:    make(map[uint][]*models.Comment),
		authorPosts: authorPosts,
	}
	for i := range comments {
		c := &comments[i]
		if c.ParentID != nil {
			t.children[*c.ParentID] = append(t.children[*c.ParentID], c)
		}
	}
	return t
}

// Render serializes one comment. Replies are recursed with one less level
// of remaining depth; at depth 0 the reply list is empty even when
// children exist — the tree is truncated, not elided.
func (t *CommentTree) Render(c *models.Comment, depth int) any {
	author := Author(&c.Author, t.authorPosts[c.AuthorID])
	if author == nil {
		var username *string
		if c.Author.Username != "" {
			username = &c.Author.Username
		}
		return DegradedCommentView{
			ID:        c.ID,
			Author:    username,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		}
	}

	view := CommentView{
		ID:         c.ID,
		Post:       c.PostID,
		Author:     author,
		Content:    c.Content,
		Parent:     c.ParentID,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
		Replies:    []any{},
	}
	if depth > 0 {
		for _, child := range t.children[c.ID] {
			view.Replies = append(view.Replies, t.Render(child, depth-1))
		}
	}
	return view
}

// RenderAll serializes every comment in the flat list, each with its own
// nested replies.
func (t *CommentTree) RenderAll(comments []models.Comment, depth int) []any {
	out := make([]any, 0, len(comments))
	for i := range comments {
		out = append(out, t.Render(&comments[i], depth))
	}
	return out
}
