package serializers

import (
	"time"

	"inkpress/models"
)

// PostCounts carries the batched aggregates post renderings need, keyed
// by author, category and post id respectively. Missing keys render as 0.
type PostCounts struct {
	AuthorPosts      map[uint]int64
	CategoryPosts    map[uint]int64
	ApprovedComments map[uint]int64
}

// PostListView is the compact rendering used by collection endpoints.
type PostListView struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	Excerpt       string         `json:"excerpt"`
	Author        *AuthorSummary `json:"author"`
	Category      *CategoryView  `json:"category"`
	FeaturedImage *string        `json:"featured_image"`
	Status        string         `json:"status"`
	Views         uint           `json:"views"`
	PublishedAt   *time.Time     `json:"published_at"`
	ReadingTime   int            `json:"reading_time"`
	CommentsCount int64          `json:"comments_count"`
}

// PostDetailView adds the full body, timestamps and the comment tree.
type PostDetailView struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Excerpt       string         `json:"excerpt"`
	Author        *AuthorSummary `json:"author"`
	Category      *CategoryView  `json:"category"`
	FeaturedImage *string        `json:"featured_image"`
	Status        string         `json:"status"`
	Views         uint           `json:"views"`
	PublishedAt   *time.Time     `json:"published_at"`
	ReadingTime   int            `json:"reading_time"`
	CommentsCount int64          `json:"comments_count"`
	Comments      []any          `json:"comments"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// PostList renders the compact view of one post.
func PostList(p *models.Post, counts PostCounts) *PostListView {
	var category *CategoryView
	if p.CategoryID != nil {
		category = Category(p.Category, counts.CategoryPosts[*p.CategoryID])
	}
	return &PostListView{
		ID:            p.ID,
		Title:         p.Title,
		Excerpt:       p.Excerpt,
		Author:        Author(&p.Author, counts.AuthorPosts[p.AuthorID]),
		Category:      category,
		FeaturedImage: MediaURL(p.FeaturedImage),
		Status:        p.Status,
		Views:         p.Views,
		PublishedAt:   p.PublishedAt,
		ReadingTime:   p.ReadingTime(),
		CommentsCount: counts.ApprovedComments[p.ID],
	}
}

// PostListMany renders a post collection in order.
func PostListMany(posts []models.Post, counts PostCounts) []*PostListView {
	out := make([]*PostListView, 0, len(posts))
	for i := range posts {
		out = append(out, PostList(&posts[i], counts))
	}
	return out
}

// PostDetail renders the full view of one post with its serialized
// comment tree.
func PostDetail(p *models.Post, counts PostCounts, comments []any) *PostDetailView {
	list := PostList(p, counts)
	if comments == nil {
		comments = []any{}
	}
	return &PostDetailView{
		ID:            list.ID,
		Title:         list.Title,
		Content:       p.Content,
		Excerpt:       list.Excerpt,
		Author:        list.Author,
		Category:      list.Category,
		FeaturedImage: list.FeaturedImage,
		Status:        list.Status,
		Views:         list.Views,
		PublishedAt:   list.PublishedAt,
		ReadingTime:   list.ReadingTime,
		CommentsCount: list.CommentsCount,
		Comments:      comments,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
