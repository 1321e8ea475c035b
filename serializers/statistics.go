package serializers

import "math"

// SiteStatistics is the site-wide rollup payload.
type SiteStatistics struct {
	TotalPosts     int64            `json:"total_posts"`
	PublishedPosts int64            `json:"published_posts"`
	DraftsCount    int64            `json:"drafts_count"`
	TotalComments  int64            `json:"total_comments"`
	TotalViews     int64            `json:"total_views"`
	TopPosts       []*PostListView  `json:"top_posts"`
	TopAuthors     []TopAuthorEntry `json:"top_authors"`
}

// TopAuthorEntry pairs a rendered author with their post count.
type TopAuthorEntry struct {
	Author     *AuthorSummary `json:"author"`
	PostsCount int64          `json:"posts_count"`
}

// CategoryStatistics is the per-category rollup payload.
type CategoryStatistics struct {
	CategoryName       string  `json:"category_name"`
	PostsCount         int64   `json:"posts_count"`
	TotalViews         int64   `json:"total_views"`
	TotalComments      int64   `json:"total_comments"`
	AvgCommentsPerPost float64 `json:"avg_comments_per_post"`
}

// DraftsCount derives the draft total from the two counts, clamped so a
// published count exceeding the total can never yield a negative.
func DraftsCount(total, published int64) int64 {
	if drafts := total - published; drafts > 0 {
		return drafts
	}
	return 0
}

// AvgCommentsPerPost returns comments per post rounded to two decimal
// places, exactly 0.0 when there are no posts.
func AvgCommentsPerPost(comments, posts int64) float64 {
	if posts <= 0 {
		return 0.0
	}
	return math.Round(float64(comments)/float64(posts)*100) / 100
}
