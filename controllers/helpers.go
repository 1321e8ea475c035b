package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inkpress/config"
	"inkpress/middleware"
	"inkpress/models"
	"inkpress/repository"
	"inkpress/serializers"
)

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func paginationPayload(page, pageSize int, total int64) gin.H {
	return gin.H{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

// parseDepth reads the requested comment nesting depth, bounded to keep
// recursion and payload size in check.
func parseDepth(ctx *gin.Context) int {
	depth := config.Get().CommentMaxDepth
	if v := ctx.Query("depth"); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d >= 0 {
			depth = d
		}
	}
	if depth > 10 {
		depth = 10
	}
	return depth
}

func getAuthorID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextAuthorIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// postCounts batches the per-author, per-category and per-post aggregates
// a post collection needs, avoiding per-item count queries.
func postCounts(stats repository.StatsRepository, posts []models.Post) (serializers.PostCounts, error) {
	authorIDs := make([]uint, 0, len(posts))
	categoryIDs := make([]uint, 0, len(posts))
	postIDs := make([]uint, 0, len(posts))
	seenAuthors := map[uint]bool{}
	seenCategories := map[uint]bool{}
	for i := range posts {
		p := &posts[i]
		postIDs = append(postIDs, p.ID)
		if !seenAuthors[p.AuthorID] {
			seenAuthors[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
		if p.CategoryID != nil && !seenCategories[*p.CategoryID] {
			seenCategories[*p.CategoryID] = true
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
	}

	counts := serializers.PostCounts{}
	var err error
	if counts.AuthorPosts, err = stats.PostCountsByAuthor(authorIDs); err != nil {
		return counts, err
	}
	if counts.CategoryPosts, err = stats.PostCountsByCategory(categoryIDs); err != nil {
		return counts, err
	}
	if counts.ApprovedComments, err = stats.ApprovedCommentCounts(postIDs); err != nil {
		return counts, err
	}
	return counts, nil
}

// commentAuthorCounts batches per-author post counts for a comment list.
func commentAuthorCounts(stats repository.StatsRepository, comments []models.Comment) (map[uint]int64, error) {
	ids := make([]uint, 0, len(comments))
	seen := map[uint]bool{}
	for i := range comments {
		if id := comments[i].AuthorID; !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return stats.PostCountsByAuthor(ids)
}
