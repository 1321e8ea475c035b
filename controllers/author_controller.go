package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkpress/repository"
	"inkpress/serializers"
	"inkpress/utils"
)

// AuthorController serves the author directory and per-author post views.
type AuthorController struct {
	authors repository.AuthorRepository
	posts   repository.PostRepository
	stats   repository.StatsRepository
}

// NewAuthorController creates a new AuthorController instance.
func NewAuthorController(authors repository.AuthorRepository, posts repository.PostRepository, stats repository.StatsRepository) *AuthorController {
	return &AuthorController{authors: authors, posts: posts, stats: stats}
}

// List returns authors who have written at least one post, ordered by
// username.
func (ac *AuthorController) List(ctx *gin.Context) {
	authors, err := ac.authors.WithPosts()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to list authors")
		return
	}

	ids := make([]uint, 0, len(authors))
	for i := range authors {
		ids = append(ids, authors[i].ID)
	}
	counts, err := ac.stats.PostCountsByAuthor(ids)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to count author posts")
		return
	}

	items := make([]*serializers.AuthorSummary, 0, len(authors))
	for i := range authors {
		items = append(items, serializers.Author(&authors[i], counts[authors[i].ID]))
	}
	utils.Success(ctx, gin.H{"items": items})
}

// ListPosts returns the paginated posts written by one author.
func (ac *AuthorController) ListPosts(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40403, "author not found")
		return
	}
	author, err := ac.authors.ByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40403, "author not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to load author")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	posts, total, err := ac.posts.ByAuthor(author.ID, page, pageSize)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to list author posts")
		return
	}
	counts, err := postCounts(ac.stats, posts)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50055, "failed to aggregate post counts")
		return
	}

	utils.Success(ctx, gin.H{
		"author":     serializers.Author(author, total),
		"items":      serializers.PostListMany(posts, counts),
		"pagination": paginationPayload(page, pageSize, total),
	})
}
