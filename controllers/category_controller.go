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

// CategoryController serves the category listing and per-category views.
type CategoryController struct {
	categories repository.CategoryRepository
	posts      repository.PostRepository
	stats      repository.StatsRepository
}

// NewCategoryController creates a new CategoryController instance.
func NewCategoryController(categories repository.CategoryRepository, posts repository.PostRepository, stats repository.StatsRepository) *CategoryController {
	return &CategoryController{categories: categories, posts: posts, stats: stats}
}

// List returns all categories with their post counts.
func (cc *CategoryController) List(ctx *gin.Context) {
	categories, err := cc.categories.List()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to list categories")
		return
	}

	ids := make([]uint, 0, len(categories))
	for i := range categories {
		ids = append(ids, categories[i].ID)
	}
	counts, err := cc.stats.PostCountsByCategory(ids)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to count category posts")
		return
	}

	items := make([]*serializers.CategoryView, 0, len(categories))
	for i := range categories {
		items = append(items, serializers.Category(&categories[i], counts[categories[i].ID]))
	}
	utils.Success(ctx, gin.H{"items": items})
}

// ListPosts returns the paginated posts of one category. An unknown
// category id simply yields an empty page, no existence check is made.
func (cc *CategoryController) ListPosts(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40402, "category not found")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	posts, total, err := cc.posts.ByCategory(uint(id), page, pageSize)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to list category posts")
		return
	}
	counts, err := postCounts(cc.stats, posts)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to aggregate post counts")
		return
	}

	utils.Success(ctx, gin.H{
		"items":      serializers.PostListMany(posts, counts),
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// Statistics returns the aggregate numbers of one category: post count,
// summed views, comment volume and comments averaged over posts.
func (cc *CategoryController) Statistics(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40402, "category not found")
		return
	}
	category, err := cc.categories.ByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "category not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50046, "failed to load category")
		return
	}

	postsCount, err := cc.stats.CategoryPostsCount(category.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50047, "failed to count category posts")
		return
	}
	views, err := cc.stats.CategoryViews(category.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50048, "failed to sum category views")
		return
	}
	comments, err := cc.stats.CategoryComments(category.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50049, "failed to count category comments")
		return
	}

	utils.Success(ctx, gin.H{
		"statistics": serializers.CategoryStatistics{
			CategoryName:       category.Name,
			PostsCount:         postsCount,
			TotalViews:         views,
			TotalComments:      comments,
			AvgCommentsPerPost: serializers.AvgCommentsPerPost(comments, postsCount),
		},
	})
}
