package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkpress/repository"
	"inkpress/serializers"
	"inkpress/utils"
)

const (
	topPostsLimit   = 5
	topAuthorsLimit = 3
)

// StatsController serves the site-wide statistics rollup.
type StatsController struct {
	stats repository.StatsRepository
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(stats repository.StatsRepository) *StatsController {
	return &StatsController{stats: stats}
}

// Site returns the site rollup: totals, drafts, views, the top posts by
// views and the most prolific authors. Individual aggregate failures
// degrade to zero values instead of failing the whole response.
func (sc *StatsController) Site(ctx *gin.Context) {
	totalPosts, err := sc.stats.TotalPosts()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to count posts")
		return
	}

	// Prefer the published timestamp as the source of truth; fall back to
	// the status column when the timestamp query cannot be served.
	published, err := sc.stats.PublishedPosts()
	if err != nil {
		if published, err = sc.stats.PublishedPostsByStatus(); err != nil {
			published = 0
		}
	}

	totalComments, err := sc.stats.TotalComments()
	if err != nil {
		totalComments = 0
	}
	totalViews, err := sc.stats.TotalViews()
	if err != nil {
		totalViews = 0
	}

	topPosts, err := sc.stats.TopPostsByViews(topPostsLimit)
	if err != nil {
		topPosts = nil
	}
	counts, err := postCounts(sc.stats, topPosts)
	if err != nil {
		counts = serializers.PostCounts{}
	}

	topAuthors, err := sc.stats.TopAuthors(topAuthorsLimit)
	if err != nil {
		topAuthors = nil
	}
	entries := make([]serializers.TopAuthorEntry, 0, len(topAuthors))
	for i := range topAuthors {
		entries = append(entries, serializers.TopAuthorEntry{
			Author:     serializers.Author(&topAuthors[i].Author, topAuthors[i].PostsCount),
			PostsCount: topAuthors[i].PostsCount,
		})
	}

	utils.Success(ctx, gin.H{
		"statistics": serializers.SiteStatistics{
			TotalPosts:     totalPosts,
			PublishedPosts: published,
			DraftsCount:    serializers.DraftsCount(totalPosts, published),
			TotalComments:  totalComments,
			TotalViews:     totalViews,
			TopPosts:       serializers.PostListMany(topPosts, counts),
			TopAuthors:     entries,
		},
	})
}
