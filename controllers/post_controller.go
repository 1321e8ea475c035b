package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkpress/config"
	"inkpress/models"
	"inkpress/repository"
	"inkpress/serializers"
	"inkpress/utils"
	"inkpress/validators"
)

// Published posts ranked by views on the popular listing.
const popularLimit = 5

// PostController serves the post listing, detail and comment endpoints.
type PostController struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	stats    repository.StatsRepository
}

// NewPostController creates a new PostController instance.
func NewPostController(posts repository.PostRepository, comments repository.CommentRepository, stats repository.StatsRepository) *PostController {
	return &PostController{posts: posts, comments: comments, stats: stats}
}

// List returns paginated posts ordered by published timestamp descending,
// with author and category joined.
func (p *PostController) List(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	filter := repository.PostFilter{
		Status:   strings.ToLower(strings.TrimSpace(ctx.Query("status"))),
		Search:   strings.TrimSpace(ctx.Query("search")),
		Page:     page,
		PageSize: pageSize,
	}
	if v := strings.TrimSpace(ctx.Query("category")); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			cid := uint(id)
			filter.CategoryID = &cid
		}
	}

	posts, total, err := p.posts.List(filter)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list posts")
		return
	}
	counts, err := postCounts(p.stats, posts)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to aggregate post counts")
		return
	}

	utils.Success(ctx, gin.H{
		"items":      serializers.PostListMany(posts, counts),
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// Get returns a single post with its nested comment tree. Absent ids
// yield an explicit not-found signal.
func (p *PostController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}

	post, err := p.posts.ByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load post")
		return
	}

	// Comments degrade to an empty tree rather than failing the detail.
	comments, err := p.comments.ByPost(post.ID)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("failed to load comments for post %d: %v", post.ID, err)
		}
		comments = nil
	}

	counts, err := postCounts(p.stats, []models.Post{*post})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to aggregate post counts")
		return
	}
	authorCounts, err := commentAuthorCounts(p.stats, comments)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("failed to count comment author posts for post %d: %v", post.ID, err)
		}
		authorCounts = map[uint]int64{}
	}

	tree := serializers.NewCommentTree(comments, authorCounts)
	utils.Success(ctx, gin.H{
		"post": serializers.PostDetail(post, counts, tree.RenderAll(comments, parseDepth(ctx))),
	})
}

// ListComments returns every comment on a post as a flat list, each entry
// carrying its replies nested to the requested depth.
func (p *PostController) ListComments(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	if _, err := p.posts.ByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to load post")
		return
	}

	comments, err := p.comments.ByPost(uint(id))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to list comments")
		return
	}
	authorCounts, err := commentAuthorCounts(p.stats, comments)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("failed to count comment author posts for post %d: %v", id, err)
		}
		authorCounts = map[uint]int64{}
	}

	tree := serializers.NewCommentTree(comments, authorCounts)
	utils.Success(ctx, gin.H{"items": tree.RenderAll(comments, parseDepth(ctx))})
}

// ListMine returns posts owned by the authenticated caller.
func (p *PostController) ListMine(ctx *gin.Context) {
	authorID, ok := getAuthorID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	posts, total, err := p.posts.ByAuthor(authorID, page, pageSize)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to list posts")
		return
	}
	counts, err := postCounts(p.stats, posts)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to aggregate post counts")
		return
	}

	utils.Success(ctx, gin.H{
		"items":      serializers.PostListMany(posts, counts),
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// Popular returns the top published posts by views. The payload may be
// served from a short-lived cache; staleness is bounded by its TTL only.
func (p *PostController) Popular(ctx *gin.Context) {
	cacheKey := fmt.Sprintf("cache:posts:popular:limit=%d", popularLimit)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := p.posts.Popular(popularLimit)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50029, "failed to list popular posts")
		return
	}
	counts, err := postCounts(p.stats, posts)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to aggregate post counts")
		return
	}

	payload := gin.H{"items": serializers.PostListMany(posts, counts)}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	ttl := time.Duration(config.Get().PopularCacheTTLMinutes) * time.Minute
	utils.CacheSetJSON(cacheKey, wrapper, ttl)
	utils.Success(ctx, payload)
}

type postInput struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt"`
	CategoryID    *uint  `json:"category_id"`
	FeaturedImage string `json:"featured_image"`
	Status        string `json:"status"`
}

// Create stores a new post for the authenticated caller. Title and
// content constraints are enforced before any persistence attempt.
func (p *PostController) Create(ctx *gin.Context) {
	var req postInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	if err := validators.PostInput(req.Title, req.Content); err != nil {
		utils.ValidationFailed(ctx, 40002, err)
		return
	}

	authorID, ok := getAuthorID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post := models.Post{
		Title:         strings.TrimSpace(req.Title),
		AuthorID:      authorID,
		CategoryID:    req.CategoryID,
		Content:       utils.Sanitize(req.Content),
		Excerpt:       utils.Sanitize(strings.TrimSpace(req.Excerpt)),
		FeaturedImage: strings.TrimSpace(req.FeaturedImage),
		Status:        models.StatusDraft,
	}
	if strings.EqualFold(req.Status, models.StatusPublished) {
		post.Publish(time.Now())
	}

	if err := p.posts.Create(&post); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to create post")
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// Update edits a post owned by the caller, applying the same validation
// as Create and stamping the published timestamp on the first publish.
func (p *PostController) Update(ctx *gin.Context) {
	var req postInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}

	if err := validators.PostInput(req.Title, req.Content); err != nil {
		utils.ValidationFailed(ctx, 40002, err)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	post, err := p.posts.ByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load post")
		return
	}

	authorID, ok := getAuthorID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	if post.AuthorID != authorID {
		utils.Error(ctx, http.StatusForbidden, 40301, "you can only update your own posts")
		return
	}

	post.Title = strings.TrimSpace(req.Title)
	post.Content = utils.Sanitize(req.Content)
	post.Excerpt = utils.Sanitize(strings.TrimSpace(req.Excerpt))
	post.CategoryID = req.CategoryID
	post.FeaturedImage = strings.TrimSpace(req.FeaturedImage)
	if strings.EqualFold(req.Status, models.StatusPublished) {
		post.Publish(time.Now())
	} else if strings.EqualFold(req.Status, models.StatusDraft) {
		post.Status = models.StatusDraft
	}

	if err := p.posts.Update(post); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to update post")
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// CreateComment attaches a comment to a post, optionally as a reply to a
// parent comment on the same post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content  string `json:"content" binding:"required"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40023, "content cannot be empty")
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	post, err := p.posts.ByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to load post")
		return
	}

	if req.ParentID != nil {
		parent, err := p.comments.ByID(*req.ParentID)
		if err != nil || parent.PostID != post.ID {
			utils.Error(ctx, http.StatusBadRequest, 40024, "parent comment must belong to the same post")
			return
		}
	}

	authorID, ok := getAuthorID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: authorID,
		ParentID: req.ParentID,
		Content:  content,
	}
	if err := p.comments.Create(&comment); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to create comment")
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}
