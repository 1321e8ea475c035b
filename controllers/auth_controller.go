package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkpress/models"
	"inkpress/repository"
	"inkpress/serializers"
	"inkpress/utils"
	"inkpress/validators"
)

const tokenDuration = 24 * time.Hour

// AuthController handles registration, sessions and the caller's profile.
type AuthController struct {
	authors repository.AuthorRepository
	stats   repository.StatsRepository
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(authors repository.AuthorRepository, stats repository.StatsRepository) *AuthController {
	return &AuthController{authors: authors, stats: stats}
}

// Register creates a new author account. Usernames are unique, emails are
// unique case-insensitively.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Bio       string `json:"bio"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := validators.RegistrationInput(req.Username, req.Email, req.Password); err != nil {
		utils.ValidationFailed(ctx, 40003, err)
		return
	}

	if _, err := a.authors.ByUsername(req.Username); err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "username already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to check username")
		return
	}

	taken, err := a.authors.EmailTaken(req.Email, 0)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to check email")
		return
	}
	if taken {
		utils.ValidationFailed(ctx, 40003, validators.EmailTakenError())
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to hash password")
		return
	}

	author := models.Author{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Bio:          utils.Sanitize(strings.TrimSpace(req.Bio)),
	}
	if err := a.authors.Create(&author); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to create author")
		return
	}

	token, err := utils.GenerateToken(author.ID, author.Username, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50018, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{
		"token":  token,
		"author": serializers.Author(&author, 0),
	})
}

// Login verifies credentials and issues a signed token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid request payload")
		return
	}

	author, err := a.authors.ByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "invalid username or password")
		return
	}
	if !utils.CheckPassword(author.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(author.ID, author.Username, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{
		"token":  token,
		"author": serializers.Author(author, authorPostTotal(a.stats, author.ID)),
	})
}

// Logout revokes the presented token for the remainder of its lifetime.
func (a *AuthController) Logout(ctx *gin.Context) {
	header := ctx.GetHeader("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		utils.Error(ctx, http.StatusBadRequest, 40012, "missing token")
		return
	}

	expiresAt := time.Now().Add(tokenDuration)
	if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated caller's profile.
func (a *AuthController) Me(ctx *gin.Context) {
	authorID, ok := getAuthorID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	author, err := a.authors.ByID(authorID)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40403, "author not found")
		return
	}
	utils.Success(ctx, gin.H{"author": serializers.Author(author, authorPostTotal(a.stats, author.ID))})
}

// UpdateProfile edits the caller's profile fields. The email uniqueness
// check excludes the caller's own current address.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	var req struct {
		Email     *string `json:"email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Bio       *string `json:"bio"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid request payload")
		return
	}

	authorID, ok := getAuthorID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	author, err := a.authors.ByID(authorID)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40403, "author not found")
		return
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if err := validators.Email(email); err != nil {
			utils.ValidationFailed(ctx, 40004, err)
			return
		}
		taken, err := a.authors.EmailTaken(email, author.ID)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50016, "failed to check email")
			return
		}
		if taken {
			utils.ValidationFailed(ctx, 40004, validators.EmailTakenError())
			return
		}
		author.Email = email
	}
	if req.FirstName != nil {
		author.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		author.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Bio != nil {
		author.Bio = utils.Sanitize(strings.TrimSpace(*req.Bio))
	}

	if err := a.authors.Update(author); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50017, "failed to update profile")
		return
	}
	utils.Success(ctx, gin.H{"author": serializers.Author(author, authorPostTotal(a.stats, author.ID))})
}

func authorPostTotal(stats repository.StatsRepository, authorID uint) int64 {
	counts, err := stats.PostCountsByAuthor([]uint{authorID})
	if err != nil {
		return 0
	}
	return counts[authorID]
}
