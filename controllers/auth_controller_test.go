package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inkpress/middleware"
	"inkpress/models"
	"inkpress/utils"
)

func TestRegisterCreatesAuthor(t *testing.T) {
	authors := new(MockAuthorRepository)
	authors.On("ByUsername", "ada").Return(nil, gorm.ErrRecordNotFound)
	authors.On("EmailTaken", "ada@example.com", uint(0)).Return(false, nil)
	authors.On("Create", mock.MatchedBy(func(a *models.Author) bool {
		a.ID = 1
		return a.Username == "ada" && a.PasswordHash != "" && a.PasswordHash != "s3cret-pass"
	})).Return(nil)

	body := strings.NewReader(`{"username":"ada","email":"ada@example.com","password":"s3cret-pass"}`)
	ctx, w := newTestContext(http.MethodPost, "/api/v1/auth/register", body)
	NewAuthController(authors, new(MockStatsRepository)).Register(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "ada", data["author"].(map[string]any)["username"])
	authors.AssertExpectations(t)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	authors := new(MockAuthorRepository)
	authors.On("ByUsername", "ada").Return(nil, gorm.ErrRecordNotFound)
	authors.On("EmailTaken", "ada@example.com", uint(0)).Return(true, nil)

	body := strings.NewReader(`{"username":"ada","email":"ada@example.com","password":"s3cret-pass"}`)
	ctx, w := newTestContext(http.MethodPost, "/api/v1/auth/register", body)
	NewAuthController(authors, new(MockStatsRepository)).Register(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs := decodeData(t, w)["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
	authors.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	authors := new(MockAuthorRepository)
	authors.On("ByUsername", "ada").Return(&models.Author{ID: 1, Username: "ada"}, nil)

	body := strings.NewReader(`{"username":"ada","email":"other@example.com","password":"s3cret-pass"}`)
	ctx, w := newTestContext(http.MethodPost, "/api/v1/auth/register", body)
	NewAuthController(authors, new(MockStatsRepository)).Register(ctx)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 40901, decodeEnvelope(t, w).Code)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("right-password")
	require.NoError(t, err)

	authors := new(MockAuthorRepository)
	authors.On("ByUsername", "ada").Return(&models.Author{ID: 1, Username: "ada", PasswordHash: hash}, nil)

	body := strings.NewReader(`{"username":"ada","password":"wrong-password"}`)
	ctx, w := newTestContext(http.MethodPost, "/api/v1/auth/login", body)
	NewAuthController(authors, new(MockStatsRepository)).Login(ctx)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40111, decodeEnvelope(t, w).Code)
}

func TestLoginIssuesToken(t *testing.T) {
	hash, err := utils.HashPassword("right-password")
	require.NoError(t, err)

	authors := new(MockAuthorRepository)
	authors.On("ByUsername", "ada").Return(&models.Author{ID: 1, Username: "ada", PasswordHash: hash}, nil)
	stats := new(MockStatsRepository)
	stats.On("PostCountsByAuthor", []uint{1}).Return(map[uint]int64{1: 2}, nil)

	body := strings.NewReader(`{"username":"ada","password":"right-password"}`)
	ctx, w := newTestContext(http.MethodPost, "/api/v1/auth/login", body)
	NewAuthController(authors, stats).Login(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.AuthorID)
	assert.Equal(t, "ada", claims.Username)

	assert.EqualValues(t, 2, data["author"].(map[string]any)["posts_count"])
}

func TestUpdateProfileEmailExcludesSelf(t *testing.T) {
	authors := new(MockAuthorRepository)
	authors.On("ByID", uint(1)).Return(&models.Author{ID: 1, Username: "ada", Email: "ada@example.com"}, nil)
	// The uniqueness probe must exclude the edited author's own row.
	authors.On("EmailTaken", "ada+new@example.com", uint(1)).Return(false, nil)
	authors.On("Update", mock.MatchedBy(func(a *models.Author) bool {
		return a.Email == "ada+new@example.com"
	})).Return(nil)

	stats := new(MockStatsRepository)
	stats.On("PostCountsByAuthor", []uint{1}).Return(map[uint]int64{}, nil)

	body := strings.NewReader(`{"email":"ada+new@example.com"}`)
	ctx, w := newTestContext(http.MethodPatch, "/api/v1/auth/profile", body)
	ctx.Set(middleware.ContextAuthorIDKey, uint(1))
	NewAuthController(authors, stats).UpdateProfile(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	authors.AssertExpectations(t)
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	authors := new(MockAuthorRepository)
	authors.On("ByID", uint(1)).Return(&models.Author{ID: 1, Username: "ada", Email: "ada@example.com"}, nil)
	authors.On("EmailTaken", "taken@example.com", uint(1)).Return(true, nil)

	body := strings.NewReader(`{"email":"taken@example.com"}`)
	ctx, w := newTestContext(http.MethodPatch, "/api/v1/auth/profile", body)
	ctx.Set(middleware.ContextAuthorIDKey, uint(1))
	NewAuthController(authors, new(MockStatsRepository)).UpdateProfile(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs := decodeData(t, w)["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
	authors.AssertNotCalled(t, "Update", mock.Anything)
}
