package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkpress/models"
	"inkpress/repository"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req
	return ctx, w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	env := decodeEnvelope(t, w)
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

// MockPostRepository is a mock of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(f repository.PostFilter) ([]models.Post, int64, error) {
	args := m.Called(f)
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) ByID(id uint) (*models.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) ByAuthor(authorID uint, page, pageSize int) ([]models.Post, int64, error) {
	args := m.Called(authorID, page, pageSize)
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) ByCategory(categoryID uint, page, pageSize int) ([]models.Post, int64, error) {
	args := m.Called(categoryID, page, pageSize)
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Popular(limit int) ([]models.Post, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Create(p *models.Post) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPostRepository) Update(p *models.Post) error {
	args := m.Called(p)
	return args.Error(0)
}

// MockCommentRepository is a mock of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) ByPost(postID uint) ([]models.Comment, error) {
	args := m.Called(postID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ByID(id uint) (*models.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(c *models.Comment) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockCommentRepository) ApprovedCount(postID uint) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List() ([]models.Category, error) {
	args := m.Called()
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ByID(id uint) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

// MockAuthorRepository is a mock of AuthorRepository
type MockAuthorRepository struct {
	mock.Mock
}

func (m *MockAuthorRepository) ByID(id uint) (*models.Author, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) ByUsername(username string) (*models.Author, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) WithPosts() ([]models.Author, error) {
	args := m.Called()
	return args.Get(0).([]models.Author), args.Error(1)
}

func (m *MockAuthorRepository) EmailTaken(email string, excludeID uint) (bool, error) {
	args := m.Called(email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthorRepository) Create(a *models.Author) error {
	args := m.Called(a)
	return args.Error(0)
}

func (m *MockAuthorRepository) Update(a *models.Author) error {
	args := m.Called(a)
	return args.Error(0)
}

// MockStatsRepository is a mock of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) TotalPosts() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) PublishedPosts() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) PublishedPostsByStatus() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) TotalComments() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) TotalViews() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) TopPostsByViews(limit int) ([]models.Post, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockStatsRepository) TopAuthors(limit int) ([]repository.AuthorPostCount, error) {
	args := m.Called(limit)
	return args.Get(0).([]repository.AuthorPostCount), args.Error(1)
}

func (m *MockStatsRepository) PostCountsByAuthor(authorIDs []uint) (map[uint]int64, error) {
	args := m.Called(authorIDs)
	return args.Get(0).(map[uint]int64), args.Error(1)
}

func (m *MockStatsRepository) PostCountsByCategory(categoryIDs []uint) (map[uint]int64, error) {
	args := m.Called(categoryIDs)
	return args.Get(0).(map[uint]int64), args.Error(1)
}

func (m *MockStatsRepository) ApprovedCommentCounts(postIDs []uint) (map[uint]int64, error) {
	args := m.Called(postIDs)
	return args.Get(0).(map[uint]int64), args.Error(1)
}

func (m *MockStatsRepository) CategoryPostsCount(categoryID uint) (int64, error) {
	args := m.Called(categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) CategoryViews(categoryID uint) (int64, error) {
	args := m.Called(categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) CategoryComments(categoryID uint) (int64, error) {
	args := m.Called(categoryID)
	return args.Get(0).(int64), args.Error(1)
}
