package serializers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpress/models"
)

func TestAuthorSummary(t *testing.T) {
	a := &models.Author{
		ID:        3,
		Username:  "ada",
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Bio:       "mathematician",
	}

	view := Author(a, 4)
	require.NotNil(t, view)
	assert.Equal(t, "ada", view.Username)
	assert.Equal(t, "Ada Lovelace", view.FullName)
	assert.Equal(t, int64(4), view.PostsCount)
	require.NotNil(t, view.Bio)
	assert.Equal(t, "mathematician", *view.Bio)
	assert.Nil(t, view.Avatar)
}

func TestAuthorFullNameFallsBackToUsername(t *testing.T) {
	a := &models.Author{ID: 3, Username: "ada"}
	view := Author(a, 0)
	require.NotNil(t, view)
	assert.Equal(t, "ada", view.FullName)
	assert.Nil(t, view.Bio)
}

func TestAuthorNilAndUnloaded(t *testing.T) {
	assert.Nil(t, Author(nil, 0))
	assert.Nil(t, Author(&models.Author{Username: "ghost"}, 0))
}

func TestMediaURL(t *testing.T) {
	assert.Nil(t, MediaURL(""))
	assert.Nil(t, MediaURL("   "))

	abs := MediaURL("https://cdn.example.com/a.png")
	require.NotNil(t, abs)
	assert.Equal(t, "https://cdn.example.com/a.png", *abs)

	rel := MediaURL("avatars/ada.png")
	require.NotNil(t, rel)
	assert.Equal(t, "/static/media/avatars/ada.png", *rel)

	slashed := MediaURL("/avatars/ada.png")
	require.NotNil(t, slashed)
	assert.Equal(t, "/static/media/avatars/ada.png", *slashed)
}
