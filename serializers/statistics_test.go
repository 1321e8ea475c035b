package serializers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDraftsCount(t *testing.T) {
	assert.Equal(t, int64(3), DraftsCount(10, 7))
	assert.Equal(t, int64(0), DraftsCount(5, 5))
	// A published count exceeding the total clamps to zero instead of
	// going negative.
	assert.Equal(t, int64(0), DraftsCount(3, 5))
	assert.Equal(t, int64(0), DraftsCount(0, 0))
}

func TestAvgCommentsPerPost(t *testing.T) {
	assert.Equal(t, 1.33, AvgCommentsPerPost(4, 3))
	assert.Equal(t, 2.0, AvgCommentsPerPost(6, 3))
	assert.Equal(t, 0.67, AvgCommentsPerPost(2, 3))
	assert.Equal(t, 0.0, AvgCommentsPerPost(0, 3))
}

func TestAvgCommentsPerPostNoPosts(t *testing.T) {
	assert.Equal(t, 0.0, AvgCommentsPerPost(12, 0))
	assert.Equal(t, 0.0, AvgCommentsPerPost(0, 0))
}
