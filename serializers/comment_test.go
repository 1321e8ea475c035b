package serializers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpress/models"
)

func commentFixture() []models.Comment {
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	author := func(id uint, username string) models.Author {
		return models.Author{ID: id, Username: username, Email: username + "@example.com"}
	}
	parent := func(id uint) *uint { return &id }

	// root(1) -> reply(2) -> reply(3); root(4) stands alone.
	return []models.Comment{
		{ID: 1, PostID: 7, AuthorID: 11, Author: author(11, "ada"), Content: "first", IsApproved: true, CreatedAt: base},
		{ID: 2, PostID: 7, AuthorID: 12, Author: author(12, "grace"), ParentID: parent(1), Content: "reply to first", CreatedAt: base.Add(time.Minute)},
		{ID: 3, PostID: 7, AuthorID: 11, Author: author(11, "ada"), ParentID: parent(2), Content: "deep reply", CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, PostID: 7, AuthorID: 13, Author: author(13, "linus"), Content: "second thread", CreatedAt: base.Add(3 * time.Minute)},
	}
}

func TestCommentTreeNestsRepliesWithinDepth(t *testing.T) {
	comments := commentFixture()
	tree := NewCommentTree(comments, map[uint]int64{11: 4, 12: 1})

	view, ok := tree.Render(&comments[0], 2).(CommentView)
	require.True(t, ok)
	assert.Equal(t, uint(1), view.ID)
	assert.Equal(t, uint(7), view.Post)
	assert.Nil(t, view.Parent)
	require.Len(t, view.Replies, 1)

	reply, ok := view.Replies[0].(CommentView)
	require.True(t, ok)
	assert.Equal(t, uint(2), reply.ID)
	require.NotNil(t, reply.Parent)
	assert.Equal(t, uint(1), *reply.Parent)
	require.Len(t, reply.Replies, 1)

	deep, ok := reply.Replies[0].(CommentView)
	require.True(t, ok)
	assert.Equal(t, uint(3), deep.ID)
	// Depth exhausted: the deepest rendered level carries no replies.
	assert.Empty(t, deep.Replies)
}

func TestCommentTreeDepthZeroTruncates(t *testing.T) {
	comments := commentFixture()
	tree := NewCommentTree(comments, nil)

	view, ok := tree.Render(&comments[0], 0).(CommentView)
	require.True(t, ok)
	require.NotNil(t, view.Replies)
	assert.Empty(t, view.Replies, "children exist but depth 0 must truncate them")
}

func TestCommentTreeRepliesKeepCreationOrder(t *testing.T) {
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	root := uint(1)
	comments := []models.Comment{
		{ID: 1, PostID: 7, AuthorID: 11, Author: models.Author{ID: 11, Username: "ada"}, CreatedAt: base},
		{ID: 5, PostID: 7, AuthorID: 12, Author: models.Author{ID: 12, Username: "grace"}, ParentID: &root, CreatedAt: base.Add(time.Minute)},
		{ID: 3, PostID: 7, AuthorID: 13, Author: models.Author{ID: 13, Username: "linus"}, ParentID: &root, CreatedAt: base.Add(2 * time.Minute)},
	}
	tree := NewCommentTree(comments, nil)

	view := tree.Render(&comments[0], 1).(CommentView)
	require.Len(t, view.Replies, 2)
	assert.Equal(t, uint(5), view.Replies[0].(CommentView).ID)
	assert.Equal(t, uint(3), view.Replies[1].(CommentView).ID)
}

func TestCommentTreeDegradedFallback(t *testing.T) {
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	comments := []models.Comment{
		// Author never loaded: zero value with a surviving username.
		{ID: 8, PostID: 7, AuthorID: 99, Author: models.Author{Username: "ghost"}, Content: "orphaned", CreatedAt: created},
		// Author entirely absent.
		{ID: 9, PostID: 7, AuthorID: 100, Content: "anonymous", CreatedAt: created},
	}
	tree := NewCommentTree(comments, nil)

	degraded, ok := tree.Render(&comments[0], 3).(DegradedCommentView)
	require.True(t, ok)
	assert.Equal(t, uint(8), degraded.ID)
	require.NotNil(t, degraded.Author)
	assert.Equal(t, "ghost", *degraded.Author)
	assert.Equal(t, "orphaned", degraded.Content)
	assert.Equal(t, created, degraded.CreatedAt)

	anon, ok := tree.Render(&comments[1], 3).(DegradedCommentView)
	require.True(t, ok)
	assert.Nil(t, anon.Author)
}

func TestRenderAllIsFlatAndComplete(t *testing.T) {
	comments := commentFixture()
	tree := NewCommentTree(comments, nil)

	out := tree.RenderAll(comments, DefaultCommentDepth)
	require.Len(t, out, len(comments), "every comment appears at the top level, replies included")

	ids := make([]uint, 0, len(out))
	for _, v := range out {
		ids = append(ids, v.(CommentView).ID)
	}
	assert.Equal(t, []uint{1, 2, 3, 4}, ids)

	// The reply also appears nested under its parent.
	first := out[0].(CommentView)
	require.Len(t, first.Replies, 1)
	assert.Equal(t, uint(2), first.Replies[0].(CommentView).ID)
}

func TestRenderAllEmpty(t *testing.T) {
	tree := NewCommentTree(nil, nil)
	out := tree.RenderAll(nil, DefaultCommentDepth)
	require.NotNil(t, out)
	assert.Empty(t, out)
}
