package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestReadingTime(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t  ", 0},
		{"one word", "hello", 1},
		{"just under one minute", words(199), 1},
		{"exactly one minute", words(200), 1},
		{"just over one minute", words(201), 2},
		{"two minutes", words(400), 2},
		{"two minutes and change", words(401), 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ReadingTime(tc.content))
		})
	}
}

func TestReadingTimeIgnoresWhitespaceRuns(t *testing.T) {
	spread := strings.Repeat("word \n\t  ", 200)
	assert.Equal(t, 1, ReadingTime(spread))
}

func TestReadingTimeMonotonic(t *testing.T) {
	prev := 0
	for n := 0; n <= 1000; n += 50 {
		got := ReadingTime(words(n))
		assert.GreaterOrEqual(t, got, prev, "reading time must not shrink as content grows (n=%d)", n)
		prev = got
	}
}

func TestPostReadingTimeUsesContent(t *testing.T) {
	p := Post{Content: words(250)}
	assert.Equal(t, 2, p.ReadingTime())
}

func TestPublishStampsOnlyFirstTransition(t *testing.T) {
	p := Post{Status: StatusDraft}
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.Publish(first)

	assert.Equal(t, StatusPublished, p.Status)
	if assert.NotNil(t, p.PublishedAt) {
		assert.Equal(t, first, *p.PublishedAt)
	}

	later := first.Add(48 * time.Hour)
	p.Publish(later)
	assert.Equal(t, first, *p.PublishedAt, "republishing must not move the original timestamp")
}
