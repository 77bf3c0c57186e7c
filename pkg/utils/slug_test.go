package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Understanding JavaScript Closures in Depth", "understanding-javascript-closures-in-depth"},
		{"punctuation stripped", "Go's Scheduler: How It Works!", "gos-scheduler-how-it-works"},
		{"whitespace collapsed", "  Many    Spaces\tHere  ", "many-spaces-here"},
		{"already lowercase", "plain-title", "plain-title"},
		{"leading trailing hyphens trimmed", "--- Hello ---", "hello"},
		{"digits kept", "Top 10 Go Tips", "top-10-go-tips"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestSlugifyDeterministicCollision(t *testing.T) {
	// Two different titles can normalize identically; callers must decide
	// what to do about it.
	a := Slugify("Hello, World")
	b := Slugify("Hello World!")
	assert.Equal(t, a, b)
}

func TestUniqueSlug(t *testing.T) {
	t.Run("free base is returned unchanged", func(t *testing.T) {
		got, err := UniqueSlug("my-post", func(string) (bool, error) { return false, nil })
		assert.NoError(t, err)
		assert.Equal(t, "my-post", got)
	})

	t.Run("suffix counts up past taken slugs", func(t *testing.T) {
		taken := map[string]bool{"my-post": true, "my-post-2": true}
		got, err := UniqueSlug("my-post", func(s string) (bool, error) { return taken[s], nil })
		assert.NoError(t, err)
		assert.Equal(t, "my-post-3", got)
	})

	t.Run("lookup errors propagate", func(t *testing.T) {
		_, err := UniqueSlug("my-post", func(string) (bool, error) {
			return false, assert.AnError
		})
		assert.Error(t, err)
	})
}
