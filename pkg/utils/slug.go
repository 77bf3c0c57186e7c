package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugHyphens  = regexp.MustCompile(`[\s_]+`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// Slugify normalizes a title into a URL-safe identifier: lower-case,
// strip non-word characters, collapse whitespace runs into hyphens.
// The derivation is deterministic, so distinct titles may normalize to
// the same slug; the caller decides the collision policy.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueSlug disambiguates a base slug by appending a numeric suffix
// (base, base-2, base-3, ...) until exists reports it free. This is the
// bulk-import policy only: the review workflow rejects collisions
// outright instead of renaming.
func UniqueSlug(base string, exists func(slug string) (bool, error)) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
