// internal/utils/slug.go
package utils

import (
	"regexp"
	"strings"
)

var (
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugInvalid    = regexp.MustCompile(`[^\w-]`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe identifier from a title: lower-case, trim,
// whitespace runs to single hyphens, strip everything outside word
// characters and hyphens, collapse repeated hyphens. Idempotent.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	return s
}
