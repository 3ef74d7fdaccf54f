// Package slug normalizes human titles into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Resolve returns the slug for a record: the explicit slug verbatim when one
// is supplied (after trimming), otherwise a normalized form of the title.
// An empty result means the caller must reject the write; there is no
// placeholder fallback.
func Resolve(title, explicit string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	return Normalize(title)
}

// Normalize lowercases the input, strips characters outside [a-z0-9\s-],
// collapses whitespace runs to single hyphens, collapses repeated hyphens,
// and trims leading/trailing hyphens. Idempotent.
func Normalize(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
