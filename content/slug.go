package content

import (
	"strconv"
	"strings"
)

// Slugify converts a title to a URL-safe slug: lowercase, every run of
// characters outside [a-z0-9] collapsed to one hyphen, no leading or
// trailing hyphen. Distinct titles may produce the same slug.
func Slugify(title string) string {
	s := strings.ToLower(title)
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// UniqueSlug returns base, or base suffixed with -2, -3, ... until taken
// reports the candidate as free. An empty base becomes "post".
func UniqueSlug(base string, taken func(string) bool) string {
	if base == "" {
		base = "post"
	}
	candidate := base
	for n := 2; taken(candidate); n++ {
		candidate = base + "-" + strconv.Itoa(n)
	}
	return candidate
}
