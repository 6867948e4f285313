package content

import "strings"

const languageTagPrefix = "lang:"

// LanguageTag returns the reserved tag that marks a post's language.
func LanguageTag(code string) string {
	return languageTagPrefix + code
}

// IsLanguageTag reports whether tag is a reserved lang:<code> tag.
func IsLanguageTag(tag string) bool {
	return strings.HasPrefix(strings.TrimSpace(tag), languageTagPrefix)
}

// Language returns the code of the post's first language tag, or "".
func (p Post) Language() string {
	for _, t := range p.Tags {
		t = strings.TrimSpace(t)
		if strings.HasPrefix(t, languageTagPrefix) {
			return strings.TrimPrefix(t, languageTagPrefix)
		}
	}
	return ""
}

// HasLanguage reports whether any of the post's language tags is code.
func (p Post) HasLanguage(code string) bool {
	for _, t := range p.Tags {
		if strings.TrimSpace(t) == languageTagPrefix+code {
			return true
		}
	}
	return false
}

// DisplayTags returns the user-facing tags: everything except language tags,
// in stored order.
func (p Post) DisplayTags() []string {
	var out []string
	for _, t := range p.Tags {
		if !IsLanguageTag(t) {
			out = append(out, t)
		}
	}
	return out
}

// WithLanguage replaces any language tags in tags with a single tag for
// code. An empty code only strips existing language tags.
func WithLanguage(tags []string, code string) []string {
	out := make([]string, 0, len(tags)+1)
	for _, t := range tags {
		if !IsLanguageTag(t) {
			out = append(out, t)
		}
	}
	if code != "" {
		out = append(out, LanguageTag(code))
	}
	return out
}
