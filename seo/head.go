// Package seo manages page head metadata: title, canonical link, social
// preview tags and JSON-LD structured data.
package seo

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/glowblog/content"
)

// Site describes the publisher. BaseURL resolves relative URLs and images.
type Site struct {
	Name        string
	BaseURL     string
	Description string
	Logo        string
	SameAs      []string
	Languages   []string
}

// Metadata is what a page declares about itself. URL and Image may be
// site-relative.
type Metadata struct {
	Title         string
	Description   string
	Keywords      string
	Image         string
	URL           string
	Type          string
	PublishedTime time.Time
	ModifiedTime  time.Time
	Author        string
	Tags          []string
}

type metaTag struct {
	attr    string
	key     string
	content string
}

// Head is the mutable head state of one rendered page.
type Head struct {
	site        Site
	title       string
	canonical   string
	order       []string
	meta        map[string]metaTag
	articleTags []string
	structured  []json.RawMessage
}

func NewHead(site Site) *Head {
	return &Head{site: site, meta: make(map[string]metaTag)}
}

func (h *Head) set(attr, key, value string) {
	id := attr + "=" + key
	if _, ok := h.meta[id]; !ok {
		h.order = append(h.order, id)
	}
	h.meta[id] = metaTag{attr: attr, key: key, content: value}
}

// Apply upserts the title, standard, Open Graph, article, Twitter and
// canonical tags. Applying the same metadata again leaves the state as is.
func (h *Head) Apply(m Metadata) {
	h.title = m.Title
	h.set("name", "title", m.Title)
	h.set("name", "description", m.Description)
	if m.Keywords != "" {
		h.set("name", "keywords", m.Keywords)
	}

	typ := m.Type
	if typ == "" {
		typ = "website"
	}
	h.set("property", "og:title", m.Title)
	h.set("property", "og:description", m.Description)
	h.set("property", "og:type", typ)
	if h.site.Name != "" {
		h.set("property", "og:site_name", h.site.Name)
	}
	if m.URL != "" {
		h.set("property", "og:url", h.resolve(m.URL))
	}
	if m.Image != "" {
		h.set("property", "og:image", h.resolve(m.Image))
	}
	if !m.PublishedTime.IsZero() {
		h.set("property", "article:published_time", m.PublishedTime.UTC().Format(time.RFC3339))
	}
	if !m.ModifiedTime.IsZero() {
		h.set("property", "article:modified_time", m.ModifiedTime.UTC().Format(time.RFC3339))
	}
	if m.Author != "" {
		h.set("property", "article:author", m.Author)
	}
	if m.Tags != nil {
		h.articleTags = append([]string(nil), m.Tags...)
	}

	h.set("name", "twitter:card", "summary_large_image")
	h.set("name", "twitter:title", m.Title)
	h.set("name", "twitter:description", m.Description)
	if m.Image != "" {
		h.set("name", "twitter:image", h.resolve(m.Image))
	}

	if m.URL != "" {
		h.canonical = h.resolve(m.URL)
	}
}

func (h *Head) resolve(ref string) string {
	return content.Absolute(h.site.BaseURL, ref)
}

// InjectStructuredData replaces every dynamic JSON-LD block with items.
// Items that fail to encode are skipped.
func (h *Head) InjectStructuredData(items ...any) {
	h.structured = h.structured[:0]
	for _, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			continue
		}
		h.structured = append(h.structured, b)
	}
}

// RemoveStructuredData drops the dynamic JSON-LD blocks.
func (h *Head) RemoveStructuredData() {
	h.structured = nil
}

func (h *Head) Title() string     { return h.title }
func (h *Head) Canonical() string { return h.canonical }

// Meta returns the content of the tag with attr="key".
func (h *Head) Meta(attr, key string) (string, bool) {
	m, ok := h.meta[attr+"="+key]
	return m.content, ok
}

// StructuredData returns the encoded JSON-LD blocks.
func (h *Head) StructuredData() []string {
	out := make([]string, len(h.structured))
	for i, b := range h.structured {
		out[i] = string(b)
	}
	return out
}

// Component renders the head tags.
func (h *Head) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		if h.title != "" {
			fmt.Fprintf(&b, "<title>%s</title>\n", template.HTMLEscapeString(h.title))
		}
		for _, id := range h.order {
			m := h.meta[id]
			fmt.Fprintf(&b, "<meta %s=\"%s\" content=\"%s\">\n",
				m.attr, template.HTMLEscapeString(m.key), template.HTMLEscapeString(m.content))
		}
		for _, tag := range h.articleTags {
			fmt.Fprintf(&b, "<meta property=\"article:tag\" content=\"%s\">\n", template.HTMLEscapeString(tag))
		}
		if h.canonical != "" {
			fmt.Fprintf(&b, "<link rel=\"canonical\" href=\"%s\">\n", template.HTMLEscapeString(h.canonical))
		}
		for _, s := range h.structured {
			fmt.Fprintf(&b, "<script type=\"application/ld+json\" data-dynamic=\"true\">%s</script>\n", s)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}
