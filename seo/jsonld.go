package seo

import (
	"strings"
	"time"

	"github.com/eringen/glowblog/content"
)

const schemaContext = "https://schema.org"

// ArticleData feeds the Article builder. URL and Image may be relative.
type ArticleData struct {
	Title       string
	Description string
	Image       string
	Author      string
	URL         string
	Published   time.Time
	Modified    time.Time
	Tags        []string
}

func (s Site) logoURL() string {
	logo := s.Logo
	if logo == "" {
		logo = "/public/logo.png"
	}
	return content.Absolute(s.BaseURL, logo)
}

func (s Site) publisher() map[string]any {
	return map[string]any{
		"@type": "Organization",
		"name":  s.Name,
		"logo": map[string]any{
			"@type": "ImageObject",
			"url":   s.logoURL(),
		},
	}
}

// Article builds a schema.org Article. dateModified falls back to the
// publish date.
func Article(site Site, a ArticleData) map[string]any {
	modified := a.Modified
	if modified.IsZero() {
		modified = a.Published
	}
	data := map[string]any{
		"@context":      schemaContext,
		"@type":         "Article",
		"headline":      a.Title,
		"description":   a.Description,
		"author":        map[string]any{"@type": "Person", "name": a.Author},
		"publisher":     site.publisher(),
		"datePublished": a.Published.UTC().Format(time.RFC3339),
		"dateModified":  modified.UTC().Format(time.RFC3339),
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   content.Absolute(site.BaseURL, a.URL),
		},
	}
	if a.Image != "" {
		data["image"] = content.Absolute(site.BaseURL, a.Image)
	}
	if len(a.Tags) > 0 {
		data["keywords"] = strings.Join(a.Tags, ", ")
	}
	return data
}

func Organization(site Site) map[string]any {
	data := map[string]any{
		"@context":    schemaContext,
		"@type":       "Organization",
		"name":        site.Name,
		"url":         site.BaseURL,
		"logo":        site.logoURL(),
		"description": site.Description,
	}
	if len(site.Languages) > 0 {
		data["contactPoint"] = map[string]any{
			"@type":             "ContactPoint",
			"contactType":       "Customer Service",
			"availableLanguage": site.Languages,
		}
	}
	if len(site.SameAs) > 0 {
		data["sameAs"] = site.SameAs
	}
	return data
}

func WebSite(site Site) map[string]any {
	return map[string]any{
		"@context":    schemaContext,
		"@type":       "WebSite",
		"name":        site.Name,
		"url":         content.BuildURL(site.BaseURL),
		"description": site.Description,
		"potentialAction": map[string]any{
			"@type":       "SearchAction",
			"target":      content.Absolute(site.BaseURL, "/?q={search_term_string}"),
			"query-input": "required name=search_term_string",
		},
	}
}

// Crumb is one breadcrumb step; URL may be relative.
type Crumb struct {
	Name string
	URL  string
}

func Breadcrumbs(site Site, items ...Crumb) map[string]any {
	list := make([]map[string]any, len(items))
	for i, item := range items {
		list[i] = map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     item.Name,
			"item":     content.Absolute(site.BaseURL, item.URL),
		}
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": list,
	}
}
