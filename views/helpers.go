package views

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/i18n"
	"github.com/eringen/glowblog/query"
)

// Link is an anchor with an active state.
type Link struct {
	Label  string
	URL    string
	Active bool
}

// PathEscape wraps url.PathEscape for use in templates.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	if active {
		return "tag tag-active"
	}
	return "tag"
}

// JoinTags formats a tag slice as a comma-separated string for form fields.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

func (d HomeData) listURL(tags []string, sort string, page int) string {
	v := url.Values{}
	if d.Query != "" {
		v.Set("q", d.Query)
	}
	for _, t := range tags {
		v.Add("tag", t)
	}
	if sort != "" && sort != string(query.Newest) {
		v.Set("sort", sort)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

func (d HomeData) selected(tag string) bool {
	for _, s := range d.Selected {
		if content.NormalizeTag(s) == content.NormalizeTag(tag) {
			return true
		}
	}
	return false
}

// TagLinks toggles each tag in or out of the current selection.
func (d HomeData) TagLinks() []Link {
	links := make([]Link, 0, len(d.AllTags))
	for _, tag := range d.AllTags {
		active := d.selected(tag)
		var next []string
		for _, s := range d.Selected {
			if content.NormalizeTag(s) != content.NormalizeTag(tag) {
				next = append(next, s)
			}
		}
		if !active {
			next = append(next, tag)
		}
		links = append(links, Link{Label: tag, URL: d.listURL(next, d.Sort, 1), Active: active})
	}
	return links
}

// ClearTagsURL drops the tag selection.
func (d HomeData) ClearTagsURL() string {
	return d.listURL(nil, d.Sort, 1)
}

// SortOptions lists the sort keys with translated labels.
func (d HomeData) SortOptions() []Link {
	opts := []struct {
		key   query.Sort
		label string
	}{
		{query.Newest, "search.newest"},
		{query.Oldest, "search.oldest"},
		{query.Title, "search.titleAZ"},
		{query.PriceAsc, "search.priceAsc"},
		{query.PriceDesc, "search.priceDesc"},
	}
	current := query.ParseSort(d.Sort)
	out := make([]Link, len(opts))
	for i, o := range opts {
		out[i] = Link{Label: i18n.T(d.Lang, o.label), URL: string(o.key), Active: o.key == current}
	}
	return out
}

// PrevURL is empty on the first page.
func (d HomeData) PrevURL() string {
	if d.PageNum <= 1 {
		return ""
	}
	return d.listURL(d.Selected, d.Sort, d.PageNum-1)
}

// NextURL is empty on the last page.
func (d HomeData) NextURL() string {
	if d.PageNum >= d.TotalPages {
		return ""
	}
	return d.listURL(d.Selected, d.Sort, d.PageNum+1)
}

// LanguageLinks switches the language of the current path.
func (p Page) LanguageLinks() []Link {
	path := p.Path
	if path == "" {
		path = "/"
	}
	out := make([]Link, len(i18n.Languages))
	for i, code := range i18n.Languages {
		out[i] = Link{
			Label:  strings.ToUpper(code),
			URL:    path + "?lang=" + code,
			Active: code == p.Lang,
		}
	}
	return out
}

// LanguageOptions feeds the editor's language select.
func (d EditorData) LanguageOptions() []Link {
	out := make([]Link, len(i18n.Languages))
	for i, code := range i18n.Languages {
		out[i] = Link{Label: i18n.T(d.Lang, "languages."+code), URL: code, Active: code == d.Language}
	}
	return out
}

// IsNew reports whether the editor creates a post.
func (d EditorData) IsNew() bool {
	return d.Post.ID == ""
}
