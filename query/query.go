// Package query filters, sorts and paginates post listings. Every stage is
// pure: the input slice is never modified.
package query

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/eringen/glowblog/content"
)

// DefaultPageSize is used when Params.PageSize is not positive.
const DefaultPageSize = 9

// Sort selects the listing order.
type Sort string

const (
	Newest    Sort = "newest"
	Oldest    Sort = "oldest"
	Title     Sort = "title"
	PriceAsc  Sort = "price-asc"
	PriceDesc Sort = "price-desc"
)

// ParseSort maps a query-string value to a Sort, defaulting to Newest.
func ParseSort(s string) Sort {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case Oldest:
		return Oldest
	case Title:
		return Title
	case PriceAsc:
		return PriceAsc
	case PriceDesc:
		return PriceDesc
	}
	return Newest
}

type Params struct {
	Lang     string
	Search   string
	Tags     []string
	Sort     Sort
	Page     int
	PageSize int
}

type Result struct {
	Posts      []content.Post
	Total      int
	TotalPages int
	Page       int
	PageSize   int
}

// Run applies language, search, tag, sort and pagination in that order.
func Run(posts []content.Post, p Params) Result {
	matched := ByLanguage(posts, p.Lang)
	matched = Search(matched, p.Search)
	matched = ByTags(matched, p.Tags)
	matched = Sorted(matched, p.Sort, p.Lang)
	return Paginate(matched, p.Page, p.PageSize)
}

// ByLanguage keeps posts tagged lang:<code>. An empty code keeps everything;
// posts without a language tag never match a requested language.
func ByLanguage(posts []content.Post, code string) []content.Post {
	if code == "" {
		return posts
	}
	out := make([]content.Post, 0, len(posts))
	for _, post := range posts {
		if post.HasLanguage(code) {
			out = append(out, post)
		}
	}
	return out
}

// Search keeps posts whose title, excerpt or a display tag contains text,
// ignoring case.
func Search(posts []content.Post, text string) []content.Post {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return posts
	}
	out := make([]content.Post, 0, len(posts))
	for _, post := range posts {
		if matches(post, needle) {
			out = append(out, post)
		}
	}
	return out
}

func matches(post content.Post, needle string) bool {
	if strings.Contains(strings.ToLower(post.Title), needle) ||
		strings.Contains(strings.ToLower(post.Excerpt), needle) {
		return true
	}
	for _, tag := range post.DisplayTags() {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// ByTags keeps posts carrying at least one of the selected display tags.
func ByTags(posts []content.Post, tags []string) []content.Post {
	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if n := content.NormalizeTag(t); n != "" {
			want[n] = struct{}{}
		}
	}
	if len(want) == 0 {
		return posts
	}
	out := make([]content.Post, 0, len(posts))
	for _, post := range posts {
		for _, t := range post.DisplayTags() {
			if _, ok := want[content.NormalizeTag(t)]; ok {
				out = append(out, post)
				break
			}
		}
	}
	return out
}

// Sorted returns a stably sorted copy. lang picks the collation used for
// title ordering.
func Sorted(posts []content.Post, by Sort, lang string) []content.Post {
	out := make([]content.Post, len(posts))
	copy(out, posts)
	switch ParseSort(string(by)) {
	case Oldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case Title:
		c := collate.New(collationTag(lang), collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Title, out[j].Title) < 0 })
	case PriceAsc:
		sortByPrice(out, false)
	case PriceDesc:
		sortByPrice(out, true)
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

func collationTag(lang string) language.Tag {
	if lang == "" {
		return language.English
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	return tag
}

// sortByPrice orders by lowest product price. Posts without a parseable
// price go last in both directions.
func sortByPrice(posts []content.Post, desc bool) {
	type priced struct {
		post  content.Post
		price float64
		known bool
	}
	items := make([]priced, len(posts))
	for i, p := range posts {
		v, ok := LowestPrice(p)
		items[i] = priced{post: p, price: v, known: ok}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.known != b.known {
			return a.known
		}
		if !a.known {
			return false
		}
		if desc {
			return a.price > b.price
		}
		return a.price < b.price
	})
	for i := range items {
		posts[i] = items[i].post
	}
}

// LowestPrice returns the cheapest parseable product price of a post.
func LowestPrice(p content.Post) (float64, bool) {
	lowest, found := 0.0, false
	for _, prod := range p.Products {
		v, ok := ParsePrice(prod.Price)
		if !ok {
			continue
		}
		if !found || v < lowest {
			lowest, found = v, true
		}
	}
	return lowest, found
}

// ParsePrice keeps only digits and '.' from s and parses the rest.
func ParsePrice(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Paginate slices out a 1-based page. Pages past the end are empty.
func Paginate(posts []content.Post, page, size int) Result {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(posts)
	res := Result{Total: total, Page: page, PageSize: size, Posts: []content.Post{}}
	if total == 0 {
		return res
	}
	res.TotalPages = (total + size - 1) / size
	if page > res.TotalPages {
		return res
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	res.Posts = append(res.Posts, posts[start:end]...)
	return res
}

// Tags returns the sorted, de-duplicated, lowercase display tags of posts.
func Tags(posts []content.Post) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.DisplayTags() {
			if n := content.NormalizeTag(t); n != "" {
				set[n] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
