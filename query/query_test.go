package query

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/store"
)

func post(id, title string, created string, tags ...string) content.Post {
	ts, _ := time.Parse("2006-01-02", created)
	return content.Post{ID: id, Title: title, Slug: id, CreatedAt: ts, UpdatedAt: ts, Published: true, Tags: tags}
}

func withPrice(p content.Post, prices ...string) content.Post {
	for i, price := range prices {
		p.Products = append(p.Products, content.Product{ID: fmt.Sprint(i), Title: "x", Price: price})
	}
	return p
}

func ids(posts []content.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestSamplePostsNewestFirst(t *testing.T) {
	res := Run(store.SamplePosts("en"), Params{Sort: Newest, Page: 1, PageSize: 9})
	assert.Equal(t, []string{"3", "2", "1"}, ids(res.Posts))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.TotalPages)
}

func TestSearchKitchen(t *testing.T) {
	res := Run(store.SamplePosts("en"), Params{Search: "kitchen"})
	require.Len(t, res.Posts, 1)
	assert.Equal(t, "Best Kitchen Gadgets for Home Chefs", res.Posts[0].Title)

	res = Run(store.SamplePosts("en"), Params{Search: "KITCHEN"})
	assert.Len(t, res.Posts, 1)
}

func TestSearchMatchesExcerptAndDisplayTags(t *testing.T) {
	posts := []content.Post{
		{ID: "a", Title: "One", Excerpt: "about serum"},
		{ID: "b", Title: "Two", Tags: []string{"Serum"}},
		{ID: "c", Title: "Three", Tags: []string{"lang:serum"}},
	}
	assert.Equal(t, []string{"a", "b"}, ids(Search(posts, "serum")))
	assert.Equal(t, []string{"a", "b", "c"}, ids(Search(posts, "  ")))
}

func TestLanguageFilterIsStrictAndDisjoint(t *testing.T) {
	posts := []content.Post{
		post("az1", "A", "2025-01-01", "lang:az"),
		post("en1", "B", "2025-01-02", "lang:en"),
		post("ru1", "C", "2025-01-03", "lang:ru"),
		post("none", "D", "2025-01-04"),
	}
	az := ByLanguage(posts, "az")
	en := ByLanguage(posts, "en")
	assert.Equal(t, []string{"az1"}, ids(az))
	assert.Equal(t, []string{"en1"}, ids(en))
	assert.Len(t, ByLanguage(posts, ""), 4)
}

func TestLanguageFilterMatchesAnyLanguageTag(t *testing.T) {
	posts := []content.Post{
		post("both", "A", "2025-01-01", "skin", "lang:en", " lang:ru"),
		post("en1", "B", "2025-01-02", "lang:en"),
	}
	assert.Equal(t, []string{"both"}, ids(ByLanguage(posts, "ru")))
	assert.Equal(t, []string{"both", "en1"}, ids(ByLanguage(posts, "en")))
	assert.Equal(t, []string{"both"}, ids(Run(posts, Params{Lang: "ru", Sort: Oldest}).Posts))
}

func TestTagFilterIsOr(t *testing.T) {
	posts := []content.Post{
		post("a", "A", "2025-01-01", "skin", "lang:en"),
		post("b", "B", "2025-01-02", "hair"),
		post("c", "C", "2025-01-03", "nails"),
	}
	assert.Equal(t, []string{"a", "b"}, ids(ByTags(posts, []string{" SKIN ", "hair"})))
	assert.Len(t, ByTags(posts, nil), 3)
	assert.Empty(t, ByTags(posts, []string{"lang:en"}))
}

func TestSortStability(t *testing.T) {
	posts := []content.Post{
		post("first", "Same", "2025-01-01"),
		post("second", "Same", "2025-01-01"),
		post("third", "Same", "2025-01-01"),
	}
	for _, s := range []Sort{Newest, Oldest, Title, PriceAsc, PriceDesc} {
		assert.Equal(t, []string{"first", "second", "third"}, ids(Sorted(posts, s, "en")), string(s))
	}
}

func TestSortByTitleUsesCollation(t *testing.T) {
	posts := []content.Post{
		post("z", "zebra", "2025-01-01"),
		post("a", "Apple", "2025-01-02"),
		post("e", "éclair", "2025-01-03"),
	}
	assert.Equal(t, []string{"a", "e", "z"}, ids(Sorted(posts, Title, "en")))
}

func TestSortByPrice(t *testing.T) {
	posts := []content.Post{
		withPrice(post("mid", "M", "2025-01-01"), "$20.00"),
		withPrice(post("none", "N", "2025-01-02"), "ask us"),
		withPrice(post("cheap", "C", "2025-01-03"), "50 AZN", "$5.50"),
		post("empty", "E", "2025-01-04"),
		withPrice(post("dear", "D", "2025-01-05"), "1,299.99"),
	}
	assert.Equal(t, []string{"cheap", "mid", "dear", "none", "empty"}, ids(Sorted(posts, PriceAsc, "")))
	assert.Equal(t, []string{"dear", "mid", "cheap", "none", "empty"}, ids(Sorted(posts, PriceDesc, "")))
}

func TestParsePrice(t *testing.T) {
	v, ok := ParsePrice("$1,299.99")
	assert.True(t, ok)
	assert.InDelta(t, 1299.99, v, 1e-9)
	_, ok = ParsePrice("free")
	assert.False(t, ok)
	_, ok = ParsePrice("1.2.3")
	assert.False(t, ok)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, Newest, ParseSort(""))
	assert.Equal(t, Newest, ParseSort("bogus"))
	assert.Equal(t, PriceDesc, ParseSort("Price-Desc"))
	assert.Equal(t, Oldest, ParseSort("oldest"))
}

func TestPaginationExhaustive(t *testing.T) {
	for n := 0; n <= 20; n++ {
		var posts []content.Post
		for i := 0; i < n; i++ {
			posts = append(posts, post(fmt.Sprint(i), "t", "2025-01-01"))
		}
		for size := 1; size <= 7; size++ {
			first := Paginate(posts, 1, size)
			want := (n + size - 1) / size
			require.Equal(t, want, first.TotalPages, "n=%d size=%d", n, size)

			var all []string
			for page := 1; page <= first.TotalPages; page++ {
				all = append(all, ids(Paginate(posts, page, size).Posts)...)
			}
			if n == 0 {
				assert.Empty(t, all)
			} else {
				assert.Equal(t, ids(posts), all)
			}
			assert.Empty(t, Paginate(posts, first.TotalPages+1, size).Posts)
		}
	}
}

func TestPaginateDefaults(t *testing.T) {
	res := Paginate(nil, 0, 0)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, DefaultPageSize, res.PageSize)
	assert.Equal(t, 0, res.TotalPages)
	assert.NotNil(t, res.Posts)
}

func TestPaginateHugePageIsEmpty(t *testing.T) {
	posts := store.SamplePosts("en")
	for _, page := range []int{math.MaxInt, math.MaxInt/9 + 2, math.MaxInt / 2} {
		res := Paginate(posts, page, 9)
		assert.Empty(t, res.Posts, "page=%d", page)
		assert.Equal(t, 1, res.TotalPages)
		assert.Equal(t, 3, res.Total)
	}
	assert.Empty(t, Run(posts, Params{Page: math.MaxInt}).Posts)
}

func TestRunIsPureAndIdempotent(t *testing.T) {
	posts := store.SamplePosts("en")
	before := ids(posts)
	p := Params{Lang: "en", Search: "best", Sort: Oldest, Page: 1, PageSize: 2}

	first := Run(posts, p)
	second := Run(posts, p)
	assert.Equal(t, first, second)
	assert.Equal(t, before, ids(posts))
	assert.Equal(t, []string{"1", "3"}, ids(first.Posts))
}

func TestTags(t *testing.T) {
	assert.Equal(t,
		[]string{"audio", "automation", "cooking", "electronics", "gadgets", "kitchen", "smart home", "technology"},
		Tags(store.SamplePosts("en")))
}
