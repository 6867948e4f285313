package glowblog

import (
	"context"
	"encoding/xml"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/store"
)

func tagged(id string, tags ...string) content.Post {
	return content.Post{ID: id, Slug: "post-" + id, Title: "Post " + id, Published: true, Tags: tags}
}

func TestRelatedPosts(t *testing.T) {
	current := tagged("1", "Skincare", "lang:en")
	posts := []content.Post{
		current,
		tagged("2", "skincare", "lang:en"),
		tagged("3", "skincare", "lang:az"),
		tagged("4", "makeup", "lang:en"),
		tagged("5", "lang:en"),
		tagged("6", " SKINCARE ", "lang:en"),
		tagged("7", "skincare", "lang:en"),
		tagged("8", "skincare", "lang:en"),
	}

	related := RelatedPosts(current, posts, 3)
	var ids []string
	for _, p := range related {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"2", "6", "7"}, ids)
}

func TestRelatedPostsIgnoresLanguageTagOverlap(t *testing.T) {
	current := tagged("1", "lang:en")
	assert.Empty(t, RelatedPosts(current, []content.Post{tagged("2", "lang:en")}, 3))
}

func TestRelatedPostsAcrossLanguageTags(t *testing.T) {
	current := tagged("1", "serum", "lang:ru")
	posts := []content.Post{tagged("2", "serum", "lang:en", "lang:ru"), tagged("3", "serum", "lang:en")}
	related := RelatedPosts(current, posts, 3)
	require.Len(t, related, 1)
	assert.Equal(t, "2", related[0].ID)
}

func TestProductCards(t *testing.T) {
	cards := productCards("ru", []content.Product{
		{ID: "a", Title: "Крем", Price: "30 AZN", WhatsAppNumber: "+994 50 000 00 00"},
		{ID: "b", Title: "No phone"},
	})
	require.Len(t, cards, 2)
	assert.Contains(t, cards[0].MessageURL, "https://wa.me/994500000000?text=")
	assert.Contains(t, cards[0].MessageURL, "%2830%20AZN%29")
	assert.Empty(t, cards[1].MessageURL)
}

func TestFilterEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, FilterEmpty([]string{" a ", "", "  ", "b"}))
	assert.Nil(t, FilterEmpty(nil))
}

type countingSource struct {
	calls int
	posts []content.Post
	err   error
}

func (s *countingSource) ListPublished(context.Context) ([]content.Post, error) {
	s.calls++
	return s.posts, s.err
}

func TestPostCache(t *testing.T) {
	src := &countingSource{posts: store.SamplePosts("en")}
	cache := NewPostCache(src, time.Hour)
	ctx := context.Background()

	posts, err := cache.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	_, err = cache.ListPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	p, err := cache.GetPost(ctx, "top-10-smart-home-devices")
	require.NoError(t, err)
	assert.Equal(t, "2", p.ID)
	_, err = cache.GetPost(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	cache.Invalidate()
	_, err = cache.ListPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestPostCacheEmptyAndErrors(t *testing.T) {
	ctx := context.Background()

	empty := &countingSource{}
	cache := NewPostCache(empty, time.Hour)
	posts, err := cache.ListPublished(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
	_, _ = cache.ListPublished(ctx)
	assert.Equal(t, 1, empty.calls, "an empty result is cached too")

	failing := &countingSource{err: errors.New("down")}
	cache = NewPostCache(failing, time.Hour)
	_, err = cache.ListPublished(ctx)
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data/blog.db", cfg.DatabasePath)
	assert.Equal(t, content.DefaultAuthor, cfg.Author)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, 9, cfg.PageSize)
	assert.Equal(t, "az", cfg.DefaultLanguage)

	cfg = SiteConfig{DefaultLanguage: "de"}
	cfg.setDefaults()
	assert.Equal(t, "az", cfg.DefaultLanguage)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SITE_NAME", "Test Glow")
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("POST_CACHE_TTL", "30s")
	t.Setenv("PAGE_SIZE", "4")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("DEFAULT_LANGUAGE", "ru")
	t.Setenv("REMOTE_DB_URL", "postgres://db.example.com:5432/blog")

	cfg := ConfigFromEnv()
	assert.Equal(t, "Test Glow", cfg.Name)
	assert.Equal(t, "owner", cfg.AdminUsername)
	assert.Equal(t, 30*time.Second, cfg.PostCacheTTL)
	assert.Equal(t, 4, cfg.PageSize)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "ru", cfg.DefaultLanguage)
	assert.Equal(t, "postgres://db.example.com:5432/blog", cfg.RemoteURL)
}

func TestBuildFeed(t *testing.T) {
	posts := store.SamplePosts("en")
	feed := buildFeed("Glow", "https://example.com", "desc", posts)

	require.Len(t, feed.Channel.Items, 3)
	item := feed.Channel.Items[0]
	assert.Equal(t, "https://example.com/blog/best-wireless-headphones-2025/", item.Link)
	assert.Equal(t, item.Link, item.GUID)
	assert.NotContains(t, item.Categories, "lang:en")
	assert.Equal(t, "Wed, 05 Mar 2025 00:00:00 +0000", feed.Channel.LastBuildDate)

	out, err := xml.Marshal(feed)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<rss version="2.0">`)
}

func TestImageSlug(t *testing.T) {
	assert.Equal(t, "my-photo", imageSlug("My Photo.PNG"))
	assert.Equal(t, "image", imageSlug("ßß.jpg"))
}
