package glowblog

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/store"
)

// publishedSource is the part of the repository the cache reads.
type publishedSource interface {
	ListPublished(ctx context.Context) ([]content.Post, error)
}

// PostCache is an in-memory cache of published posts with a TTL. Readers
// must not modify the returned slices.
type PostCache struct {
	mu      sync.RWMutex
	posts   []content.Post
	fetched time.Time
	ttl     time.Duration
	source  publishedSource
}

// NewPostCache creates a PostCache backed by source.
func NewPostCache(source publishedSource, ttl time.Duration) *PostCache {
	return &PostCache{source: source, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

func (c *PostCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.source.ListPublished(ctx)
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []content.Post{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return nil
}

// ListPublished returns every published post, newest first. It tries a read
// lock first and only takes the write lock when a reload is needed.
func (c *PostCache) ListPublished(ctx context.Context) ([]content.Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.posts, nil
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(ctx context.Context, slug string) (content.Post, error) {
	posts, err := c.ListPublished(ctx)
	if err != nil {
		return content.Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Post{}, store.ErrNotFound
}
