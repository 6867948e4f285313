// Package store is the single point of truth for reading and writing posts.
// A Fallback repository tries the hosted PostgreSQL backend first and
// degrades to a local SQLite-backed store when it is unconfigured or failing.
package store

import (
	"context"
	"errors"

	"github.com/eringen/glowblog/content"
)

// ErrNotFound reports an absent post. It is an answer, not a failure.
var ErrNotFound = errors.New("store: post not found")

// Repository is implemented by every backend and by the Fallback decorator.
type Repository interface {
	// ListAll returns every post, drafts included.
	ListAll(ctx context.Context) ([]content.Post, error)
	// ListPublished returns the published subset of ListAll.
	ListPublished(ctx context.Context) ([]content.Post, error)
	GetBySlug(ctx context.Context, slug string) (content.Post, error)
	GetByID(ctx context.Context, id string) (content.Post, error)
	Create(ctx context.Context, f content.Fields) (content.Post, error)
	Update(ctx context.Context, id string, p content.Patch) (content.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Logger is the subset of echo.Logger the store writes to.
type Logger interface {
	Warnf(format string, args ...interface{})
}

func published(posts []content.Post) []content.Post {
	out := make([]content.Post, 0, len(posts))
	for _, p := range posts {
		if p.Published {
			out = append(out, p)
		}
	}
	return out
}
