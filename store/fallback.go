package store

import (
	"context"
	"errors"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/metrics"
)

// Fallback tries primary first and re-runs the operation against secondary
// when primary fails. Failures are logged and counted, never returned.
// A record primary does not have is looked up in secondary before it is
// reported absent, so posts written while primary was down stay reachable.
// The two backends are allowed to diverge.
type Fallback struct {
	primary   Repository
	secondary Repository
	log       Logger
}

// NewFallback composes the backends. primary may be nil, in which case
// every call goes straight to secondary.
func NewFallback(primary, secondary Repository, log Logger) *Fallback {
	return &Fallback{primary: primary, secondary: secondary, log: log}
}

// HasPrimary reports whether a remote backend is configured.
func (f *Fallback) HasPrimary() bool {
	return f.primary != nil
}

func (f *Fallback) fellBack(op string, err error) {
	metrics.RepositoryFallbacks.WithLabelValues(op).Inc()
	if f.log != nil {
		f.log.Warnf("store: remote %s failed, falling back to local store: %v", op, err)
	}
}

func try[T any](f *Fallback, op string, call func(Repository) (T, error)) (T, error) {
	if f.primary != nil {
		v, err := call(f.primary)
		if err == nil {
			return v, nil
		}
		f.fellBack(op, err)
	}
	return call(f.secondary)
}

// tryOrMiss is try for single-record operations: ErrNotFound from primary
// is a miss rather than a failure, and secondary answers it.
func tryOrMiss[T any](f *Fallback, op string, call func(Repository) (T, error)) (T, error) {
	if f.primary != nil {
		v, err := call(f.primary)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrNotFound) {
			f.fellBack(op, err)
		}
	}
	return call(f.secondary)
}

func (f *Fallback) ListAll(ctx context.Context) ([]content.Post, error) {
	return try(f, "list_all", func(r Repository) ([]content.Post, error) {
		return r.ListAll(ctx)
	})
}

func (f *Fallback) ListPublished(ctx context.Context) ([]content.Post, error) {
	return try(f, "list_published", func(r Repository) ([]content.Post, error) {
		return r.ListPublished(ctx)
	})
}

func (f *Fallback) GetBySlug(ctx context.Context, slug string) (content.Post, error) {
	return tryOrMiss(f, "get_by_slug", func(r Repository) (content.Post, error) {
		return r.GetBySlug(ctx, slug)
	})
}

func (f *Fallback) GetByID(ctx context.Context, id string) (content.Post, error) {
	return tryOrMiss(f, "get_by_id", func(r Repository) (content.Post, error) {
		return r.GetByID(ctx, id)
	})
}

func (f *Fallback) Create(ctx context.Context, fields content.Fields) (content.Post, error) {
	return try(f, "create", func(r Repository) (content.Post, error) {
		return r.Create(ctx, fields)
	})
}

func (f *Fallback) Update(ctx context.Context, id string, p content.Patch) (content.Post, error) {
	return tryOrMiss(f, "update", func(r Repository) (content.Post, error) {
		return r.Update(ctx, id, p)
	})
}

// Delete removes id from primary, or from secondary when primary fails or
// has no such record.
func (f *Fallback) Delete(ctx context.Context, id string) (bool, error) {
	if f.primary != nil {
		ok, err := f.primary.Delete(ctx, id)
		if err == nil && ok {
			return true, nil
		}
		if err != nil {
			f.fellBack("delete", err)
		}
	}
	return f.secondary.Delete(ctx, id)
}
