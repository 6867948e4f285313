package store

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/metrics"
)

var errUnreachable = errors.New("dial tcp: connection refused")

// brokenRepo fails every call, like a remote backend that is down.
type brokenRepo struct{ calls int }

func (b *brokenRepo) ListAll(context.Context) ([]content.Post, error) {
	b.calls++
	return nil, errUnreachable
}
func (b *brokenRepo) ListPublished(context.Context) ([]content.Post, error) {
	b.calls++
	return nil, errUnreachable
}
func (b *brokenRepo) GetBySlug(context.Context, string) (content.Post, error) {
	b.calls++
	return content.Post{}, errUnreachable
}
func (b *brokenRepo) GetByID(context.Context, string) (content.Post, error) {
	b.calls++
	return content.Post{}, errUnreachable
}
func (b *brokenRepo) Create(context.Context, content.Fields) (content.Post, error) {
	b.calls++
	return content.Post{}, errUnreachable
}
func (b *brokenRepo) Update(context.Context, string, content.Patch) (content.Post, error) {
	b.calls++
	return content.Post{}, errUnreachable
}
func (b *brokenRepo) Delete(context.Context, string) (bool, error) {
	b.calls++
	return false, errUnreachable
}

func TestFallbackServesLocalWhenPrimaryFails(t *testing.T) {
	local, log := setupLocal(t)
	primary := &brokenRepo{}
	repo := NewFallback(primary, local, log)
	ctx := context.Background()
	before := testutil.ToFloat64(metrics.RepositoryFallbacks.WithLabelValues("list_published"))

	posts, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, 1, primary.calls)
	assert.Len(t, log.warnings, 1)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RepositoryFallbacks.WithLabelValues("list_published")))

	created, err := repo.Create(ctx, content.Fields{Title: "Offline", Slug: "offline", Published: true})
	require.NoError(t, err)
	got, err := repo.GetBySlug(ctx, "offline")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	ok, err := repo.Delete(ctx, "nonexistent-id")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFallbackWithoutPrimary(t *testing.T) {
	local, log := setupLocal(t)
	repo := NewFallback(nil, local, log)
	assert.False(t, repo.HasPrimary())

	posts, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Empty(t, log.warnings)
}

func TestFallbackMissIsAnsweredLocally(t *testing.T) {
	remote := setupRemote(t)
	local, log := setupLocal(t)
	repo := NewFallback(remote, local, log)
	ctx := context.Background()

	// Seeded posts exist only in the local store.
	got, err := repo.GetBySlug(ctx, "best-wireless-headphones-2025")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
	got, err = repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "top-10-smart-home-devices", got.Slug)

	title := "Smart Home, Revisited"
	updated, err := repo.Update(ctx, "2", content.Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	ok, err := repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = local.GetByID(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Records the remote has are served by the remote.
	created, err := remote.Create(ctx, content.Fields{Title: "Remote Only", Slug: "remote-only", Published: true})
	require.NoError(t, err)
	got, err = repo.GetBySlug(ctx, "remote-only")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	ok, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetBySlug(ctx, "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Update(ctx, "missing", content.Patch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
	ok, err = repo.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Empty(t, log.warnings, "a miss is not a failure")
}
