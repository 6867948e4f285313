package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/i18n"
)

const localKey = "blog_posts"

// Local keeps every post as one JSON array under a fixed key in a SQLite
// key/value table. The array is read and written whole.
type Local struct {
	db  *sql.DB
	log Logger
	mu  sync.Mutex

	now  func() time.Time
	seed func() []content.Post
}

// OpenLocal opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the tables.
func OpenLocal(path string, log Logger) (*Local, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	l := &Local{
		db:   db,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
		seed: func() []content.Post { return SamplePosts(i18n.DefaultLanguage) },
	}
	if err := l.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

// SeedLanguage sets the language tag of the sample posts written when the
// store is seeded. Posts already stored keep their tags.
func (l *Local) SeedLanguage(code string) {
	l.mu.Lock()
	l.seed = func() []content.Post { return SamplePosts(code) }
	l.mu.Unlock()
}

// Close closes the underlying database connection.
func (l *Local) Close() error {
	return l.db.Close()
}

func (l *Local) ensureSchema() error {
	_, err := l.db.Exec(`
CREATE TABLE IF NOT EXISTS local_store (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// load reads the post array, seeding it when the key is absent. A value
// that does not parse is treated as an empty store and re-seeded.
// Callers hold l.mu.
func (l *Local) load(ctx context.Context) ([]content.Post, error) {
	var raw string
	err := l.db.QueryRowContext(ctx, `SELECT value FROM local_store WHERE key = ?`, localKey).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return l.reseed(ctx)
	case err != nil:
		return nil, fmt.Errorf("read local store: %w", err)
	}
	var posts []content.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		if l.log != nil {
			l.log.Warnf("store: local state is corrupt, reseeding: %v", err)
		}
		return l.reseed(ctx)
	}
	if posts == nil {
		posts = []content.Post{}
	}
	return posts, nil
}

func (l *Local) reseed(ctx context.Context) ([]content.Post, error) {
	posts := l.seed()
	if err := l.save(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (l *Local) save(ctx context.Context, posts []content.Post) error {
	b, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encode local store: %w", err)
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO local_store (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		localKey, string(b))
	if err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	return nil
}

// ListAll returns every post in insertion order.
func (l *Local) ListAll(ctx context.Context) ([]content.Post, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

func (l *Local) ListPublished(ctx context.Context) ([]content.Post, error) {
	posts, err := l.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return published(posts), nil
}

func (l *Local) GetBySlug(ctx context.Context, slug string) (content.Post, error) {
	return l.find(ctx, func(p content.Post) bool { return p.Slug == slug })
}

func (l *Local) GetByID(ctx context.Context, id string) (content.Post, error) {
	return l.find(ctx, func(p content.Post) bool { return p.ID == id })
}

func (l *Local) find(ctx context.Context, match func(content.Post) bool) (content.Post, error) {
	posts, err := l.ListAll(ctx)
	if err != nil {
		return content.Post{}, err
	}
	for _, p := range posts {
		if match(p) {
			return p, nil
		}
	}
	return content.Post{}, ErrNotFound
}

func (l *Local) Create(ctx context.Context, f content.Fields) (content.Post, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	posts, err := l.load(ctx)
	if err != nil {
		return content.Post{}, err
	}
	p := content.NewPost(uuid.NewString(), f, l.now())
	if err := l.save(ctx, append(posts, p)); err != nil {
		return content.Post{}, err
	}
	return p, nil
}

func (l *Local) Update(ctx context.Context, id string, patch content.Patch) (content.Post, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	posts, err := l.load(ctx)
	if err != nil {
		return content.Post{}, err
	}
	for i, p := range posts {
		if p.ID != id {
			continue
		}
		merged := p.ApplyPatch(patch)
		merged.UpdatedAt = l.now()
		if merged.UpdatedAt.Before(merged.CreatedAt) {
			merged.UpdatedAt = merged.CreatedAt
		}
		posts[i] = merged
		if err := l.save(ctx, posts); err != nil {
			return content.Post{}, err
		}
		return merged, nil
	}
	return content.Post{}, ErrNotFound
}

func (l *Local) Delete(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	posts, err := l.load(ctx)
	if err != nil {
		return false, err
	}
	kept := posts[:0:0]
	for _, p := range posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(posts) {
		return false, nil
	}
	if err := l.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}
