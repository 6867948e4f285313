package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eringen/glowblog/content"
)

// Remote is the hosted PostgreSQL backend.
type Remote struct {
	db  *gorm.DB
	now func() time.Time
}

// Configured reports whether endpoint and credential describe a usable
// remote backend: both set and the endpoint a postgres URL with a host.
func Configured(endpoint, credential string) bool {
	if endpoint == "" || credential == "" {
		return false
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return (u.Scheme == "postgres" || u.Scheme == "postgresql") && u.Host != ""
}

// DSN merges the credential into the endpoint as the connection password.
func DSN(endpoint, credential string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse remote endpoint: %w", err)
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, credential)
	return u.String(), nil
}

// OpenRemote prepares a connection pool without dialing. An unreachable
// server surfaces as an error on the first call, not here.
func OpenRemote(endpoint, credential string) (*Remote, error) {
	if !Configured(endpoint, credential) {
		return nil, errors.New("store: remote backend not configured")
	}
	dsn, err := DSN(endpoint, credential)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open remote: %w", err)
	}
	return NewRemote(db), nil
}

// NewRemote wraps an existing gorm handle.
func NewRemote(db *gorm.DB) *Remote {
	return &Remote{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Migrate creates the posts table when missing.
func (r *Remote) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&postRow{})
}

// Close releases the connection pool.
func (r *Remote) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *Remote) list(ctx context.Context, onlyPublished bool) ([]content.Post, error) {
	var rows []postRow
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if onlyPublished {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	posts := make([]content.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, toCanonical(row))
	}
	return posts, nil
}

func (r *Remote) ListAll(ctx context.Context) ([]content.Post, error) {
	return r.list(ctx, false)
}

func (r *Remote) ListPublished(ctx context.Context) ([]content.Post, error) {
	return r.list(ctx, true)
}

func (r *Remote) first(ctx context.Context, column, value string) (content.Post, error) {
	var row postRow
	err := r.db.WithContext(ctx).Where(column+" = ?", value).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return content.Post{}, ErrNotFound
	}
	if err != nil {
		return content.Post{}, err
	}
	return toCanonical(row), nil
}

func (r *Remote) GetBySlug(ctx context.Context, slug string) (content.Post, error) {
	return r.first(ctx, "slug", slug)
}

func (r *Remote) GetByID(ctx context.Context, id string) (content.Post, error) {
	return r.first(ctx, "id", id)
}

func (r *Remote) Create(ctx context.Context, f content.Fields) (content.Post, error) {
	p := content.NewPost(uuid.NewString(), f, r.now())
	row := toBackendShape(p)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return content.Post{}, err
	}
	return toCanonical(row), nil
}

func (r *Remote) Update(ctx context.Context, id string, patch content.Patch) (content.Post, error) {
	cols, err := patchColumns(patch)
	if err != nil {
		return content.Post{}, err
	}
	cols["updated_at"] = r.now()
	res := r.db.WithContext(ctx).Table(postsTable).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return content.Post{}, res.Error
	}
	if res.RowsAffected == 0 {
		return content.Post{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Remote) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&postRow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
