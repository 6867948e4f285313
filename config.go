package glowblog

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/i18n"
	"github.com/eringen/glowblog/query"
	"github.com/eringen/glowblog/store"
)

// SiteConfig holds all configuration for a glowblog site.
type SiteConfig struct {
	Name         string // Site name (default "Glow by Vusale")
	URL          string // Canonical URL (default "http://localhost:3000")
	Description  string // Site description for RSS and meta tags
	Author       string // Author stamped on new posts (default "Admin")
	InstagramURL string

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")
	StaticDir    string // Uploads and user assets (default "public")

	// Remote PostgreSQL backend. Both must be set for it to be used.
	RemoteURL string
	RemoteKey string

	AdminUsername string // default "admin"
	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL    time.Duration // Post cache TTL (default 5min)
	PageSize        int           // Listing page size (default 9)
	DefaultLanguage string        // default "az"
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Glow by Vusale"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = "Discover the beauty of Swedish cosmetics"
	}
	if c.Author == "" {
		c.Author = content.DefaultAuthor
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.PageSize <= 0 {
		c.PageSize = query.DefaultPageSize
	}
	c.DefaultLanguage = i18n.Normalize(c.DefaultLanguage)
}

// ConfigFromEnv reads configuration from the environment, loading a .env
// file first when one exists. Unset variables keep their defaults.
func ConfigFromEnv() SiteConfig {
	_ = godotenv.Load()

	cfg := SiteConfig{
		Name:            os.Getenv("SITE_NAME"),
		URL:             os.Getenv("SITE_URL"),
		Description:     os.Getenv("SITE_DESCRIPTION"),
		Author:          os.Getenv("SITE_AUTHOR"),
		InstagramURL:    os.Getenv("INSTAGRAM_URL"),
		Addr:            os.Getenv("ADDR"),
		DatabasePath:    os.Getenv("DATABASE_PATH"),
		StaticDir:       os.Getenv("STATIC_DIR"),
		RemoteURL:       os.Getenv("REMOTE_DB_URL"),
		RemoteKey:       os.Getenv("REMOTE_DB_KEY"),
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:   os.Getenv("ADMIN_SESSION_SECRET"),
		DefaultLanguage: os.Getenv("DEFAULT_LANGUAGE"),
	}
	cfg.CookieSecure, _ = strconv.ParseBool(os.Getenv("COOKIE_SECURE"))
	if d, err := time.ParseDuration(os.Getenv("POST_CACHE_TTL")); err == nil {
		cfg.PostCacheTTL = d
	}
	if n, err := strconv.Atoi(os.Getenv("PAGE_SIZE")); err == nil {
		cfg.PageSize = n
	}
	cfg.setDefaults()
	return cfg
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithViews replaces the built-in page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithRemote uses an already opened remote backend instead of the one
// described by RemoteURL and RemoteKey.
func WithRemote(r *store.Remote) Option {
	return func(a *App) {
		a.Remote = r
	}
}
