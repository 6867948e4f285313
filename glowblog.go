// Package glowblog is a multilingual product-recommendation blog built with
// Go, Echo and templ. Posts live in a remote PostgreSQL table when one is
// configured and fall back to a local SQLite store otherwise. The package
// provides the public listing and post pages, static pages, an admin editor,
// image uploads, RSS, a sitemap and Prometheus metrics.
package glowblog

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/eringen/glowblog/metrics"
	"github.com/eringen/glowblog/pages"
	"github.com/eringen/glowblog/sitemap"
	"github.com/eringen/glowblog/store"
	"github.com/eringen/glowblog/views"
)

// ViewFuncs holds the components the handlers render. DefaultViews returns
// the built-in set; WithViews swaps individual pages.
type ViewFuncs struct {
	Home           func(views.HomeData) templ.Component
	Post           func(views.PostData) templ.Component
	Static         func(views.StaticData) templ.Component
	AdminLogin     func(views.LoginData) templ.Component
	AdminDashboard func(views.DashboardData) templ.Component
	AdminEditor    func(views.EditorData) templ.Component
	AdminImages    func(views.ImagesData) templ.Component
	NotFound       func(views.ErrorData) templ.Component
	ServerError    func(views.ErrorData) templ.Component
}

func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:           views.Home,
		Post:           views.Post,
		Static:         views.Static,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		AdminEditor:    views.AdminEditor,
		AdminImages:    views.AdminImages,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

// App wires together the repository, cache, handlers, middleware and views.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Repo     *store.Fallback
	Local    *store.Local
	Remote   *store.Remote
	Cache    *PostCache
	Pages    *pages.Renderer
	Sitemap  *sitemap.Generator
	Registry *prometheus.Registry
	Views    ViewFuncs

	loginLimiter *LoginLimiter
	validate     *validator.Validate
	customRoutes []func(*App)
}

// New creates an App with the given configuration. Nothing is opened until
// Init or Start.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(log.INFO)

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init opens the stores and registers middleware and routes.
func (a *App) Init() error {
	if a.Config.AdminPassword == "" {
		return errors.New("glowblog: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return errors.New("glowblog: SessionSecret is required")
	}

	if err := a.OpenStores(); err != nil {
		return err
	}
	logger := a.Echo.Logger

	a.Cache = NewPostCache(a.Repo, a.Config.PostCacheTTL)
	a.Pages = pages.New()
	a.Sitemap = &sitemap.Generator{
		BaseURL: a.Config.URL,
		Source:  a.Cache,
		Logger:  logger,
	}
	a.loginLimiter = NewLoginLimiter(5, 15*time.Minute)
	a.validate = validator.New()

	a.Registry = prometheus.NewRegistry()
	metrics.RegisterCollectors(a.Registry)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// OpenStores opens the local store, the remote one when configured, and
// composes them into Repo.
func (a *App) OpenStores() error {
	logger := a.Echo.Logger

	local, err := store.OpenLocal(a.Config.DatabasePath, logger)
	if err != nil {
		return fmt.Errorf("glowblog: init local store: %w", err)
	}
	local.SeedLanguage(a.Config.DefaultLanguage)
	a.Local = local

	if a.Remote == nil && store.Configured(a.Config.RemoteURL, a.Config.RemoteKey) {
		remote, err := store.OpenRemote(a.Config.RemoteURL, a.Config.RemoteKey)
		if err != nil {
			return fmt.Errorf("glowblog: init remote store: %w", err)
		}
		a.Remote = remote
	}
	var primary store.Repository
	if a.Remote != nil {
		primary = a.Remote
		logger.Infof("glowblog: using remote post store with local fallback")
	} else {
		logger.Infof("glowblog: remote store not configured, using local store at %s", a.Config.DatabasePath)
	}
	a.Repo = store.NewFallback(primary, local, logger)
	return nil
}

// Start initializes the app and serves until the server stops.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("glowblog: listening on %s", a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	a.registerAssets()
	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/metrics", a.handleMetrics())

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/api/posts", a.handleAPIPosts)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	for _, name := range pages.Names {
		e.GET("/"+name+"/", a.handleStatic(name))
	}

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/new/", a.handleAdminNew)
	e.GET("/admin/post/:id/", a.handleAdminEdit)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:id/delete/", a.handleAdminDelete)
	e.POST("/admin/post/:id/delete/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.POST("/admin/images/:filename/delete/", a.handleImageDelete)
}

// Close releases the stores and stops background work.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	var errs []error
	if a.Remote != nil {
		errs = append(errs, a.Remote.Close())
	}
	if a.Local != nil {
		errs = append(errs, a.Local.Close())
	}
	return errors.Join(errs...)
}
