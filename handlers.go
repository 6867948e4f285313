package glowblog

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/i18n"
	"github.com/eringen/glowblog/pages"
	"github.com/eringen/glowblog/query"
	"github.com/eringen/glowblog/seo"
	"github.com/eringen/glowblog/store"
	"github.com/eringen/glowblog/views"
)

const sitemapCacheControl = "public, max-age=3600, s-maxage=3600"

func (a *App) listParams(c echo.Context, lang string) query.Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	return query.Params{
		Lang:     lang,
		Search:   c.QueryParam("q"),
		Tags:     FilterEmpty(c.QueryParams()["tag"]),
		Sort:     query.ParseSort(c.QueryParam("sort")),
		Page:     page,
		PageSize: a.Config.PageSize,
	}
}

// publishedOrEmpty lists published posts. A failing repository degrades to
// an empty list so the listing still renders.
func (a *App) publishedOrEmpty(c echo.Context) []content.Post {
	posts, err := a.Cache.ListPublished(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list published posts: %v", err)
		return nil
	}
	return posts
}

func (a *App) handleHome(c echo.Context) error {
	lang := Lang(c)
	posts := a.publishedOrEmpty(c)
	params := a.listParams(c, lang)
	res := query.Run(posts, params)

	p := a.page(c, seo.Metadata{
		Title:       a.Config.Name + " | " + i18n.T(lang, "site.tagline"),
		Description: i18n.T(lang, "hero.subtitle"),
		URL:         "/",
		Type:        "website",
	})
	site := a.seoSite()
	p.Head.InjectStructuredData(seo.Organization(site), seo.WebSite(site))

	return Render(c, a.Views.Home(views.HomeData{
		Page:       p,
		Posts:      res.Posts,
		Query:      params.Search,
		Sort:       string(params.Sort),
		AllTags:    query.Tags(query.ByLanguage(posts, lang)),
		Selected:   params.Tags,
		Total:      res.Total,
		PageNum:    res.Page,
		TotalPages: res.TotalPages,
	}))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	post, err := a.Cache.GetPost(ctx, slug)
	preview := false
	if errors.Is(err, store.ErrNotFound) && IsAdmin(c) {
		post, err = a.Repo.GetBySlug(ctx, slug)
		preview = err == nil && !post.Published
	}
	if errors.Is(err, store.ErrNotFound) {
		return a.renderNotFound(c)
	}
	if err != nil {
		return err
	}

	lang := Lang(c)
	site := a.seoSite()
	p := a.page(c, seo.Metadata{
		Title:         post.Title + " | " + a.Config.Name,
		Description:   post.Excerpt,
		Keywords:      keywords(post),
		Image:         post.FeaturedImage,
		URL:           post.Link(),
		Type:          "article",
		PublishedTime: post.CreatedAt,
		ModifiedTime:  post.LastModified(),
		Author:        post.Author,
		Tags:          post.DisplayTags(),
	})
	p.Head.InjectStructuredData(
		seo.Article(site, seo.ArticleData{
			Title:       post.Title,
			Description: post.Excerpt,
			Image:       post.FeaturedImage,
			Author:      post.Author,
			URL:         post.Link(),
			Published:   post.CreatedAt,
			Modified:    post.LastModified(),
			Tags:        post.DisplayTags(),
		}),
		seo.Breadcrumbs(site,
			seo.Crumb{Name: i18n.T(lang, "nav.home"), URL: "/"},
			seo.Crumb{Name: post.Title, URL: post.Link()},
		),
	)

	return Render(c, a.Views.Post(views.PostData{
		Page:     p,
		Post:     post,
		Body:     template.HTML(post.Content),
		Products: productCards(lang, post.Products),
		Related:  RelatedPosts(post, a.publishedOrEmpty(c), maxRelated),
		Preview:  preview,
	}))
}

func (a *App) handleStatic(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		lang := Lang(c)
		pg, err := a.Pages.Get(lang, name)
		if errors.Is(err, pages.ErrNotFound) {
			return a.renderNotFound(c)
		}
		if err != nil {
			return err
		}
		p := a.page(c, seo.Metadata{Title: pg.Title + " | " + a.Config.Name})
		p.Head.InjectStructuredData(seo.Breadcrumbs(a.seoSite(),
			seo.Crumb{Name: i18n.T(lang, "nav.home"), URL: "/"},
			seo.Crumb{Name: pg.Title, URL: "/" + name + "/"},
		))
		return Render(c, a.Views.Static(views.StaticData{Page: p, Title: pg.Title, Body: pg.HTML}))
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	body, err := a.Sitemap.Generate(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("generate sitemap: %v", err)
		return c.String(http.StatusInternalServerError, "Error generating sitemap")
	}
	c.Response().Header().Set("Cache-Control", sitemapCacheControl)
	return c.Blob(http.StatusOK, "application/xml", body)
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.publishedOrEmpty(c))
}

// postsResponse is the JSON shape of /api/posts.
type postsResponse struct {
	Posts      []content.Post `json:"posts"`
	Tags       []string       `json:"tags"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// handleAPIPosts runs the listing pipeline. Without ?lang= every language
// is included.
func (a *App) handleAPIPosts(c echo.Context) error {
	lang := strings.ToLower(c.QueryParam("lang"))
	if !i18n.Supported(lang) {
		lang = ""
	}
	posts := a.publishedOrEmpty(c)
	res := query.Run(posts, a.listParams(c, lang))
	return c.JSON(http.StatusOK, postsResponse{
		Posts:      res.Posts,
		Tags:       query.Tags(query.ByLanguage(posts, lang)),
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	})
}

func (a *App) handleMetrics() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
}

func (a *App) registerAssets() {
	assets, err := views.Assets()
	if err != nil {
		a.Echo.Logger.Errorf("load assets: %v", err)
		return
	}
	for _, asset := range assets {
		asset := asset
		a.Echo.GET(asset.Path, func(c echo.Context) error {
			return c.Blob(http.StatusOK, asset.ContentType, asset.Body)
		})
	}
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s\n",
		content.Absolute(a.Config.URL, "/sitemap.xml"))
	return c.String(http.StatusOK, body)
}

func (a *App) renderNotFound(c echo.Context) error {
	p := a.page(c, seo.Metadata{Title: i18n.T(Lang(c), "errors.notFound") + " | " + a.Config.Name})
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(views.ErrorData{Page: p}))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		p := a.page(c, seo.Metadata{Title: i18n.T(Lang(c), "errors.serverError") + " | " + a.Config.Name})
		if rerr := RenderStatus(c, code, a.Views.ServerError(views.ErrorData{Page: p})); rerr != nil {
			_ = c.String(code, http.StatusText(code))
		}
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
