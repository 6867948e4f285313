package glowblog

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/i18n"
	"github.com/eringen/glowblog/store"
	"github.com/eringen/glowblog/views"
)

// Dashboard flash messages, passed as ?msg= after a redirect.
const (
	msgSaved        = "saved"
	msgDeleted      = "deleted"
	msgSaveFailed   = "saveFailed"
	msgDeleteFailed = "deleteFailed"
	msgNotFound     = "notFound"
)

var failureMessages = map[string]bool{
	msgSaveFailed:   true,
	msgDeleteFailed: true,
	msgNotFound:     true,
}

// postForm is the validated part of the editor submission.
type postForm struct {
	ID            string
	Title         string `validate:"required"`
	Excerpt       string `validate:"required"`
	Content       string
	FeaturedImage string `validate:"required"`
	Tags          []string
	Language      string `validate:"omitempty,oneof=az en ru"`
	Published     bool
	Products      []content.Product
}

func redirectDashboard(c echo.Context, msg string) error {
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape(msg))
}

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(views.LoginData{Page: a.adminPage(c, "login.title")}))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	lang := Lang(c)
	if !a.loginLimiter.Check(ip) {
		return RenderStatus(c, http.StatusTooManyRequests, a.Views.AdminLogin(views.LoginData{
			Page:  a.adminPage(c, "login.title"),
			Error: i18n.T(lang, "login.tooMany"),
		}))
	}
	user := strings.TrimSpace(c.FormValue("username"))
	pass := c.FormValue("password")
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.Config.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1
	if userOK && passOK {
		a.loginLimiter.Reset(ip)
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	c.Logger().Warnf("admin: failed login from %s", ip)
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(views.LoginData{
		Page:  a.adminPage(c, "login.title"),
		Error: i18n.T(lang, "login.error"),
	}))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminNew(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminEditor(views.EditorData{
		Page:     a.adminPage(c, "editor.createPost"),
		Post:     content.Post{Published: true},
		Language: Lang(c),
	}))
}

func (a *App) handleAdminEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.Repo.GetByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return a.renderNotFound(c)
	}
	if err != nil {
		return err
	}
	lang := post.Language()
	if lang == "" {
		lang = Lang(c)
	}
	return Render(c, a.Views.AdminEditor(views.EditorData{
		Page:     a.adminPage(c, "editor.editPost"),
		Post:     post,
		Language: lang,
	}))
}

// parsePostForm reads the editor fields. Product rows arrive as parallel
// product_* arrays; rows without a title or WhatsApp number are dropped.
func parsePostForm(c echo.Context) (postForm, error) {
	values, err := c.FormParams()
	if err != nil {
		return postForm{}, err
	}
	f := postForm{
		ID:            strings.TrimSpace(values.Get("id")),
		Title:         strings.TrimSpace(values.Get("title")),
		Excerpt:       strings.TrimSpace(values.Get("excerpt")),
		Content:       values.Get("content"),
		FeaturedImage: strings.TrimSpace(values.Get("featured_image")),
		Tags:          FilterEmpty(strings.Split(values.Get("tags"), ",")),
		Language:      strings.TrimSpace(values.Get("language")),
		Published:     values.Get("published") != "",
	}

	at := func(key string, i int) string {
		vals := values[key]
		if i < len(vals) {
			return strings.TrimSpace(vals[i])
		}
		return ""
	}
	for i := range values["product_title"] {
		p := content.Product{
			ID:             at("product_id", i),
			Title:          at("product_title", i),
			Description:    at("product_description", i),
			ImageURL:       at("product_image", i),
			Price:          at("product_price", i),
			AffiliateLink:  at("product_link", i),
			WhatsAppNumber: at("product_whatsapp", i),
		}
		if p.Title == "" || p.WhatsAppNumber == "" {
			continue
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		f.Products = append(f.Products, p)
	}
	return f, nil
}

func (f postForm) fields(author, slug string) content.Fields {
	products := f.Products
	if products == nil {
		products = []content.Product{}
	}
	return content.Fields{
		Title:         f.Title,
		Slug:          slug,
		Excerpt:       f.Excerpt,
		Content:       f.Content,
		FeaturedImage: f.FeaturedImage,
		Author:        author,
		Published:     f.Published,
		Tags:          content.WithLanguage(f.Tags, f.Language),
		Products:      products,
	}
}

// uniqueSlug derives a slug from title that no other post uses. selfID is
// the post being edited and may keep its own slug.
func (a *App) uniqueSlug(ctx context.Context, title, selfID string) string {
	return content.UniqueSlug(content.Slugify(title), func(candidate string) bool {
		existing, err := a.Repo.GetBySlug(ctx, candidate)
		return err == nil && existing.ID != selfID
	})
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	ctx := c.Request().Context()
	form, err := parsePostForm(c)
	if err != nil {
		return err
	}

	if err := a.validate.Struct(form); err != nil {
		draft := content.Post{
			ID:            form.ID,
			Title:         form.Title,
			Excerpt:       form.Excerpt,
			Content:       form.Content,
			FeaturedImage: form.FeaturedImage,
			Published:     form.Published,
			Tags:          form.Tags,
			Products:      form.Products,
		}
		titleKey := "editor.editPost"
		if form.ID == "" {
			titleKey = "editor.createPost"
		}
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.AdminEditor(views.EditorData{
			Page:     a.adminPage(c, titleKey),
			Post:     draft,
			Language: form.Language,
			Error:    i18n.T(Lang(c), "editor.required"),
		}))
	}

	if form.ID == "" {
		fields := form.fields(a.Config.Author, a.uniqueSlug(ctx, form.Title, ""))
		if _, err := a.Repo.Create(ctx, fields); err != nil {
			c.Logger().Errorf("admin: create post: %v", err)
			return redirectDashboard(c, msgSaveFailed)
		}
		a.Cache.Invalidate()
		return redirectDashboard(c, msgSaved)
	}

	existing, err := a.Repo.GetByID(ctx, form.ID)
	if errors.Is(err, store.ErrNotFound) {
		return redirectDashboard(c, msgNotFound)
	}
	if err != nil {
		c.Logger().Errorf("admin: load post %s: %v", form.ID, err)
		return redirectDashboard(c, msgSaveFailed)
	}
	slug := existing.Slug
	if form.Title != existing.Title {
		slug = a.uniqueSlug(ctx, form.Title, existing.ID)
	}
	author := existing.Author
	if author == "" {
		author = a.Config.Author
	}
	patch := content.PatchFromFields(form.fields(author, slug))
	if _, err := a.Repo.Update(ctx, existing.ID, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return redirectDashboard(c, msgNotFound)
		}
		c.Logger().Errorf("admin: update post %s: %v", existing.ID, err)
		return redirectDashboard(c, msgSaveFailed)
	}
	a.Cache.Invalidate()
	return redirectDashboard(c, msgSaved)
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	ok, err := a.Repo.Delete(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("admin: delete post %s: %v", id, err)
		return redirectDashboard(c, msgDeleteFailed)
	}
	if !ok {
		return redirectDashboard(c, msgNotFound)
	}
	a.Cache.Invalidate()
	return redirectDashboard(c, msgDeleted)
}

// matchesAdminQuery filters the dashboard on title and excerpt.
func matchesAdminQuery(p content.Post, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Excerpt), q)
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Repo.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	q := c.QueryParam("q")
	d := views.DashboardData{
		Page:  a.adminPage(c, "admin.dashboard"),
		Query: q,
		Total: len(posts),
	}
	for _, p := range posts {
		if p.Published {
			d.Published++
		} else {
			d.Drafts++
		}
		if matchesAdminQuery(p, q) {
			d.Posts = append(d.Posts, p)
		}
	}
	switch msg {
	case msgSaved, msgDeleted, msgSaveFailed, msgDeleteFailed, msgNotFound:
		d.Message = i18n.T(Lang(c), "admin."+msg)
		d.Failed = failureMessages[msg]
	}
	return Render(c, a.Views.AdminDashboard(d))
}
