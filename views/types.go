package views

import (
	"html/template"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/seo"
	"github.com/eringen/glowblog/store"
)

// Site holds the site-wide settings every page needs.
type Site struct {
	Name         string
	URL          string
	InstagramURL string
}

// Page is embedded in every view model.
type Page struct {
	Site    Site
	Lang    string
	Path    string
	Head    *seo.Head
	IsAdmin bool
	CSRF    string
}

// HomeData drives the public listing.
type HomeData struct {
	Page
	Posts      []content.Post
	Query      string
	Sort       string
	AllTags    []string
	Selected   []string
	Total      int
	PageNum    int
	TotalPages int
}

// ProductCard is a product with its prepared WhatsApp link.
type ProductCard struct {
	content.Product
	MessageURL string
}

type PostData struct {
	Page
	Post     content.Post
	Body     template.HTML
	Products []ProductCard
	Related  []content.Post
	Preview  bool
}

// StaticData is an informational page rendered from Markdown.
type StaticData struct {
	Page
	Title string
	Body  template.HTML
}

type LoginData struct {
	Page
	Error string
}

type DashboardData struct {
	Page
	Posts     []content.Post
	Query     string
	Message   string
	Failed    bool
	Total     int
	Published int
	Drafts    int
}

// EditorData is the post editor. Post.ID is empty for a new post.
type EditorData struct {
	Page
	Post     content.Post
	Language string
	Error    string
}

type ImagesData struct {
	Page
	Images []store.Image
}

type ErrorData struct {
	Page
	Code int
}
