package glowblog

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/i18n"
	"github.com/eringen/glowblog/seo"
	"github.com/eringen/glowblog/views"
)

const maxRelated = 3

func (a *App) seoSite() seo.Site {
	s := seo.Site{
		Name:        a.Config.Name,
		BaseURL:     a.Config.URL,
		Description: a.Config.Description,
		Logo:        "/public/logo.png",
		Languages:   i18n.Languages,
	}
	if a.Config.InstagramURL != "" {
		s.SameAs = []string{a.Config.InstagramURL}
	}
	return s
}

// page builds the shared view model with a head already carrying meta.
func (a *App) page(c echo.Context, meta seo.Metadata) views.Page {
	path := c.Request().URL.Path
	if meta.URL == "" {
		meta.URL = path
	}
	if meta.Description == "" {
		meta.Description = a.Config.Description
	}
	head := seo.NewHead(a.seoSite())
	head.Apply(meta)
	return views.Page{
		Site: views.Site{
			Name:         a.Config.Name,
			URL:          a.Config.URL,
			InstagramURL: a.Config.InstagramURL,
		},
		Lang:    Lang(c),
		Path:    path,
		Head:    head,
		IsAdmin: IsAdmin(c),
		CSRF:    CsrfToken(c),
	}
}

// adminPage is page for admin screens, which are never indexed.
func (a *App) adminPage(c echo.Context, titleKey string) views.Page {
	return a.page(c, seo.Metadata{Title: i18n.T(Lang(c), titleKey) + " | " + a.Config.Name})
}

// RelatedPosts returns up to limit other posts in the same language that
// share a display tag with current, in the given order.
func RelatedPosts(current content.Post, posts []content.Post, limit int) []content.Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.DisplayTags() {
		if tag := content.NormalizeTag(t); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	lang := current.Language()
	var related []content.Post
	for _, p := range posts {
		if len(related) == limit {
			break
		}
		if p.ID == current.ID || (lang == "" && p.Language() != "") || (lang != "" && !p.HasLanguage(lang)) {
			continue
		}
		for _, t := range p.DisplayTags() {
			if _, ok := tagSet[content.NormalizeTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// productCards prepares the WhatsApp link of each product with the
// message translated into lang. Products without a number get no link.
func productCards(lang string, products []content.Product) []views.ProductCard {
	cards := make([]views.ProductCard, 0, len(products))
	for _, p := range products {
		card := views.ProductCard{Product: p}
		if strings.TrimSpace(p.WhatsAppNumber) != "" {
			text := i18n.Default().Format(lang, "product.message", map[string]string{
				"title": p.Title,
				"price": p.PriceSuffix(),
			})
			card.MessageURL = content.MessageLink(p, text)
		}
		cards = append(cards, card)
	}
	return cards
}

// FilterEmpty trims every value and drops the blank ones.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func keywords(p content.Post) string {
	return strings.Join(p.DisplayTags(), ", ")
}
