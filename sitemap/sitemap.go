// Package sitemap renders the sitemaps.org urlset for the site: a fixed set
// of static routes plus one entry per published post.
package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/metrics"
)

const namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Route is a static page listed in every sitemap.
type Route struct {
	Path       string
	ChangeFreq string
	Priority   float64
}

// StaticRoutes are the informational pages of the site.
var StaticRoutes = []Route{
	{Path: "/", ChangeFreq: "daily", Priority: 1.0},
	{Path: "/about/", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/contact/", ChangeFreq: "monthly", Priority: 0.7},
	{Path: "/privacy/", ChangeFreq: "yearly", Priority: 0.3},
	{Path: "/terms/", ChangeFreq: "yearly", Priority: 0.3},
	{Path: "/disclaimer/", ChangeFreq: "yearly", Priority: 0.3},
}

const (
	postChangeFreq = "weekly"
	postPriority   = 0.9
)

// Lister supplies the published posts.
type Lister interface {
	ListPublished(ctx context.Context) ([]content.Post, error)
}

type Logger interface {
	Errorf(format string, args ...interface{})
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Generator builds sitemap documents. Routes defaults to StaticRoutes and
// Now to time.Now.
type Generator struct {
	BaseURL string
	Routes  []Route
	Source  Lister
	Logger  Logger
	Now     func() time.Time
}

// Generate returns the complete document. A failing Source is logged and
// the document still carries every static route; only an encoding failure
// is returned as an error.
func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	routes := g.Routes
	if routes == nil {
		routes = StaticRoutes
	}
	generated := now().UTC().Format(time.RFC3339)

	set := urlSet{XMLNS: namespace}
	for _, r := range routes {
		set.URLs = append(set.URLs, url{
			Loc:        content.Absolute(g.BaseURL, r.Path),
			LastMod:    generated,
			ChangeFreq: r.ChangeFreq,
			Priority:   formatPriority(r.Priority),
		})
	}

	if g.Source != nil {
		posts, err := g.Source.ListPublished(ctx)
		if err != nil {
			metrics.SitemapDegraded.Inc()
			if g.Logger != nil {
				g.Logger.Errorf("sitemap: listing posts: %v", err)
			}
		}
		for _, p := range posts {
			if !p.Published {
				continue
			}
			set.URLs = append(set.URLs, url{
				Loc:        content.BuildURL(g.BaseURL, "blog", p.Slug),
				LastMod:    p.LastModified().UTC().Format(time.RFC3339),
				ChangeFreq: postChangeFreq,
				Priority:   formatPriority(postPriority),
			})
		}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func formatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
