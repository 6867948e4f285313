// Package pages renders the informational pages (about, contact, legal)
// from embedded Markdown, one file per language.
package pages

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// FallbackLanguage is used when a page has no translation.
const FallbackLanguage = "en"

// Names lists the pages served under /<name>/.
var Names = []string{"about", "contact", "privacy", "terms", "disclaimer"}

// ErrNotFound reports an unknown page name.
var ErrNotFound = errors.New("pages: not found")

//go:embed content
var embedded embed.FS

// Page is a rendered page. Title is the first level-one heading.
type Page struct {
	Name  string
	Lang  string
	Title string
	HTML  template.HTML
}

// Renderer converts pages on first request and caches the result.
type Renderer struct {
	fsys fs.FS
	md   goldmark.Markdown

	mu    sync.RWMutex
	cache map[string]Page
}

// New returns a renderer over the embedded pages.
func New() *Renderer {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		panic(err)
	}
	return NewFromFS(sub)
}

// NewFromFS returns a renderer reading <lang>/<name>.md from fsys.
func NewFromFS(fsys fs.FS) *Renderer {
	return &Renderer{
		fsys: fsys,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		cache: make(map[string]Page),
	}
}

func known(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Get returns the page in lang, falling back to English.
func (r *Renderer) Get(lang, name string) (Page, error) {
	if !known(name) {
		return Page{}, ErrNotFound
	}
	key := lang + "/" + name
	r.mu.RLock()
	p, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	src, used, err := r.read(lang, name)
	if err != nil {
		return Page{}, err
	}
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return Page{}, fmt.Errorf("pages: render %s: %w", key, err)
	}
	p = Page{Name: name, Lang: used, Title: title(src), HTML: template.HTML(buf.String())}

	r.mu.Lock()
	r.cache[key] = p
	r.mu.Unlock()
	return p, nil
}

func (r *Renderer) read(lang, name string) ([]byte, string, error) {
	for _, l := range []string{lang, FallbackLanguage} {
		b, err := fs.ReadFile(r.fsys, path.Join(l, name+".md"))
		if err == nil {
			return b, l, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", err
		}
	}
	return nil, "", ErrNotFound
}

func title(src []byte) string {
	for _, line := range strings.Split(string(src), "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}
