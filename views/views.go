// Package views renders the HTML pages of the site. Pages are html/template
// files embedded in the binary and exposed as templ components.
package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/glowblog/content"
	"github.com/eringen/glowblog/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"t":           i18n.T,
	"date":        func(t time.Time) string { return t.Format("02.01.2006") },
	"isoDate":     func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"joinTags":    JoinTags,
	"tagClass":    TagClass,
	"pathEscape":  PathEscape,
	"displayTags": func(p content.Post) []string { return p.DisplayTags() },
	"upper":       strings.ToUpper,
	"year":        func() int { return time.Now().Year() },
	"component":   renderComponent,
	"kb":          func(n int) string { return fmt.Sprintf("%.1f KB", float64(n)/1024) },
	"productRow":  newProductRow,
}

// productRow is the data of one editor product fieldset. Product is nil for
// the blank row cloned by the editor script.
type productRow struct {
	Lang    string
	Product *content.Product
}

func newProductRow(lang string, p any) productRow {
	row := productRow{Lang: lang}
	if prod, ok := p.(content.Product); ok {
		row.Product = &prod
	}
	return row
}

// renderComponent inlines a templ component into a template.
func renderComponent(c templ.Component) (template.HTML, error) {
	if c == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"home", "post", "page", "login", "dashboard", "editor", "images", "error"} {
		pages[name] = template.Must(template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages[name].ExecuteTemplate(w, "layout", data)
	})
}

func Home(d HomeData) templ.Component { return component("home", d) }

func Post(d PostData) templ.Component { return component("post", d) }

// Static renders an informational page.
func Static(d StaticData) templ.Component { return component("page", d) }

func AdminLogin(d LoginData) templ.Component { return component("login", d) }

func AdminDashboard(d DashboardData) templ.Component { return component("dashboard", d) }

func AdminEditor(d EditorData) templ.Component { return component("editor", d) }

func AdminImages(d ImagesData) templ.Component { return component("images", d) }

func NotFound(d ErrorData) templ.Component {
	d.Code = 404
	return component("error", d)
}

func ServerError(d ErrorData) templ.Component {
	d.Code = 500
	return component("error", d)
}
