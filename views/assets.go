package views

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed static
var staticFS embed.FS

// Asset is a minified static file served from memory.
type Asset struct {
	Path        string
	ContentType string
	Body        []byte
}

var assetTypes = map[string]string{
	".css": "text/css",
	".js":  "application/javascript",
}

var (
	assetsOnce sync.Once
	assets     []Asset
	assetsErr  error
)

// Assets returns the stylesheet and scripts, minified once.
func Assets() ([]Asset, error) {
	assetsOnce.Do(func() {
		m := minify.New()
		m.AddFunc("text/css", css.Minify)
		m.AddFunc("application/javascript", js.Minify)

		for _, name := range []string{"site.css", "admin.js"} {
			src, err := staticFS.ReadFile("static/" + name)
			if err != nil {
				assetsErr = err
				return
			}
			mediatype := assetTypes[path.Ext(name)]
			var out bytes.Buffer
			if err := m.Minify(mediatype, &out, bytes.NewReader(src)); err != nil {
				assetsErr = fmt.Errorf("minify %s: %w", name, err)
				return
			}
			assets = append(assets, Asset{Path: "/public/" + name, ContentType: mediatype, Body: out.Bytes()})
		}
	})
	return assets, assetsErr
}
