// Package i18n serves the interface strings for the supported languages.
// Catalogs are embedded YAML documents keyed by dotted paths.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when a request names no supported language.
const DefaultLanguage = "az"

// Languages lists the supported codes in display order.
var Languages = []string{"az", "en", "ru"}

//go:embed locales/*.yaml
var locales embed.FS

// Catalog holds one nested translation tree per language.
type Catalog struct {
	trees    map[string]map[string]any
	fallback string
}

// Load parses every <code>.yaml file in fsys.
func Load(fsys fs.FS, fallback string) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	c := &Catalog{trees: make(map[string]map[string]any), fallback: fallback}
	for _, name := range files {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		var tree map[string]any
		if err := yaml.Unmarshal(b, &tree); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", name, err)
		}
		c.trees[strings.TrimSuffix(path.Base(name), ".yaml")] = tree
	}
	if _, ok := c.trees[fallback]; !ok {
		return nil, fmt.Errorf("i18n: no catalog for default language %q", fallback)
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog, parsed on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(locales, "locales")
		if err != nil {
			panic(err)
		}
		c, err := Load(sub, DefaultLanguage)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// T translates key using the default catalog.
func T(lang, key string) string {
	return Default().T(lang, key)
}

// T walks the dotted key through the tree for lang. Unknown languages use
// the fallback tree; a missing key returns the key itself.
func (c *Catalog) T(lang, key string) string {
	tree, ok := c.trees[lang]
	if !ok {
		tree = c.trees[c.fallback]
	}
	var node any = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return key
		}
		node, ok = m[part]
		if !ok {
			return key
		}
	}
	s, ok := node.(string)
	if !ok || s == "" {
		return key
	}
	return s
}

// Format translates key and substitutes {name} placeholders from vars.
func (c *Catalog) Format(lang, key string, vars map[string]string) string {
	s := c.T(lang, key)
	if len(vars) == 0 {
		return s
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// Supported reports whether code has a catalog.
func Supported(code string) bool {
	for _, l := range Languages {
		if l == code {
			return true
		}
	}
	return false
}

// Normalize returns code when supported, otherwise DefaultLanguage.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if Supported(code) {
		return code
	}
	return DefaultLanguage
}
