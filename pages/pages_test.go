package pages

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPagesExistForEveryLanguage(t *testing.T) {
	r := New()
	for _, lang := range []string{"az", "en", "ru"} {
		for _, name := range Names {
			p, err := r.Get(lang, name)
			require.NoError(t, err, "%s/%s", lang, name)
			assert.Equal(t, lang, p.Lang)
			assert.NotEmpty(t, p.Title)
			assert.Contains(t, string(p.HTML), "<h1")
		}
	}
}

func TestFallsBackToEnglish(t *testing.T) {
	r := NewFromFS(fstest.MapFS{
		"en/about.md": {Data: []byte("# About\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")},
	})
	p, err := r.Get("ru", "about")
	require.NoError(t, err)
	assert.Equal(t, "en", p.Lang)
	assert.Equal(t, "About", p.Title)
	assert.Contains(t, string(p.HTML), "<table>")
}

func TestUnknownPage(t *testing.T) {
	r := New()
	_, err := r.Get("en", "secret")
	assert.ErrorIs(t, err, ErrNotFound)

	empty := NewFromFS(fstest.MapFS{})
	_, err = empty.Get("en", "about")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachesRenderedPage(t *testing.T) {
	fsys := fstest.MapFS{"en/terms.md": {Data: []byte("# Terms\n")}}
	r := NewFromFS(fsys)
	first, err := r.Get("en", "terms")
	require.NoError(t, err)

	fsys["en/terms.md"] = &fstest.MapFile{Data: []byte("# Changed\n")}
	second, err := r.Get("en", "terms")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
