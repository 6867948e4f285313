package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Read More", T("en", "blog.readMore"))
	assert.Equal(t, "Daha Ətraflı", T("az", "blog.readMore"))
	assert.Equal(t, "Читать далее", T("ru", "blog.readMore"))
}

func TestMissingKeyEchoesKey(t *testing.T) {
	assert.Equal(t, "blog.nope", T("en", "blog.nope"))
	assert.Equal(t, "nope", T("en", "nope"))
	// A key that stops at a section is not a string.
	assert.Equal(t, "blog", T("en", "blog"))
	assert.Equal(t, "blog.readMore.deeper", T("en", "blog.readMore.deeper"))
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	assert.Equal(t, T("az", "nav.logout"), T("de", "nav.logout"))
}

func TestCatalogsShareKeys(t *testing.T) {
	keys := []string{
		"product.message", "blog.products", "search.priceAsc", "admin.saved",
		"editor.postLanguage", "login.tooMany", "errors.notFound", "footer.privacy",
	}
	for _, lang := range Languages {
		for _, k := range keys {
			assert.NotEqual(t, k, T(lang, k), "%s missing %s", lang, k)
		}
	}
}

func TestFormat(t *testing.T) {
	got := Default().Format("en", "product.message", map[string]string{"title": "Cream", "price": " ($12.99)"})
	assert.Equal(t, "Hi, I'm interested in learning more about *Cream* ($12.99). Can you provide more details?", got)
}

func TestLoadRequiresFallback(t *testing.T) {
	fsys := fstest.MapFS{"en.yaml": {Data: []byte("a:\n  b: c\n")}}
	_, err := Load(fsys, "az")
	assert.Error(t, err)

	c, err := Load(fsys, "en")
	require.NoError(t, err)
	assert.Equal(t, "c", c.T("en", "a.b"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ru", Normalize(" RU "))
	assert.Equal(t, DefaultLanguage, Normalize("fr"))
	assert.True(t, Supported("en"))
	assert.False(t, Supported(""))
}
