package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/locales"
	"github.com/dmitrymomot/storefront/pkg/i18n"
)

func newTestBundle(t *testing.T, opts ...i18n.Option) *i18n.Bundle {
	t.Helper()

	b, err := i18n.New(append([]i18n.Option{
		i18n.WithMessages("en", map[string]any{
			"cart": map[string]any{
				"added": "{{name}} added to purchase requests!",
				"empty": "No purchase requests yet",
			},
			"recent": map[string]any{
				"minutes": map[string]any{
					"one":   "{{count}} minute ago",
					"other": "{{count}} minutes ago",
				},
			},
			"only_en": "English only",
		}),
		i18n.WithMessages("es", map[string]any{
			"cart": map[string]any{
				"added": "¡{{name}} agregado a las solicitudes de compra!",
			},
			"recent": map[string]any{
				"minutes": map[string]any{
					"one":   "hace {{count}} minuto",
					"other": "hace {{count}} minutos",
				},
			},
		}),
	}, opts...)...)
	require.NoError(t, err)
	return b
}

func TestBundle_T(t *testing.T) {
	t.Parallel()

	b := newTestBundle(t)

	t.Run("placeholders", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Used Composite Bat added to purchase requests!", b.T("en", "cart.added", i18n.M{"name": "Used Composite Bat"}))
		assert.Equal(t, "¡Bate agregado a las solicitudes de compra!", b.T("es", "cart.added", i18n.M{"name": "Bate"}))
	})

	t.Run("falls back to default language", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "No purchase requests yet", b.T("es", "cart.empty"))
		assert.Equal(t, "English only", b.T("fr", "only_en"))
	})

	t.Run("region falls back to base language", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "¡X agregado a las solicitudes de compra!", b.T("es-MX", "cart.added", i18n.M{"name": "X"}))
	})

	t.Run("missing key returns the key", func(t *testing.T) {
		t.Parallel()

		var missing []string
		b := newTestBundle(t, i18n.WithMissingKeyHandler(func(lang, key string) {
			missing = append(missing, lang+":"+key)
		}))
		assert.Equal(t, "nope.key", b.T("es", "nope.key"))
		assert.Equal(t, []string{"es:nope.key"}, missing)
	})

	t.Run("unknown placeholders stay", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "{{name}} added to purchase requests!", b.T("en", "cart.added"))
	})
}

func TestBundle_Tn(t *testing.T) {
	t.Parallel()

	b := newTestBundle(t)
	assert.Equal(t, "1 minute ago", b.Tn("en", "recent.minutes", 1))
	assert.Equal(t, "5 minutes ago", b.Tn("en", "recent.minutes", 5))
	assert.Equal(t, "0 minutes ago", b.Tn("en", "recent.minutes", 0))
	assert.Equal(t, "hace 1 minuto", b.Tn("es", "recent.minutes", 1))
	assert.Equal(t, "hace 3 minutos", b.Tn("es", "recent.minutes", 3))
	assert.Equal(t, "recent.hours", b.Tn("es", "recent.hours", 3))
}

func TestBundle_Languages(t *testing.T) {
	t.Parallel()

	b := newTestBundle(t)
	assert.Equal(t, []string{"en", "es"}, b.Languages())
	assert.True(t, b.Supports("es"))
	assert.False(t, b.Supports("fr"))

	_, err := i18n.New(i18n.WithDefaultLanguage(""))
	require.ErrorIs(t, err, i18n.ErrEmptyLanguage)
}

func TestToggle(t *testing.T) {
	t.Parallel()

	b := newTestBundle(t)
	assert.Equal(t, "es", i18n.Toggle(b, "en"))
	assert.Equal(t, "en", i18n.Toggle(b, "es"))
	assert.Equal(t, "en", i18n.Toggle(b, "fr"))
}

func TestTranslator(t *testing.T) {
	t.Parallel()

	b := newTestBundle(t)

	tr := i18n.NewTranslator(b, "fr")
	assert.Equal(t, "en", tr.Language())

	tr = i18n.NewTranslator(b, "es")
	assert.Equal(t, "es", tr.Language())
	assert.Equal(t, "hace 2 minutos", tr.Tn("recent.minutes", 2))
	assert.Equal(t, "¡Guante agregado a las solicitudes de compra!", tr.TranslateValidation("cart.added", map[string]any{"name": "Guante"}))
}

func TestNegotiator(t *testing.T) {
	t.Parallel()

	n := i18n.NewNegotiator(newTestBundle(t))

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"es-MX,es;q=0.9,en;q=0.8", "es"},
		{"en-US,en;q=0.9", "en"},
		{"fr-FR,fr;q=0.9", "en"},
		{"fr;q=0.9,es;q=0.5", "es"},
		{"garbage;;;", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, n.Negotiate(tt.header))
		})
	}
}

func TestWithYAMLDir(t *testing.T) {
	t.Parallel()

	t.Run("loads language files", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"en.yaml":   {Data: []byte("cart:\n  empty: No purchase requests yet\n")},
			"es.yml":    {Data: []byte("cart:\n  empty: Aún no hay solicitudes de compra\n")},
			"README.md": {Data: []byte("ignored")},
		}
		b, err := i18n.New(i18n.WithYAMLDir(fsys))
		require.NoError(t, err)
		assert.Equal(t, "Aún no hay solicitudes de compra", b.T("es", "cart.empty"))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"en.yaml": {Data: []byte("cart: [unclosed")}}
		_, err := i18n.New(i18n.WithYAMLDir(fsys))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})
}

func TestShippedLocales(t *testing.T) {
	t.Parallel()

	b, err := i18n.New(i18n.WithYAMLDir(locales.FS))
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "es"}, b.Languages())
	assert.Equal(t, b.Keys("en"), b.Keys("es"), "every message needs both languages")
	assert.Equal(t, "Solicitar Compra", b.T("es", "products.request_purchase"))
	assert.Equal(t, "Página traducida al español", b.T("es", "language.switched"))
	assert.Equal(t, "Page translated to English", b.T("en", "language.switched"))
}
