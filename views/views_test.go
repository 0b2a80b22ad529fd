package views_test

import (
	"bytes"
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/locales"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/notify"
	"github.com/dmitrymomot/storefront/pkg/pagination"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/views"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newViews(t *testing.T) *views.Views {
	t.Helper()
	b, err := i18n.New(i18n.WithYAMLDir(locales.FS), i18n.WithDefaultLanguage("en"))
	require.NoError(t, err)
	v, err := views.New(b, views.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return v
}

func html(t *testing.T, v *views.Views, lang, name string, data any, page bool) string {
	t.Helper()
	var buf bytes.Buffer
	comp := v.Partial(lang, name, data)
	if page {
		comp = v.Page(lang, name, data)
	}
	require.NoError(t, comp.Render(context.Background(), &buf))
	return buf.String()
}

func TestPages(t *testing.T) {
	t.Parallel()
	v := newViews(t)

	layout := views.Layout{Lang: "en", Toggle: "es", Path: "/", CartCount: 2, Year: 2025}

	t.Run("home", func(t *testing.T) {
		t.Parallel()
		out := html(t, v, "en", views.PageHome, views.HomePage{
			Layout: layout,
			Grid: views.Grid{Products: []views.ProductCard{
				{Slug: "composite-bat", Name: "Used Composite Bat", Price: "$80", Icon: "fa-baseball-bat-ball"},
			}},
		}, true)

		assert.Contains(t, out, `<html lang="en">`)
		assert.Contains(t, out, "Game-Changing Used Baseball Gear")
		assert.Contains(t, out, `href="/products/composite-bat"`)
		assert.Contains(t, out, `<span id="cart-count" class="cart-count">2</span>`)
		assert.Contains(t, out, `name="lang" value="es"`)
		assert.NotContains(t, out, "Found")
	})

	t.Run("spanish layout", func(t *testing.T) {
		t.Parallel()
		out := html(t, v, "es", views.PageCart, views.CartPage{
			Layout: views.Layout{Lang: "es", Toggle: "en"},
		}, true)

		assert.Contains(t, out, `<html lang="es">`)
		assert.Contains(t, out, "Aún no hay solicitudes de compra")
		assert.Contains(t, out, `class="cart-count empty"`)
	})

	t.Run("unknown language falls back", func(t *testing.T) {
		t.Parallel()
		out := html(t, v, "fr", views.PageRecent, views.RecentPage{Layout: layout}, true)
		assert.Contains(t, out, "No Recently Viewed Items")
	})

	t.Run("unknown page", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := v.Page("en", "missing", nil).Render(context.Background(), &buf)
		require.Error(t, err)
	})

	t.Run("notifications are rendered in page", func(t *testing.T) {
		t.Parallel()
		l := layout
		l.Notifications = []notify.Notification{notify.New(notify.Success, "Thanks for subscribing with a@b.co!")}
		out := html(t, v, "en", views.PageError, views.ErrorPage{Layout: l, Code: 404, Message: "Page not found."}, true)

		assert.Contains(t, out, "notification-success")
		assert.Contains(t, out, `data-timeout="4000"`)
		assert.Contains(t, out, "Thanks for subscribing with a@b.co!")
		assert.Contains(t, out, "Page not found.")
	})
}

func TestPartials(t *testing.T) {
	t.Parallel()
	v := newViews(t)

	t.Run("oob badge", func(t *testing.T) {
		t.Parallel()
		out := html(t, v, "en", views.PartialCartBadge, views.Badge{Count: 3, OOB: true}, false)
		assert.Equal(t, `<span id="cart-count" class="cart-count" hx-swap-oob="true">3</span>`, out)
	})

	t.Run("search results count", func(t *testing.T) {
		t.Parallel()
		out := html(t, v, "en", views.PartialProductGrid, views.Grid{
			Query:    "bat",
			Active:   true,
			Products: []views.ProductCard{{Slug: "a", Name: "A"}, {Slug: "b", Name: "B"}},
		}, false)
		assert.Contains(t, out, "Found 2 products for &#34;bat&#34;")

		out = html(t, v, "es", views.PartialProductGrid, views.Grid{
			Query:    "bate",
			Active:   true,
			Products: []views.ProductCard{{Slug: "a", Name: "A"}},
		}, false)
		assert.Contains(t, out, "Se encontró 1 producto para &#34;bate&#34;")
	})

	t.Run("no results", func(t *testing.T) {
		t.Parallel()
		out := html(t, v, "en", views.PartialProductGrid, views.Grid{
			Query:       "xyz",
			Active:      true,
			NoResults:   true,
			Suggestions: catalog.DefaultSuggestions,
		}, false)
		assert.Contains(t, out, "No products found for &#34;xyz&#34;")
		assert.Contains(t, out, `href="/products?q=Wilson"`)
		assert.Contains(t, out, "Show All Products")
	})

	t.Run("dropdown keeps highlight markup", func(t *testing.T) {
		t.Parallel()
		out := html(t, v, "en", views.PartialSearchDropdown, views.Dropdown{
			Query: "bat",
			Suggestions: []catalog.Suggestion{{
				Product: catalog.Product{Slug: "composite-bat", Price: "$80"},
				Name:    catalog.Highlight("Used Composite Bat", "bat"),
			}},
		}, false)
		assert.Contains(t, out, "<strong>Bat</strong>")
		assert.Contains(t, out, `href="/products/composite-bat"`)
	})

	t.Run("empty dropdown", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, html(t, v, "en", views.PartialSearchDropdown, views.Dropdown{}, false))
	})

	t.Run("form errors", func(t *testing.T) {
		t.Parallel()
		out := html(t, v, "en", views.PartialContactForm, views.ContactForm{
			Errors: validator.ValidationErrors{{Field: "email", Message: "Please enter a valid email address"}},
		}, false)
		assert.Contains(t, out, `<p class="field-error">Please enter a valid email address</p>`)
		assert.Equal(t, 1, bytes.Count([]byte(out), []byte("field-error")))
	})

	t.Run("sold pagination", func(t *testing.T) {
		t.Parallel()
		items := make([]catalog.SoldItem, 27)
		for i := range items {
			items[i] = catalog.SoldItem{Name: "Item", Price: "$10", SoldAt: now.Add(-2 * time.Hour)}
		}
		pg := pagination.New(len(items), pagination.DefaultPageSize).Page(2)
		out := html(t, v, "en", views.PartialSoldList, views.SoldList{
			Items: pagination.Slice(items, pg),
			Page:  pg,
			Shown: pg.End,
		}, false)

		assert.Equal(t, 9, bytes.Count([]byte(out), []byte(`class="sold-card"`)))
		assert.Contains(t, out, "Page 2 of 3")
		assert.Contains(t, out, `href="/sold?page=1"`)
		assert.Contains(t, out, `href="/sold?page=3"`)
		assert.Contains(t, out, `aria-current="page">2</a>`)
		assert.Contains(t, out, "2 hours ago")
	})

	t.Run("recent time ago", func(t *testing.T) {
		t.Parallel()
		out := html(t, v, "es", views.PartialRecentList, []views.RecentItem{
			{Name: "Bate", ViewedAt: now.Add(-30 * time.Second)},
			{Name: "Guante", ViewedAt: now.Add(-5 * time.Minute)},
		}, false)
		assert.Contains(t, out, "Justo ahora")
		assert.Contains(t, out, "hace 5 minutos")
	})
}

func TestStatic(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"static/app.js", "static/app.css"} {
		_, err := fs.Stat(views.Static(), name)
		assert.NoError(t, err, name)
	}
}
