package internal_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/cookie"
)

func TestExtractor(t *testing.T) {
	t.Parallel()

	ext := internal.NewExtractor(
		internal.FromCookieSigned("pref"),
		internal.FromQuery("lang"),
		internal.FromHeader("X-Lang"),
	)

	var got []string
	app := internal.New(
		internal.WithCookieOptions(cookie.WithSecret(testSecret)),
		internal.WithHandlers(handlerFunc(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				v, ok := ext.Extract(c)
				if !ok {
					v = "none"
				}
				got = append(got, v)
				return c.NoContent(http.StatusNoContent)
			})
			r.GET("/set", func(c internal.Context) error {
				return c.SetCookieSigned("pref", "es", 60)
			})
		})),
	)

	b := newBrowser(t, app)
	b.get("/")
	b.get("/", "X-Lang", "en")
	b.get("/?lang=es&x=1", "X-Lang", "en")
	b.get("/set")
	b.get("/?lang=en")

	assert.Equal(t, []string{"none", "en", "es", "es"}, got)
}

func TestQueryInt(t *testing.T) {
	t.Parallel()

	var pages []int
	app := internal.New(internal.WithHandlers(handlerFunc(func(r internal.Router) {
		r.GET("/sold", func(c internal.Context) error {
			pages = append(pages, internal.QueryInt(c, "page", 1))
			return c.NoContent(http.StatusNoContent)
		})
	})))

	b := newBrowser(t, app)
	b.get("/sold")
	b.get("/sold?page=3")
	b.get("/sold?page=abc")

	assert.Equal(t, []int{1, 3, 1}, pages)
}
