package middlewares_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/middlewares"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func serve(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func newBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := i18n.New(
		i18n.WithMessages(i18n.English, map[string]any{"hello": "Hello"}),
		i18n.WithMessages(i18n.Spanish, map[string]any{"hello": "Hola"}),
	)
	require.NoError(t, err)
	return b
}

func TestI18n(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithMiddleware(middlewares.I18n(newBundle(t))),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				return c.String(http.StatusOK, middlewares.GetLanguage(c)+":"+c.T("hello"))
			})
		})),
	)

	tests := []struct {
		name   string
		cookie string
		accept string
		want   string
	}{
		{"default", "", "", "en:Hello"},
		{"accept-language", "", "es-MX,es;q=0.9,en;q=0.5", "es:Hola"},
		{"unsupported accept-language", "", "de-DE", "en:Hello"},
		{"cookie wins", "en", "es", "en:Hello"},
		{"cookie spanish", "es", "", "es:Hola"},
		{"bogus cookie", "fr", "es", "en:Hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middlewares.LanguageCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			assert.Equal(t, tt.want, serve(app, req).Body.String())
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, _ := logger.NewWithWriter(&buf, logger.Config{Level: "info", Format: "json"},
		middlewares.RequestIDExtractor(), middlewares.LanguageExtractor())

	app := internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(middlewares.RequestID(), middlewares.I18n(newBundle(t))),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				c.LogInfo("hit")
				return c.String(http.StatusOK, middlewares.GetRequestID(c))
			})
		})),
	)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Body.String()
	assert.Len(t, generated, 26)
	assert.Equal(t, generated, rec.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"request_id":"`+generated+`"`)
	assert.Contains(t, buf.String(), `"lang":"en"`)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "upstream-123")
	assert.Equal(t, "upstream-123", serve(app, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "bad id\n"+strings.Repeat("x", 200))
	assert.Len(t, serve(app, req).Body.String(), 26)
}

func TestRecover(t *testing.T) {
	t.Parallel()

	errSentinel := errors.New("sentinel")
	var handled error
	app := internal.New(
		internal.WithLogger(slog.New(slog.DiscardHandler)),
		internal.WithMiddleware(middlewares.Recover()),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			handled = err
			return c.String(http.StatusInternalServerError, "sorry")
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/panic", func(c internal.Context) error { panic("kaboom") })
			r.GET("/panic-err", func(c internal.Context) error { panic(errSentinel) })
			r.GET("/ok", func(c internal.Context) error { return c.String(http.StatusOK, "fine") })
		})),
	)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "sorry", rec.Body.String())
	pe, ok := middlewares.AsPanicError(handled)
	require.True(t, ok)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.Equal(t, "panic: kaboom", pe.Error())

	serve(app, httptest.NewRequest(http.MethodGet, "/panic-err", nil))
	assert.True(t, middlewares.IsPanicError(handled))
	assert.ErrorIs(t, handled, errSentinel)

	rec = serve(app, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, "fine", rec.Body.String())
}

func TestRecover_NoStack(t *testing.T) {
	t.Parallel()

	mw := middlewares.Recover(middlewares.WithRecoverStackSize(0))
	app := internal.New(
		internal.WithMiddleware(mw),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			pe, ok := middlewares.AsPanicError(err)
			require.True(t, ok)
			assert.Nil(t, pe.Stack)
			return c.NoContent(http.StatusInternalServerError)
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error { panic(context.Canceled) })
		})),
	)
	assert.Equal(t, http.StatusInternalServerError, serve(app, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}
