package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/cookie"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware, applied in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStaticFiles mounts fsys/subDir at pattern. Directory listings are disabled.
//
// Example:
//
//	//go:embed static
//	var assets embed.FS
//
//	storefront.New(
//	    storefront.WithStaticFiles("/static/", assets, "static"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		files := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			files.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithErrorHandler sets the handler for errors returned from handlers.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables the liveness and readiness endpoints.
//
// Example:
//
//	storefront.WithHealthChecks(
//	    storefront.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions configures the cookie manager shared by visitor storage,
// flashes and the language cookie.
//
// Example:
//
//	storefront.New(
//	    storefront.WithCookieOptions(
//	        cookie.WithSecret(cfg.CookieSecret),
//	        cookie.WithSecure(true),
//	    ),
//	)
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) {
		a.cookieManager = cookie.New(opts...)
	}
}

// WithVisitorStorage selects where per-visitor records live.
// Defaults to CookieVisitorStorage().
func WithVisitorStorage(vs VisitorStorage) Option {
	return func(a *App) {
		if vs != nil {
			a.visitorStorage = vs
		}
	}
}

// WithCartListener subscribes fn to the cart of every request. It is called
// once per cart operation with the Context that first opened the cart.
//
// Example:
//
//	storefront.WithCartListener(func(c storefront.Context, ev cart.Event) {
//	    if ev.Kind == cart.EventAdded {
//	        c.Notify(notify.Success, c.T("cart.added"))
//	    }
//	})
func WithCartListener(fn func(Context, cart.Event)) Option {
	return func(a *App) {
		a.cartListener = fn
	}
}
