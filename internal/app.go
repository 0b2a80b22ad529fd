package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/health"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App owns routing, middleware, visitor state and graceful shutdown.
// It is immutable after New.
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	cookieManager           *cookie.Manager
	visitorStorage          VisitorStorage
	cartListener            func(Context, cart.Event)
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
}

// staticRoute is a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates an application with the given options.
//
// Example:
//
//	app := storefront.New(
//	    storefront.WithMiddleware(middlewares.RequestID(), middlewares.I18n(bundle)),
//	    storefront.WithHandlers(
//	        handlers.NewShop(catalog),
//	        handlers.NewCart(catalog, gateway),
//	    ),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:         chi.NewRouter(),
		logger:         logger.NewNope(),
		cookieManager:  cookie.New(),
		visitorStorage: CookieVisitorStorage(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run starts the HTTP server on addr and blocks until SIGINT/SIGTERM, then
// shuts down gracefully and runs the shutdown hooks.
//
// Example:
//
//	err := app.Run(cfg.Addr,
//	    storefront.Logger(log),
//	    storefront.ShutdownHook(gateway.Shutdown),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}
	if addr == "" {
		addr = cfg.address
	}

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
		onListen:        cfg.onListen,
	})
}

func (a *App) setupRoutes() {
	a.router.Use(a.prepare)

	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		opts := []health.Option{health.WithLogger(a.logger)}
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, opts...))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

func (a *App) handleError(c Context, err error) {
	if c.Written() {
		a.logger.ErrorContext(c, "error after response was written", slog.String("error", err.Error()))
		return
	}
	if a.errorHandler != nil {
		herr := a.errorHandler(c, err)
		if herr == nil {
			return
		}
		a.logger.ErrorContext(c, "error handler failed", slog.String("error", herr.Error()))
		if c.Written() {
			return
		}
	}
	a.logger.ErrorContext(c, "unhandled error", slog.String("error", err.Error()))
	http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath overrides "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath overrides "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check. Checks run in parallel.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
