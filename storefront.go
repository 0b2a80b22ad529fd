package storefront

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/health"
	"github.com/dmitrymomot/storefront/pkg/webstorage"
)

// Type aliases - public API
type (
	// App owns routing, middleware, visitor state and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and the visitor's state.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// ValidationErrors is a collection of validation errors.
	ValidationErrors = internal.ValidationErrors

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option

	// VisitorStorage opens the visitor's storage for one request.
	VisitorStorage = internal.VisitorStorage

	// HTTPError is an error with a status code and a user-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ResponseWriter wraps http.ResponseWriter with write hooks and htmx support.
	ResponseWriter = internal.ResponseWriter
)

// New creates an application with the given options.
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware, applied in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles mounts fsys/subDir at pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets the handler for errors returned from handlers.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithCookieOptions configures the cookie manager.
func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

// WithVisitorStorage selects where per-visitor records live.
func WithVisitorStorage(vs VisitorStorage) Option {
	return internal.WithVisitorStorage(vs)
}

// WithCartListener subscribes fn to every request's cart.
func WithCartListener(fn func(Context, cart.Event)) Option {
	return internal.WithCartListener(fn)
}

// Visitor storage backends

// CookieVisitorStorage keeps every record in a cookie on the visitor's browser.
func CookieVisitorStorage(opts ...webstorage.CookieOption) VisitorStorage {
	return internal.CookieVisitorStorage(opts...)
}

// CachedVisitorStorage keeps records in c under a signed visitor id cookie.
func CachedVisitorStorage(c cache.Cache[string], ttl time.Duration, quota int) VisitorStorage {
	return internal.CachedVisitorStorage(c, ttl, quota)
}

// Health check options

// WithLivenessPath overrides "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath overrides "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds the graceful shutdown. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function run after the HTTP server stops.
//
// Example:
//
//	storefront.ShutdownHook(gateway.Shutdown)
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it shuts the server down.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// OnListen is called with the bound address once the listener is open.
func OnListen(fn func(addr string)) RunOption {
	return internal.OnListen(fn)
}

// Context helpers

// ContextValue returns the request context value for key as T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// QueryInt returns the query parameter as an int, or defaultValue.
func QueryInt(c Context, name string, defaultValue int) int {
	return internal.QueryInt(c, name, defaultValue)
}

// Cookie options

// WithCookieSecret sets the HMAC secret for signed cookies (32+ bytes).
func WithCookieSecret(secret string) CookieOption {
	return cookie.WithSecret(secret)
}

// WithCookieDomain sets the cookie domain.
func WithCookieDomain(domain string) CookieOption {
	return cookie.WithDomain(domain)
}

// WithCookieSecure sets the Secure flag.
func WithCookieSecure(secure bool) CookieOption {
	return cookie.WithSecure(secure)
}

// WithCookieSameSite sets the SameSite attribute.
func WithCookieSameSite(ss http.SameSite) CookieOption {
	return cookie.WithSameSite(ss)
}

// HTTP errors

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

func ErrBadGateway(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadGateway(message, opts...)
}

// WithError attaches the underlying error.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithMessageKey sets the translation key of the user-facing message.
func WithMessageKey(key string) HTTPErrorOption {
	return internal.WithMessageKey(key)
}

// WithRequestID records the request ID on the error.
func WithRequestID(id string) HTTPErrorOption {
	return internal.WithRequestID(id)
}

// AsHTTPError extracts the HTTPError from err's chain, or returns nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Cookie errors.
var (
	ErrCookieNotFound = cookie.ErrNotFound
	ErrCookieNoSecret = cookie.ErrNoSecret
	ErrCookieBadSig   = cookie.ErrBadSig
)
