package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/notify"
	"github.com/dmitrymomot/storefront/pkg/recent"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/pkg/webstorage"
)

// ValidationErrors is a collection of validation errors.
type ValidationErrors = validator.ValidationErrors

// TranslatorKey is the context key used to store the i18n Translator.
type TranslatorKey struct{}

// LanguageKey is the context key used to store the resolved language string.
type LanguageKey struct{}

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access and the visitor's state.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the response writer.
	Response() http.ResponseWriter

	// Param returns the URL parameter by name.
	Param(name string) string

	// Query returns the query parameter by name.
	Query(name string) string

	// QueryDefault returns the query parameter or defaultValue when empty.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name.
	Form(name string) string

	// Header returns the request header by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes v as JSON with the given status code.
	JSON(code int, v any) error

	// String writes s as plain text with the given status code.
	String(code int, s string) error

	// NoContent writes only the status code.
	NoContent(code int) error

	// Redirect sends the visitor to url. htmx requests get HX-Redirect.
	Redirect(code int, url string) error

	// Error builds an HTTPError to return from a handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// IsHTMX reports whether the request was issued by htmx.
	IsHTMX() bool

	// IsPartial reports whether the response should be a fragment.
	IsPartial() bool

	// Render renders component with the given status code. Render options
	// apply to htmx requests only.
	Render(code int, component Component, opts ...htmx.RenderOption) error

	// RenderPartial renders partial for htmx requests and fullPage otherwise.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error

	// Bind decodes the form body into v (fields tagged `form:"name"`),
	// sanitizes it and, when v has a Validate() error method, validates it.
	// Validation failures are returned translated, not as the error.
	Bind(v any) (ValidationErrors, error)

	// BindQuery is Bind over the URL query.
	BindQuery(v any) (ValidationErrors, error)

	// Written reports whether the response header has been sent.
	Written() bool

	// Logger returns the app logger.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)

	// Get reads a value from the request context.
	Get(key any) any

	Cookie(name string) (string, error)
	SetCookie(name, value string, maxAge int) error
	DeleteCookie(name string)
	CookieSigned(name string) (string, error)
	SetCookieSigned(name, value string, maxAge int) error

	// Flash reads a one-shot value stored by SetFlash on an earlier response.
	Flash(key string, dest any) error
	SetFlash(key string, value any) error

	// T translates key into the request language.
	T(key string, placeholders ...i18n.M) string

	// Tn translates a plural key for n.
	Tn(key string, n int, placeholders ...i18n.M) string

	// Language returns the resolved request language.
	Language() string

	// Translator returns the request translator, or nil without the I18n middleware.
	Translator() *i18n.Translator

	// Visitor returns the visitor's storage.
	Visitor() webstorage.Storage

	// Cart returns the visitor's purchase request cart, hydrated on first use.
	Cart() *cart.Store

	// Recent returns the visitor's recently viewed list, hydrated on first use.
	Recent() *recent.List

	// Notify queues a notification for the visitor.
	Notify(t notify.Type, message string)

	// Notifications returns pending notifications for rendering in a full
	// page and clears them.
	Notifications() []notify.Notification
}

// requestContext implements Context.
type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	app      *App
	visit    *visit
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	v := visitFrom(r.Context())
	if v == nil {
		// Served outside App.prepare, e.g. a bare handler in a test.
		v = newVisit(w, r, app)
		r = r.WithContext(context.WithValue(r.Context(), visitKey{}, v))
	}
	return &requestContext{request: r, response: v.response, app: app, visit: v}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	htmx.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) IsHTMX() bool {
	return htmx.IsHTMX(c.request)
}

func (c *requestContext) IsPartial() bool {
	return htmx.IsPartial(c.request)
}

func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")

	var cfg *htmx.Config
	if len(opts) > 0 && c.IsHTMX() {
		cfg = htmx.NewConfig(opts...)
		cfg.ApplyHeaders(c.response)
	}

	c.response.WriteHeader(code)

	if err := component.Render(c.request.Context(), c.response); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if cfg == nil {
		return nil
	}
	for _, oob := range cfg.OOB {
		if err := oob.Render(c.request.Context(), c.response); err != nil {
			return fmt.Errorf("render oob: %w", err)
		}
	}
	return nil
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error {
	if c.IsPartial() {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) Bind(v any) (ValidationErrors, error) {
	if err := c.request.ParseForm(); err != nil {
		return nil, ErrBadRequest("bind form", WithMessageKey("errors.bad_request"), WithError(err))
	}
	return c.bindAndValidate(c.request.PostForm, v, "bind form")
}

func (c *requestContext) BindQuery(v any) (ValidationErrors, error) {
	return c.bindAndValidate(c.request.URL.Query(), v, "bind query")
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.app.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.app.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.app.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.app.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.app.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Cookie(name string) (string, error) {
	return c.app.cookieManager.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) error {
	return c.app.cookieManager.Set(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.app.cookieManager.Delete(c.response, name)
}

func (c *requestContext) CookieSigned(name string) (string, error) {
	return c.app.cookieManager.GetSigned(c.request, name)
}

func (c *requestContext) SetCookieSigned(name, value string, maxAge int) error {
	return c.app.cookieManager.SetSigned(c.response, name, value, maxAge)
}

func (c *requestContext) Flash(key string, dest any) error {
	return c.app.cookieManager.Flash(c.response, c.request, key, dest)
}

func (c *requestContext) SetFlash(key string, value any) error {
	return c.app.cookieManager.SetFlash(c.response, key, value)
}

func (c *requestContext) Translator() *i18n.Translator {
	tr, _ := c.Get(TranslatorKey{}).(*i18n.Translator)
	return tr
}

func (c *requestContext) T(key string, placeholders ...i18n.M) string {
	if tr := c.Translator(); tr != nil {
		return tr.T(key, placeholders...)
	}
	return key
}

func (c *requestContext) Tn(key string, n int, placeholders ...i18n.M) string {
	if tr := c.Translator(); tr != nil {
		return tr.Tn(key, n, placeholders...)
	}
	return key
}

func (c *requestContext) Language() string {
	if lang, ok := c.Get(LanguageKey{}).(string); ok {
		return lang
	}
	if tr := c.Translator(); tr != nil {
		return tr.Language()
	}
	return ""
}

func (c *requestContext) Visitor() webstorage.Storage {
	return c.visit.open(c)
}

func (c *requestContext) Cart() *cart.Store {
	return c.visit.cartStore(c)
}

func (c *requestContext) Recent() *recent.List {
	return c.visit.recentList(c)
}

func (c *requestContext) Notify(t notify.Type, message string) {
	c.visit.notify(notify.New(t, message))
}

func (c *requestContext) Notifications() []notify.Notification {
	return c.visit.take()
}
