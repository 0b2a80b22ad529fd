package webstorage

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/cookie"
)

// DefaultCookieMaxAge keeps visitor records for a year.
const DefaultCookieMaxAge = 365 * 24 * 60 * 60

// CookieOption configures a Cookies storage.
type CookieOption func(*Cookies)

// WithCookiePrefix prefixes every cookie name.
func WithCookiePrefix(prefix string) CookieOption {
	return func(c *Cookies) { c.prefix = prefix }
}

// WithCookieMaxAge overrides DefaultCookieMaxAge (seconds).
func WithCookieMaxAge(seconds int) CookieOption {
	return func(c *Cookies) { c.maxAge = seconds }
}

// Cookies stores each item in its own cookie on the visitor's browser.
// It is bound to one request/response pair; items written during the request
// are visible to later reads in the same request.
type Cookies struct {
	manager *cookie.Manager
	w       http.ResponseWriter
	r       *http.Request
	pending map[string]*string // nil value = removed
	prefix  string
	maxAge  int
	mu      sync.Mutex
}

// NewCookies binds a cookie-backed storage to the current request.
func NewCookies(m *cookie.Manager, w http.ResponseWriter, r *http.Request, opts ...CookieOption) *Cookies {
	c := &Cookies{
		manager: m,
		w:       w,
		r:       r,
		pending: make(map[string]*string),
		maxAge:  DefaultCookieMaxAge,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cookies) GetItem(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.pending[key]; ok {
		if v == nil {
			return "", ErrNotFound
		}
		return *v, nil
	}

	v, err := c.manager.GetEncoded(c.r, c.prefix+key)
	switch {
	case errors.Is(err, cookie.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", err
	}
	return v, nil
}

func (c *Cookies) SetItem(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.manager.SetEncoded(c.w, c.prefix+key, value, c.maxAge); err != nil {
		if errors.Is(err, cookie.ErrTooLarge) {
			return ErrQuotaExceeded
		}
		return err
	}
	c.pending[key] = &value
	return nil
}

func (c *Cookies) RemoveItem(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.manager.Delete(c.w, c.prefix+key)
	c.pending[key] = nil
	return nil
}

var _ Storage = (*Cookies)(nil)
