package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/id"
	"github.com/dmitrymomot/storefront/pkg/notify"
	"github.com/dmitrymomot/storefront/pkg/recent"
	"github.com/dmitrymomot/storefront/pkg/webstorage"
)

// VisitorCookie holds the signed visitor id used by cache-backed visitor storage.
const VisitorCookie = "vid"

// VisitorStorage opens the visitor's storage for one request.
type VisitorStorage func(w http.ResponseWriter, r *http.Request, cookies *cookie.Manager) (webstorage.Storage, error)

// CookieVisitorStorage keeps every record in a cookie on the visitor's browser.
func CookieVisitorStorage(opts ...webstorage.CookieOption) VisitorStorage {
	return func(w http.ResponseWriter, r *http.Request, cookies *cookie.Manager) (webstorage.Storage, error) {
		return webstorage.NewCookies(cookies, w, r, opts...), nil
	}
}

// CachedVisitorStorage keeps records in c, namespaced by a visitor id carried
// in a signed cookie. A missing or tampered cookie starts a new visitor.
// Requires a cookie secret.
func CachedVisitorStorage(c cache.Cache[string], ttl time.Duration, quota int) VisitorStorage {
	return func(w http.ResponseWriter, r *http.Request, cookies *cookie.Manager) (webstorage.Storage, error) {
		vid, err := cookies.GetSigned(r, VisitorCookie)
		if err != nil || !id.IsVisitorID(vid) {
			vid = id.NewVisitorID()
		}
		// Refresh on every request so the cookie outlives the cache entry.
		if err := cookies.SetSigned(w, VisitorCookie, vid, int(ttl.Seconds())); err != nil {
			return nil, err
		}
		return webstorage.NewCache(c, vid, ttl, quota), nil
	}
}

type visitKey struct{}

// visit is the per-request visitor state shared by every Context created
// while serving the request.
type visit struct {
	response *ResponseWriter
	request  *http.Request
	app      *App
	storage  webstorage.Storage
	cart     *cart.Store
	recent   *recent.List
	notes    notify.Queue
	mu       sync.Mutex
	opened   bool
}

func visitFrom(ctx context.Context) *visit {
	v, _ := ctx.Value(visitKey{}).(*visit)
	return v
}

// prepare runs ahead of every other middleware. It wraps the response writer
// once and attaches the visit that later contexts share.
func (a *App) prepare(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := newVisit(w, r, a)
		next.ServeHTTP(v.response, r.WithContext(context.WithValue(r.Context(), visitKey{}, v)))
	})
}

func newVisit(w http.ResponseWriter, r *http.Request, a *App) *visit {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w, htmx.IsHTMX(r))
	}
	v := &visit{response: rw, request: r, app: a}
	rw.OnBeforeWrite(v.flush)
	return v
}

func (v *visit) open(ctx context.Context) webstorage.Storage {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.opened {
		return v.storage
	}
	v.opened = true

	s, err := v.app.visitorStorage(v.response, v.request, v.app.cookieManager)
	if err != nil {
		v.app.logger.WarnContext(ctx, "visitor storage unavailable, using request memory",
			slog.String("error", err.Error()))
		s = webstorage.NewMemory(0)
	}
	v.storage = s
	return s
}

func (v *visit) cartStore(c Context) *cart.Store {
	s := v.open(c)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cart == nil {
		v.cart = cart.NewStore(c, cart.NewKVStorage(s, cart.WithStorageLogger(v.app.logger)),
			cart.WithLogger(v.app.logger))
		if fn := v.app.cartListener; fn != nil {
			v.cart.Subscribe(func(ev cart.Event) { fn(c, ev) })
		}
	}
	return v.cart
}

func (v *visit) recentList(ctx context.Context) *recent.List {
	s := v.open(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.recent == nil {
		v.recent = recent.Load(ctx, s, recent.WithLogger(v.app.logger))
	}
	return v.recent
}

func (v *visit) notify(n notify.Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notes.Push(n)
}

// take returns notifications carried over from the previous response plus
// the ones queued so far, emptying the queue. The caller renders them in-page.
func (v *visit) take() []notify.Notification {
	var carried []notify.Notification
	if err := v.app.cookieManager.Flash(v.response, v.request, notify.Event, &carried); err != nil &&
		!errors.Is(err, cookie.ErrNotFound) {
		v.app.logger.DebugContext(v.request.Context(), "dropping notification flash", slog.String("error", err.Error()))
	}
	for i := range carried {
		carried[i].Timeout = notify.DefaultTimeout
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	out := append(carried, v.notes.Items()...)
	v.notes = notify.Queue{}
	return out
}

// flush delivers notifications nobody rendered: as an htmx event on partial
// responses, otherwise as a flash for the next page. htmx responses that
// navigate away count as the latter.
func (v *visit) flush() {
	v.mu.Lock()
	items := v.notes.Items()
	v.mu.Unlock()

	if len(items) == 0 {
		return
	}
	ctx := v.request.Context()
	if htmx.IsHTMX(v.request) && !navigates(v.response.Header()) {
		if err := htmx.AddTrigger(v.response.Header(), notify.Event, items); err != nil {
			v.app.logger.ErrorContext(ctx, "encode notifications", slog.String("error", err.Error()))
		}
		return
	}
	if err := v.app.cookieManager.SetFlash(v.response, notify.Event, items); err != nil {
		v.app.logger.WarnContext(ctx, "store notifications", slog.String("error", err.Error()))
	}
}

func navigates(h http.Header) bool {
	return h.Get(htmx.HeaderHXRedirect) != "" || h.Get(htmx.HeaderHXRefresh) == "true"
}
