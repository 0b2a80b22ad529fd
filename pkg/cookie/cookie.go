// Package cookie reads and writes the storefront's visitor cookies.
//
// Values written through a Manager replace any Set-Cookie header for the same
// name already queued on the response, so state that is saved several times
// while handling one request produces a single cookie.
package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// MaxValueSize is the largest encoded value browsers reliably keep per cookie.
const MaxValueSize = 4096

// Errors.
var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSig    = errors.New("cookie: invalid signature")
	ErrMalformed = errors.New("cookie: malformed value")
	ErrTooLarge  = errors.New("cookie: value too large")
)

// Manager handles cookie operations.
type Manager struct {
	secret   []byte // nil = signing disabled
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager with the given options.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithSecret sets the HMAC key for signed cookies.
// Secrets shorter than 32 bytes are ignored.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if len(secret) >= 32 {
			m.secret = []byte(secret)
		}
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) {
		m.httpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// HasSecret reports whether signed cookies are available.
func (m *Manager) HasSecret() bool {
	return m.secret != nil
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) error {
	if len(value) > MaxValueSize {
		return ErrTooLarge
	}
	replace(w, m.cookie(name, value, maxAge))
	return nil
}

// Delete expires a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	replace(w, m.cookie(name, "", -1))
}

// GetEncoded returns a value written by SetEncoded.
func (m *Manager) GetEncoded(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	value, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrMalformed
	}
	return string(value), nil
}

// SetEncoded writes an arbitrary string, base64url-encoded so JSON survives
// cookie value restrictions.
func (m *Manager) SetEncoded(w http.ResponseWriter, name, value string, maxAge int) error {
	return m.Set(w, name, base64.RawURLEncoding.EncodeToString([]byte(value)), maxAge)
}

// GetSigned returns a signed cookie value.
// Returns ErrNoSecret if no secret is configured and ErrBadSig if
// verification fails.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	// base64(value).base64(signature)
	encValue, encSig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrBadSig
	}
	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrBadSig
	}
	if !hmac.Equal(sig, m.sign(value)) {
		return "", ErrBadSig
	}

	return string(value), nil
}

// SetSigned writes a signed cookie.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}
	encoded := base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(m.sign([]byte(value)))
	return m.Set(w, name, encoded, maxAge)
}

// Flash reads a one-shot value into dest and expires it.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := "flash_" + key
	raw, err := m.GetSigned(r, name)
	if err != nil {
		return err
	}
	m.Delete(w, name)

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return errors.Join(ErrMalformed, err)
	}
	return nil
}

// SetFlash stores a one-shot value read back by Flash on the next request.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.SetSigned(w, "flash_"+key, string(data), 0)
}

func (m *Manager) sign(value []byte) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write(value)
	return mac.Sum(nil)
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}

// replace drops previously queued Set-Cookie headers for c.Name before adding c.
func replace(w http.ResponseWriter, c *http.Cookie) {
	h := w.Header()
	prefix := c.Name + "="
	var kept []string
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
	if v := c.String(); v != "" {
		h.Add("Set-Cookie", v)
	}
}
