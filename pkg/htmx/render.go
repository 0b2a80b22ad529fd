package htmx

import (
	"context"
	"io"
	"net/http"
)

// Renderable is satisfied by templ.Component.
type Renderable interface {
	Render(ctx context.Context, w io.Writer) error
}

// Config holds the htmx extras of a rendered response.
type Config struct {
	OOB      []Renderable
	Retarget string
	Reswap   SwapStrategy
	PushURL  string
	Triggers []string
	Refresh  bool
}

// RenderOption configures a Config.
type RenderOption func(*Config)

// NewConfig builds a Config from options.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders writes the response headers. Call before WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}
	h := w.Header()
	if c.Retarget != "" {
		h.Set(HeaderHXRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderHXReswap, string(c.Reswap))
	}
	if c.PushURL != "" {
		h.Set(HeaderHXPushURL, c.PushURL)
	}
	for _, t := range c.Triggers {
		_ = AddTrigger(h, t, nil)
	}
	if c.Refresh {
		h.Set(HeaderHXRefresh, "true")
	}
}

// WithOOB appends out-of-band fragments rendered after the main component.
// Each must carry an id and hx-swap-oob.
func WithOOB(components ...Renderable) RenderOption {
	return func(c *Config) { c.OOB = append(c.OOB, components...) }
}

// WithRetarget swaps the response into selector instead of the request's target.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) { c.Retarget = selector }
}

// WithReswap overrides the swap strategy.
func WithReswap(s SwapStrategy) RenderOption {
	return func(c *Config) { c.Reswap = s }
}

// WithPushURL pushes url onto the browser history.
func WithPushURL(url string) RenderOption {
	return func(c *Config) { c.PushURL = url }
}

// WithTrigger fires client events once the response arrives.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) { c.Triggers = append(c.Triggers, events...) }
}

// WithRefresh makes the client reload the page.
func WithRefresh() RenderOption {
	return func(c *Config) { c.Refresh = true }
}
