// Package recent tracks the products a visitor looked at most recently.
package recent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/storefront/pkg/webstorage"
)

const (
	// DefaultCapacity is the number of entries kept.
	DefaultCapacity = 6
	// DefaultKey is the visitor storage record holding the list.
	DefaultKey = "recentlyViewed"
)

// Entry is one viewed product.
type Entry struct {
	Name          string    `json:"name"`
	Price         string    `json:"price"`
	OriginalPrice string    `json:"originalPrice"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	ViewedAt      time.Time `json:"viewedAt"`
}

// List is a capped, most-recent-first list of entries, unique by name.
type List struct {
	kv       webstorage.Storage
	logger   *slog.Logger
	now      func() time.Time
	key      string
	entries  []Entry
	capacity int
	mu       sync.Mutex
}

// Option configures a List.
type Option func(*List)

// WithCapacity overrides DefaultCapacity.
func WithCapacity(n int) Option {
	return func(l *List) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(l *List) { l.key = key }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *List) { l.now = now }
}

// WithLogger sets the logger for storage failures.
func WithLogger(logger *slog.Logger) Option {
	return func(l *List) { l.logger = logger }
}

// Load reads the list from kv. A missing or malformed record gives an empty list.
func Load(ctx context.Context, kv webstorage.Storage, opts ...Option) *List {
	l := &List{
		kv:       kv,
		logger:   slog.Default(),
		now:      time.Now,
		key:      DefaultKey,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(l)
	}

	raw, err := kv.GetItem(ctx, l.key)
	if err != nil {
		if !errors.Is(err, webstorage.ErrNotFound) {
			l.logger.WarnContext(ctx, "recently viewed unavailable", slog.String("error", err.Error()))
		}
		return l
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		l.logger.WarnContext(ctx, "discarding recently viewed record", slog.String("error", err.Error()))
		return l
	}
	l.entries = l.clean(entries)
	return l
}

// View moves e to the front, stamping it with the current time, and persists
// the list. Storage errors are returned; the in-memory list is updated anyway.
func (l *List) View(ctx context.Context, e Entry) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return nil
	}
	e.ViewedAt = l.now().UTC()

	l.mu.Lock()
	l.entries = slices.DeleteFunc(l.entries, func(x Entry) bool { return x.Name == e.Name })
	l.entries = slices.Insert(l.entries, 0, e)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
	data, err := json.Marshal(l.entries)
	l.mu.Unlock()

	if err != nil {
		return err
	}
	return l.kv.SetItem(ctx, l.key, string(data))
}

// Entries returns a copy of the list, most recent first.
func (l *List) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *List) clean(entries []Entry) []Entry {
	out := make([]Entry, 0, min(len(entries), l.capacity))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if _, dup := seen[e.Name]; dup {
			continue
		}
		seen[e.Name] = struct{}{}
		out = append(out, e)
		if len(out) == l.capacity {
			break
		}
	}
	return out
}
