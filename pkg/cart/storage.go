package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/webstorage"
)

// Default record keys.
const (
	DefaultItemsKey = "cart"
	DefaultCountKey = "cart_count"
)

// Storage persists cart state.
type Storage interface {
	// Load never fails: absent or malformed records yield an empty State.
	Load(ctx context.Context) State
	Save(ctx context.Context, state State) error
}

// KVStorage keeps the cart as two records in visitor storage: the JSON item
// list and the item count as a decimal string.
type KVStorage struct {
	kv       webstorage.Storage
	logger   *slog.Logger
	itemsKey string
	countKey string
}

// StorageOption configures a KVStorage.
type StorageOption func(*KVStorage)

// WithItemsKey overrides DefaultItemsKey.
func WithItemsKey(key string) StorageOption {
	return func(s *KVStorage) { s.itemsKey = key }
}

// WithCountKey overrides DefaultCountKey.
func WithCountKey(key string) StorageOption {
	return func(s *KVStorage) { s.countKey = key }
}

// WithStorageLogger sets the logger that reports discarded records.
func WithStorageLogger(l *slog.Logger) StorageOption {
	return func(s *KVStorage) { s.logger = l }
}

// NewKVStorage wraps a visitor storage backend.
func NewKVStorage(kv webstorage.Storage, opts ...StorageOption) *KVStorage {
	s := &KVStorage{
		kv:       kv,
		logger:   slog.Default(),
		itemsKey: DefaultItemsKey,
		countKey: DefaultCountKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads both records. Anything missing or unreadable resets the cart.
func (s *KVStorage) Load(ctx context.Context) State {
	rawItems, err := s.kv.GetItem(ctx, s.itemsKey)
	if err != nil {
		s.discard(ctx, s.itemsKey, err)
		return State{}
	}
	rawCount, err := s.kv.GetItem(ctx, s.countKey)
	if err != nil {
		s.discard(ctx, s.countKey, err)
		return State{}
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(rawItems), &items); err != nil {
		s.discard(ctx, s.itemsKey, err)
		return State{}
	}
	count, err := strconv.Atoi(strings.TrimSpace(rawCount))
	if err != nil {
		s.discard(ctx, s.countKey, err)
		return State{}
	}

	items = normalize(items)
	if sum := countOf(items); sum != count {
		s.logger.DebugContext(ctx, "stored cart count out of sync",
			slog.Int("stored", count),
			slog.Int("actual", sum),
		)
	}
	return State{Items: items, Count: countOf(items)}
}

// Save writes the item list and the count.
func (s *KVStorage) Save(ctx context.Context, state State) error {
	items := state.Items
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart: encode items: %w", err)
	}
	if err := s.kv.SetItem(ctx, s.itemsKey, string(data)); err != nil {
		return fmt.Errorf("cart: save %s: %w", s.itemsKey, err)
	}
	if err := s.kv.SetItem(ctx, s.countKey, strconv.Itoa(countOf(items))); err != nil {
		return fmt.Errorf("cart: save %s: %w", s.countKey, err)
	}
	return nil
}

func (s *KVStorage) discard(ctx context.Context, key string, err error) {
	if errors.Is(err, webstorage.ErrNotFound) {
		return
	}
	s.logger.WarnContext(ctx, "discarding stored cart record",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// normalize drops nameless entries, repeats of a name and bad quantities.
func normalize(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			continue
		}
		if _, dup := seen[it.Name]; dup {
			continue
		}
		seen[it.Name] = struct{}{}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		out = append(out, it)
	}
	return out
}
