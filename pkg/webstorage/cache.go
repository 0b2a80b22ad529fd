package webstorage

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/storefront/pkg/cache"
)

// Cache stores items in a shared TTL cache under "{namespace}:{key}".
// The namespace is normally the visitor id.
type Cache struct {
	cache     cache.Cache[string]
	namespace string
	ttl       time.Duration
	quota     int
}

// NewCache scopes c to one namespace. Every write refreshes the entry's ttl;
// quota bounds a single value in bytes (0 = unlimited).
func NewCache(c cache.Cache[string], namespace string, ttl time.Duration, quota int) *Cache {
	return &Cache{cache: c, namespace: namespace, ttl: ttl, quota: quota}
}

func (c *Cache) GetItem(ctx context.Context, key string) (string, error) {
	v, err := c.cache.Get(ctx, c.key(key))
	if errors.Is(err, cache.ErrNotFound) {
		return "", ErrNotFound
	}
	return v, err
}

func (c *Cache) SetItem(ctx context.Context, key, value string) error {
	if c.quota > 0 && len(value) > c.quota {
		return ErrQuotaExceeded
	}
	return c.cache.Set(ctx, c.key(key), value, c.ttl)
}

func (c *Cache) RemoveItem(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, c.key(key))
}

func (c *Cache) key(key string) string {
	return c.namespace + ":" + key
}

var _ Storage = (*Cache)(nil)
