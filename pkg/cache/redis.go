package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOption configures the Redis cache.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix     string
	defaultTTL time.Duration
}

// WithRedisDefaultTTL sets the expiration used when Set gets a zero TTL.
// Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) { o.defaultTTL = d }
}

// WithPrefix namespaces keys as "{prefix}:{key}".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) { o.prefix = prefix }
}

// Redis is a cache backed by Redis. Values are encoded with a Marshaler
// (JSON unless one is given).
type Redis[V any] struct {
	client    redis.UniversalClient
	marshaler Marshaler[V]
	opts      redisOptions
}

// NewRedis creates a Redis-backed cache. The client usually comes from
// pkg/redis.Open; its lifecycle stays with the caller.
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...RedisOption) *Redis[V] {
	o := redisOptions{defaultTTL: time.Hour}
	for _, opt := range opts {
		opt(&o)
	}
	if m == nil {
		m = jsonMarshaler[V]{}
	}
	return &Redis[V]{client: client, marshaler: m, opts: o}
}

// Get retrieves a value by key.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return r.marshaler.Unmarshal(data)
}

// Set stores a value with the given TTL.
func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = r.opts.defaultTTL
	}
	// Redis treats 0 as "no expiration".
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

// Delete removes a key.
func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close is a no-op; the client is closed by pkg/redis.Shutdown.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) key(key string) string {
	if r.opts.prefix == "" {
		return key
	}
	return r.opts.prefix + ":" + key
}

var _ Cache[any] = (*Redis[any])(nil)
