package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/cache"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("stores and overwrites", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "cart_count", "1", time.Minute))
		require.NoError(t, c.Set(ctx, "cart_count", "2", time.Minute))

		got, err := c.Get(ctx, "cart_count")
		require.NoError(t, err)
		assert.Equal(t, "2", got)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("expires entries", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithDefaultTTL(time.Millisecond), cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", -1))
		time.Sleep(5 * time.Millisecond)

		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("janitor collects expired entries", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(5 * time.Millisecond))
		defer c.Close()

		require.NoError(t, c.Set(context.Background(), "k", "v", time.Millisecond))
		assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(2))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", 1, 0))
		require.NoError(t, c.Set(ctx, "b", 2, 0))
		_, err := c.Get(ctx, "a")
		require.NoError(t, err)
		require.NoError(t, c.Set(ctx, "c", 3, 0))

		_, err = c.Get(ctx, "b")
		require.ErrorIs(t, err, cache.ErrNotFound)
		_, err = c.Get(ctx, "a")
		require.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", 0))
		require.NoError(t, c.Delete(ctx, "k"))
		require.NoError(t, c.Delete(ctx, "k"))

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("closed cache rejects writes", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		require.ErrorIs(t, c.Set(context.Background(), "k", "v", 0), cache.ErrClosed)
	})
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("computes once and caches", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		var calls atomic.Int32
		fn := func(context.Context) (string, time.Duration, error) {
			calls.Add(1)
			time.Sleep(10 * time.Millisecond)
			return "<p>rendered</p>", time.Minute, nil
		}

		var wg sync.WaitGroup
		for range 10 {
			wg.Go(func() {
				v, err := cache.GetOrSet(context.Background(), c, "getorset-once", fn)
				assert.NoError(t, err)
				assert.Equal(t, "<p>rendered</p>", v)
			})
		}
		wg.Wait()

		v, err := cache.GetOrSet(context.Background(), c, "getorset-once", fn)
		require.NoError(t, err)
		assert.Equal(t, "<p>rendered</p>", v)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		boom := errors.New("boom")
		_, err := cache.GetOrSet(context.Background(), c, "getorset-error", func(context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)

		_, err = c.Get(context.Background(), "getorset-error")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})
}
