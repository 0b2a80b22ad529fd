package id_test

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/id"
)

func TestNewULID(t *testing.T) {
	t.Parallel()

	t.Run("generates valid length", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, id.NewULID(), 26)
	})

	t.Run("uses only Crockford Base32 alphabet", func(t *testing.T) {
		t.Parallel()

		validChars := regexp.MustCompile(`^[0-9A-HJ-NP-TV-Z]+$`)
		ulid := id.NewULID()
		require.True(t, validChars.MatchString(ulid), "ULID contains invalid characters: %s", ulid)
	})

	t.Run("generates unique IDs concurrently", func(t *testing.T) {
		t.Parallel()

		const workers, perWorker = 8, 200

		var (
			mu   sync.Mutex
			wg   sync.WaitGroup
			seen = make(map[string]struct{}, workers*perWorker)
		)
		for range workers {
			wg.Go(func() {
				for range perWorker {
					v := id.NewULID()
					mu.Lock()
					seen[v] = struct{}{}
					mu.Unlock()
				}
			})
		}
		wg.Wait()

		assert.Len(t, seen, workers*perWorker)
	})
}

func TestCreatedAt(t *testing.T) {
	t.Parallel()

	t.Run("round trips the timestamp", func(t *testing.T) {
		t.Parallel()

		at := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
		got, err := id.CreatedAt(id.NewULIDAt(at))
		require.NoError(t, err)
		assert.True(t, at.Equal(got), "want %s, got %s", at, got)
	})

	t.Run("later ids sort after earlier ones", func(t *testing.T) {
		t.Parallel()

		earlier := id.NewULIDAt(time.Unix(1_700_000_000, 0))
		later := id.NewULIDAt(time.Unix(1_700_000_001, 0))
		assert.Less(t, earlier, later)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		_, err := id.CreatedAt("not-a-ulid")
		require.Error(t, err)
	})
}

func TestVisitorID(t *testing.T) {
	t.Parallel()

	v := id.NewVisitorID()
	assert.True(t, id.IsVisitorID(v))
	assert.NotEqual(t, v, id.NewVisitorID())
	assert.False(t, id.IsVisitorID(""))
	assert.False(t, id.IsVisitorID("../../etc/passwd"))
}
