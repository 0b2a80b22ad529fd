package cart_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/webstorage"
)

func sequentialIDs() cart.Option {
	n := 0
	return cart.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	})
}

func newStore(t *testing.T) (*cart.Store, *webstorage.Memory) {
	t.Helper()
	kv := webstorage.NewMemory(0)
	return cart.NewStore(context.Background(), cart.NewKVStorage(kv), sequentialIDs()), kv
}

func assertCountInvariant(t *testing.T, s *cart.Store) {
	t.Helper()
	sum := 0
	for _, it := range s.Items() {
		sum += it.Quantity
	}
	assert.Equal(t, sum, s.Count())
}

func TestStore_Add(t *testing.T) {
	t.Parallel()

	t.Run("new product appends one item", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		res, err := s.Add(context.Background(), "Used Wilson A2000 Glove", "$89")
		require.NoError(t, err)

		assert.Equal(t, cart.Added, res.Outcome)
		assert.Equal(t, cart.LineItem{ID: "item-1", Name: "Used Wilson A2000 Glove", Price: "$89", Quantity: 1}, res.Item)
		assert.Equal(t, 1, s.Count())
		assert.Len(t, s.Items(), 1)
		assertCountInvariant(t, s)
	})

	t.Run("same name twice keeps one item", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s, _ := newStore(t)

		var events []cart.Event
		s.Subscribe(func(ev cart.Event) { events = append(events, ev) })

		first, err := s.Add(ctx, "Glove A", "$50")
		require.NoError(t, err)
		second, err := s.Add(ctx, "Glove A", "$50")
		require.NoError(t, err)

		assert.Equal(t, cart.Added, first.Outcome)
		assert.Equal(t, cart.AlreadyInRequests, second.Outcome)
		assert.Equal(t, first.Item, second.Item)

		state := s.State()
		require.Len(t, state.Items, 1)
		assert.Equal(t, "Glove A", state.Items[0].Name)
		assert.Equal(t, "$50", state.Items[0].Price)
		assert.Equal(t, 1, state.Items[0].Quantity)
		assert.Equal(t, 1, state.Count)

		require.Len(t, events, 2, "one notification per call")
		assert.Equal(t, cart.EventAdded, events[0].Kind)
		assert.Equal(t, cart.EventDuplicate, events[1].Kind)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		t.Parallel()

		s, kv := newStore(t)
		_, err := s.Add(context.Background(), "   ", "$1")
		require.ErrorIs(t, err, cart.ErrInvalidItem)
		assert.Zero(t, s.Count())

		_, err = kv.GetItem(context.Background(), cart.DefaultItemsKey)
		require.ErrorIs(t, err, webstorage.ErrNotFound, "nothing persisted")
	})

	t.Run("every add persists", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s, kv := newStore(t)
		_, err := s.Add(ctx, "Used Composite Bat", "$120")
		require.NoError(t, err)
		_, err = s.Add(ctx, "Used Catcher's Helmet", "$45")
		require.NoError(t, err)

		count, err := kv.GetItem(ctx, cart.DefaultCountKey)
		require.NoError(t, err)
		assert.Equal(t, "2", count)

		reloaded := cart.NewStore(ctx, cart.NewKVStorage(kv))
		assert.Equal(t, s.State(), reloaded.State())
	})
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	t.Run("removes exactly the matching item", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s, _ := newStore(t)
		for _, name := range []string{"A", "B", "C"} {
			_, err := s.Add(ctx, name, "$1")
			require.NoError(t, err)
		}

		removed, ok := s.Remove(ctx, "item-2")
		require.True(t, ok)
		assert.Equal(t, "B", removed.Name)
		assert.Equal(t, 2, s.Count())

		names := []string{}
		for _, it := range s.Items() {
			names = append(names, it.Name)
		}
		assert.Equal(t, []string{"A", "C"}, names)
		assertCountInvariant(t, s)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s, _ := newStore(t)
		_, err := s.Add(ctx, "A", "$1")
		require.NoError(t, err)

		var events int
		s.Subscribe(func(cart.Event) { events++ })

		_, ok := s.Remove(ctx, "missing")
		assert.False(t, ok)
		assert.Equal(t, 1, s.Count())
		assert.Zero(t, events)
	})
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, kv := newStore(t)
	_, err := s.Add(ctx, "A", "$1")
	require.NoError(t, err)
	_, err = s.Add(ctx, "B", "$2")
	require.NoError(t, err)

	s.Clear(ctx)

	state := s.State()
	assert.Empty(t, state.Items)
	assert.Zero(t, state.Count)
	assert.True(t, state.Empty())

	items, err := kv.GetItem(ctx, cart.DefaultItemsKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", items)
	count, err := kv.GetItem(ctx, cart.DefaultCountKey)
	require.NoError(t, err)
	assert.Equal(t, "0", count)
}

func TestStore_Subscribe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newStore(t)

	var got []cart.EventKind
	unsubscribe := s.Subscribe(func(ev cart.Event) { got = append(got, ev.Kind) })

	_, err := s.Add(ctx, "A", "$1")
	require.NoError(t, err)
	s.Remove(ctx, "item-1")
	s.Clear(ctx)
	unsubscribe()
	_, err = s.Add(ctx, "B", "$1")
	require.NoError(t, err)

	assert.Equal(t, []cart.EventKind{cart.EventAdded, cart.EventRemoved, cart.EventCleared}, got)
}

type failingStorage struct{ cart.State }

func (f failingStorage) Load(context.Context) cart.State { return f.State }
func (failingStorage) Save(context.Context, cart.State) error {
	return webstorage.ErrQuotaExceeded
}

func TestStore_DegradesToMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := cart.NewStore(ctx, failingStorage{}, sequentialIDs())

	res, err := s.Add(ctx, "Used Red Sox Jersey", "$60")
	require.NoError(t, err)
	assert.Equal(t, cart.Added, res.Outcome)
	assert.True(t, s.Degraded())
	assert.Equal(t, 1, s.Count())
}
