package cart

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/id"
)

// Outcome tells the caller what Add did.
type Outcome int

const (
	// Added means a new line item was appended.
	Added Outcome = iota + 1
	// AlreadyInRequests means an item with the same name was already present
	// and the cart is unchanged.
	AlreadyInRequests
)

// AddResult describes a completed Add call.
type AddResult struct {
	Item    LineItem
	Outcome Outcome
}

// EventKind names a cart change.
type EventKind string

const (
	EventAdded     EventKind = "added"
	EventDuplicate EventKind = "duplicate"
	EventRemoved   EventKind = "removed"
	EventCleared   EventKind = "cleared"
)

// Event is delivered to subscribers once per Store operation.
type Event struct {
	Kind  EventKind
	Item  LineItem
	State State
}

// Store is the in-memory cart for one visitor.
type Store struct {
	storage   Storage
	logger    *slog.Logger
	newID     func() string
	items     []LineItem
	listeners []func(Event)
	degraded  bool
	mu        sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the ULID generator used for new line items.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger sets the logger used for storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a Store hydrated from storage.
func NewStore(ctx context.Context, storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		logger:  slog.Default(),
		newID:   id.NewULID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.items = storage.Load(ctx).Items
	return s
}

// Add appends a line item for name unless one already exists.
func (s *Store) Add(ctx context.Context, name, price string) (AddResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AddResult{}, ErrInvalidItem
	}

	s.mu.Lock()
	var res AddResult
	if i := s.indexOf(name); i >= 0 {
		res = AddResult{Item: s.items[i], Outcome: AlreadyInRequests}
	} else {
		item := LineItem{ID: s.newID(), Name: name, Price: strings.TrimSpace(price), Quantity: 1}
		s.items = append(s.items, item)
		res = AddResult{Item: item, Outcome: Added}
	}
	state := s.persistLocked(ctx)
	listeners := s.listeners
	s.mu.Unlock()

	kind := EventAdded
	if res.Outcome == AlreadyInRequests {
		kind = EventDuplicate
	}
	notify(listeners, Event{Kind: kind, Item: res.Item, State: state})

	return res, nil
}

// Remove deletes the line item with the given id. It reports false when no
// such item exists, in which case nothing is persisted or announced.
func (s *Store) Remove(ctx context.Context, itemID string) (LineItem, bool) {
	s.mu.Lock()
	i := slices.IndexFunc(s.items, func(it LineItem) bool { return it.ID == itemID })
	if i < 0 {
		s.mu.Unlock()
		return LineItem{}, false
	}
	removed := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	state := s.persistLocked(ctx)
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, Event{Kind: EventRemoved, Item: removed, State: state})
	return removed, true
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	state := s.persistLocked(ctx)
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, Event{Kind: EventCleared, State: state})
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Count returns the total quantity across line items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countOf(s.items)
}

// State returns a snapshot of the cart.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Degraded reports whether the last storage write failed. The cart keeps
// working in memory when it does.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Subscribe registers fn to receive one Event per Store operation.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(slices.Clip(s.listeners), fn)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.listeners) {
			s.listeners = slices.Clone(s.listeners)
			s.listeners[idx] = nil
		}
	}
}

func (s *Store) indexOf(name string) int {
	return slices.IndexFunc(s.items, func(it LineItem) bool { return it.Name == name })
}

func (s *Store) snapshotLocked() State {
	items := slices.Clone(s.items)
	return State{Items: items, Count: countOf(items)}
}

func (s *Store) persistLocked(ctx context.Context) State {
	state := s.snapshotLocked()
	if err := s.storage.Save(ctx, state); err != nil {
		s.degraded = true
		s.logger.WarnContext(ctx, "cart kept in memory only", slog.String("error", err.Error()))
	} else {
		s.degraded = false
	}
	return state
}

func notify(listeners []func(Event), ev Event) {
	for _, fn := range listeners {
		if fn != nil {
			fn(ev)
		}
	}
}
