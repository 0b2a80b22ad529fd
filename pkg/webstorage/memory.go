package webstorage

import (
	"context"
	"sync"
)

// Memory keeps items in a map. The zero quota means unlimited.
type Memory struct {
	items map[string]string
	quota int
	mu    sync.RWMutex
}

// NewMemory returns an empty in-memory storage whose values may not exceed
// quota bytes (0 = unlimited).
func NewMemory(quota int) *Memory {
	return &Memory{items: make(map[string]string), quota: quota}
}

func (m *Memory) GetItem(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) SetItem(_ context.Context, key, value string) error {
	if m.quota > 0 && len(value) > m.quota {
		return ErrQuotaExceeded
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

var _ Storage = (*Memory)(nil)
