// Package webstorage models origin-scoped key/value storage for anonymous
// visitors: string keys, string values, a size quota.
//
// Backends keep the records in the visitor's cookies (Cookies), in a shared
// TTL cache keyed by visitor id (Cache), or in process memory (Memory).
package webstorage

import (
	"context"
	"errors"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound      = errors.New("webstorage: item not found")
	ErrQuotaExceeded = errors.New("webstorage: quota exceeded")
)

// Storage is the key/value surface shared by all backends.
type Storage interface {
	// GetItem returns ErrNotFound when the key is absent.
	GetItem(ctx context.Context, key string) (string, error)
	// SetItem returns ErrQuotaExceeded when the value does not fit.
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
