// Package id provides identifier generation for line items, requests and visitors.
package id

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewULID returns a 26-character ULID for the current time.
// ULIDs sort lexicographically by creation time.
func NewULID() string {
	return ulid.Make().String()
}

// NewULIDAt returns a ULID whose timestamp component is t.
func NewULIDAt(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

// CreatedAt extracts the creation time encoded in a ULID.
func CreatedAt(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("id: parse ulid %q: %w", s, err)
	}
	return ulid.Time(u.Time()), nil
}

// NewVisitorID returns a random identifier for an anonymous visitor.
func NewVisitorID() string {
	return uuid.NewString()
}

// IsVisitorID reports whether s looks like an id produced by NewVisitorID.
func IsVisitorID(s string) bool {
	u, err := uuid.Parse(s)
	return err == nil && u.Version() == 4
}
