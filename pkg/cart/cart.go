// Package cart holds a visitor's purchase requests: an ordered list of line
// items keyed by product name, mirrored into visitor storage on every change.
package cart

import "errors"

// Sentinel errors for cart operations.
var (
	ErrInvalidItem = errors.New("cart: item name is required")
)

// LineItem is one distinct product in the cart.
type LineItem struct {
	// ID is a ULID minted when the item was added.
	ID   string `json:"id"`
	Name string `json:"name"`
	// Price is the display price as shown in the catalog; it is never parsed.
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// State is a snapshot of the cart. Count always equals the sum of item quantities.
type State struct {
	Items []LineItem
	Count int
}

// Empty reports whether the cart has no items.
func (s State) Empty() bool {
	return len(s.Items) == 0
}

func countOf(items []LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
