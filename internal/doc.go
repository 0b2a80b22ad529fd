// Package internal provides the core types behind the storefront HTTP layer.
//
// Import "github.com/dmitrymomot/storefront" instead, which re-exports the
// public API.
//
// # Core Types
//
//   - App: owns the router, middleware, visitor storage and graceful shutdown
//   - Context: request/response access plus the visitor's cart, recently
//     viewed list, translations and notifications
//   - Router: the interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a Router
//   - HandlerFunc: the signature of a route handler
//   - Middleware: wraps a HandlerFunc
//   - ErrorHandler: renders errors returned from handlers
//
// # Visitor state
//
// Every request carries a visit: the visitor storage backend chosen with
// WithVisitorStorage, and the cart and recently viewed list hydrated from it on
// first use. Notifications raised with Context.Notify are delivered when the
// response is written: as an HX-Trigger "notify" event for htmx requests, or
// as a flash cookie picked up by the next full page otherwise.
//
// Context embeds context.Context and can be passed to any function that takes
// one:
//
//	func (h *Cart) add(c storefront.Context) error {
//	    res, err := c.Cart().Add(c, p.Name, p.Price)
//	    ...
//	}
package internal
