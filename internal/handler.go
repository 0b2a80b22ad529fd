package internal

// Handler declares routes on a router.
//
// Example:
//
//	type Cart struct {
//	    catalog *catalog.Catalog
//	}
//
//	func (h *Cart) Routes(r storefront.Router) {
//	    r.GET("/cart", h.show)
//	    r.POST("/cart/items", h.add)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
