// Package storefront is the HTTP layer of a small used-baseball-equipment
// shop: a product grid with search, a purchase request cart, recently viewed
// products, paginated sold items and contact/newsletter forms forwarded to an
// email relay, in English and Spanish.
//
// # Quick Start
//
//	app := storefront.New(
//	    storefront.WithLogger(log),
//	    storefront.WithCookieOptions(storefront.WithCookieSecret(cfg.CookieSecret)),
//	    storefront.WithMiddleware(
//	        middlewares.Recover(),
//	        middlewares.RequestID(),
//	        middlewares.I18n(bundle),
//	    ),
//	    storefront.WithHandlers(
//	        handlers.NewShop(catalog),
//	        handlers.NewCart(catalog, gateway),
//	    ),
//	)
//
//	if err := app.Run(cfg.Addr, storefront.ShutdownHook(gateway.Shutdown)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement [Handler] to declare routes and receive a [Context]:
//
//	func (h *Cart) Routes(r storefront.Router) {
//	    r.GET("/cart", h.show)
//	    r.POST("/cart/items", h.add)
//	}
//
//	func (h *Cart) add(c storefront.Context) error {
//	    p, err := h.catalog.Product(c.Form("product"))
//	    if err != nil {
//	        return storefront.ErrNotFound("product not found", storefront.WithError(err))
//	    }
//	    if _, err := c.Cart().Add(c, p.Name, p.Price); err != nil {
//	        return err
//	    }
//	    return c.Redirect(http.StatusSeeOther, "/cart")
//	}
//
// # Visitor state
//
// The cart and the recently viewed list live in visitor storage: cookies on
// the visitor's browser by default ([CookieVisitorStorage]), or a TTL cache
// keyed by a signed visitor id ([CachedVisitorStorage]). Both are hydrated on
// first use in a request and written back on every change.
//
// # Notifications
//
// c.Notify queues a toast. htmx requests receive it as an HX-Trigger
// "notify" event; full page loads render c.Notifications(), which includes
// toasts flashed by the previous redirect.
package storefront
