package handlers

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/notify"
	"github.com/dmitrymomot/storefront/pkg/relay"
	"github.com/dmitrymomot/storefront/views"
)

// CartHandler manages the visitor's purchase requests.
type CartHandler struct {
	pages   *Pages
	gateway *relay.Gateway
}

// NewCartHandler creates a cart handler.
func NewCartHandler(p *Pages, g *relay.Gateway) *CartHandler {
	return &CartHandler{pages: p, gateway: g}
}

// Routes implements storefront.Handler.
func (h *CartHandler) Routes(r storefront.Router) {
	r.Route("/cart", func(r storefront.Router) {
		r.GET("/", h.show)
		r.GET("/count", h.count)
		r.POST("/items", h.add)
		r.POST("/items/{id}/delete", h.remove)
		r.POST("/submit", h.submit)
	})
}

type addItemRequest struct {
	Product string `form:"product" sanitize:"trim,lower"`
}

func (h *CartHandler) show(c storefront.Context) error {
	return h.render(c, http.StatusOK, views.RequestForm{})
}

// count renders the header badge.
func (h *CartHandler) count(c storefront.Context) error {
	return c.Render(http.StatusOK, h.pages.partial(c, views.PartialCartBadge, views.Badge{Count: c.Cart().Count()}))
}

// add puts a catalog product into the cart. Adding a product twice leaves
// the cart unchanged; the cart listener tells the visitor either way.
func (h *CartHandler) add(c storefront.Context) error {
	var req addItemRequest
	if _, err := c.Bind(&req); err != nil {
		return err
	}
	prod, err := h.pages.catalog.Product(req.Product)
	if err != nil {
		return err
	}

	if _, err := c.Cart().Add(c, prod.Name, prod.Price); err != nil {
		return storefront.ErrBadRequest("invalid item", storefront.WithError(err))
	}

	if c.IsHTMX() {
		return c.Render(http.StatusOK, h.pages.partial(c, views.PartialCartBadge,
			views.Badge{Count: c.Cart().Count(), OOB: true}))
	}
	return c.Redirect(http.StatusSeeOther, back(c, "/products/"+prod.Slug))
}

func (h *CartHandler) remove(c storefront.Context) error {
	c.Cart().Remove(c, c.Param("id"))

	if c.IsHTMX() {
		return c.Render(http.StatusOK, h.pages.partial(c, views.PartialCartPanel,
			h.pages.cartPanel(c, views.RequestForm{})), h.pages.badge(c))
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// submit sends every cart item in one purchase request.
func (h *CartHandler) submit(c storefront.Context) error {
	var contact relay.Contact
	errs, err := c.Bind(&contact)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return h.renderForm(c, http.StatusUnprocessableEntity, views.RequestForm{Contact: contact, Errors: errs})
	}

	receipt, err := h.gateway.SubmitCart(c, c.Cart(), contact)
	switch {
	case errors.Is(err, relay.ErrEmptyCart):
		c.Notify(notify.Warning, c.T("cart.nothing_to_submit"))
		return h.render(c, http.StatusOK, views.RequestForm{})
	case errors.Is(err, relay.ErrDeliveryFailed):
		c.LogError("cart purchase request failed", "items", c.Cart().Count(), "error", err)
		c.Notify(notify.Error, c.T("purchase.failed"))
		return h.renderForm(c, http.StatusBadGateway, views.RequestForm{Contact: contact})
	case err != nil:
		return err
	}

	c.Notify(notify.Success, c.Tn("purchase.bulk_sent", receipt.Items))
	if c.IsHTMX() {
		return c.Render(http.StatusOK, h.pages.partial(c, views.PartialCartPanel,
			h.pages.cartPanel(c, views.RequestForm{})),
			htmx.WithRetarget("#cart"), htmx.WithReswap(htmx.SwapOuterHTML), h.pages.badge(c))
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// renderForm re-renders the request form in place for htmx, or the page.
func (h *CartHandler) renderForm(c storefront.Context, code int, form views.RequestForm) error {
	if c.IsHTMX() {
		panel := h.pages.cartPanel(c, form)
		return c.Render(code, h.pages.partial(c, views.PartialRequestForm, panel.Form))
	}
	return h.render(c, code, form)
}

func (h *CartHandler) render(c storefront.Context, code int, form views.RequestForm) error {
	panel := h.pages.cartPanel(c, form)
	if c.IsPartial() {
		return c.Render(code, h.pages.partial(c, views.PartialCartPanel, panel),
			htmx.WithRetarget("#cart"), htmx.WithReswap(htmx.SwapOuterHTML))
	}
	return c.Render(code, h.pages.page(c, views.PageCart, views.CartPage{
		Layout: h.pages.layout(c, c.T("cart.title")),
		Cart:   panel,
	}))
}

// CartNotifications turns cart events into visitor notifications in the
// request language. Register it with storefront.WithCartListener.
func CartNotifications(p *Pages) func(storefront.Context, cart.Event) {
	return func(c storefront.Context, ev cart.Event) {
		name, _ := p.displayName(p.lang(c), ev.Item.Name)
		switch ev.Kind {
		case cart.EventAdded:
			c.Notify(notify.Success, c.T("cart.added", i18n.M{"name": name}))
		case cart.EventDuplicate:
			c.Notify(notify.Info, c.T("cart.already", i18n.M{"name": name}))
		case cart.EventRemoved:
			c.Notify(notify.Info, c.T("cart.removed"))
		}
	}
}
