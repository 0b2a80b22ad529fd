package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/notify"
	"github.com/dmitrymomot/storefront/pkg/recent"
	"github.com/dmitrymomot/storefront/pkg/relay"
	"github.com/dmitrymomot/storefront/views"
)

// ProductHandler serves the home page, the product grid, search and the
// single-product purchase request.
type ProductHandler struct {
	pages   *Pages
	gateway *relay.Gateway
}

// NewProductHandler creates a product handler.
func NewProductHandler(p *Pages, g *relay.Gateway) *ProductHandler {
	return &ProductHandler{pages: p, gateway: g}
}

// slugPattern matches catalog slugs.
const slugPattern = `[a-z0-9-]+`

// Routes implements storefront.Handler.
func (h *ProductHandler) Routes(r storefront.Router) {
	r.GET("/", h.home)
	r.GET("/search", h.dropdown)
	r.Route("/products", func(r storefront.Router) {
		r.GET("/", h.list)
		r.GET("/{slug:"+slugPattern+"}", h.show)
		r.POST("/{slug:"+slugPattern+"}/request", h.request)
	})
}

func (h *ProductHandler) home(c storefront.Context) error {
	return c.Render(http.StatusOK, h.pages.page(c, views.PageHome, h.homePage(c)))
}

func (h *ProductHandler) homePage(c storefront.Context) views.HomePage {
	return views.HomePage{
		Layout: h.pages.layout(c, ""),
		Grid:   h.pages.grid(c, c.Query("q")),
		Recent: h.pages.recentItems(c),
	}
}

// dropdown renders search-as-you-type suggestions.
func (h *ProductHandler) dropdown(c storefront.Context) error {
	q := c.Query("q")
	return c.Render(http.StatusOK, h.pages.partial(c, views.PartialSearchDropdown, views.Dropdown{
		Query:       q,
		Suggestions: h.pages.catalog.Dropdown(h.pages.lang(c), q),
	}))
}

// list filters the grid. htmx swaps only the grid and pushes the search URL.
func (h *ProductHandler) list(c storefront.Context) error {
	q := c.Query("q")
	if !c.IsPartial() {
		return h.home(c)
	}

	target := "/products"
	if q != "" {
		target += "?q=" + url.QueryEscape(q)
	}
	return c.Render(http.StatusOK, h.pages.partial(c, views.PartialProductGrid, h.pages.grid(c, q)),
		htmx.WithPushURL(target))
}

func (h *ProductHandler) show(c storefront.Context) error {
	prod, err := h.pages.catalog.Product(c.Param("slug"))
	if err != nil {
		return err
	}

	if err := c.Recent().View(c, recent.Entry{
		Name:          prod.Name,
		Price:         prod.Price,
		OriginalPrice: prod.OriginalPrice,
		Description:   prod.Description,
		Icon:          prod.Icon,
	}); err != nil {
		c.LogWarn("record recently viewed", "product", prod.Slug, "error", err)
	}

	return h.renderProduct(c, http.StatusOK, prod, h.requestForm(c, prod, relay.Contact{}, nil))
}

// request submits a purchase request for one product.
func (h *ProductHandler) request(c storefront.Context) error {
	prod, err := h.pages.catalog.Product(c.Param("slug"))
	if err != nil {
		return err
	}

	var contact relay.Contact
	errs, err := c.Bind(&contact)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return h.renderProduct(c, http.StatusUnprocessableEntity, prod, h.requestForm(c, prod, contact, errs))
	}

	_, err = h.gateway.SubmitSingle(c, relay.Item{
		Name:          prod.Name,
		Price:         prod.Price,
		OriginalPrice: prod.OriginalPrice,
	}, contact)
	if err != nil {
		if !errors.Is(err, relay.ErrDeliveryFailed) {
			return err
		}
		c.LogError("purchase request failed", "product", prod.Slug, "error", err)
		c.Notify(notify.Error, c.T("purchase.failed"))
		return h.renderProduct(c, http.StatusBadGateway, prod, h.requestForm(c, prod, contact, nil))
	}

	c.Notify(notify.Success, c.T("purchase.sent"))
	if c.IsHTMX() {
		return c.Render(http.StatusOK, h.pages.partial(c, views.PartialRequestForm, h.requestForm(c, prod, relay.Contact{}, nil)))
	}
	return c.Redirect(http.StatusSeeOther, "/products/"+prod.Slug)
}

func (h *ProductHandler) requestForm(c storefront.Context, prod catalog.Product, contact relay.Contact, errs storefront.ValidationErrors) views.RequestForm {
	return views.RequestForm{
		Action:  "/products/" + prod.Slug + "/request",
		Title:   c.T("purchase.title"),
		Contact: contact,
		Errors:  errs,
	}
}

func (h *ProductHandler) renderProduct(c storefront.Context, code int, prod catalog.Product, form views.RequestForm) error {
	if c.IsHTMX() && c.Request().Method == http.MethodPost {
		return c.Render(code, h.pages.partial(c, views.PartialRequestForm, form))
	}
	return c.Render(code, h.pages.page(c, views.PageProduct, views.ProductPage{
		Layout:  h.pages.layout(c, prod.LocalName(h.pages.lang(c))),
		Product: h.pages.card(c, prod, true),
		Form:    form,
	}))
}
