package handlers

import (
	"net/http"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/pagination"
	"github.com/dmitrymomot/storefront/views"
)

// ShowcaseHandler serves the recently sold and recently viewed listings.
type ShowcaseHandler struct {
	pages    *Pages
	pageSize int
}

// NewShowcaseHandler creates a showcase handler. A non-positive pageSize
// uses pagination.DefaultPageSize.
func NewShowcaseHandler(p *Pages, pageSize int) *ShowcaseHandler {
	return &ShowcaseHandler{pages: p, pageSize: pageSize}
}

// Routes implements storefront.Handler.
func (h *ShowcaseHandler) Routes(r storefront.Router) {
	r.GET("/sold", h.sold)
	r.GET("/recent", h.recent)
}

// sold shows one page of sold items. Out of range page numbers are clamped.
func (h *ShowcaseHandler) sold(c storefront.Context) error {
	items := h.pages.catalog.Sold()
	pg := pagination.New(len(items), h.pageSize).Page(storefront.QueryInt(c, "page", 1))
	list := views.SoldList{
		Items: pagination.Slice(items, pg),
		Page:  pg,
		Shown: pg.End,
	}

	if c.IsPartial() {
		return c.Render(http.StatusOK, h.pages.partial(c, views.PartialSoldList, list),
			htmx.WithPushURL(c.Request().URL.RequestURI()))
	}
	return c.Render(http.StatusOK, h.pages.page(c, views.PageSold, views.SoldPage{
		Layout: h.pages.layout(c, c.T("sold.title")),
		Sold:   list,
	}))
}

func (h *ShowcaseHandler) recent(c storefront.Context) error {
	items := h.pages.recentItems(c)
	if c.IsPartial() {
		return c.Render(http.StatusOK, h.pages.partial(c, views.PartialRecentList, items))
	}
	return c.Render(http.StatusOK, h.pages.page(c, views.PageRecent, views.RecentPage{
		Layout: h.pages.layout(c, c.T("recent.title")),
		Items:  items,
	}))
}
