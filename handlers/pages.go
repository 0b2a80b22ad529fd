// Package handlers serves the storefront's pages and htmx endpoints.
//
// Each handler receives its dependencies through its constructor and
// declares its own routes. Full pages are rendered for regular requests and
// fragments for htmx requests; cart changes also refresh the header badge
// out of band.
package handlers

import (
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/views"
)

// Pages builds view data shared by every handler and renders it in the
// request language.
type Pages struct {
	views   *views.Views
	bundle  *i18n.Bundle
	catalog *catalog.Catalog
	now     func() time.Time
}

// PagesOption configures Pages.
type PagesOption func(*Pages)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) PagesOption {
	return func(p *Pages) { p.now = now }
}

// NewPages creates the shared renderer.
func NewPages(v *views.Views, b *i18n.Bundle, cat *catalog.Catalog, opts ...PagesOption) *Pages {
	p := &Pages{views: v, bundle: b, catalog: cat, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// layout collects the header and footer data. It drains pending
// notifications, so call it only for full pages.
func (p *Pages) layout(c storefront.Context, title string) views.Layout {
	lang := p.lang(c)
	return views.Layout{
		Lang:          lang,
		Toggle:        i18n.Toggle(p.bundle, lang),
		Title:         title,
		Path:          c.Request().URL.RequestURI(),
		Query:         c.Query("q"),
		CartCount:     c.Cart().Count(),
		Notifications: c.Notifications(),
		Year:          p.now().Year(),
	}
}

func (p *Pages) lang(c storefront.Context) string {
	if lang := c.Language(); lang != "" {
		return lang
	}
	return p.bundle.DefaultLanguage()
}

func (p *Pages) page(c storefront.Context, name string, data any) storefront.Component {
	return p.views.Page(p.lang(c), name, data)
}

func (p *Pages) partial(c storefront.Context, name string, data any) storefront.Component {
	return p.views.Partial(p.lang(c), name, data)
}

// badge is the out-of-band cart counter attached to htmx cart responses.
func (p *Pages) badge(c storefront.Context) htmx.RenderOption {
	return htmx.WithOOB(p.views.Partial(p.lang(c), views.PartialCartBadge,
		views.Badge{Count: c.Cart().Count(), OOB: true}))
}

func (p *Pages) card(c storefront.Context, prod catalog.Product, withDescription bool) views.ProductCard {
	lang := p.lang(c)
	card := views.ProductCard{
		Slug:          prod.Slug,
		Name:          prod.LocalName(lang),
		Price:         prod.Price,
		OriginalPrice: prod.OriginalPrice,
		Icon:          prod.Icon,
		Category:      prod.Category,
		Condition:     prod.Condition,
		InCart: slices.ContainsFunc(c.Cart().Items(), func(it cart.LineItem) bool {
			return it.Name == prod.Name
		}),
	}
	if withDescription {
		card.Description = p.catalog.DescriptionHTML(c, prod, lang)
	}
	return card
}

func (p *Pages) cards(c storefront.Context, products []catalog.Product) []views.ProductCard {
	out := make([]views.ProductCard, 0, len(products))
	for _, prod := range products {
		out = append(out, p.card(c, prod, false))
	}
	return out
}

func (p *Pages) grid(c storefront.Context, query string) views.Grid {
	res := p.catalog.Search(p.lang(c), query)
	return views.Grid{
		Query:       res.Query,
		Products:    p.cards(c, res.Matches),
		Active:      res.Active,
		NoResults:   res.NoResults,
		Suggestions: res.Suggestions,
	}
}

// displayName localizes a cart or history name. Names no longer in the
// catalog are shown as stored.
func (p *Pages) displayName(lang, name string) (string, catalog.Product) {
	prod, ok := p.catalog.ByName(name)
	if !ok {
		return name, catalog.Product{}
	}
	return prod.LocalName(lang), prod
}

func (p *Pages) cartPanel(c storefront.Context, form views.RequestForm) views.CartPanel {
	lang := p.lang(c)
	items := c.Cart().Items()
	panel := views.CartPanel{Items: make([]views.CartItem, 0, len(items)), Count: c.Cart().Count()}
	for _, it := range items {
		name, prod := p.displayName(lang, it.Name)
		panel.Items = append(panel.Items, views.CartItem{
			ID:       it.ID,
			Name:     name,
			Price:    it.Price,
			Icon:     prod.Icon,
			Quantity: it.Quantity,
		})
	}
	form.Action = "/cart/submit"
	form.Title = c.Tn("cart.submit_title", panel.Count)
	panel.Form = form
	return panel
}

func (p *Pages) recentItems(c storefront.Context) []views.RecentItem {
	lang := p.lang(c)
	entries := c.Recent().Entries()
	out := make([]views.RecentItem, 0, len(entries))
	for _, e := range entries {
		name, prod := p.displayName(lang, e.Name)
		out = append(out, views.RecentItem{
			Slug:          prod.Slug,
			Name:          name,
			Price:         e.Price,
			OriginalPrice: e.OriginalPrice,
			Icon:          e.Icon,
			ViewedAt:      e.ViewedAt,
		})
	}
	return out
}

// back returns the local page the visitor came from, or fallback.
func back(c storefront.Context, fallback string) string {
	if target := localPath(c.Form("return")); target != "" {
		return target
	}
	ref, err := url.Parse(c.Header("Referer"))
	if err != nil || (ref.Host != "" && ref.Host != c.Request().Host) {
		return fallback
	}
	if target := localPath(ref.RequestURI()); target != "" && ref.Path != "" {
		return target
	}
	return fallback
}

// localPath accepts only same-site absolute paths.
func localPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return ""
	}
	return p
}
