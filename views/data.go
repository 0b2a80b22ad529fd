package views

import (
	"html/template"
	"time"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/notify"
	"github.com/dmitrymomot/storefront/pkg/pagination"
	"github.com/dmitrymomot/storefront/pkg/relay"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Fragment names accepted by Views.Partial.
const (
	PartialCartBadge      = "cart_badge"
	PartialSearchDropdown = "search_dropdown"
	PartialProductGrid    = "product_grid"
	PartialCartPanel      = "cart_panel"
	PartialRequestForm    = "request_form"
	PartialContactForm    = "contact_form"
	PartialNewsletterForm = "newsletter_form"
	PartialSoldList       = "sold_list"
	PartialRecentList     = "recent_list"
	PartialNotifications  = "notifications"
	PartialError          = "error_panel"
)

// Layout is shared by every full page.
type Layout struct {
	Lang          string
	Toggle        string
	Title         string
	Path          string
	Query         string
	CartCount     int
	Notifications []notify.Notification
	Year          int
}

// Badge is the cart counter in the header. OOB marks it for an htmx
// out-of-band swap.
type Badge struct {
	Count int
	OOB   bool
}

// ProductCard is a product as shown in the grid and on its own page.
type ProductCard struct {
	Slug          string
	Name          string
	Price         string
	OriginalPrice string
	Icon          string
	Category      string
	Condition     string
	Description   template.HTML
	InCart        bool
}

// Grid is the product listing, optionally filtered by a search.
type Grid struct {
	Query       string
	Products    []ProductCard
	Active      bool
	NoResults   bool
	Suggestions []string
}

// Dropdown is the search-as-you-type panel.
type Dropdown struct {
	Query       string
	Suggestions []catalog.Suggestion
}

// RequestForm collects contact details for a purchase request.
type RequestForm struct {
	Action  string
	Title   string
	Contact relay.Contact
	Errors  validator.ValidationErrors
}

// ContactForm is the "get in touch" form.
type ContactForm struct {
	Values relay.ContactMessage
	Errors validator.ValidationErrors
}

// NewsletterForm is the footer signup form.
type NewsletterForm struct {
	Values relay.Subscription
	Errors validator.ValidationErrors
}

// CartItem is a line item with its localized display name.
type CartItem struct {
	ID       string
	Name     string
	Price    string
	Icon     string
	Quantity int
}

// CartPanel lists the purchase requests and the submission form.
type CartPanel struct {
	Items []CartItem
	Count int
	Form  RequestForm
}

// RecentItem is a recently viewed product.
type RecentItem struct {
	Slug          string
	Name          string
	Price         string
	OriginalPrice string
	Icon          string
	ViewedAt      time.Time
}

// SoldList is one page of the sold items showcase.
type SoldList struct {
	Items []catalog.SoldItem
	Page  pagination.Page
	Shown int
}

// HomePage is the landing page.
type HomePage struct {
	Layout
	Grid       Grid
	Recent     []RecentItem
	Contact    ContactForm
	Newsletter NewsletterForm
}

// ProductPage shows one product with its purchase request form.
type ProductPage struct {
	Layout
	Product ProductCard
	Form    RequestForm
}

// CartPage shows the purchase requests.
type CartPage struct {
	Layout
	Cart CartPanel
}

// SoldPage shows the sold items showcase.
type SoldPage struct {
	Layout
	Sold SoldList
}

// RecentPage shows the recently viewed list.
type RecentPage struct {
	Layout
	Items []RecentItem
}

// ErrorPage renders an HTTP error.
type ErrorPage struct {
	Layout
	Code    int
	Message string
}
