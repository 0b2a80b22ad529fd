package handlers

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/notify"
	"github.com/dmitrymomot/storefront/pkg/relay"
	"github.com/dmitrymomot/storefront/views"
)

// ContactHandler forwards the contact and newsletter forms to the shop owner.
type ContactHandler struct {
	pages   *Pages
	gateway *relay.Gateway
}

// NewContactHandler creates a contact handler.
func NewContactHandler(p *Pages, g *relay.Gateway) *ContactHandler {
	return &ContactHandler{pages: p, gateway: g}
}

// Routes implements storefront.Handler.
func (h *ContactHandler) Routes(r storefront.Router) {
	r.POST("/contact", h.contact)
	r.POST("/newsletter", h.subscribe)
}

func (h *ContactHandler) contact(c storefront.Context) error {
	var msg relay.ContactMessage
	errs, err := c.Bind(&msg)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return h.renderContact(c, http.StatusUnprocessableEntity, views.ContactForm{Values: msg, Errors: errs})
	}

	if _, err := h.gateway.SubmitContact(c, msg); err != nil {
		if !errors.Is(err, relay.ErrDeliveryFailed) {
			return err
		}
		c.LogError("contact message failed", "error", err)
		c.Notify(notify.Error, c.T("purchase.failed"))
		return h.renderContact(c, http.StatusBadGateway, views.ContactForm{Values: msg})
	}

	c.Notify(notify.Success, c.T("contact.thanks", i18n.M{"name": msg.Name}))
	if c.IsHTMX() {
		return c.Render(http.StatusOK, h.pages.partial(c, views.PartialContactForm, views.ContactForm{}))
	}
	return c.Redirect(http.StatusSeeOther, back(c, "/"))
}

func (h *ContactHandler) subscribe(c storefront.Context) error {
	var sub relay.Subscription
	errs, err := c.Bind(&sub)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return h.renderNewsletter(c, http.StatusUnprocessableEntity, views.NewsletterForm{Values: sub, Errors: errs})
	}

	if _, err := h.gateway.Subscribe(c, sub); err != nil {
		if !errors.Is(err, relay.ErrDeliveryFailed) {
			return err
		}
		c.LogError("newsletter signup failed", "error", err)
		c.Notify(notify.Error, c.T("purchase.failed"))
		return h.renderNewsletter(c, http.StatusBadGateway, views.NewsletterForm{Values: sub})
	}

	c.Notify(notify.Success, c.T("newsletter.thanks", i18n.M{"email": sub.Email}))
	if c.IsHTMX() {
		return c.Render(http.StatusOK, h.pages.partial(c, views.PartialNewsletterForm, views.NewsletterForm{}))
	}
	return c.Redirect(http.StatusSeeOther, back(c, "/"))
}

// renderContact shows the form with errors: in place for htmx, otherwise on
// the home page.
func (h *ContactHandler) renderContact(c storefront.Context, code int, form views.ContactForm) error {
	if c.IsHTMX() {
		return c.Render(code, h.pages.partial(c, views.PartialContactForm, form))
	}
	return c.Render(code, h.pages.page(c, views.PageHome, views.HomePage{
		Layout:  h.pages.layout(c, c.T("contact.title")),
		Grid:    h.pages.grid(c, ""),
		Recent:  h.pages.recentItems(c),
		Contact: form,
	}))
}

// renderNewsletter shows the signup form with errors. Browsers without htmx
// get the message as a notification on the page they came from.
func (h *ContactHandler) renderNewsletter(c storefront.Context, code int, form views.NewsletterForm) error {
	if c.IsHTMX() {
		return c.Render(code, h.pages.partial(c, views.PartialNewsletterForm, form))
	}
	for _, e := range form.Errors {
		c.Notify(notify.Error, e.Message)
	}
	return c.Redirect(http.StatusSeeOther, back(c, "/"))
}
