package handlers

import (
	"net/http"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/middlewares"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/notify"
)

// languageMaxAge keeps the choice for a year.
const languageMaxAge = 365 * 24 * 60 * 60

// LanguageHandler switches the interface language.
type LanguageHandler struct {
	bundle *i18n.Bundle
}

// NewLanguageHandler creates a language handler.
func NewLanguageHandler(b *i18n.Bundle) *LanguageHandler {
	return &LanguageHandler{bundle: b}
}

// Routes implements storefront.Handler.
func (h *LanguageHandler) Routes(r storefront.Router) {
	r.POST("/language", h.switchLanguage)
}

// switchLanguage stores the chosen language, or the next one when none is
// given, and reloads the page the visitor was on.
func (h *LanguageHandler) switchLanguage(c storefront.Context) error {
	lang := c.Form("lang")
	if lang == "" {
		lang = i18n.Toggle(h.bundle, c.Language())
	}
	if !h.bundle.Supports(lang) {
		return storefront.ErrBadRequest("unsupported language", storefront.WithMessageKey("errors.bad_request"))
	}

	if err := c.SetCookie(middlewares.LanguageCookie, lang, languageMaxAge); err != nil {
		return err
	}
	c.Notify(notify.Success, h.bundle.T(lang, "language.switched"))
	return c.Redirect(http.StatusSeeOther, back(c, "/"))
}
