package handlers

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/middlewares"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/htmx"
	"github.com/dmitrymomot/storefront/pkg/relay"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/views"
)

// ErrorHandler renders handler errors as the error page, or as a fragment
// swapped into the main area for htmx requests.
func ErrorHandler(p *Pages) storefront.ErrorHandler {
	return func(c storefront.Context, err error) error {
		he := toHTTPError(err)
		he.RequestID = middlewares.GetRequestID(c)

		if he.Code >= http.StatusInternalServerError {
			c.LogError("request failed", "status", he.Code, "error", err)
		} else {
			c.LogDebug("request rejected", "status", he.Code, "error", err)
		}

		if c.IsHTMX() {
			return c.Render(he.Code, p.partial(c, views.PartialError, views.ErrorPage{
				Code:    he.Code,
				Message: he.Localize(c),
			}), htmx.WithRetarget("#main"), htmx.WithReswap(htmx.SwapInnerHTML), htmx.WithPushURL("false"))
		}
		return c.Render(he.Code, p.page(c, views.PageError, views.ErrorPage{
			Layout:  p.layout(c, he.StatusText()),
			Code:    he.Code,
			Message: he.Localize(c),
		}))
	}
}

// NotFound renders the 404 page for unknown routes.
func NotFound(c storefront.Context) error {
	return storefront.ErrNotFound("page not found", storefront.WithMessageKey("errors.not_found"))
}

// MethodNotAllowed rejects unsupported methods on known routes.
func MethodNotAllowed(c storefront.Context) error {
	return storefront.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed",
		storefront.WithMessageKey("errors.method_not_allowed"))
}

// toHTTPError maps domain errors to status codes.
func toHTTPError(err error) *storefront.HTTPError {
	if he := storefront.AsHTTPError(err); he != nil {
		out := *he
		return &out
	}

	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return storefront.ErrNotFound("product not found",
			storefront.WithMessageKey("errors.not_found"), storefront.WithError(err))
	case errors.Is(err, relay.ErrEmptyCart):
		return storefront.ErrBadRequest("empty cart",
			storefront.WithMessageKey("cart.nothing_to_submit"), storefront.WithError(err))
	case errors.Is(err, relay.ErrDeliveryFailed):
		return storefront.ErrBadGateway("delivery failed",
			storefront.WithMessageKey("purchase.failed"), storefront.WithError(err))
	case errors.Is(err, validator.ErrValidation):
		return storefront.ErrUnprocessable("invalid input",
			storefront.WithMessageKey("errors.bad_request"), storefront.WithError(err))
	default:
		return storefront.ErrInternal("internal error",
			storefront.WithMessageKey("errors.internal"), storefront.WithError(err))
	}
}
