// Package htmx reads htmx request headers and writes htmx response headers.
package htmx

import "net/http"

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// IsBoosted reports whether the request comes from an hx-boost link or form.
// Boosted requests expect a full page.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderHXBoosted) == "true"
}

// IsPartial reports whether the response should be a fragment rather than a page.
func IsPartial(r *http.Request) bool {
	return IsHTMX(r) && !IsBoosted(r)
}

// Target returns the id of the element the response will be swapped into.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderHXTarget)
}
