package htmx

import "net/http"

// Redirect sends the browser to url: an HX-Redirect header for htmx requests,
// a regular redirect with status otherwise.
func Redirect(w http.ResponseWriter, r *http.Request, url string, status int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, status)
}
