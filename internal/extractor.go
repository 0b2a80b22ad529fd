package internal

// ExtractorSource reads a value from the request.
// Returns ("", false) when the source has nothing.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries sources in order and returns the first non-empty value.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor over sources.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value, or ("", false).
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func present(v string) (string, bool) {
	return v, v != ""
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return present(c.Header(name))
	}
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return present(c.Query(name))
	}
}

// FromForm reads a form field.
func FromForm(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return present(c.Form(name))
	}
}

// FromParam reads a URL parameter.
func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return present(c.Param(name))
	}
}

// FromCookie reads a plain cookie.
func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.Cookie(name)
		if err != nil {
			return "", false
		}
		return present(v)
	}
}

// FromCookieSigned reads a signed cookie; a bad signature counts as absent.
func FromCookieSigned(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.CookieSigned(name)
		if err != nil {
			return "", false
		}
		return present(v)
	}
}
