package catalog

import (
	"html/template"
	"regexp"
	"strings"
)

// DropdownLimit caps the search-as-you-type suggestions.
const DropdownLimit = 5

// DefaultSuggestions are offered when a search finds nothing.
var DefaultSuggestions = []string{"Wilson", "bat", "glove", "cleats", "helmet"}

// Result is the outcome of a grid search.
type Result struct {
	Query   string
	Matches []Product
	// Active is false for an empty query: the full grid shows without result chrome.
	Active      bool
	NoResults   bool
	Suggestions []string
}

// Suggestion is a dropdown row: the product and its highlighted display name.
type Suggestion struct {
	Product Product
	Name    template.HTML
}

// Search filters products whose name or description, in lang, contains query.
// Matching is case-insensitive and keeps catalog order.
func (c *Catalog) Search(lang, query string) Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Result{Matches: c.products}
	}

	res := Result{Query: strings.TrimSpace(query), Active: true}
	for i, p := range c.products {
		if c.matches(i, lang, q) {
			res.Matches = append(res.Matches, p)
		}
	}
	if len(res.Matches) == 0 {
		res.NoResults = true
		res.Suggestions = c.suggestions
	}
	return res
}

// Dropdown returns up to DropdownLimit matches with the query highlighted in
// the localized name. An empty query yields nothing.
func (c *Catalog) Dropdown(lang, query string) []Suggestion {
	res := c.Search(lang, query)
	if !res.Active {
		return nil
	}

	n := min(len(res.Matches), DropdownLimit)
	out := make([]Suggestion, 0, n)
	for _, p := range res.Matches[:n] {
		out = append(out, Suggestion{
			Product: p,
			Name:    Highlight(p.LocalName(lang), res.Query),
		})
	}
	return out
}

func (c *Catalog) matches(i int, lang, q string) bool {
	text, ok := c.plain[i][lang]
	if !ok {
		text = c.plain[i][""]
	}
	return strings.Contains(text, q)
}

// Highlight HTML-escapes text and wraps every case-insensitive occurrence of
// query in <strong>.
func Highlight(text, query string) template.HTML {
	query = strings.TrimSpace(query)
	if query == "" {
		return template.HTML(template.HTMLEscapeString(text))
	}

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		b.WriteString(template.HTMLEscapeString(text[last:loc[0]]))
		b.WriteString("<strong>")
		b.WriteString(template.HTMLEscapeString(text[loc[0]:loc[1]]))
		b.WriteString("</strong>")
		last = loc[1]
	}
	b.WriteString(template.HTMLEscapeString(text[last:]))

	return template.HTML(b.String()) //nolint:gosec // every segment is escaped
}
