// Package views renders the storefront's pages and htmx fragments.
//
// Templates are html/template files embedded from templates/, parsed once per
// language so the "t" and "tn" helpers translate without per-request state.
// Every page and fragment is exposed as a templ.Component for c.Render.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/recent"
)

//go:embed templates static
var files embed.FS

// Pages rendered inside the layout.
const (
	PageHome    = "home"
	PageProduct = "product"
	PageCart    = "cart"
	PageSold    = "sold"
	PageRecent  = "recent"
	PageError   = "error"
)

var pages = []string{PageHome, PageProduct, PageCart, PageSold, PageRecent, PageError}

// Static returns the embedded css/js assets.
func Static() fs.FS {
	return files
}

// Views holds the parsed templates for every language of a bundle.
type Views struct {
	bundle   *i18n.Bundle
	pages    map[string]map[string]*template.Template
	partials map[string]*template.Template
	now      func() time.Time
}

// Option configures Views.
type Option func(*Views)

// WithClock replaces time.Now for "time ago" labels.
func WithClock(now func() time.Time) Option {
	return func(v *Views) { v.now = now }
}

// New parses the embedded templates for each language of b.
func New(b *i18n.Bundle, opts ...Option) (*Views, error) {
	v := &Views{
		bundle:   b,
		pages:    make(map[string]map[string]*template.Template),
		partials: make(map[string]*template.Template),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	for _, lang := range b.Languages() {
		base, err := template.New(lang).Funcs(v.funcs(lang)).ParseFS(files,
			"templates/layout.html", "templates/partials/*.html")
		if err != nil {
			return nil, fmt.Errorf("views: parse %s partials: %w", lang, err)
		}
		v.partials[lang] = base
		v.pages[lang] = make(map[string]*template.Template, len(pages))

		for _, page := range pages {
			set, err := base.Clone()
			if err != nil {
				return nil, fmt.Errorf("views: clone for %s: %w", page, err)
			}
			if _, err := set.ParseFS(files, "templates/pages/"+page+".html"); err != nil {
				return nil, fmt.Errorf("views: parse %s/%s: %w", lang, page, err)
			}
			v.pages[lang][page] = set
		}
	}
	return v, nil
}

// Page renders a full page in lang.
func (v *Views) Page(lang, page string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		set, ok := v.pages[v.lang(lang)][page]
		if !ok {
			return fmt.Errorf("views: unknown page %q", page)
		}
		return set.ExecuteTemplate(w, "layout", data)
	})
}

// Partial renders a named fragment in lang.
func (v *Views) Partial(lang, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return v.partials[v.lang(lang)].ExecuteTemplate(w, name, data)
	})
}

func (v *Views) lang(lang string) string {
	if _, ok := v.partials[lang]; ok {
		return lang
	}
	return v.bundle.DefaultLanguage()
}

func (v *Views) funcs(lang string) template.FuncMap {
	return template.FuncMap{
		"t": func(key string, kv ...any) string {
			return v.bundle.T(lang, key, pairs(kv))
		},
		"tn": func(key string, n int, kv ...any) string {
			return v.bundle.Tn(lang, key, n, pairs(kv))
		},
		"ago": func(t time.Time) string {
			unit, n := recent.Elapsed(v.now(), t)
			if unit == recent.JustNow {
				return v.bundle.T(lang, "recent.ago.just_now")
			}
			return v.bundle.Tn(lang, "recent.ago."+string(unit), n)
		},
		"badge": func(count int, oob bool) Badge {
			return Badge{Count: count, OOB: oob}
		},
		"newsletter": func() NewsletterForm { return NewsletterForm{} },
		"lower":      strings.ToLower,
		"add":        func(a, b int) int { return a + b },
	}
}

// pairs turns "k1", v1, "k2", v2 into placeholders.
func pairs(kv []any) i18n.M {
	m := make(i18n.M, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			m[k] = kv[i+1]
		}
	}
	return m
}
