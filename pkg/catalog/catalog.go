// Package catalog holds the storefront's product and sold-item listings,
// loaded from a YAML document, and the search used by the product grid.
package catalog

import (
	"bytes"
	"cmp"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/pkg/slug"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Sentinel errors for catalog loading and lookup.
var (
	ErrInvalidCatalog  = errors.New("catalog: invalid document")
	ErrDuplicateSlug   = errors.New("catalog: duplicate product slug")
	ErrProductNotFound = errors.New("catalog: product not found")
)

// slugReplacements keep possessives and ampersands readable in URLs.
var slugReplacements = map[string]string{"'": "", "’": "", "&": "and"}

// Translation overrides the display fields of a product for one language.
type Translation struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Product is a listed item. Name is the canonical (English) name and is the
// identity used by the purchase-request cart.
type Product struct {
	Slug          string                 `yaml:"slug"`
	Name          string                 `yaml:"name"`
	Price         string                 `yaml:"price"`
	OriginalPrice string                 `yaml:"original_price"`
	Description   string                 `yaml:"description"`
	Icon          string                 `yaml:"icon"`
	Category      string                 `yaml:"category"`
	Condition     string                 `yaml:"condition"`
	Translations  map[string]Translation `yaml:"translations"`
}

// LocalName returns the product name in lang, falling back to Name.
func (p Product) LocalName(lang string) string {
	if t, ok := p.Translations[lang]; ok && t.Name != "" {
		return t.Name
	}
	return p.Name
}

// LocalDescription returns the markdown description in lang, falling back to Description.
func (p Product) LocalDescription(lang string) string {
	if t, ok := p.Translations[lang]; ok && t.Description != "" {
		return t.Description
	}
	return p.Description
}

// SoldItem is an entry of the "recently sold" showcase.
type SoldItem struct {
	Name   string
	Price  string
	Icon   string
	SoldAt time.Time
}

type document struct {
	Suggestions []string  `yaml:"suggestions"`
	Products    []Product `yaml:"products"`
	Sold        []struct {
		Name     string `yaml:"name"`
		Price    string `yaml:"price"`
		Icon     string `yaml:"icon"`
		HoursAgo int    `yaml:"hours_ago"`
	} `yaml:"sold"`
}

// Catalog is an immutable, goroutine safe product listing.
type Catalog struct {
	products    []Product
	bySlug      map[string]int
	byName      map[string]int
	plain       []map[string]string // per product: lang -> lowercased searchable text
	sold        []SoldItem
	suggestions []string
	md          goldmark.Markdown
	html        cache.Cache[string]
	now         func() time.Time
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock sets the reference time sold items are dated against.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// WithHTMLCache sets the cache used for rendered descriptions.
func WithHTMLCache(hc cache.Cache[string]) Option {
	return func(c *Catalog) {
		if hc != nil {
			c.html = hc
		}
	}
}

// Parse builds a catalog from a YAML document.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		bySlug:      make(map[string]int, len(doc.Products)),
		byName:      make(map[string]int, len(doc.Products)),
		suggestions: doc.Suggestions,
		md:          goldmark.New(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.html == nil {
		c.html = cache.NewMemory[string](cache.WithMaxEntries(256))
	}
	if len(c.suggestions) == 0 {
		c.suggestions = DefaultSuggestions
	}

	for i, p := range doc.Products {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("%w: product %d has no name", ErrInvalidCatalog, i)
		}
		p.Slug = slug.Make(cmp.Or(p.Slug, p.Name), slug.CustomReplace(slugReplacements), slug.MaxLength(80))
		if p.Slug == "" {
			return nil, fmt.Errorf("%w: product %q has no usable slug", ErrInvalidCatalog, p.Name)
		}
		if _, ok := c.bySlug[p.Slug]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, p.Slug)
		}
		c.bySlug[p.Slug] = len(c.products)
		c.byName[p.Name] = len(c.products)
		c.products = append(c.products, p)
		c.plain = append(c.plain, c.searchable(p))
	}

	ref := c.now()
	for _, s := range doc.Sold {
		c.sold = append(c.sold, SoldItem{
			Name:   s.Name,
			Price:  s.Price,
			Icon:   s.Icon,
			SoldAt: ref.Add(-time.Duration(s.HoursAgo) * time.Hour),
		})
	}

	return c, nil
}

// Load reads and parses the named YAML file from fsys.
func Load(fsys fs.FS, name string, opts ...Option) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	return Parse(data, opts...)
}

// Default returns the catalog shipped with the binary.
func Default(opts ...Option) (*Catalog, error) {
	return Parse(defaultCatalog, opts...)
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []Product {
	return c.products
}

// Product looks a product up by slug.
func (c *Catalog) Product(slug string) (Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// ByName looks a product up by its canonical name.
func (c *Catalog) ByName(name string) (Product, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Sold returns the sold-item showcase, most recent first.
func (c *Catalog) Sold() []SoldItem {
	return c.sold
}

// DescriptionHTML renders the product description for lang as sanitized HTML.
func (c *Catalog) DescriptionHTML(ctx context.Context, p Product, lang string) template.HTML {
	src := p.LocalDescription(lang)
	out, err := cache.GetOrSet(ctx, c.html, p.Slug+":"+lang, func(context.Context) (string, time.Duration, error) {
		s, err := c.render(src)
		return s, 0, err
	})
	if err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(out) //nolint:gosec // sanitized by bluemonday
}

func (c *Catalog) render(src string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return sanitizer.SanitizeHTML(buf.String()), nil
}

func (c *Catalog) searchable(p Product) map[string]string {
	out := map[string]string{"": c.plainText(p.Name, p.Description)}
	for lang, t := range p.Translations {
		name, desc := p.Name, p.Description
		if t.Name != "" {
			name = t.Name
		}
		if t.Description != "" {
			desc = t.Description
		}
		out[lang] = c.plainText(name, desc)
	}
	return out
}

func (c *Catalog) plainText(name, description string) string {
	desc := description
	if html, err := c.render(description); err == nil {
		desc = sanitizer.StripHTML(html)
	}
	return strings.ToLower(name + "\n" + desc)
}
