package catalog_test

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/catalog"
)

const testDoc = `
products:
  - slug: glove-a
    name: Glove A
    price: $50
    description: Soft **leather** glove
    translations:
      es:
        name: Guante A
        description: Guante de **cuero**
  - slug: bat-b
    name: Bat <B>
    price: $80
    description: Wood bat
  - slug: helmet
    name: Helmet
    price: $20
    description: "Click <script>alert(1)</script> [here](https://example.com)"
sold:
  - {name: Old Glove, price: $10, icon: fas fa-baseball-ball, hours_ago: 3}
`

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(testDoc))
	require.NoError(t, err)
	return c
}

func TestDefault(t *testing.T) {
	t.Parallel()

	c, err := catalog.Default()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Products())
	assert.Len(t, c.Sold(), 27)

	p, err := c.Product("wilson-a2000-glove")
	require.NoError(t, err)
	assert.Equal(t, "Used Wilson A2000 Glove", p.Name)
	assert.Equal(t, "Guante Wilson A2000 Usado", p.LocalName("es"))

	for _, p := range c.Products() {
		assert.NotEmpty(t, p.Price, p.Slug)
		assert.NotEmpty(t, p.LocalName("es"), p.Slug)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.Parse([]byte("products: [:"))
		assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.Parse([]byte("products:\n  - slug: x\n"))
		assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
	})

	t.Run("slug derived from name", func(t *testing.T) {
		t.Parallel()
		c, err := catalog.Parse([]byte("products:\n  - name: \"Used Catcher's Mitt & Mask\"\n  - {slug: \"Tee Ball \", name: Tee}\n"))
		require.NoError(t, err)
		require.Len(t, c.Products(), 2)
		assert.Equal(t, "used-catchers-mitt-and-mask", c.Products()[0].Slug)
		assert.Equal(t, "tee-ball", c.Products()[1].Slug)

		_, err = c.Product("used-catchers-mitt-and-mask")
		assert.NoError(t, err)
	})

	t.Run("unusable slug", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.Parse([]byte("products:\n  - name: \"¡¿?!\"\n"))
		assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.Parse([]byte("products:\n  - {slug: a, name: A}\n  - {slug: a, name: B}\n"))
		assert.ErrorIs(t, err, catalog.ErrDuplicateSlug)
	})

	t.Run("sold items dated from clock", func(t *testing.T) {
		t.Parallel()
		ref := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		c, err := catalog.Parse([]byte(testDoc), catalog.WithClock(func() time.Time { return ref }))
		require.NoError(t, err)
		require.Len(t, c.Sold(), 1)
		assert.Equal(t, ref.Add(-3*time.Hour), c.Sold()[0].SoldAt)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"catalog.yaml": {Data: []byte(testDoc)}}
	c, err := catalog.Load(fsys, "catalog.yaml")
	require.NoError(t, err)
	assert.Len(t, c.Products(), 3)

	_, err = catalog.Load(fsys, "missing.yaml")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	t.Parallel()
	c := newTestCatalog(t)

	_, err := c.Product("nope")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	p, ok := c.ByName("Glove A")
	require.True(t, ok)
	assert.Equal(t, "glove-a", p.Slug)

	_, ok = c.ByName("Guante A")
	assert.False(t, ok)
}

func TestLocalFields(t *testing.T) {
	t.Parallel()
	c := newTestCatalog(t)

	p, err := c.Product("glove-a")
	require.NoError(t, err)
	assert.Equal(t, "Guante A", p.LocalName("es"))
	assert.Equal(t, "Glove A", p.LocalName("en"))
	assert.Equal(t, "Glove A", p.LocalName("fr"))

	b, err := c.Product("bat-b")
	require.NoError(t, err)
	assert.Equal(t, "Wood bat", b.LocalDescription("es"))
}

func TestDescriptionHTML(t *testing.T) {
	t.Parallel()
	c := newTestCatalog(t)
	ctx := context.Background()

	p, err := c.Product("glove-a")
	require.NoError(t, err)
	assert.Contains(t, string(c.DescriptionHTML(ctx, p, "en")), "<strong>leather</strong>")
	assert.Contains(t, string(c.DescriptionHTML(ctx, p, "es")), "<strong>cuero</strong>")

	h, err := c.Product("helmet")
	require.NoError(t, err)
	out := string(c.DescriptionHTML(ctx, h, "en"))
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, `rel="nofollow`)
}
