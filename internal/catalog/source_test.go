package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-client/internal/catalog"
)

func TestNewStaticSourceValidates(t *testing.T) {
	t.Parallel()

	_, err := catalog.NewStaticSource(catalog.Product{Name: "no id", Price: 10})
	require.Error(t, err)

	_, err = catalog.NewStaticSource(catalog.Product{ID: "p", Name: "negative", Price: -1})
	require.Error(t, err)

	_, err = catalog.NewStaticSource(
		catalog.Product{ID: "p", Name: "one", Price: 10},
		catalog.Product{ID: "p", Name: "dup", Price: 20},
	)
	require.Error(t, err)
}

func TestStaticSourcePreservesSeedOrder(t *testing.T) {
	t.Parallel()

	src, err := catalog.NewStaticSource(
		catalog.Product{ID: "b", Name: "B", Price: 10},
		catalog.Product{ID: "a", Name: "A", Price: 20},
	)
	require.NoError(t, err)

	list := src.List()
	require.Len(t, list, 2)
	require.Equal(t, "b", list[0].ID)
	require.Equal(t, "a", list[1].ID)

	p, ok := src.Get("a")
	require.True(t, ok)
	require.Equal(t, "A", p.Name)
	_, ok = src.Get("ghost")
	require.False(t, ok)
}

type countingSource struct {
	inner catalog.Source
	gets  int
}

func (c *countingSource) Get(id string) (catalog.Product, bool) {
	c.gets++
	return c.inner.Get(id)
}

func (c *countingSource) List() []catalog.Product { return c.inner.List() }

func TestCachedSourceServesRepeatLookupsFromCache(t *testing.T) {
	t.Parallel()

	src, err := catalog.NewStaticSource(catalog.Product{ID: "p", Name: "P", Price: 10})
	require.NoError(t, err)
	counting := &countingSource{inner: src}
	cached := catalog.NewCachedSource(counting, time.Minute)

	for range 3 {
		p, ok := cached.Get("p")
		require.True(t, ok)
		require.Equal(t, "P", p.Name)
	}
	require.Equal(t, 1, counting.gets)

	// Misses are not cached.
	_, ok := cached.Get("ghost")
	require.False(t, ok)
	_, _ = cached.Get("ghost")
	require.Equal(t, 3, counting.gets)
}

func TestSelectedVariantsSummary(t *testing.T) {
	t.Parallel()

	selected := catalog.SelectedVariants{
		"storage": {ID: "128gb", Value: "128GB"},
		"color":   {ID: "red", Value: "Red"},
	}
	require.Equal(t, "Color: Red, Storage: 128GB", selected.Summary())
	require.Equal(t, "", catalog.SelectedVariants{}.Summary())

	accented := catalog.SelectedVariants{"écran": {ID: "oled", Value: "OLED"}}
	require.Equal(t, "Écran: OLED", accented.Summary())
}

func TestSeededCatalogIsValid(t *testing.T) {
	t.Parallel()

	src := catalog.Seeded()
	require.GreaterOrEqual(t, len(src.List()), 4)
	for _, p := range src.List() {
		require.NotEmpty(t, p.ID)
		require.NotEmpty(t, p.Name)
	}
}
