package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-client/internal/catalog"
	"github.com/noah-isme/toko-client/internal/pricing"
)

func TestVariantPrice(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(100_00), pricing.VariantPrice(100_00, nil))

	selected := catalog.SelectedVariants{
		"storage": {ID: "256gb", PriceDelta: 50_00},
		"color":   {ID: "red"},
	}
	require.Equal(t, int64(150_00), pricing.VariantPrice(100_00, selected))

	// Negative deltas subtract; no clamping.
	discounted := catalog.SelectedVariants{"bundle": {ID: "promo", PriceDelta: -120_00}}
	require.Equal(t, int64(-20_00), pricing.VariantPrice(100_00, discounted))
}

func TestVariantImages(t *testing.T) {
	t.Parallel()

	base := []string{"/img/base.jpg"}
	require.Equal(t, base, pricing.VariantImages(base, nil))

	selected := catalog.SelectedVariants{
		"storage": {ID: "256gb"},
		"color":   {ID: "red", Images: []string{"/img/red.jpg"}},
	}
	require.Equal(t, []string{"/img/red.jpg"}, pricing.VariantImages(base, selected))

	// Deterministic pick when several options carry images: sorted group
	// order means color wins over storage.
	both := catalog.SelectedVariants{
		"storage": {ID: "256gb", Images: []string{"/img/256.jpg"}},
		"color":   {ID: "red", Images: []string{"/img/red.jpg"}},
	}
	require.Equal(t, []string{"/img/red.jpg"}, pricing.VariantImages(base, both))
}

func TestRequiredSelected(t *testing.T) {
	t.Parallel()

	groups := []catalog.VariantGroup{
		{Type: "color", Required: true},
		{Type: "storage", Required: true},
		{Type: "engraving"},
	}
	require.False(t, pricing.RequiredSelected(groups, nil))
	require.False(t, pricing.RequiredSelected(groups, catalog.SelectedVariants{"color": {ID: "red"}}))
	require.True(t, pricing.RequiredSelected(groups, catalog.SelectedVariants{
		"color":   {ID: "red"},
		"storage": {ID: "128gb"},
	}))
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	e := pricing.Engine{FreeShippingThreshold: 100_00, FlatShippingRate: 10_00}
	sum := e.Compute([]pricing.Item{
		{Qty: 2, UnitPrice: 30_00, ListPrice: 35_00},
		{Qty: 1, UnitPrice: 20_00},
	})
	require.Equal(t, int64(80_00), sum.Subtotal)
	require.Equal(t, int64(10_00), sum.Discount)
	require.Equal(t, int64(10_00), sum.Shipping)
	require.Equal(t, sum.Subtotal+sum.Shipping, sum.Total)
	require.Equal(t, 3, sum.ItemCount)
}

func TestComputeShippingBoundary(t *testing.T) {
	t.Parallel()

	e := pricing.Engine{FreeShippingThreshold: 100_00, FlatShippingRate: 10_00}

	atThreshold := e.Compute([]pricing.Item{{Qty: 1, UnitPrice: 100_00}})
	require.Equal(t, int64(0), atThreshold.Shipping)

	oneBelow := e.Compute([]pricing.Item{{Qty: 1, UnitPrice: 99_99}})
	require.Equal(t, int64(10_00), oneBelow.Shipping)
}

func TestComputeEmptyCollection(t *testing.T) {
	t.Parallel()

	sum := pricing.Engine{}.Compute(nil)
	require.Equal(t, pricing.Summary{}, sum)
}

func TestComputeDiscountNotClamped(t *testing.T) {
	t.Parallel()

	// A variant delta pushed the charged price above the list price; the
	// negative discount is preserved.
	sum := pricing.Engine{}.Compute([]pricing.Item{{Qty: 1, UnitPrice: 120_00, ListPrice: 100_00}})
	require.Equal(t, int64(-20_00), sum.Discount)
}

func TestComputeSkipsNonPositiveQty(t *testing.T) {
	t.Parallel()

	sum := pricing.Engine{}.Compute([]pricing.Item{
		{Qty: 0, UnitPrice: 50_00},
		{Qty: -3, UnitPrice: 50_00},
	})
	require.Equal(t, int64(0), sum.Subtotal)
	require.Equal(t, 0, sum.ItemCount)
}
