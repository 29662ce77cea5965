package pricing

import (
	"github.com/noah-isme/toko-client/internal/catalog"
)

// Money represents a monetary value stored in minor units.
type Money = int64

// Defaults applied when an Engine field is left zero.
const (
	DefaultFreeShippingThreshold Money = 100_00
	DefaultFlatShippingRate      Money = 10_00
)

// VariantPrice computes the effective unit price for a product given its
// variant selection: the base price plus every selected option's delta.
// Deltas may be negative and the result is not clamped.
func VariantPrice(base Money, selected catalog.SelectedVariants) Money {
	price := base
	for _, t := range selected.Types() {
		price += selected[t].PriceDelta
	}
	return price
}

// VariantImages resolves which image set a line should display: the first
// selected option (in sorted group order) carrying a dedicated image list,
// falling back to the product's own images.
func VariantImages(base []string, selected catalog.SelectedVariants) []string {
	for _, t := range selected.Types() {
		if imgs := selected[t].Images; len(imgs) > 0 {
			return imgs
		}
	}
	return base
}

// RequiredSelected reports whether every required variant group has a
// selection. Enforcement is left to callers; stores never block on it.
func RequiredSelected(groups []catalog.VariantGroup, selected catalog.SelectedVariants) bool {
	for _, g := range groups {
		if !g.Required {
			continue
		}
		if _, ok := selected[g.Type]; !ok {
			return false
		}
	}
	return true
}

// Item describes a line item used for totals calculation.
type Item struct {
	Qty       int
	UnitPrice Money
	// ListPrice is the product's pre-discount price; zero means the product
	// has none and the line contributes no discount.
	ListPrice Money
}

// Summary aggregates computed totals over a line collection.
type Summary struct {
	Subtotal  Money `json:"subtotal"`
	Discount  Money `json:"discount"`
	Shipping  Money `json:"shipping"`
	Total     Money `json:"total"`
	ItemCount int   `json:"itemCount"`
}

// Engine computes cart totals. The zero value uses the default shipping
// thresholds.
type Engine struct {
	FreeShippingThreshold Money
	FlatShippingRate      Money
}

func (e Engine) threshold() Money {
	if e.FreeShippingThreshold <= 0 {
		return DefaultFreeShippingThreshold
	}
	return e.FreeShippingThreshold
}

func (e Engine) flatRate() Money {
	if e.FlatShippingRate <= 0 {
		return DefaultFlatShippingRate
	}
	return e.FlatShippingRate
}

// Compute calculates totals for the given lines. Discount is the gap between
// list price and charged price summed over quantity, and is deliberately not
// clamped: a variant delta may push the charged price above the list price
// and the negative contribution is preserved. Shipping is a step function on
// the subtotal; an empty collection ships nothing.
func (e Engine) Compute(items []Item) Summary {
	var sum Summary
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		qty := Money(it.Qty)
		sum.Subtotal += qty * it.UnitPrice
		sum.ItemCount += it.Qty
		if it.ListPrice != 0 {
			sum.Discount += (it.ListPrice - it.UnitPrice) * qty
		}
	}
	if sum.ItemCount > 0 && sum.Subtotal < e.threshold() {
		sum.Shipping = e.flatRate()
	}
	sum.Total = sum.Subtotal + sum.Shipping
	return sum
}
