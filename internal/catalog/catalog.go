package catalog

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Product is a read-only catalog record. Stores snapshot whatever they need
// from it and never mutate it.
type Product struct {
	ID            string         `json:"id" validate:"required"`
	Name          string         `json:"name" validate:"required"`
	Slug          string         `json:"slug"`
	Price         int64          `json:"price" validate:"gte=0"`
	OriginalPrice int64          `json:"originalPrice,omitempty"`
	Images        []string       `json:"images,omitempty"`
	VariantGroups []VariantGroup `json:"variantGroups,omitempty"`
}

// VariantGroup is one selectable axis of a product, e.g. color or storage.
type VariantGroup struct {
	Type     string          `json:"type" validate:"required"`
	Name     string          `json:"name"`
	Required bool            `json:"required"`
	Options  []VariantOption `json:"options" validate:"dive"`
}

// VariantOption is a single choice within a group. PriceDelta is added to the
// product base price and may be negative. Images, when present, replace the
// product image set for lines carrying this option.
type VariantOption struct {
	ID         string   `json:"id" validate:"required"`
	Value      string   `json:"value"`
	PriceDelta int64    `json:"priceDelta,omitempty"`
	Images     []string `json:"images,omitempty"`
}

// SelectedVariants maps a group type to the single option chosen from it.
type SelectedVariants map[string]VariantOption

// Types returns the selected group types in sorted order so that every
// iteration over a selection is deterministic.
func (s SelectedVariants) Types() []string {
	if len(s) == 0 {
		return nil
	}
	types := make([]string, 0, len(s))
	for t := range s {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Summary renders a selection as "Color: Red, Storage: 128GB" for
// user-facing messages. Group types are title-cased as-is; the catalog seed
// already carries display names on groups, but a selection only knows types.
func (s SelectedVariants) Summary() string {
	types := s.Types()
	if len(types) == 0 {
		return ""
	}
	parts := make([]string, 0, len(types))
	for _, t := range types {
		opt := s[t]
		label := opt.Value
		if label == "" {
			label = opt.ID
		}
		parts = append(parts, titleCase(t)+": "+label)
	}
	return strings.Join(parts, ", ")
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
