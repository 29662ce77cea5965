package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-client/internal/catalog"
	"github.com/noah-isme/toko-client/internal/notify"
	"github.com/noah-isme/toko-client/internal/obs"
	"github.com/noah-isme/toko-client/internal/pricing"
	"github.com/noah-isme/toko-client/internal/storage"
)

// ErrNotConfigured is returned when the service is missing its store.
var ErrNotConfigured = errors.New("cart service not configured")

// Line is one cart entry: a product plus an optional fixed variant
// selection and its quantity. UnitPrice is snapshotted when the line is
// created, variant deltas included, and never recomputed afterwards.
type Line struct {
	Product   catalog.Product          `json:"product"`
	Qty       int                      `json:"qty"`
	Selected  catalog.SelectedVariants `json:"selected,omitempty"`
	UnitPrice pricing.Money            `json:"unitPrice"`
}

// Key returns the line's composite identity.
func (l Line) Key() string {
	return ResolveKey(l.Product.ID, l.Selected)
}

// Images returns the image set the line should display.
func (l Line) Images() []string {
	return pricing.VariantImages(l.Product.Images, l.Selected)
}

// Aggregate is the caller-facing cart snapshot: the line collection plus
// the totals derived from it.
type Aggregate struct {
	Items []Line `json:"items"`
	pricing.Summary
}

type state struct {
	Items []Line `json:"items"`
}

// persistedLine mirrors Line for loading. UnitPrice is a pointer so a
// missing snapshot can be told apart from a snapshot of zero, which a
// negative variant delta can legitimately produce.
type persistedLine struct {
	Product   catalog.Product          `json:"product"`
	Qty       int                      `json:"qty"`
	Selected  catalog.SelectedVariants `json:"selected,omitempty"`
	UnitPrice *pricing.Money           `json:"unitPrice"`
}

type persistedState struct {
	Items []persistedLine `json:"items"`
}

// Service owns the authoritative cart line collection. Every mutation
// recomputes totals, persists the new state, then reports the outcome; a
// persistence failure leaves the in-memory state at its last good value.
type Service struct {
	Store     storage.Store
	Sink      notify.Sink
	Engine    pricing.Engine
	Log       zerolog.Logger
	Namespace string

	mu      sync.Mutex
	items   []Line
	summary pricing.Summary
}

func (s *Service) ns() string {
	if s == nil || s.Namespace == "" {
		return "cart"
	}
	return s.Namespace
}

// Restore loads persisted state. Call once before first use; a missing or
// corrupt document yields an empty cart and a diagnostic log, never an
// error, so a damaged saved cart can't take the storefront down.
func (s *Service) Restore() {
	if s == nil || s.Store == nil {
		return
	}
	var doc persistedState
	ok, err := s.Store.Load(s.ns(), &doc)
	if err != nil {
		obs.CountStateDocFailure(s.ns(), "load")
		s.Log.Warn().Err(err).Str("ns", s.ns()).Msg("discard persisted cart state")
		return
	}
	if !ok {
		return
	}
	items := make([]Line, 0, len(doc.Items))
	for _, pl := range doc.Items {
		line := Line{Product: pl.Product, Qty: pl.Qty, Selected: pl.Selected}
		if pl.UnitPrice != nil {
			line.UnitPrice = *pl.UnitPrice
		} else {
			// Documents written without a snapshot fall back to the
			// product price once, here at the restore boundary.
			line.UnitPrice = pl.Product.Price
		}
		items = append(items, line)
	}
	s.mu.Lock()
	s.items = items
	s.summary = s.Engine.Compute(pricingItems(items))
	s.mu.Unlock()
}

// AddLine adds quantity of a product with the given variant selection. A
// line with the same composite key absorbs the quantity; otherwise a new
// line is appended with a fresh price snapshot. Pass silent to suppress the
// user-facing notification, e.g. when looping over a bulk move.
func (s *Service) AddLine(p catalog.Product, qty int, selected catalog.SelectedVariants, silent bool) error {
	if s == nil || s.Store == nil {
		return ErrNotConfigured
	}
	if qty <= 0 {
		qty = 1
	}
	key := ResolveKey(p.ID, selected)

	s.mu.Lock()
	next := s.copyItems()
	merged := false
	for i := range next {
		if next[i].Key() == key {
			next[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, Line{
			Product:   p,
			Qty:       qty,
			Selected:  selected,
			UnitPrice: pricing.VariantPrice(p.Price, selected),
		})
	}
	err := s.commit(next)
	s.mu.Unlock()

	if err != nil {
		return s.fail("add", err)
	}
	obs.CountCartMutation("add", "ok")
	if !silent {
		detail := p.Name + " added to cart"
		if summary := selected.Summary(); summary != "" {
			detail = fmt.Sprintf("%s (%s) added to cart", p.Name, summary)
		}
		s.notify(notify.KindSuccess, "Added to cart", detail)
	}
	return nil
}

// RemoveLine removes the line identified by variantKey, or by the bare
// product id when variantKey is empty. Removing an absent line is an
// idempotent no-op.
func (s *Service) RemoveLine(productID, variantKey string) error {
	if s == nil || s.Store == nil {
		return ErrNotConfigured
	}
	key := lineKey(productID, variantKey)

	s.mu.Lock()
	idx := s.indexOf(key)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.items[idx]
	next := s.copyItems()
	next = append(next[:idx], next[idx+1:]...)
	err := s.commit(next)
	s.mu.Unlock()

	if err != nil {
		return s.fail("remove", err)
	}
	obs.CountCartMutation("remove", "ok")
	detail := removed.Product.Name + " removed from cart"
	if summary := removed.Selected.Summary(); summary != "" {
		detail = fmt.Sprintf("%s (%s) removed from cart", removed.Product.Name, summary)
	}
	s.notify(notify.KindSuccess, "Removed from cart", detail)
	return nil
}

// SetQuantity overwrites a line's quantity. A quantity of zero or less
// removes the line. Quantity changes are continuous UI interactions, so no
// notification is emitted. Updating an absent line is a no-op.
func (s *Service) SetQuantity(productID string, qty int, variantKey string) error {
	if s == nil || s.Store == nil {
		return ErrNotConfigured
	}
	if qty <= 0 {
		return s.RemoveLine(productID, variantKey)
	}
	key := lineKey(productID, variantKey)

	s.mu.Lock()
	idx := s.indexOf(key)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	next := s.copyItems()
	next[idx].Qty = qty
	err := s.commit(next)
	s.mu.Unlock()

	if err != nil {
		return s.fail("update_qty", err)
	}
	obs.CountCartMutation("update_qty", "ok")
	return nil
}

// Clear resets the cart to the empty aggregate.
func (s *Service) Clear() error {
	if s == nil || s.Store == nil {
		return ErrNotConfigured
	}
	s.mu.Lock()
	err := s.commit(nil)
	s.mu.Unlock()
	if err != nil {
		return s.fail("clear", err)
	}
	obs.CountCartMutation("clear", "ok")
	return nil
}

// Line returns the line identified by variantKey (or the bare product id).
func (s *Service) Line(productID, variantKey string) (Line, bool) {
	if s == nil {
		return Line{}, false
	}
	key := lineKey(productID, variantKey)
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(key)
	if idx < 0 {
		return Line{}, false
	}
	return s.items[idx], true
}

// Contains reports whether a matching line exists.
func (s *Service) Contains(productID, variantKey string) bool {
	_, ok := s.Line(productID, variantKey)
	return ok
}

// Items returns a copy of the line collection in insertion order.
func (s *Service) Items() []Line {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// Aggregate returns the current cart snapshot with derived totals.
func (s *Service) Aggregate() Aggregate {
	if s == nil {
		return Aggregate{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return Aggregate{Items: s.copyItems(), Summary: s.summary}
}

// Count returns the total quantity across all lines.
func (s *Service) Count() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary.ItemCount
}

// commit persists the candidate collection and, only on success, makes it
// the authoritative state. Caller holds the lock.
func (s *Service) commit(next []Line) error {
	sum := s.Engine.Compute(pricingItems(next))
	if err := s.Store.Save(s.ns(), state{Items: next}); err != nil {
		obs.CountStateDocFailure(s.ns(), "save")
		return fmt.Errorf("persist cart state: %w", err)
	}
	s.items = next
	s.summary = sum
	return nil
}

func (s *Service) copyItems() []Line {
	if len(s.items) == 0 {
		return nil
	}
	return append([]Line(nil), s.items...)
}

func (s *Service) indexOf(key string) int {
	for i := range s.items {
		if s.items[i].Key() == key {
			return i
		}
	}
	return -1
}

func (s *Service) fail(op string, err error) error {
	obs.CountCartMutation(op, "error")
	s.Log.Error().Err(err).Str("op", op).Msg("cart operation failed")
	s.notify(notify.KindError, "Cart unavailable", "Something went wrong. Please try again.")
	return err
}

func (s *Service) notify(kind notify.Kind, title, detail string) {
	if s.Sink == nil {
		return
	}
	s.Sink.Notify(kind, title, detail)
}

func lineKey(productID, variantKey string) string {
	if variantKey != "" {
		return variantKey
	}
	return productID
}

func pricingItems(lines []Line) []pricing.Item {
	if len(lines) == 0 {
		return nil
	}
	items := make([]pricing.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, pricing.Item{
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
			ListPrice: l.Product.OriginalPrice,
		})
	}
	return items
}
