package wishlist

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-client/internal/catalog"
	"github.com/noah-isme/toko-client/internal/notify"
	"github.com/noah-isme/toko-client/internal/obs"
	"github.com/noah-isme/toko-client/internal/storage"
)

// ErrNotConfigured is returned when the service is missing its store.
var ErrNotConfigured = errors.New("wishlist service not configured")

// ErrNotFound indicates the requested entry does not exist.
var ErrNotFound = errors.New("wishlist entry not found")

// Entry is one saved-for-later product. At most one entry exists per
// product id.
type Entry struct {
	Product catalog.Product `json:"product"`
	AddedAt time.Time       `json:"addedAt"`
}

// CartService is the slice of the cart store the wishlist needs for moves.
// The wishlist never touches cart state directly.
type CartService interface {
	AddLine(p catalog.Product, qty int, selected catalog.SelectedVariants, silent bool) error
}

type state struct {
	Entries []Entry `json:"entries"`
}

// Service owns the saved-for-later collection, persisted independently of
// the cart under its own namespace.
type Service struct {
	Store     storage.Store
	Sink      notify.Sink
	Cart      CartService
	Log       zerolog.Logger
	Namespace string
	// ShareBaseURL prefixes generated share links.
	ShareBaseURL string
	Now          func() time.Time

	mu      sync.Mutex
	entries []Entry
}

func (s *Service) ns() string {
	if s == nil || s.Namespace == "" {
		return "wishlist"
	}
	return s.Namespace
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Restore loads persisted state. Missing or corrupt documents yield an
// empty wishlist and a diagnostic log.
func (s *Service) Restore() {
	if s == nil || s.Store == nil {
		return
	}
	var doc state
	ok, err := s.Store.Load(s.ns(), &doc)
	if err != nil {
		obs.CountStateDocFailure(s.ns(), "load")
		s.Log.Warn().Err(err).Str("ns", s.ns()).Msg("discard persisted wishlist state")
		return
	}
	if !ok {
		return
	}
	s.mu.Lock()
	s.entries = doc.Entries
	s.mu.Unlock()
}

// Add saves a product. Adding a product that is already saved is a no-op
// reported with a distinct "already saved" notification.
func (s *Service) Add(p catalog.Product) error {
	if s == nil || s.Store == nil {
		return ErrNotConfigured
	}
	s.mu.Lock()
	if s.indexOf(p.ID) >= 0 {
		s.mu.Unlock()
		obs.CountWishlistMutation("add", "duplicate")
		s.notify(notify.KindInfo, "Already saved", p.Name+" is already in your wishlist")
		return nil
	}
	next := append(s.copyEntries(), Entry{Product: p, AddedAt: s.now()})
	err := s.commit(next)
	s.mu.Unlock()

	if err != nil {
		return s.fail("add", err)
	}
	obs.CountWishlistMutation("add", "ok")
	s.notify(notify.KindSuccess, "Saved to wishlist", p.Name+" added to your wishlist")
	return nil
}

// Remove deletes the entry for the product if present; removing an absent
// entry is an idempotent no-op. Pass silent to suppress the notification
// during bulk operations.
func (s *Service) Remove(productID string, silent bool) error {
	if s == nil || s.Store == nil {
		return ErrNotConfigured
	}
	s.mu.Lock()
	idx := s.indexOf(productID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.entries[idx]
	next := s.copyEntries()
	next = append(next[:idx], next[idx+1:]...)
	err := s.commit(next)
	s.mu.Unlock()

	if err != nil {
		return s.fail("remove", err)
	}
	obs.CountWishlistMutation("remove", "ok")
	if !silent {
		s.notify(notify.KindSuccess, "Removed from wishlist", removed.Product.Name+" removed from your wishlist")
	}
	return nil
}

// Clear empties the wishlist and reports a single summary.
func (s *Service) Clear() error {
	if s == nil || s.Store == nil {
		return ErrNotConfigured
	}
	s.mu.Lock()
	count := len(s.entries)
	err := s.commit(nil)
	s.mu.Unlock()

	if err != nil {
		return s.fail("clear", err)
	}
	obs.CountWishlistMutation("clear", "ok")
	s.notify(notify.KindSuccess, "Wishlist cleared", fmt.Sprintf("%d items removed", count))
	return nil
}

// Contains reports whether the product is saved.
func (s *Service) Contains(productID string) bool {
	_, ok := s.Entry(productID)
	return ok
}

// Entry returns the saved entry for the product.
func (s *Service) Entry(productID string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(productID)
	if idx < 0 {
		return Entry{}, false
	}
	return s.entries[idx], true
}

// Entries returns a copy of the collection in insertion order.
func (s *Service) Entries() []Entry {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyEntries()
}

// Count returns the number of saved entries.
func (s *Service) Count() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// MoveToCart adds the saved product to the cart, then removes it here. The
// cart announces the addition, so the removal stays silent. Moving a
// product that isn't saved is caller misuse and reported as an error.
// The two steps are sequential, not transactional; a failure between them
// is logged distinctly and not rolled back.
func (s *Service) MoveToCart(productID string, qty int) error {
	if s == nil || s.Store == nil {
		return ErrNotConfigured
	}
	if s.Cart == nil {
		return fmt.Errorf("cart handle missing: %w", ErrNotConfigured)
	}
	entry, ok := s.Entry(productID)
	if !ok {
		obs.CountWishlistMutation("move", "not_found")
		s.notify(notify.KindError, "Item not found", "That item is no longer in your wishlist")
		return ErrNotFound
	}
	if err := s.Cart.AddLine(entry.Product, qty, nil, false); err != nil {
		s.Log.Error().Err(err).Str("product_id", productID).Msg("move to cart: add failed, entry kept")
		obs.CountWishlistMutation("move", "error")
		return err
	}
	if err := s.Remove(productID, true); err != nil {
		s.Log.Error().Err(err).Str("product_id", productID).Msg("move to cart: partial outcome, added to cart but still saved")
		return err
	}
	obs.CountWishlistMutation("move", "ok")
	return nil
}

// BulkMoveToCart moves every valid entry to the cart, suppressing per-item
// notifications, and emits one summary. Ids without an entry are skipped.
// Returns how many items were moved.
func (s *Service) BulkMoveToCart(productIDs []string) int {
	if s == nil || s.Store == nil || s.Cart == nil {
		return 0
	}
	valid := make([]Entry, 0, len(productIDs))
	for _, id := range productIDs {
		if entry, ok := s.Entry(id); ok {
			valid = append(valid, entry)
		}
	}
	if len(valid) == 0 {
		obs.CountWishlistMutation("bulk_move", "not_found")
		s.notify(notify.KindError, "Nothing to move", "None of the selected items are in your wishlist")
		return 0
	}

	moved := 0
	for _, entry := range valid {
		if err := s.Cart.AddLine(entry.Product, 1, nil, true); err != nil {
			s.Log.Error().Err(err).Str("product_id", entry.Product.ID).Msg("bulk move: add failed, entry kept")
			continue
		}
		if err := s.Remove(entry.Product.ID, true); err != nil {
			s.Log.Error().Err(err).Str("product_id", entry.Product.ID).Msg("bulk move: partial outcome, added to cart but still saved")
		}
		moved++
	}
	obs.CountWishlistMutation("bulk_move", "ok")
	s.notify(notify.KindSuccess, "Moved to cart", fmt.Sprintf("%d items moved to your cart", moved))
	return moved
}

// commit persists the candidate collection and, only on success, makes it
// the authoritative state. Caller holds the lock.
func (s *Service) commit(next []Entry) error {
	if err := s.Store.Save(s.ns(), state{Entries: next}); err != nil {
		obs.CountStateDocFailure(s.ns(), "save")
		return fmt.Errorf("persist wishlist state: %w", err)
	}
	s.entries = next
	return nil
}

func (s *Service) copyEntries() []Entry {
	if len(s.entries) == 0 {
		return nil
	}
	return append([]Entry(nil), s.entries...)
}

func (s *Service) indexOf(productID string) int {
	for i := range s.entries {
		if s.entries[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Service) fail(op string, err error) error {
	obs.CountWishlistMutation(op, "error")
	s.Log.Error().Err(err).Str("op", op).Msg("wishlist operation failed")
	s.notify(notify.KindError, "Wishlist unavailable", "Something went wrong. Please try again.")
	return err
}

func (s *Service) notify(kind notify.Kind, title, detail string) {
	if s.Sink == nil {
		return
	}
	s.Sink.Notify(kind, title, detail)
}
