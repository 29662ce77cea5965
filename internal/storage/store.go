// Package storage persists one state document per namespace. Both the cart
// and wishlist stores save their whole state on every mutation and load it
// once at startup; namespaces key durable storage and must stay stable
// across releases.
package storage

import "errors"

// ErrCorrupt indicates a persisted document exists but could not be decoded.
var ErrCorrupt = errors.New("corrupt state document")

// Store is the durable key-value adapter shared by the stores.
type Store interface {
	// Save durably replaces the document under the namespace.
	Save(namespace string, state any) error
	// Load decodes the document under the namespace into dest. It returns
	// false with a nil error when no document exists, and false with an
	// error wrapping ErrCorrupt when one exists but cannot be decoded.
	Load(namespace string, dest any) (bool, error)
}
