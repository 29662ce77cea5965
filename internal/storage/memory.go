package storage

import (
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
)

// MemoryStore is a non-durable Store for tests and ephemeral sessions. It
// round-trips documents through JSON so state that survives a MemoryStore
// survives the FileStore too.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// Save replaces the namespace document in memory.
func (m *MemoryStore) Save(namespace string, state any) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode %s state: %w", namespace, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs == nil {
		m.docs = make(map[string][]byte)
	}
	m.docs[namespace] = raw
	return nil
}

// Load decodes the namespace document if present.
func (m *MemoryStore) Load(namespace string, dest any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.docs[namespace]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s state: %w", namespace, ErrCorrupt)
	}
	return true, nil
}

// Put stores a raw document, bypassing encoding. Tests use it to simulate
// corrupt persisted state.
func (m *MemoryStore) Put(namespace string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs == nil {
		m.docs = make(map[string][]byte)
	}
	m.docs[namespace] = append([]byte(nil), raw...)
}
