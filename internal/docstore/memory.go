// ABOUTME: In-memory document store
// ABOUTME: Used for tests and the ephemeral "memory" backend

package docstore

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string][]byte)}
}

// List returns every document in the collection in id order.
func (m *MemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	coll := m.docs[collection]
	docs := make([]Document, 0, len(coll))
	for id, data := range coll {
		docs = append(docs, Document{ID: id, Data: append([]byte(nil), data...)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Create stores a new document under a generated id.
func (m *MemoryStore) Create(ctx context.Context, collection string, data []byte) (string, error) {
	id := NewID()
	if err := m.Replace(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Replace overwrites or creates the document.
func (m *MemoryStore) Replace(_ context.Context, collection, id string, data []byte) error {
	if err := ValidateCollection(collection); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.docs[collection]
	if !ok {
		coll = make(map[string][]byte)
		m.docs[collection] = coll
	}
	coll[id] = append([]byte(nil), data...)
	return nil
}

// Delete removes the document if present.
func (m *MemoryStore) Delete(_ context.Context, collection, id string) error {
	if err := ValidateCollection(collection); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs[collection], id)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
