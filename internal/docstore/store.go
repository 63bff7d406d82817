// ABOUTME: Document store interface for persisted shapes
// ABOUTME: Enables testability and storage backend swapping

package docstore

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// Collection names used by the shape sync engine.
const (
	CollectionLines   = "lines"
	CollectionCircles = "circles"
)

// Document is one stored record: an opaque store-assigned id plus a JSON body.
type Document struct {
	ID   string
	Data []byte
}

// Store is the remote document collaborator. Implementations list documents
// in id order; ids come from NewID so that order is creation order.
type Store interface {
	// List returns every document in the collection.
	List(ctx context.Context, collection string) ([]Document, error)
	// Create stores a new document under a generated id and returns the id.
	Create(ctx context.Context, collection string, data []byte) (string, error)
	// Replace overwrites the document with the given id, creating it if absent.
	Replace(ctx context.Context, collection, id string, data []byte) error
	// Delete removes the document. Deleting a missing id is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Close releases the underlying handle.
	Close() error
}

// NewID returns a lexically sortable document id.
func NewID() string {
	return ulid.Make().String()
}
