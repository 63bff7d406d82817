// ABOUTME: Collection name validation shared by every backend
// ABOUTME: Keeps names safe to embed in key-value keys

package docstore

import (
	"errors"
	"fmt"
)

// ValidateCollection rejects empty collection names and ones containing the
// key separator used by the key-value backends.
func ValidateCollection(collection string) error {
	if collection == "" {
		return errors.New("collection name cannot be empty")
	}
	for _, r := range collection {
		if r == ':' || r == '/' {
			return fmt.Errorf("invalid collection name %q", collection)
		}
	}
	return nil
}
