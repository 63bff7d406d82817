// ABOUTME: Bulk operations over every shape collection of a store
// ABOUTME: Counting, copying between backends under the same ids, and clearing

package docstore

import (
	"context"
	"fmt"
)

// Collections lists every collection the shape engine writes.
var Collections = []string{CollectionLines, CollectionCircles}

// Summary counts the documents touched per collection.
type Summary map[string]int

// Total returns the number of documents touched.
func (s Summary) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

// Count returns the number of documents across the given collections.
func Count(ctx context.Context, store Store, collections ...string) (int, error) {
	n := 0
	for _, coll := range collections {
		docs, err := store.List(ctx, coll)
		if err != nil {
			return 0, fmt.Errorf("list %s: %w", coll, err)
		}
		n += len(docs)
	}
	return n, nil
}

// Copy writes every document of the given collections from src into dst
// under the same id. Existing documents with the same id are overwritten.
func Copy(ctx context.Context, src, dst Store, collections ...string) (Summary, error) {
	summary := make(Summary, len(collections))
	for _, coll := range collections {
		docs, err := src.List(ctx, coll)
		if err != nil {
			return summary, fmt.Errorf("list %s: %w", coll, err)
		}
		for _, doc := range docs {
			if err := dst.Replace(ctx, coll, doc.ID, doc.Data); err != nil {
				return summary, fmt.Errorf("copy %s/%s: %w", coll, doc.ID, err)
			}
			summary[coll]++
		}
	}
	return summary, nil
}

// Clear deletes every document of the given collections.
func Clear(ctx context.Context, store Store, collections ...string) (Summary, error) {
	summary := make(Summary, len(collections))
	for _, coll := range collections {
		docs, err := store.List(ctx, coll)
		if err != nil {
			return summary, fmt.Errorf("list %s: %w", coll, err)
		}
		for _, doc := range docs {
			if err := store.Delete(ctx, coll, doc.ID); err != nil {
				return summary, fmt.Errorf("delete %s/%s: %w", coll, doc.ID, err)
			}
			summary[coll]++
		}
	}
	return summary, nil
}
