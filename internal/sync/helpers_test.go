// ABOUTME: Shared test helpers for sync package tests
// ABOUTME: Provides a document store that fails selected operations on demand

package sync

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harper/mapdraw/internal/docstore"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

// flakyStore wraps a MemoryStore and fails operations selected by the test.
type flakyStore struct {
	*docstore.MemoryStore
	failList    bool
	failCreate  bool
	// failCreates fails that many upcoming creates
	failCreates int
	failReplace map[string]bool
	failDelete  map[string]bool
	calls       []string
}

func newFlakyStore() *flakyStore {
	return &flakyStore{
		MemoryStore: docstore.NewMemoryStore(),
		failReplace: make(map[string]bool),
		failDelete:  make(map[string]bool),
	}
}

func (f *flakyStore) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	if f.failList {
		return nil, errInjected
	}
	return f.MemoryStore.List(ctx, collection)
}

func (f *flakyStore) Create(ctx context.Context, collection string, data []byte) (string, error) {
	f.calls = append(f.calls, "create")
	if f.failCreate {
		return "", errInjected
	}
	if f.failCreates > 0 {
		f.failCreates--
		return "", errInjected
	}
	return f.MemoryStore.Create(ctx, collection, data)
}

func (f *flakyStore) Replace(ctx context.Context, collection, id string, data []byte) error {
	f.calls = append(f.calls, "replace "+id)
	if f.failReplace[id] {
		return errInjected
	}
	return f.MemoryStore.Replace(ctx, collection, id, data)
}

func (f *flakyStore) Delete(ctx context.Context, collection, id string) error {
	f.calls = append(f.calls, "delete "+id)
	if f.failDelete[id] {
		return errInjected
	}
	return f.MemoryStore.Delete(ctx, collection, id)
}

// setupTestEngine returns an engine over a flaky store with a silent logger.
func setupTestEngine(t *testing.T) (*Engine, *flakyStore) {
	t.Helper()

	store := newFlakyStore()
	engine, err := NewEngine(store, log.New(io.Discard))
	require.NoError(t, err)
	return engine, store
}
