// ABOUTME: Shared behavioural tests for document store backends
// ABOUTME: Every backend package runs the same suite against its own store

package docstoretest

import (
	"context"
	"testing"

	"github.com/harper/mapdraw/internal/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises the docstore.Store contract. newStore must return an empty
// store; Run closes it.
func Run(t *testing.T, newStore func(t *testing.T) docstore.Store) {
	t.Helper()

	t.Run("CreateAndList", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		defer func() { _ = s.Close() }()

		id1, err := s.Create(ctx, docstore.CollectionLines, []byte(`{"points":[]}`))
		require.NoError(t, err)
		id2, err := s.Create(ctx, docstore.CollectionLines, []byte(`{"points":[{"lat":1,"lng":2}]}`))
		require.NoError(t, err)
		assert.NotEqual(t, id1, id2)

		docs, err := s.List(ctx, docstore.CollectionLines)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		// creation order
		assert.Equal(t, id1, docs[0].ID)
		assert.Equal(t, id2, docs[1].ID)
		assert.JSONEq(t, `{"points":[{"lat":1,"lng":2}]}`, string(docs[1].Data))
	})

	t.Run("CollectionsAreIndependent", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		defer func() { _ = s.Close() }()

		_, err := s.Create(ctx, docstore.CollectionLines, []byte(`{"points":[]}`))
		require.NoError(t, err)

		circles, err := s.List(ctx, docstore.CollectionCircles)
		require.NoError(t, err)
		assert.Empty(t, circles)
	})

	t.Run("Replace", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		defer func() { _ = s.Close() }()

		id, err := s.Create(ctx, docstore.CollectionCircles, []byte(`{"radius":1}`))
		require.NoError(t, err)
		require.NoError(t, s.Replace(ctx, docstore.CollectionCircles, id, []byte(`{"radius":2}`)))

		docs, err := s.List(ctx, docstore.CollectionCircles)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.JSONEq(t, `{"radius":2}`, string(docs[0].Data))
	})

	t.Run("ReplaceCreatesMissing", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		defer func() { _ = s.Close() }()

		id := docstore.NewID()
		require.NoError(t, s.Replace(ctx, docstore.CollectionCircles, id, []byte(`{"radius":3}`)))

		docs, err := s.List(ctx, docstore.CollectionCircles)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, id, docs[0].ID)
	})

	t.Run("Delete", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		defer func() { _ = s.Close() }()

		id, err := s.Create(ctx, docstore.CollectionLines, []byte(`{"points":[]}`))
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, docstore.CollectionLines, id))

		docs, err := s.List(ctx, docstore.CollectionLines)
		require.NoError(t, err)
		assert.Empty(t, docs)

		// idempotent
		assert.NoError(t, s.Delete(ctx, docstore.CollectionLines, id))
	})

	t.Run("RejectsEmptyCollection", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		defer func() { _ = s.Close() }()

		_, err := s.Create(ctx, "", []byte(`{}`))
		assert.Error(t, err)
	})
}
