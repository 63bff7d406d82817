// ABOUTME: Tests for one-shot editing against the document store
// ABOUTME: Covers load, flush, and delete by index

package editor

import (
	"context"
	"testing"

	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFlushDelete(t *testing.T) {
	engine, store := newEngine(t)
	ctx := context.Background()

	ed, err := Load(ctx, engine)
	require.NoError(t, err)
	assert.Empty(t, ed.Lines())

	_, change, err := ed.AddLine(triangle())
	require.NoError(t, err)
	_, change2, err := ed.AddCircle(pt(1, 1), 250)
	require.NoError(t, err)

	results := ed.Flush(ctx, engine, change|change2)
	require.Len(t, results, 2)
	assert.Equal(t, 0, Failures(results))

	again, err := Load(ctx, engine)
	require.NoError(t, err)
	require.Len(t, again.Lines(), 1)
	require.Len(t, again.Circles(), 1)

	removed, change, err := again.Delete(models.KindCircle, 0)
	require.NoError(t, err)
	assert.Equal(t, 250.0, removed.Radius)
	again.Flush(ctx, engine, change)

	docs, err := store.List(ctx, models.KindCircle.Collection())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDelete_OutOfRange(t *testing.T) {
	ed := New()
	_, change, err := ed.Delete(models.KindLine, 0)
	assert.Error(t, err)
	assert.Equal(t, ChangeNone, change)
}

func TestFailures(t *testing.T) {
	assert.Equal(t, 3, Failures([]sync.Result{{Failures: 1}, {Failures: 2}}))
	assert.Equal(t, 0, Failures(nil))
}
