// ABOUTME: Tests for the shape collection and its sync bookkeeping
// ABOUTME: Runs passes against an in-memory document store

package editor

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harper/mapdraw/internal/docstore"
	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) (*sync.Engine, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	engine, err := sync.NewEngine(store, log.New(io.Discard))
	require.NoError(t, err)
	return engine, store
}

func triangle() []models.Point {
	return []models.Point{pt(0, 0), pt(0, 1), pt(1, 1)}
}

func TestCollection_AppendValidates(t *testing.T) {
	c := NewCollection()
	assert.Error(t, c.Append(models.NewLine(triangle()[:2])))
	assert.Error(t, c.Append(models.NewCircle(pt(0, 0), 0)))
	assert.Equal(t, 0, c.Len(models.KindLine))

	circle := models.NewCircle(pt(0, 0), 5)
	circle.Drawing = true
	require.NoError(t, c.Append(circle))
	assert.False(t, c.Circles()[0].Drawing)
}

func TestCollection_RemoveOutOfRange(t *testing.T) {
	c := NewCollection()
	_, err := c.Remove(models.KindLine, 0)
	assert.Error(t, err)
	_, err = c.Remove(models.Kind("square"), 0)
	assert.Error(t, err)
}

func TestCollection_SyncNowRoundTrip(t *testing.T) {
	engine, store := newEngine(t)
	ctx := context.Background()
	c := NewCollection()

	require.NoError(t, c.Append(models.NewLine(triangle())))
	require.NoError(t, c.Append(models.NewLine(triangle())))

	res := c.SyncNow(ctx, engine, models.KindLine)
	assert.Len(t, res.Created, 2)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.NotEmpty(t, lines[0].RemoteID)
	assert.NotEmpty(t, lines[1].RemoteID)

	// A second pass replaces instead of creating
	res = c.SyncNow(ctx, engine, models.KindLine)
	assert.Empty(t, res.Created)
	assert.Equal(t, 2, res.Replaced)

	_, err := c.Remove(models.KindLine, 0)
	require.NoError(t, err)
	res = c.SyncNow(ctx, engine, models.KindLine)
	assert.Equal(t, []string{lines[0].RemoteID}, res.Deleted)
	assert.Empty(t, c.Orphans(models.KindLine))

	docs, err := store.List(ctx, "lines")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, lines[1].RemoteID, docs[0].ID)

	// Hydrating reproduces the surviving record
	snap, err := engine.Hydrate(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, lines[1].Points, snap.Lines[0].Points)
}

func TestCollection_OverlappingPassesCreateOnce(t *testing.T) {
	engine, store := newEngine(t)
	ctx := context.Background()
	c := NewCollection()

	require.NoError(t, c.Append(models.NewCircle(pt(1, 1), 50)))

	first := c.BeginSync(models.KindCircle)
	second := c.BeginSync(models.KindCircle)
	assert.Len(t, first.Shapes, 1)
	assert.Empty(t, second.Shapes, "a shape whose create is in flight is not sent again")

	c.EndSync(second, engine.Run(ctx, second))
	c.EndSync(first, engine.Run(ctx, first))

	docs, err := store.List(ctx, "circles")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, docs[0].ID, c.Circles()[0].RemoteID)
}

func TestCollection_RemovedDuringCreateBecomesOrphan(t *testing.T) {
	engine, store := newEngine(t)
	ctx := context.Background()
	c := NewCollection()

	require.NoError(t, c.Append(models.NewLine(triangle())))
	pass := c.BeginSync(models.KindLine)
	res := engine.Run(ctx, pass)

	_, err := c.Remove(models.KindLine, 0)
	require.NoError(t, err)
	c.EndSync(pass, res)

	orphans := c.Orphans(models.KindLine)
	require.Len(t, orphans, 1)

	c.SyncNow(ctx, engine, models.KindLine)
	docs, err := store.List(ctx, "lines")
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Empty(t, c.Orphans(models.KindLine))
}

func TestCollection_BeginSyncSkipsDrawingCircle(t *testing.T) {
	e := New()
	e.HandlePointer(down(pt(1, 1), true))
	e.HandlePointer(move(pt(1, 1.01)))

	pass := e.Shapes().BeginSync(models.KindCircle)
	assert.Empty(t, pass.Shapes)
}

func TestCollection_SeedResetsBookkeeping(t *testing.T) {
	c := NewCollection()
	l := models.NewLine(triangle())
	l.RemoteID = "L1"
	c.Seed(sync.Snapshot{Lines: []models.Shape{l}})

	_, err := c.Remove(models.KindLine, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"L1"}, c.Orphans(models.KindLine))

	c.Seed(sync.Snapshot{})
	assert.Empty(t, c.Orphans(models.KindLine))
	assert.Equal(t, 0, c.Len(models.KindLine))
}
