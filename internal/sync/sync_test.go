// ABOUTME: Tests for hydration and sync passes
// ABOUTME: Covers create/replace/delete ordering and best-effort failure handling

package sync

import (
	"context"
	"testing"

	"github.com/harper/mapdraw/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() []models.Point {
	return []models.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}}
}

func TestNewEngine_RequiresStore(t *testing.T) {
	_, err := NewEngine(nil, nil)
	assert.Error(t, err)
}

func TestRun_CreatesNewShapes(t *testing.T) {
	engine, store := setupTestEngine(t)
	ctx := context.Background()

	a := models.NewLine(square())
	b := models.NewLine(square())
	res := engine.Run(ctx, Pass{Kind: models.KindLine, Shapes: []models.Shape{a, b}})

	assert.Equal(t, 0, res.Failures)
	require.Len(t, res.Created, 2)
	assert.NotEmpty(t, res.Created[a.LocalID])
	assert.NotEmpty(t, res.Created[b.LocalID])

	docs, err := store.List(ctx, "lines")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, res.Created[a.LocalID], docs[0].ID, "documents list in creation order")
}

func TestRun_ReplacesKnownShapes(t *testing.T) {
	engine, store := setupTestEngine(t)
	ctx := context.Background()

	c := models.NewCircle(models.Point{Lat: 1, Lng: 2}, 100)
	c.RemoteID = "C1"
	res := engine.Run(ctx, Pass{Kind: models.KindCircle, Shapes: []models.Shape{c}})

	assert.Equal(t, 1, res.Replaced)
	assert.Empty(t, res.Created)
	assert.Equal(t, []string{"replace C1"}, store.calls)

	docs, err := store.List(ctx, "circles")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.JSONEq(t, `{"center":{"lat":1,"lng":2},"radius":100}`, string(docs[0].Data))
}

func TestRun_DeletesOrphansFromTailFirst(t *testing.T) {
	engine, store := setupTestEngine(t)
	ctx := context.Background()

	line := models.NewLine(square())
	line.RemoteID = "L3"
	res := engine.Run(ctx, Pass{
		Kind:    models.KindLine,
		Shapes:  []models.Shape{line},
		Orphans: []string{"L1", "L2"},
	})

	assert.Equal(t, []string{"delete L2", "delete L1", "replace L3"}, store.calls)
	assert.ElementsMatch(t, []string{"L1", "L2"}, res.Deleted)
}

func TestRun_SkipsDrawingCircles(t *testing.T) {
	engine, store := setupTestEngine(t)

	c := models.NewCircle(models.Point{Lat: 1, Lng: 2}, 100)
	c.Drawing = true
	res := engine.Run(context.Background(), Pass{Kind: models.KindCircle, Shapes: []models.Shape{c}})

	assert.Empty(t, res.Created)
	assert.Empty(t, store.calls)
}

func TestRun_FailuresDoNotStopPass(t *testing.T) {
	engine, store := setupTestEngine(t)
	ctx := context.Background()

	store.failDelete["gone"] = true
	store.failReplace["L1"] = true

	first := models.NewLine(square())
	first.RemoteID = "L1"
	second := models.NewLine(square())

	res := engine.Run(ctx, Pass{
		Kind:    models.KindLine,
		Shapes:  []models.Shape{first, second},
		Orphans: []string{"gone"},
	})

	assert.Equal(t, 2, res.Failures)
	assert.Empty(t, res.Deleted, "failed deletes stay orphaned")
	assert.Len(t, res.Created, 1)
	assert.NotEmpty(t, res.Created[second.LocalID])
}

func TestRun_CreateFailureLeavesShapeUnsynced(t *testing.T) {
	engine, store := setupTestEngine(t)
	store.failCreate = true

	line := models.NewLine(square())
	res := engine.Run(context.Background(), Pass{Kind: models.KindLine, Shapes: []models.Shape{line}})

	assert.Equal(t, 1, res.Failures)
	assert.Empty(t, res.Created)
}

func TestHydrate(t *testing.T) {
	engine, store := setupTestEngine(t)
	ctx := context.Background()

	_, err := store.MemoryStore.Create(ctx, "lines", []byte(`{"points":[{"lat":0,"lng":0},{"lat":0,"lng":1},{"lat":1,"lng":1}]}`))
	require.NoError(t, err)
	_, err = store.MemoryStore.Create(ctx, "lines", []byte(`{"nope":true}`))
	require.NoError(t, err)
	circleID, err := store.MemoryStore.Create(ctx, "circles", []byte(`{"center":{"lat":5,"lng":6},"radius":42}`))
	require.NoError(t, err)
	_, err = store.MemoryStore.Create(ctx, "circles", []byte(`{"center":{"lat":5,"lng":6},"radius":0}`))
	require.NoError(t, err)

	snap, err := engine.Hydrate(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Lines, 1)
	assert.Len(t, snap.Lines[0].Points, 3)
	assert.NotEmpty(t, snap.Lines[0].RemoteID)

	require.Len(t, snap.Circles, 1)
	assert.Equal(t, circleID, snap.Circles[0].RemoteID)
	assert.Equal(t, models.Point{Lat: 5, Lng: 6}, snap.Circles[0].Center)
	assert.Equal(t, 42.0, snap.Circles[0].Radius)
	assert.False(t, snap.Circles[0].Drawing)
}

func TestHydrate_ListError(t *testing.T) {
	engine, store := setupTestEngine(t)
	store.failList = true

	_, err := engine.Hydrate(context.Background())
	assert.ErrorIs(t, err, errInjected)
}

func TestHydrate_Empty(t *testing.T) {
	engine, _ := setupTestEngine(t)

	snap, err := engine.Hydrate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Lines)
	assert.Empty(t, snap.Circles)
}

func TestHydrate_RestoresOrderAfterRetriedCreate(t *testing.T) {
	engine, store := setupTestEngine(t)
	ctx := context.Background()

	first := models.NewLine(square())
	second := models.NewLine(square())

	store.failCreates = 1
	res := engine.Run(ctx, Pass{Kind: models.KindLine, Shapes: []models.Shape{first, second}})
	require.Equal(t, 1, res.Failures)
	second.RemoteID = res.Created[second.LocalID]
	require.NotEmpty(t, second.RemoteID)

	// The retry gives the first line a later id than the second
	res = engine.Run(ctx, Pass{Kind: models.KindLine, Shapes: []models.Shape{first, second}})
	require.Equal(t, 0, res.Failures)
	first.RemoteID = res.Created[first.LocalID]
	require.Greater(t, first.RemoteID, second.RemoteID)

	snap, err := engine.Hydrate(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Lines, 2)
	assert.Equal(t, first.RemoteID, snap.Lines[0].RemoteID)
	assert.Equal(t, second.RemoteID, snap.Lines[1].RemoteID)
}

func TestHydrate_UnorderedDocumentsKeepListOrder(t *testing.T) {
	engine, store := setupTestEngine(t)
	ctx := context.Background()

	a, err := store.Create(ctx, "circles", []byte(`{"center":{"lat":1,"lng":1},"radius":10}`))
	require.NoError(t, err)
	b, err := store.Create(ctx, "circles", []byte(`{"center":{"lat":2,"lng":2},"radius":20}`))
	require.NoError(t, err)

	snap, err := engine.Hydrate(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Circles, 2)
	assert.Equal(t, a, snap.Circles[0].RemoteID)
	assert.Equal(t, b, snap.Circles[1].RemoteID)
}
