// ABOUTME: Tests for the gesture state machine, selection, and deletion
// ABOUTME: Drives the editor with pointer events the way the map surface does

package editor

import (
	"testing"

	"github.com/harper/mapdraw/internal/geo"
	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(lat, lng float64) models.Point {
	return models.Point{Lat: lat, Lng: lng}
}

func down(p models.Point, shift bool) PointerEvent {
	return PointerEvent{Type: PointerDown, Pos: p, Button: ButtonRight, Shift: shift}
}

func move(p models.Point) PointerEvent {
	return PointerEvent{Type: PointerMove, Pos: p}
}

func up(p models.Point) PointerEvent {
	return PointerEvent{Type: PointerUp, Pos: p, Button: ButtonRight}
}

func drawLine(e *Editor, points ...models.Point) Change {
	e.HandlePointer(down(points[0], false))
	for _, p := range points[1:] {
		e.HandlePointer(move(p))
	}
	return e.HandlePointer(up(points[len(points)-1]))
}

func TestDrawLine(t *testing.T) {
	e := New()

	assert.Equal(t, ChangeDraft, e.HandlePointer(down(pt(0, 0), false)))
	assert.Equal(t, DrawingLine, e.State())
	e.HandlePointer(move(pt(0, 1)))
	e.HandlePointer(move(pt(1, 1)))
	assert.Equal(t, []models.Point{pt(0, 0), pt(0, 1), pt(1, 1)}, e.DraftLine())

	change := e.HandlePointer(up(pt(1, 1)))
	assert.True(t, change.Has(ChangeLines))
	assert.Equal(t, Idle, e.State())
	assert.Empty(t, e.DraftLine())

	lines := e.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, []models.Point{pt(0, 0), pt(0, 1), pt(1, 1)}, lines[0].Points)
	assert.Empty(t, lines[0].RemoteID)
}

func TestDrawLine_TooShortIsDiscarded(t *testing.T) {
	e := New()

	change := drawLine(e, pt(0, 0), pt(0, 1))
	assert.False(t, change.Has(ChangeLines))
	assert.Empty(t, e.Lines())
	assert.Equal(t, Idle, e.State())
}

func TestDrawLine_LeaveCommits(t *testing.T) {
	e := New()
	e.HandlePointer(down(pt(0, 0), false))
	e.HandlePointer(move(pt(0, 1)))
	e.HandlePointer(move(pt(1, 1)))

	change := e.HandlePointer(PointerEvent{Type: PointerLeave})
	assert.True(t, change.Has(ChangeLines))
	assert.Len(t, e.Lines(), 1)
	assert.Equal(t, Idle, e.State())
}

func TestDrawCircle(t *testing.T) {
	e := New()
	center := pt(-22.9068, -43.1729)
	edge := geo.Destination(center, 90, 500)

	e.HandlePointer(down(center, true))
	assert.Equal(t, DrawingCircle, e.State())
	assert.Empty(t, e.Circles(), "no circle until the pointer moves")

	e.HandlePointer(move(geo.Destination(center, 90, 200)))
	e.HandlePointer(move(edge))

	circles := e.Circles()
	require.Len(t, circles, 1, "moves update one drawing circle")
	assert.True(t, circles[0].Drawing)

	change := e.HandlePointer(up(edge))
	assert.True(t, change.Has(ChangeCircles))

	circles = e.Circles()
	require.Len(t, circles, 1)
	assert.False(t, circles[0].Drawing)
	assert.Equal(t, center, circles[0].Center)
	assert.InDelta(t, 500, circles[0].Radius, 1)
}

func TestDrawCircle_ReleaseWithoutMove(t *testing.T) {
	e := New()
	e.HandlePointer(down(pt(1, 1), true))

	change := e.HandlePointer(up(pt(1, 1)))
	assert.False(t, change.Has(ChangeCircles))
	assert.Empty(t, e.Circles())
	assert.Equal(t, Idle, e.State())
}

func TestDrawCircle_ZeroRadiusDiscarded(t *testing.T) {
	e := New()
	e.HandlePointer(down(pt(1, 1), true))
	e.HandlePointer(move(pt(1, 2)))
	e.HandlePointer(move(pt(1, 1)))

	change := e.HandlePointer(up(pt(1, 1)))
	assert.False(t, change.Has(ChangeCircles))
	assert.Empty(t, e.Circles())
}

func TestDrawCircle_LeaveDiscards(t *testing.T) {
	e := New()
	e.HandlePointer(down(pt(1, 1), true))
	e.HandlePointer(move(pt(1, 1.01)))
	require.Len(t, e.Circles(), 1)

	change := e.HandlePointer(PointerEvent{Type: PointerLeave})
	assert.False(t, change.Has(ChangeCircles))
	assert.Empty(t, e.Circles())
	assert.Equal(t, Idle, e.State())
}

func TestPointer_IgnoredWhenIdle(t *testing.T) {
	e := New()

	assert.Equal(t, ChangeNone, e.HandlePointer(move(pt(0, 0))))
	assert.Equal(t, ChangeNone, e.HandlePointer(up(pt(0, 0))))
	assert.Equal(t, ChangeNone, e.HandlePointer(PointerEvent{Type: PointerLeave}))
	assert.Equal(t, ChangeNone, e.HandlePointer(PointerEvent{Type: ContextMenu}))
	assert.Equal(t, ChangeNone, e.HandlePointer(PointerEvent{Type: PointerDown, Button: ButtonLeft}))
	assert.Equal(t, Idle, e.State())
}

func TestPointer_DownWhileDrawingSuppressed(t *testing.T) {
	e := New()
	e.HandlePointer(down(pt(0, 0), false))

	assert.Equal(t, ChangeNone, e.HandlePointer(down(pt(5, 5), true)))
	assert.Equal(t, DrawingLine, e.State())
	assert.Equal(t, []models.Point{pt(0, 0)}, e.DraftLine())
}

func TestPointer_LeftUpDoesNotFinish(t *testing.T) {
	e := New()
	e.HandlePointer(down(pt(0, 0), false))

	assert.Equal(t, ChangeNone, e.HandlePointer(PointerEvent{Type: PointerUp, Button: ButtonLeft}))
	assert.Equal(t, DrawingLine, e.State())
}

func seeded(t *testing.T, lineIDs ...string) *Editor {
	t.Helper()
	var lines []models.Shape
	for _, id := range lineIDs {
		l := models.NewLine([]models.Point{pt(0, 0), pt(0, 1), pt(1, 1)})
		l.RemoteID = id
		lines = append(lines, l)
	}
	e := New()
	e.Seed(sync.Snapshot{Lines: lines})
	return e
}

func TestSelect_Exclusive(t *testing.T) {
	e := seeded(t, "L1", "L2")
	_, _, err := e.AddCircle(pt(0, 0), 100)
	require.NoError(t, err)

	require.True(t, e.Select(models.KindLine, 1))
	idx, ok := e.Selection().Line()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	require.True(t, e.Select(models.KindCircle, 0))
	_, ok = e.Selection().Line()
	assert.False(t, ok, "selecting a circle clears the line selection")
	idx, ok = e.Selection().Circle()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestSelect_RejectsOutOfRange(t *testing.T) {
	e := seeded(t, "L1")

	assert.False(t, e.Select(models.KindLine, 1))
	assert.False(t, e.Select(models.KindLine, -1))
	assert.False(t, e.Select(models.KindCircle, 0))
	assert.True(t, e.Selection().IsEmpty())
}

func TestDrawingClearsSelection(t *testing.T) {
	e := seeded(t, "L1")
	require.True(t, e.Select(models.KindLine, 0))

	change := e.HandlePointer(down(pt(3, 3), false))
	assert.True(t, change.Has(ChangeSelection))
	assert.True(t, e.Selection().IsEmpty())
}

func TestDeleteSelected_ShiftsRemoteIDs(t *testing.T) {
	e := seeded(t, "L0", "L1", "L2", "L3")
	require.True(t, e.Select(models.KindLine, 2))

	removed, change := e.DeleteSelected()
	assert.True(t, change.Has(ChangeLines))
	assert.True(t, change.Has(ChangeSelection))
	assert.Equal(t, "L2", removed.RemoteID)
	assert.True(t, e.Selection().IsEmpty())

	var ids []string
	for _, l := range e.Lines() {
		ids = append(ids, l.RemoteID)
	}
	assert.Equal(t, []string{"L0", "L1", "L3"}, ids)
	assert.Equal(t, []string{"L2"}, e.Shapes().Orphans(models.KindLine))
}

func TestDeleteSelected_NothingSelected(t *testing.T) {
	e := seeded(t, "L0")

	_, change := e.DeleteSelected()
	assert.Equal(t, ChangeNone, change)
	assert.Len(t, e.Lines(), 1)
}

func TestDeleteSelected_Circle(t *testing.T) {
	e := New()
	_, _, err := e.AddCircle(pt(0, 0), 10)
	require.NoError(t, err)
	_, _, err = e.AddCircle(pt(1, 1), 20)
	require.NoError(t, err)
	require.True(t, e.Select(models.KindCircle, 0))

	removed, change := e.DeleteSelected()
	assert.True(t, change.Has(ChangeCircles))
	assert.Equal(t, 10.0, removed.Radius)
	require.Len(t, e.Circles(), 1)
	assert.Equal(t, 20.0, e.Circles()[0].Radius)
	assert.Empty(t, e.Shapes().Orphans(models.KindCircle), "unsynced shapes leave no orphan")
}

func TestClick_SelectsTopmost(t *testing.T) {
	e := New()
	_, _, err := e.AddLine([]models.Point{pt(0, 0), pt(0, 1), pt(1, 1), pt(1, 0)})
	require.NoError(t, err)
	_, _, err = e.AddCircle(pt(0.5, 0.5), 1000)
	require.NoError(t, err)

	assert.Equal(t, ChangeSelection, e.Click(pt(0.5, 0.5)))
	_, ok := e.Selection().Circle()
	assert.True(t, ok)

	assert.Equal(t, ChangeSelection, e.Click(pt(0.9, 0.9)))
	_, ok = e.Selection().Line()
	assert.True(t, ok)

	assert.Equal(t, ChangeNone, e.Click(pt(40, 40)), "empty map keeps the selection")
	_, ok = e.Selection().Line()
	assert.True(t, ok)
}

func TestAddLine_Invalid(t *testing.T) {
	e := New()
	_, change, err := e.AddLine([]models.Point{pt(0, 0), pt(1, 1)})
	assert.Error(t, err)
	assert.Equal(t, ChangeNone, change)
}

func TestAddCircle_WhileDrawingCircle(t *testing.T) {
	e := New()
	e.HandlePointer(down(pt(1, 1), true))
	e.HandlePointer(move(pt(1, 1.01)))

	_, _, err := e.AddCircle(pt(0, 0), 10)
	assert.Error(t, err)
}

func TestChangeKinds(t *testing.T) {
	assert.Empty(t, ChangeDraft.Kinds())
	assert.Equal(t, []models.Kind{models.KindLine, models.KindCircle}, (ChangeLines | ChangeCircles | ChangeSelection).Kinds())
	assert.False(t, ChangeNone.Has(ChangeNone))
}
