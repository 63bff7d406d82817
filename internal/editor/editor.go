// ABOUTME: Map editor combining the shape store, gestures, and selection
// ABOUTME: All mutations of drawn shapes go through this type

package editor

import (
	"github.com/harper/mapdraw/internal/geo"
	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/sync"
)

// Editor owns the shape collection and the transient interaction state. It
// is not safe for concurrent use; a single event loop drives it.
type Editor struct {
	shapes *Collection
	state  GestureState
	draft  []models.Point
	center models.Point
	sel    Selection
}

// New returns an editor with an empty collection.
func New() *Editor {
	return &Editor{shapes: NewCollection()}
}

// Shapes exposes the underlying collection for sync passes.
func (e *Editor) Shapes() *Collection {
	return e.shapes
}

// Lines returns a copy of the committed lines.
func (e *Editor) Lines() []models.Shape {
	return e.shapes.Lines()
}

// Circles returns a copy of the circles, including one being drawn.
func (e *Editor) Circles() []models.Shape {
	return e.shapes.Circles()
}

// DraftLine returns the points of the line being drawn, if any.
func (e *Editor) DraftLine() []models.Point {
	return append([]models.Point(nil), e.draft...)
}

// State returns the current gesture state.
func (e *Editor) State() GestureState {
	return e.state
}

// Seed replaces everything with hydrated state and resets interaction.
func (e *Editor) Seed(snap sync.Snapshot) {
	e.shapes.Seed(snap)
	e.state = Idle
	e.draft = nil
	e.sel = Selection{}
}

// HandlePointer feeds one pointer event through the gesture state machine.
func (e *Editor) HandlePointer(ev PointerEvent) Change {
	switch ev.Type {
	case PointerDown:
		return e.pointerDown(ev)
	case PointerMove:
		return e.pointerMove(ev)
	case PointerUp:
		if ev.Button != ButtonRight {
			return ChangeNone
		}
		return e.finish(false)
	case PointerLeave:
		return e.finish(true)
	default:
		// ContextMenu: right-click drives drawing, there is never a menu.
		return ChangeNone
	}
}

func (e *Editor) pointerDown(ev PointerEvent) Change {
	if ev.Button != ButtonRight || e.state != Idle {
		return ChangeNone
	}

	change := ChangeDraft
	if !e.sel.IsEmpty() {
		change |= ChangeSelection
	}
	e.sel = Selection{}

	if ev.Shift {
		e.state = DrawingCircle
		e.center = ev.Pos
		return change
	}
	e.state = DrawingLine
	e.draft = []models.Point{ev.Pos}
	return change
}

func (e *Editor) pointerMove(ev PointerEvent) Change {
	switch e.state {
	case DrawingLine:
		e.draft = append(e.draft, ev.Pos)
		return ChangeDraft
	case DrawingCircle:
		radius := geo.Distance(e.center, ev.Pos)
		circles := &e.shapes.circles
		if n := len(*circles); n > 0 && (*circles)[n-1].Drawing {
			(*circles)[n-1].Center = e.center
			(*circles)[n-1].Radius = radius
		} else {
			c := models.NewCircle(e.center, radius)
			c.Drawing = true
			*circles = append(*circles, c)
		}
		return ChangeDraft
	default:
		return ChangeNone
	}
}

// finish resolves the active draft. Lines commit on both release and leave
// when they have enough points. Circles commit on release and are dropped
// when the pointer leaves the map.
func (e *Editor) finish(leave bool) Change {
	switch e.state {
	case DrawingLine:
		e.state = Idle
		draft := e.draft
		e.draft = nil
		if len(draft) < models.MinLinePoints {
			return ChangeDraft
		}
		if err := e.shapes.Append(models.NewLine(draft)); err != nil {
			return ChangeDraft
		}
		return ChangeDraft | ChangeLines

	case DrawingCircle:
		e.state = Idle
		circles := &e.shapes.circles
		n := len(*circles)
		if n == 0 || !(*circles)[n-1].Drawing {
			// released without moving: nothing was drawn
			return ChangeDraft
		}
		if leave || (*circles)[n-1].Validate() != nil {
			*circles = (*circles)[:n-1]
			return ChangeDraft
		}
		(*circles)[n-1].Drawing = false
		return ChangeDraft | ChangeCircles

	default:
		return ChangeNone
	}
}

// Click selects the topmost shape under pos. Clicks on empty map change
// nothing. Clicks are ignored while drawing.
func (e *Editor) Click(pos models.Point) Change {
	if e.state != Idle {
		return ChangeNone
	}
	kind, idx, ok := geo.HitTest(e.shapes.lines, e.shapes.circles, pos)
	if !ok {
		return ChangeNone
	}
	if e.Select(kind, idx) {
		return ChangeSelection
	}
	return ChangeNone
}

// AddLine commits a finalized line outside of a gesture.
func (e *Editor) AddLine(points []models.Point) (models.Shape, Change, error) {
	line := models.NewLine(points)
	if err := e.shapes.Append(line); err != nil {
		return models.Shape{}, ChangeNone, err
	}
	return line, ChangeLines, nil
}

// AddCircle commits a finalized circle outside of a gesture.
func (e *Editor) AddCircle(center models.Point, radius float64) (models.Shape, Change, error) {
	if e.state == DrawingCircle {
		// keep the drawing circle last in the sequence
		return models.Shape{}, ChangeNone, errBusyDrawing
	}
	circle := models.NewCircle(center, radius)
	if err := e.shapes.Append(circle); err != nil {
		return models.Shape{}, ChangeNone, err
	}
	return circle, ChangeCircles, nil
}
