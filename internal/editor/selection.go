// ABOUTME: Selection of at most one shape and deletion of the selection
// ABOUTME: Selecting a line clears any circle selection and vice versa

package editor

import (
	"errors"

	"github.com/harper/mapdraw/internal/models"
)

var errBusyDrawing = errors.New("a circle is being drawn")

// Selection names at most one shape. The zero value selects nothing.
type Selection struct {
	Kind  models.Kind
	Index int
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.Kind == ""
}

// Line returns the selected line index, if a line is selected.
func (s Selection) Line() (int, bool) {
	return s.Index, s.Kind == models.KindLine
}

// Circle returns the selected circle index, if a circle is selected.
func (s Selection) Circle() (int, bool) {
	return s.Index, s.Kind == models.KindCircle
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	return e.sel
}

// Select makes the shape at index the only selected shape. Indices outside
// the sequence and circles still being drawn are rejected.
func (e *Editor) Select(kind models.Kind, index int) bool {
	s := e.shapes.seq(kind)
	if s == nil || index < 0 || index >= len(*s) || (*s)[index].Drawing {
		return false
	}
	e.sel = Selection{Kind: kind, Index: index}
	return true
}

// ClearSelection deselects everything.
func (e *Editor) ClearSelection() Change {
	if e.sel.IsEmpty() {
		return ChangeNone
	}
	e.sel = Selection{}
	return ChangeSelection
}

// DeleteSelected removes the selected shape and clears the selection in the
// same step. With nothing selected it is a no-op.
func (e *Editor) DeleteSelected() (models.Shape, Change) {
	if e.sel.IsEmpty() {
		return models.Shape{}, ChangeNone
	}
	sel := e.sel
	e.sel = Selection{}

	removed, err := e.shapes.Remove(sel.Kind, sel.Index)
	if err != nil {
		return models.Shape{}, ChangeSelection
	}
	if sel.Kind == models.KindLine {
		return removed, ChangeLines | ChangeSelection
	}
	return removed, ChangeCircles | ChangeSelection
}
