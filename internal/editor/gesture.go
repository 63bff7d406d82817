// ABOUTME: Pointer event types and the drawing gesture state machine
// ABOUTME: Right-drag draws lines, shift+right-drag draws circles

package editor

import "github.com/harper/mapdraw/internal/models"

// EventType is the kind of pointer event coming from the map surface.
type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
	PointerLeave
	ContextMenu
)

// Button identifies the pointer button of a down/up event.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// PointerEvent is one event from the map surface in map coordinates.
type PointerEvent struct {
	Type   EventType
	Pos    models.Point
	Button Button
	Shift  bool
}

// GestureState is the drawing state machine.
type GestureState int

const (
	Idle GestureState = iota
	DrawingLine
	DrawingCircle
)

func (s GestureState) String() string {
	switch s {
	case DrawingLine:
		return "drawing line"
	case DrawingCircle:
		return "drawing circle"
	default:
		return "idle"
	}
}

// Change reports what an editor operation touched.
type Change uint8

const (
	// ChangeDraft means only the in-progress drawing changed.
	ChangeDraft Change = 1 << iota
	// ChangeLines means the committed line sequence changed.
	ChangeLines
	// ChangeCircles means the committed circle sequence changed.
	ChangeCircles
	// ChangeSelection means the selection changed.
	ChangeSelection

	ChangeNone Change = 0
)

// Has reports whether c includes all bits of other.
func (c Change) Has(other Change) bool {
	return other != 0 && c&other == other
}

// Kinds returns the shape kinds whose committed sequence changed.
func (c Change) Kinds() []models.Kind {
	var kinds []models.Kind
	if c.Has(ChangeLines) {
		kinds = append(kinds, models.KindLine)
	}
	if c.Has(ChangeCircles) {
		kinds = append(kinds, models.KindCircle)
	}
	return kinds
}
