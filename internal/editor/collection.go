// ABOUTME: Shape collection holding ordered line and circle records
// ABOUTME: Tracks remote ids per record, orphaned remote ids, and in-flight creates

package editor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/sync"
)

// Collection is the in-memory Shape Store. Lines and circles are two
// independent sequences in append order. Remote ids live on the records, so
// removing a record moves its remote id with it; ids of removed records wait
// in the orphan list until a sync pass deletes them.
type Collection struct {
	lines    []models.Shape
	circles  []models.Shape
	orphans  map[models.Kind][]string
	creating map[uuid.UUID]bool
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{
		orphans:  make(map[models.Kind][]string),
		creating: make(map[uuid.UUID]bool),
	}
}

func (c *Collection) seq(kind models.Kind) *[]models.Shape {
	switch kind {
	case models.KindLine:
		return &c.lines
	case models.KindCircle:
		return &c.circles
	default:
		return nil
	}
}

func cloneAll(shapes []models.Shape) []models.Shape {
	out := make([]models.Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}

// Lines returns a copy of the line sequence.
func (c *Collection) Lines() []models.Shape {
	return cloneAll(c.lines)
}

// Circles returns a copy of the circle sequence, including a circle that is
// still being drawn.
func (c *Collection) Circles() []models.Shape {
	return cloneAll(c.circles)
}

// Len returns the number of records of a kind.
func (c *Collection) Len(kind models.Kind) int {
	s := c.seq(kind)
	if s == nil {
		return 0
	}
	return len(*s)
}

// Orphans returns remote ids of removed shapes not yet deleted remotely.
func (c *Collection) Orphans(kind models.Kind) []string {
	return append([]string(nil), c.orphans[kind]...)
}

// Append commits a finalized shape at the end of its sequence.
func (c *Collection) Append(shape models.Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	s := c.seq(shape.Kind)
	shape.Drawing = false
	*s = append(*s, shape.Clone())
	return nil
}

// Remove deletes the record at index; later records shift down by one. A
// remote id on the removed record becomes an orphan.
func (c *Collection) Remove(kind models.Kind, index int) (models.Shape, error) {
	s := c.seq(kind)
	if s == nil {
		return models.Shape{}, fmt.Errorf("unknown shape kind %q", kind)
	}
	if index < 0 || index >= len(*s) {
		return models.Shape{}, fmt.Errorf("%s index %d out of range (have %d)", kind, index, len(*s))
	}

	removed := (*s)[index]
	*s = append((*s)[:index], (*s)[index+1:]...)
	if removed.RemoteID != "" {
		c.orphans[kind] = append(c.orphans[kind], removed.RemoteID)
	}
	return removed, nil
}

// Seed replaces all records with hydrated state. Pending orphans and
// in-flight bookkeeping are dropped.
func (c *Collection) Seed(snap sync.Snapshot) {
	c.lines = cloneAll(snap.Lines)
	c.circles = cloneAll(snap.Circles)
	c.orphans = make(map[models.Kind][]string)
	c.creating = make(map[uuid.UUID]bool)
}

// BeginSync snapshots one kind for a sync pass. Circles still being drawn
// and shapes whose create is already in flight are left out.
func (c *Collection) BeginSync(kind models.Kind) sync.Pass {
	pass := sync.Pass{
		Kind:    kind,
		Orphans: c.Orphans(kind),
	}
	s := c.seq(kind)
	if s == nil {
		return pass
	}
	for _, shape := range *s {
		if shape.Drawing || c.creating[shape.LocalID] {
			continue
		}
		if shape.RemoteID == "" {
			c.creating[shape.LocalID] = true
		}
		pass.Shapes = append(pass.Shapes, shape.Clone())
	}
	return pass
}

// EndSync applies a pass result. Assigned ids are matched by LocalID; an id
// assigned to a shape removed in the meantime becomes an orphan.
func (c *Collection) EndSync(pass sync.Pass, res sync.Result) {
	for _, shape := range pass.Shapes {
		delete(c.creating, shape.LocalID)
	}

	s := c.seq(pass.Kind)
	for localID, remoteID := range res.Created {
		found := false
		if s != nil {
			for i := range *s {
				if (*s)[i].LocalID == localID {
					(*s)[i].RemoteID = remoteID
					found = true
					break
				}
			}
		}
		if !found {
			c.orphans[pass.Kind] = append(c.orphans[pass.Kind], remoteID)
		}
	}

	if len(res.Deleted) > 0 {
		gone := make(map[string]bool, len(res.Deleted))
		for _, id := range res.Deleted {
			gone[id] = true
		}
		kept := c.orphans[pass.Kind][:0]
		for _, id := range c.orphans[pass.Kind] {
			if !gone[id] {
				kept = append(kept, id)
			}
		}
		c.orphans[pass.Kind] = kept
	}
}

// SyncNow runs a complete pass synchronously. Callers that own the
// collection on a single goroutine (CLI, MCP) use this directly.
func (c *Collection) SyncNow(ctx context.Context, engine *sync.Engine, kind models.Kind) sync.Result {
	pass := c.BeginSync(kind)
	res := engine.Run(ctx, pass)
	c.EndSync(pass, res)
	return res
}
