// ABOUTME: One-shot editing against the document store
// ABOUTME: Hydrates an editor, applies a change, and syncs the affected kinds

package editor

import (
	"context"
	"fmt"

	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/sync"
)

// Load hydrates a fresh editor from the store behind engine.
func Load(ctx context.Context, engine *sync.Engine) (*Editor, error) {
	snap, err := engine.Hydrate(ctx)
	if err != nil {
		return nil, err
	}
	ed := New()
	ed.Seed(snap)
	return ed, nil
}

// Flush runs a blocking sync pass for every kind whose committed shapes
// changed.
func (e *Editor) Flush(ctx context.Context, engine *sync.Engine, change Change) []sync.Result {
	var results []sync.Result
	for _, kind := range change.Kinds() {
		results = append(results, e.shapes.SyncNow(ctx, engine, kind))
	}
	return results
}

// Delete removes the shape at index of the given kind, like selecting it
// and pressing delete.
func (e *Editor) Delete(kind models.Kind, index int) (models.Shape, Change, error) {
	if !e.Select(kind, index) {
		return models.Shape{}, ChangeNone, fmt.Errorf("no %s at index %d", kind, index)
	}
	removed, change := e.DeleteSelected()
	return removed, change, nil
}

// Failures sums the failed remote operations of several passes.
func Failures(results []sync.Result) int {
	n := 0
	for _, r := range results {
		n += r.Failures
	}
	return n
}
