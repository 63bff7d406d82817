// ABOUTME: Sync engine reconciling the shape collection with the document store
// ABOUTME: Handles startup hydration and best-effort per-shape sync passes

package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harper/mapdraw/internal/docstore"
	"github.com/harper/mapdraw/internal/models"
)

// Kinds lists the shape kinds in hydration order.
var Kinds = []models.Kind{models.KindLine, models.KindCircle}

// Pass is the input of one sync pass for a single shape kind. It is a
// snapshot: the engine never touches the live collection.
type Pass struct {
	Kind    models.Kind
	Shapes  []models.Shape
	Orphans []string
}

// Result reports what a pass achieved so the owner of the collection can
// apply it.
type Result struct {
	Kind models.Kind
	// Created maps the LocalID of each newly created shape to its remote id.
	Created map[uuid.UUID]string
	// Deleted lists orphan remote ids that are gone from the store.
	Deleted []string
	// Replaced counts documents overwritten in place.
	Replaced int
	// Failures counts remote operations that failed and were skipped.
	Failures int
}

// Snapshot is the hydrated state of both shape kinds.
type Snapshot struct {
	Lines   []models.Shape
	Circles []models.Shape
}

// Engine performs remote operations for sync passes.
type Engine struct {
	store  docstore.Store
	logger *log.Logger
}

// NewEngine creates an engine bound to a store handle.
func NewEngine(store docstore.Store, logger *log.Logger) (*Engine, error) {
	if store == nil {
		return nil, errors.New("document store is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{store: store, logger: logger}, nil
}

// Hydrate loads every persisted line and circle. Malformed documents are
// logged and skipped.
func (e *Engine) Hydrate(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	for _, kind := range Kinds {
		shapes, err := e.load(ctx, kind)
		if err != nil {
			return Snapshot{}, err
		}
		if kind == models.KindLine {
			snap.Lines = shapes
		} else {
			snap.Circles = shapes
		}
	}
	e.logger.Info("hydrated shapes", "lines", len(snap.Lines), "circles", len(snap.Circles))
	return snap, nil
}

func (e *Engine) load(ctx context.Context, kind models.Kind) ([]models.Shape, error) {
	docs, err := e.store.List(ctx, kind.Collection())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind.Collection(), err)
	}

	shapes := make([]models.Shape, 0, len(docs))
	order := make(map[string]int, len(docs))
	for _, doc := range docs {
		shape, err := models.DecodeDocument(kind, doc.ID, doc.Data)
		if err != nil {
			e.logger.Warn("skipping malformed document", "collection", kind.Collection(), "id", doc.ID, "err", err)
			continue
		}
		order[doc.ID] = models.DocumentOrder(doc.Data)
		shapes = append(shapes, shape)
	}
	// Stored indices win; documents without one keep list (id) order.
	sort.SliceStable(shapes, func(i, j int) bool {
		return order[shapes[i].RemoteID] < order[shapes[j].RemoteID]
	})
	return shapes, nil
}

// Run executes one sync pass. Orphans are deleted from the tail first, then
// every shape is replaced (remote id known) or created (no remote id). Each
// remote operation is independent: a failure is logged and the pass moves on.
func (e *Engine) Run(ctx context.Context, pass Pass) Result {
	res := Result{
		Kind:    pass.Kind,
		Created: make(map[uuid.UUID]string),
	}
	collection := pass.Kind.Collection()

	for i := len(pass.Orphans) - 1; i >= 0; i-- {
		id := pass.Orphans[i]
		if err := e.store.Delete(ctx, collection, id); err != nil {
			res.Failures++
			e.logger.Error("delete document failed", "collection", collection, "id", id, "err", err)
			continue
		}
		res.Deleted = append(res.Deleted, id)
	}

	for i, shape := range pass.Shapes {
		if shape.Drawing {
			continue
		}
		data, err := models.EncodeDocumentAt(shape, i)
		if err != nil {
			res.Failures++
			e.logger.Error("encode shape failed", "collection", collection, "index", i, "err", err)
			continue
		}

		if shape.RemoteID != "" {
			if err := e.store.Replace(ctx, collection, shape.RemoteID, data); err != nil {
				res.Failures++
				e.logger.Error("replace document failed", "collection", collection, "index", i, "id", shape.RemoteID, "err", err)
				continue
			}
			res.Replaced++
			continue
		}

		id, err := e.store.Create(ctx, collection, data)
		if err != nil {
			res.Failures++
			e.logger.Error("create document failed", "collection", collection, "index", i, "err", err)
			continue
		}
		res.Created[shape.LocalID] = id
	}

	e.logger.Debug("sync pass done",
		"collection", collection,
		"created", len(res.Created),
		"replaced", res.Replaced,
		"deleted", len(res.Deleted),
		"failures", res.Failures)
	return res
}
