// ABOUTME: Remote document bodies for persisted shapes
// ABOUTME: Encodes lines as {points, order} and circles as {center, radius, order}

package models

import (
	"encoding/json"
	"fmt"
)

// LineDocument is the persisted body of a line.
type LineDocument struct {
	Points []Point `json:"points"`
	Order  int     `json:"order,omitempty"`
}

// CircleDocument is the persisted body of a circle.
type CircleDocument struct {
	Center *Point  `json:"center"`
	Radius float64 `json:"radius"`
	Order  int     `json:"order,omitempty"`
}

// EncodeDocument serializes the geometry of a shape. The drawing flag and
// both identifiers are never part of the body.
func EncodeDocument(s Shape) ([]byte, error) {
	return EncodeDocumentAt(s, 0)
}

// EncodeDocumentAt serializes a shape together with its index in the
// sequence, so hydration can restore the order ids alone would not.
func EncodeDocumentAt(s Shape, order int) ([]byte, error) {
	switch s.Kind {
	case KindLine:
		return json.Marshal(LineDocument{Points: s.Points, Order: order})
	case KindCircle:
		center := s.Center
		return json.Marshal(CircleDocument{Center: &center, Radius: s.Radius, Order: order})
	default:
		return nil, fmt.Errorf("unknown shape kind %q", s.Kind)
	}
}

// DecodeDocument parses a document body into a shape of the given kind.
// Lines must carry a points array; circles must carry a center and a
// non-zero radius.
func DecodeDocument(kind Kind, remoteID string, data []byte) (Shape, error) {
	switch kind {
	case KindLine:
		var doc struct {
			Points *[]Point `json:"points"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return Shape{}, fmt.Errorf("unmarshal line: %w", err)
		}
		if doc.Points == nil {
			return Shape{}, fmt.Errorf("line document %s has no points", remoteID)
		}
		s := NewLine(*doc.Points)
		s.RemoteID = remoteID
		return s, nil
	case KindCircle:
		var doc CircleDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return Shape{}, fmt.Errorf("unmarshal circle: %w", err)
		}
		if doc.Center == nil || doc.Radius == 0 {
			return Shape{}, fmt.Errorf("circle document %s has no center or radius", remoteID)
		}
		s := NewCircle(*doc.Center, doc.Radius)
		s.RemoteID = remoteID
		return s, nil
	default:
		return Shape{}, fmt.Errorf("unknown shape kind %q", kind)
	}
}

// DocumentOrder returns the stored sequence index of a document body, or 0
// when it has none.
func DocumentOrder(data []byte) int {
	var doc struct {
		Order int `json:"order"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0
	}
	return doc.Order
}
