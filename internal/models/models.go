// ABOUTME: Core data models for map shapes and their persisted documents
// ABOUTME: Provides validators and constructors for lines, circles, and shape records

package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ErrInvalidCoordinates is returned when a point lies outside WGS84 bounds.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Kind identifies which shape sequence a record belongs to.
type Kind string

const (
	KindLine   Kind = "line"
	KindCircle Kind = "circle"
)

// Collection returns the remote collection name for the kind.
func (k Kind) Collection() string {
	switch k {
	case KindLine:
		return "lines"
	case KindCircle:
		return "circles"
	default:
		return ""
	}
}

// ParseKind accepts "line", "lines", "circle" or "circles".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "line", "lines", "polygon":
		return KindLine, nil
	case "circle", "circles":
		return KindCircle, nil
	default:
		return "", fmt.Errorf("unknown shape kind %q (use 'line' or 'circle')", s)
	}
}

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// ValidateCoordinates checks if latitude and longitude are within valid ranges.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("%w: coordinates cannot be NaN", ErrInvalidCoordinates)
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("%w: coordinates cannot be infinite", ErrInvalidCoordinates)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidCoordinates)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidCoordinates)
	}
	return nil
}

// Validate checks the point against WGS84 bounds.
func (p Point) Validate() error {
	return ValidateCoordinates(p.Lat, p.Lng)
}

// MinLinePoints is the smallest number of points a finalized line may have.
const MinLinePoints = 3

// Shape is one record of the shape collection. LocalID is stable for the
// lifetime of the record; RemoteID is empty until the first sync pass
// creates its document.
type Shape struct {
	LocalID  uuid.UUID
	Kind     Kind
	Points   []Point
	Center   Point
	Radius   float64
	Drawing  bool
	RemoteID string
}

// NewLine creates a line record from the given points. The slice is copied.
func NewLine(points []Point) Shape {
	return Shape{
		LocalID: uuid.New(),
		Kind:    KindLine,
		Points:  append([]Point(nil), points...),
	}
}

// NewCircle creates a circle record.
func NewCircle(center Point, radius float64) Shape {
	return Shape{
		LocalID: uuid.New(),
		Kind:    KindCircle,
		Center:  center,
		Radius:  radius,
	}
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	c := s
	if s.Points != nil {
		c.Points = append([]Point(nil), s.Points...)
	}
	return c
}

// Validate checks geometry for a finalized shape.
func (s Shape) Validate() error {
	switch s.Kind {
	case KindLine:
		if len(s.Points) < MinLinePoints {
			return fmt.Errorf("line needs at least %d points, got %d", MinLinePoints, len(s.Points))
		}
		for i, p := range s.Points {
			if err := p.Validate(); err != nil {
				return fmt.Errorf("point %d: %w", i, err)
			}
		}
	case KindCircle:
		if err := s.Center.Validate(); err != nil {
			return fmt.Errorf("center: %w", err)
		}
		if math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) || s.Radius <= 0 {
			return fmt.Errorf("radius must be a positive number of meters")
		}
	default:
		return fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	return nil
}
