// ABOUTME: Unit tests for GeoJSON export
// ABOUTME: Tests polygon and circle feature output

package geojson

import (
	"testing"

	"github.com/harper/mapdraw/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func sampleShapes() ([]models.Shape, []models.Shape) {
	line := models.NewLine([]models.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}})
	line.RemoteID = "L1"

	circle := models.NewCircle(models.Point{Lat: -22.9, Lng: -43.1}, 250)
	drawing := models.NewCircle(models.Point{Lat: 1, Lng: 1}, 10)
	drawing.Drawing = true

	return []models.Shape{line}, []models.Shape{circle, drawing}
}

func TestFromShapes(t *testing.T) {
	lines, circles := sampleShapes()
	fc := FromShapes(lines, circles, Options{})

	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features (drawing circle skipped), got %d", len(fc.Features))
	}

	poly, ok := fc.Features[0].Geometry.(orb.Polygon)
	if !ok {
		t.Fatalf("expected Polygon geometry, got %T", fc.Features[0].Geometry)
	}
	if len(poly[0]) != 4 {
		t.Errorf("expected closed ring of 4 points, got %d", len(poly[0]))
	}
	if poly[0][1] != (orb.Point{1, 0}) {
		t.Errorf("expected [lng, lat] order, got %v", poly[0][1])
	}
	if fc.Features[0].Properties["remote_id"] != "L1" {
		t.Errorf("unexpected properties %v", fc.Features[0].Properties)
	}

	pt, ok := fc.Features[1].Geometry.(orb.Point)
	if !ok {
		t.Fatalf("expected Point geometry, got %T", fc.Features[1].Geometry)
	}
	if pt != (orb.Point{-43.1, -22.9}) {
		t.Errorf("unexpected circle centre %v", pt)
	}
	if fc.Features[1].Properties["radius"] != 250.0 {
		t.Errorf("expected radius property, got %v", fc.Features[1].Properties["radius"])
	}
	if _, ok := fc.Features[1].Properties["remote_id"]; ok {
		t.Error("unsynced circle should have no remote_id")
	}
}

func TestFromShapes_CircleOutline(t *testing.T) {
	_, circles := sampleShapes()
	fc := FromShapes(nil, circles, Options{CircleSegments: 32})

	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	poly, ok := fc.Features[0].Geometry.(orb.Polygon)
	if !ok {
		t.Fatalf("expected Polygon geometry, got %T", fc.Features[0].Geometry)
	}
	if len(poly[0]) != 33 {
		t.Errorf("expected 32 vertices plus closing point, got %d", len(poly[0]))
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	lines, circles := sampleShapes()

	for _, indent := range []bool{false, true} {
		data, err := Marshal(FromShapes(lines, circles, Options{}), indent)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}

		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			t.Fatalf("output is not valid GeoJSON: %v", err)
		}
		if len(fc.Features) != 2 {
			t.Errorf("expected 2 features, got %d", len(fc.Features))
		}
		if fc.Features[1].Properties.MustString("kind") != "circle" {
			t.Errorf("unexpected kind %v", fc.Features[1].Properties["kind"])
		}
	}
}

func TestFromShapes_Empty(t *testing.T) {
	data, err := Marshal(FromShapes(nil, nil, Options{}), false)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("output is not valid GeoJSON: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 0 {
		t.Errorf("unexpected empty collection %s", data)
	}
}
