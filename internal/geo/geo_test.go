// ABOUTME: Tests for geodesic helpers and the map viewport
// ABOUTME: Verifies distances, hit tests, projection round trips, and tile URLs

package geo

import (
	"testing"

	"github.com/harper/mapdraw/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDistance_Meridian(t *testing.T) {
	// One degree of latitude is about 111.3km on orb's sphere
	d := Distance(models.Point{Lat: 0, Lng: 0}, models.Point{Lat: 1, Lng: 0})
	assert.InDelta(t, 111319, d, 50)
}

func TestDestination_RoundTrip(t *testing.T) {
	start := models.Point{Lat: -22.9068, Lng: -43.1729}
	for _, bearing := range []float64{0, 45, 90, 180, 270} {
		p := Destination(start, bearing, 500)
		assert.InDelta(t, 500, Distance(start, p), 0.5, "bearing %v", bearing)
	}
}

func TestDestination_WrapsAntimeridian(t *testing.T) {
	p := Destination(models.Point{Lat: 0, Lng: 179.999}, 90, 1000)
	assert.Less(t, p.Lng, -179.99)
	assert.InDelta(t, 0, p.Lat, 1e-6)
}

func TestCircleOutline(t *testing.T) {
	center := models.Point{Lat: 10, Lng: 10}
	pts := CircleOutline(center, 1000, 16)
	assert.Len(t, pts, 16)
	for _, p := range pts {
		assert.InDelta(t, 1000, Distance(center, p), 1)
	}
	assert.Len(t, CircleOutline(center, 10, 1), 3)
}

func TestLineContains(t *testing.T) {
	square := []models.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 0}}

	assert.True(t, LineContains(square, models.Point{Lat: 0.5, Lng: 0.5}))
	assert.False(t, LineContains(square, models.Point{Lat: 2, Lng: 2}))
	assert.False(t, LineContains(square[:2], models.Point{Lat: 0, Lng: 0.5}))
}

func TestHitTest_CircleAboveLine(t *testing.T) {
	lines := []models.Shape{
		models.NewLine([]models.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 0}}),
	}
	circles := []models.Shape{models.NewCircle(models.Point{Lat: 0.5, Lng: 0.5}, 1000)}

	kind, idx, ok := HitTest(lines, circles, models.Point{Lat: 0.5, Lng: 0.5})
	assert.True(t, ok)
	assert.Equal(t, models.KindCircle, kind)
	assert.Equal(t, 0, idx)

	kind, idx, ok = HitTest(lines, circles, models.Point{Lat: 0.9, Lng: 0.9})
	assert.True(t, ok)
	assert.Equal(t, models.KindLine, kind)
	assert.Equal(t, 0, idx)

	_, _, ok = HitTest(lines, circles, models.Point{Lat: 5, Lng: 5})
	assert.False(t, ok)
}

func TestHitTest_SkipsDrawingCircle(t *testing.T) {
	c := models.NewCircle(models.Point{Lat: 0, Lng: 0}, 1000)
	c.Drawing = true

	_, _, ok := HitTest(nil, []models.Shape{c}, models.Point{Lat: 0, Lng: 0})
	assert.False(t, ok)
}

func TestProject_RoundTrip(t *testing.T) {
	p := models.Point{Lat: 41.8781, Lng: -87.6298}
	x, y := Project(p, 13)
	back := Unproject(x, y, 13)
	assert.InDelta(t, p.Lat, back.Lat, 1e-9)
	assert.InDelta(t, p.Lng, back.Lng, 1e-9)
}

func TestUnproject_WorldCorners(t *testing.T) {
	nw := Unproject(0, 0, 0)
	assert.InDelta(t, -180, nw.Lng, 1e-9)
	assert.InDelta(t, 85.0511, nw.Lat, 1e-4)

	center := Unproject(TileSize/2, TileSize/2, 0)
	assert.InDelta(t, 0, center.Lat, 1e-9)
	assert.InDelta(t, 0, center.Lng, 1e-9)
}

func TestViewport_CellRoundTrip(t *testing.T) {
	v := NewViewport(models.Point{Lat: -22.9068, Lng: -43.1729}, 13, 80, 24)

	p := v.FromCell(10, 5)
	col, row := v.ToCell(p)
	assert.InDelta(t, 10.5, col, 1e-6)
	assert.InDelta(t, 5.5, row, 1e-6)
}

func TestViewport_CenterCell(t *testing.T) {
	v := NewViewport(models.Point{Lat: 0, Lng: 0}, 5, 80, 24)
	col, row := v.ToCell(v.Center)
	assert.InDelta(t, 40, col, 1e-9)
	assert.InDelta(t, 12, row, 1e-9)
}

func TestViewport_ZoomClamp(t *testing.T) {
	v := NewViewport(models.Point{}, 42, 10, 10)
	assert.Equal(t, MaxZoom, v.Zoom)
	v.SetZoom(-3)
	assert.Equal(t, MinZoom, v.Zoom)
}

func TestViewport_Pan(t *testing.T) {
	v := NewViewport(models.Point{Lat: 0, Lng: 0}, 10, 80, 24)
	v.Pan(10, 0)
	assert.Greater(t, v.Center.Lng, 0.0)
	assert.InDelta(t, 0, v.Center.Lat, 1e-9)

	v.Pan(0, 10)
	assert.Less(t, v.Center.Lat, 0.0)
}

func TestTileURL(t *testing.T) {
	v := NewViewport(models.Point{Lat: 0.0001, Lng: 0.0001}, 1, 10, 10)
	x, y := v.TileXY()
	assert.Equal(t, 1, x)
	assert.Equal(t, 0, y)
	assert.Equal(t, "https://b.tile.openstreetmap.org/1/1/0.png",
		v.TileURL("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"))
}

func TestTileXY_SearchZoom(t *testing.T) {
	v := NewViewport(models.Point{Lat: -22.9068, Lng: -43.1729}, 17, 80, 24)
	x, y := v.TileXY()
	assert.Equal(t, 49817, x)
	assert.Equal(t, 74107, y)
}

func TestTileXY_Antimeridian(t *testing.T) {
	v := NewViewport(models.Point{Lat: 0.0001, Lng: 180}, 2, 10, 10)
	x, _ := v.TileXY()
	assert.Equal(t, 3, x)
}

func TestResolveTileURL(t *testing.T) {
	assert.Equal(t, "a/3/2/1", ResolveTileURL("{s}/{z}/{x}/{y}", 3, 2, 1))
	assert.Equal(t, "c-17-1-1", ResolveTileURL("{s}-{z}-{x}-{y}", 17, 1, 1))
}
