// ABOUTME: Geodesic helpers built on orb
// ABOUTME: Distance, destination points, and shape hit testing in lat/lng space

package geo

import (
	"github.com/harper/mapdraw/internal/models"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// ToOrb converts a point to orb's [lng, lat] order.
func ToOrb(p models.Point) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// FromOrb converts an orb point back to lat/lng.
func FromOrb(p orb.Point) models.Point {
	return models.Point{Lat: p.Lat(), Lng: p.Lon()}
}

// Ring closes the point list into an orb ring.
func Ring(points []models.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, ToOrb(p))
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// Distance returns the geodesic (haversine) distance in meters.
func Distance(a, b models.Point) float64 {
	return orbgeo.DistanceHaversine(ToOrb(a), ToOrb(b))
}

// Destination returns the point reached by travelling meters from p along
// the initial bearing (degrees clockwise from north).
func Destination(p models.Point, bearing, meters float64) models.Point {
	dest := FromOrb(orbgeo.PointAtBearingAndDistance(ToOrb(p), bearing, meters))
	dest.Lng = wrapLng(dest.Lng)
	return dest
}

// CircleOutline approximates a geodesic circle with n points.
func CircleOutline(center models.Point, radius float64, n int) []models.Point {
	if n < 3 {
		n = 3
	}
	out := make([]models.Point, n)
	for i := 0; i < n; i++ {
		out[i] = Destination(center, float64(i)*360/float64(n), radius)
	}
	return out
}

// LineContains reports whether p falls inside the polygon formed by the line.
func LineContains(points []models.Point, p models.Point) bool {
	if len(points) < models.MinLinePoints {
		return false
	}
	return planar.PolygonContains(orb.Polygon{Ring(points)}, ToOrb(p))
}

// CircleContains reports whether p is within radius meters of center.
func CircleContains(center models.Point, radius float64, p models.Point) bool {
	return Distance(center, p) <= radius
}

// HitTest returns the topmost shape containing p. Circles are drawn above
// lines, and later shapes above earlier ones.
func HitTest(lines, circles []models.Shape, p models.Point) (models.Kind, int, bool) {
	for i := len(circles) - 1; i >= 0; i-- {
		c := circles[i]
		if c.Drawing {
			continue
		}
		if CircleContains(c.Center, c.Radius, p) {
			return models.KindCircle, i, true
		}
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if LineContains(lines[i].Points, p) {
			return models.KindLine, i, true
		}
	}
	return "", -1, false
}
