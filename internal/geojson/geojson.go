// ABOUTME: GeoJSON export of drawn shapes
// ABOUTME: Lines become Polygons, circles become Points with a radius property

package geojson

import (
	"encoding/json"

	"github.com/harper/mapdraw/internal/geo"
	"github.com/harper/mapdraw/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Options tune the export.
type Options struct {
	// CircleSegments, when positive, exports circles as polygon outlines
	// with that many vertices instead of centre points.
	CircleSegments int
}

// FromShapes builds a FeatureCollection with every line followed by every
// circle. Circles still being drawn are left out.
func FromShapes(lines, circles []models.Shape, opts Options) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, line := range lines {
		f := geojson.NewFeature(orb.Polygon{geo.Ring(line.Points)})
		f.Properties["kind"] = string(models.KindLine)
		f.Properties["index"] = i
		f.Properties["point_count"] = len(line.Points)
		setRemoteID(f, line)
		fc.Append(f)
	}

	for i, circle := range circles {
		if circle.Drawing {
			continue
		}
		var geom orb.Geometry = geo.ToOrb(circle.Center)
		if opts.CircleSegments > 0 {
			geom = orb.Polygon{geo.Ring(geo.CircleOutline(circle.Center, circle.Radius, opts.CircleSegments))}
		}
		f := geojson.NewFeature(geom)
		f.Properties["kind"] = string(models.KindCircle)
		f.Properties["index"] = i
		f.Properties["radius"] = circle.Radius
		setRemoteID(f, circle)
		fc.Append(f)
	}

	return fc
}

func setRemoteID(f *geojson.Feature, s models.Shape) {
	if s.RemoteID != "" {
		f.Properties["remote_id"] = s.RemoteID
	}
}

// Marshal serializes a FeatureCollection, indented when indent is set.
func Marshal(fc *geojson.FeatureCollection, indent bool) ([]byte, error) {
	if !indent {
		return fc.MarshalJSON()
	}
	raw, err := fc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, "", "  ")
}
