// ABOUTME: Web Mercator viewport for the terminal map canvas
// ABOUTME: Converts between lat/lng and character cells, and resolves tile URLs

package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/harper/mapdraw/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/project"
)

const (
	// TileSize is the pixel size of one Web Mercator tile.
	TileSize = 256

	// CellWidth and CellHeight are the pixel dimensions one terminal cell
	// stands for. Cells are roughly twice as tall as they are wide.
	CellWidth  = 8
	CellHeight = 16

	MinZoom = 0
	MaxZoom = 19
)

// mercatorExtent is the width of the Web Mercator plane in meters.
const mercatorExtent = 2 * math.Pi * orb.EarthRadius

// Viewport is the visible part of the map in cells.
type Viewport struct {
	Center models.Point
	Zoom   int
	Width  int
	Height int
}

// NewViewport returns a viewport clamped to valid zoom levels.
func NewViewport(center models.Point, zoom, width, height int) Viewport {
	v := Viewport{Center: center, Width: width, Height: height}
	v.SetZoom(zoom)
	return v
}

// SetZoom clamps and applies the zoom level.
func (v *Viewport) SetZoom(zoom int) {
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	v.Zoom = zoom
}

// SetView recenters the viewport.
func (v *Viewport) SetView(center models.Point, zoom int) {
	v.Center = center
	v.SetZoom(zoom)
}

// worldSize is the map width in pixels at the given zoom.
func worldSize(zoom int) float64 {
	return TileSize * math.Exp2(float64(zoom))
}

// Project converts lat/lng to world pixel coordinates.
func Project(p models.Point, zoom int) (x, y float64) {
	f := maptile.Fraction(ToOrb(p), maptile.Zoom(zoom))
	return f[0] * TileSize, f[1] * TileSize
}

// Unproject converts world pixel coordinates back to lat/lng.
func Unproject(x, y float64, zoom int) models.Point {
	size := worldSize(zoom)
	m := orb.Point{
		(x/size - 0.5) * mercatorExtent,
		(0.5 - y/size) * mercatorExtent,
	}
	return FromOrb(project.Point(m, project.Mercator.ToWGS84))
}

// ToCell maps a point to fractional cell coordinates on screen.
func (v Viewport) ToCell(p models.Point) (col, row float64) {
	cx, cy := Project(v.Center, v.Zoom)
	px, py := Project(p, v.Zoom)
	col = (px-cx)/CellWidth + float64(v.Width)/2
	row = (py-cy)/CellHeight + float64(v.Height)/2
	return col, row
}

// FromCell returns the coordinate under the centre of a cell.
func (v Viewport) FromCell(col, row int) models.Point {
	cx, cy := Project(v.Center, v.Zoom)
	px := cx + (float64(col)+0.5-float64(v.Width)/2)*CellWidth
	py := cy + (float64(row)+0.5-float64(v.Height)/2)*CellHeight
	p := Unproject(px, py, v.Zoom)
	p.Lng = wrapLng(p.Lng)
	return p
}

// wrapLng folds a longitude into [-180, 180].
func wrapLng(lng float64) float64 {
	if lng >= -180 && lng <= 180 {
		return lng
	}
	return math.Mod(math.Mod(lng+180, 360)+360, 360) - 180
}

// Pan moves the centre by whole cells.
func (v *Viewport) Pan(dCols, dRows int) {
	cx, cy := Project(v.Center, v.Zoom)
	cx += float64(dCols) * CellWidth
	cy += float64(dRows) * CellHeight
	size := worldSize(v.Zoom)
	cx = math.Mod(math.Mod(cx, size)+size, size)
	cy = math.Max(0, math.Min(size, cy))
	v.Center = Unproject(cx, cy, v.Zoom)
}

// TileXY returns the tile containing the viewport centre.
func (v Viewport) TileXY() (x, y int) {
	t := maptile.At(ToOrb(v.Center), maptile.Zoom(v.Zoom))
	n := uint32(1) << uint32(v.Zoom)
	// longitude 180 lands one past the last column
	if t.X >= n {
		t.X = n - 1
	}
	if t.Y >= n {
		t.Y = n - 1
	}
	return int(t.X), int(t.Y)
}

// TileURL resolves a {s}/{z}/{x}/{y} template for the tile under the centre.
func (v Viewport) TileURL(template string) string {
	x, y := v.TileXY()
	return ResolveTileURL(template, v.Zoom, x, y)
}

// ResolveTileURL fills a tile URL template. {s} rotates over a, b, c.
func ResolveTileURL(template string, z, x, y int) string {
	subdomains := []string{"a", "b", "c"}
	r := strings.NewReplacer(
		"{s}", subdomains[(x+y)%len(subdomains)],
		"{z}", strconv.Itoa(z),
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
	)
	return r.Replace(template)
}
