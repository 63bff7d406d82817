// ABOUTME: Braille canvas that rasterizes shapes onto terminal cells
// ABOUTME: Each cell holds a 2x4 dot grid; strokes use Bresenham, fills use a light shade

package tui

import (
	"math"
	"strings"

	"github.com/harper/mapdraw/internal/editor"
	"github.com/harper/mapdraw/internal/geo"
	"github.com/harper/mapdraw/internal/models"
)

// layer orders what a cell shows; higher layers win.
type layer uint8

const (
	layerNone layer = iota
	layerLineFill
	layerCircleFill
	layerSelectedFill
	layerLine
	layerCircle
	layerSelected
	layerDraft
)

const fillRune = '░'

type canvas struct {
	w, h   int
	mask   [][]uint8
	stroke [][]layer
	fill   [][]layer
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h}
	c.mask = make([][]uint8, h)
	c.stroke = make([][]layer, h)
	c.fill = make([][]layer, h)
	for y := 0; y < h; y++ {
		c.mask[y] = make([]uint8, w)
		c.stroke[y] = make([]layer, w)
		c.fill[y] = make([]layer, w)
	}
	return c
}

// setDot lights one dot of the 2x4 grid per cell.
func (c *canvas) setDot(mx, my int, l layer) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cx >= c.w || cy >= c.h {
		return
	}
	var bit uint8
	if rx == 0 {
		bit = [4]uint8{0x01, 0x02, 0x04, 0x40}[ry]
	} else {
		bit = [4]uint8{0x08, 0x10, 0x20, 0x80}[ry]
	}
	c.mask[cy][cx] |= bit
	if l > c.stroke[cy][cx] {
		c.stroke[cy][cx] = l
	}
}

// segment draws a dot line between two points in dot coordinates, clipped
// to the canvas.
func (c *canvas) segment(x0, y0, x1, y1 float64, l layer) {
	x0, y0, x1, y1, ok := clip(x0, y0, x1, y1, float64(c.w*2-1), float64(c.h*4-1))
	if !ok {
		return
	}
	ax, ay := int(math.Round(x0)), int(math.Round(y0))
	bx, by := int(math.Round(x1)), int(math.Round(y1))

	dx := abs(bx - ax)
	sx := -1
	if ax < bx {
		sx = 1
	}
	dy := -abs(by - ay)
	sy := -1
	if ay < by {
		sy = 1
	}
	e := dx + dy
	for {
		c.setDot(ax, ay, l)
		if ax == bx && ay == by {
			break
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

// clip cuts a segment to [0,maxX]x[0,maxY] (Liang-Barsky).
func clip(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	for _, edge := range [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// dot converts a map point to dot coordinates on the canvas.
func dot(vp geo.Viewport, p models.Point) (float64, float64) {
	col, row := vp.ToCell(p)
	return col * 2, row * 4
}

func (c *canvas) polyline(vp geo.Viewport, pts []models.Point, closed bool, l layer) {
	if len(pts) == 1 {
		x, y := dot(vp, pts[0])
		c.segment(x, y, x, y, l)
		return
	}
	for i := 1; i < len(pts); i++ {
		x0, y0 := dot(vp, pts[i-1])
		x1, y1 := dot(vp, pts[i])
		c.segment(x0, y0, x1, y1, l)
	}
	if closed && len(pts) > 2 {
		x0, y0 := dot(vp, pts[len(pts)-1])
		x1, y1 := dot(vp, pts[0])
		c.segment(x0, y0, x1, y1, l)
	}
}

// circleSegments picks an outline resolution from the on-screen radius.
func circleSegments(vp geo.Viewport, center models.Point, radius float64) int {
	cx, cy := dot(vp, center)
	ex, ey := dot(vp, geo.Destination(center, 90, radius))
	r := math.Hypot(ex-cx, ey-cy)
	n := int(2 * math.Pi * r / 2)
	return max(16, min(n, 360))
}

// cellCenters maps every cell to the coordinate under its centre.
func cellCenters(vp geo.Viewport, w, h int) [][]models.Point {
	out := make([][]models.Point, h)
	for y := 0; y < h; y++ {
		out[y] = make([]models.Point, w)
		for x := 0; x < w; x++ {
			out[y][x] = vp.FromCell(x, y)
		}
	}
	return out
}

// paint fills cells whose centre lies inside a shape. Only cells without a
// stroke show the fill.
func (c *canvas) paint(centers [][]models.Point, contains func(models.Point) bool, l layer) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			if c.fill[y][x] >= l {
				continue
			}
			if contains(centers[y][x]) {
				c.fill[y][x] = l
			}
		}
	}
}

// drawScene rasterizes the editor state: fills first, then lines, circles,
// the selection, and the draft on top.
func drawScene(c *canvas, vp geo.Viewport, ed *editor.Editor) {
	lines := ed.Lines()
	circles := ed.Circles()
	sel := ed.Selection()
	centers := cellCenters(vp, c.w, c.h)

	for i, l := range lines {
		fill := layerLineFill
		if idx, ok := sel.Line(); ok && idx == i {
			fill = layerSelectedFill
		}
		pts := l.Points
		c.paint(centers, func(p models.Point) bool { return geo.LineContains(pts, p) }, fill)
	}
	for i, ci := range circles {
		if ci.Drawing {
			continue
		}
		fill := layerCircleFill
		if idx, ok := sel.Circle(); ok && idx == i {
			fill = layerSelectedFill
		}
		center, radius := ci.Center, ci.Radius
		c.paint(centers, func(p models.Point) bool { return geo.CircleContains(center, radius, p) }, fill)
	}

	for i, l := range lines {
		stroke := layerLine
		if idx, ok := sel.Line(); ok && idx == i {
			stroke = layerSelected
		}
		c.polyline(vp, l.Points, true, stroke)
	}
	for i, ci := range circles {
		stroke := layerCircle
		if idx, ok := sel.Circle(); ok && idx == i {
			stroke = layerSelected
		}
		outline := geo.CircleOutline(ci.Center, ci.Radius, circleSegments(vp, ci.Center, ci.Radius))
		c.polyline(vp, outline, true, stroke)
	}

	c.polyline(vp, ed.DraftLine(), false, layerDraft)
}

// cell returns the rune and layer shown in one cell.
func (c *canvas) cell(x, y int) (rune, layer) {
	if m := c.mask[y][x]; m != 0 {
		return rune(0x2800 + int(m)), c.stroke[y][x]
	}
	if f := c.fill[y][x]; f != layerNone {
		return fillRune, f
	}
	return ' ', layerNone
}

// render returns one styled string per row. Runs of cells with the same
// layer share one style.
func (c *canvas) render() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var sb strings.Builder
		var run []rune
		cur := layerNone
		flush := func() {
			if len(run) == 0 {
				return
			}
			if cur == layerNone {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(strokeStyle(cur).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < c.w; x++ {
			r, l := c.cell(x, y)
			if l != cur {
				flush()
				cur = l
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

// plain returns the rows without styling, for tests and logs.
func (c *canvas) plain() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		row := make([]rune, c.w)
		for x := 0; x < c.w; x++ {
			row[x], _ = c.cell(x, y)
		}
		out[y] = string(row)
	}
	return out
}
