// Package shape generates the closed outline of the bezel overlay.
//
// Paths are produced in the overlay's local y-down space: the top edge of the
// bounding rectangle is its MinY. A Path is a flat list of drawing commands
// with their coordinates, so renderers (cairo, SVG, terminal raster) can
// replay it without knowing how it was built.
package shape

import (
	"math"
	"strconv"
	"strings"

	"github.com/jmylchreest/bezel/internal/geometry"
)

// Cmd is a path drawing command.
type Cmd uint8

const (
	CmdMoveTo Cmd = iota // 1 point
	CmdLineTo            // 1 point
	CmdQuadTo            // control, end
	CmdCubeTo            // control1, control2, end
	CmdClose             // no points
)

// Path is a sequence of commands; Coords holds the points consumed by each
// command in order.
type Path struct {
	Cmds   []Cmd
	Coords []geometry.Point
}

// Visitor receives path commands from Walk.
type Visitor interface {
	MoveTo(p geometry.Point)
	LineTo(p geometry.Point)
	QuadTo(c, p geometry.Point)
	CubeTo(c1, c2, p geometry.Point)
	Close()
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(pt geometry.Point) *Path {
	p.Cmds = append(p.Cmds, CmdMoveTo)
	p.Coords = append(p.Coords, pt)
	return p
}

// LineTo appends a straight segment.
func (p *Path) LineTo(pt geometry.Point) *Path {
	p.Cmds = append(p.Cmds, CmdLineTo)
	p.Coords = append(p.Coords, pt)
	return p
}

// QuadTo appends a quadratic Bézier segment.
func (p *Path) QuadTo(c, pt geometry.Point) *Path {
	p.Cmds = append(p.Cmds, CmdQuadTo)
	p.Coords = append(p.Coords, c, pt)
	return p
}

// CubeTo appends a cubic Bézier segment.
func (p *Path) CubeTo(c1, c2, pt geometry.Point) *Path {
	p.Cmds = append(p.Cmds, CmdCubeTo)
	p.Coords = append(p.Coords, c1, c2, pt)
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.Cmds = append(p.Cmds, CmdClose)
	return p
}

// Closed reports whether the path is non-empty and every subpath ends with
// a close command.
func (p *Path) Closed() bool {
	if len(p.Cmds) == 0 {
		return false
	}
	open := false
	for _, c := range p.Cmds {
		switch c {
		case CmdMoveTo:
			if open {
				return false
			}
			open = true
		case CmdClose:
			open = false
		}
	}
	return !open
}

// Walk replays the path into v.
func (p *Path) Walk(v Visitor) {
	i := 0
	for _, c := range p.Cmds {
		switch c {
		case CmdMoveTo:
			v.MoveTo(p.Coords[i])
			i++
		case CmdLineTo:
			v.LineTo(p.Coords[i])
			i++
		case CmdQuadTo:
			v.QuadTo(p.Coords[i], p.Coords[i+1])
			i += 2
		case CmdCubeTo:
			v.CubeTo(p.Coords[i], p.Coords[i+1], p.Coords[i+2])
			i += 3
		case CmdClose:
			v.Close()
		}
	}
}

// Bounds returns the bounding box of all points, control points included.
func (p *Path) Bounds() geometry.Rect {
	if len(p.Coords) == 0 {
		return geometry.Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Coords {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return geometry.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Flatten approximates the path with line segments and returns one polygon
// per subpath. tolerance is the approximate maximum deviation; values <= 0
// use 0.25.
func (p *Path) Flatten(tolerance float64) [][]geometry.Point {
	if tolerance <= 0 {
		tolerance = 0.25
	}
	f := &flattener{tolerance: tolerance}
	p.Walk(f)
	f.flush()
	return f.polys
}

// Contains reports whether pt is inside the path using the even-odd rule.
func (p *Path) Contains(pt geometry.Point) bool {
	inside := false
	for _, poly := range p.Flatten(0.25) {
		n := len(poly)
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			a, b := poly[i], poly[j]
			if (a.Y > pt.Y) != (b.Y > pt.Y) &&
				pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
				inside = !inside
			}
		}
	}
	return inside
}

// SVG encodes the path as SVG path data.
func (p *Path) SVG() string {
	var b strings.Builder
	p.Walk(&svgWriter{b: &b})
	return strings.TrimSpace(b.String())
}

type svgWriter struct {
	b *strings.Builder
}

func (w *svgWriter) cmd(c byte, pts ...geometry.Point) {
	w.b.WriteByte(c)
	for _, pt := range pts {
		w.b.WriteByte(' ')
		w.b.WriteString(formatCoord(pt.X))
		w.b.WriteByte(' ')
		w.b.WriteString(formatCoord(pt.Y))
	}
	w.b.WriteByte(' ')
}

func (w *svgWriter) MoveTo(p geometry.Point)         { w.cmd('M', p) }
func (w *svgWriter) LineTo(p geometry.Point)         { w.cmd('L', p) }
func (w *svgWriter) QuadTo(c, p geometry.Point)      { w.cmd('Q', c, p) }
func (w *svgWriter) CubeTo(c1, c2, p geometry.Point) { w.cmd('C', c1, c2, p) }
func (w *svgWriter) Close()                          { w.cmd('Z') }

func formatCoord(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type flattener struct {
	tolerance float64
	polys     [][]geometry.Point
	cur       []geometry.Point
	last      geometry.Point
	start     geometry.Point
}

func (f *flattener) flush() {
	if len(f.cur) > 1 {
		f.polys = append(f.polys, f.cur)
	}
	f.cur = nil
}

func (f *flattener) MoveTo(p geometry.Point) {
	f.flush()
	f.cur = []geometry.Point{p}
	f.last, f.start = p, p
}

func (f *flattener) LineTo(p geometry.Point) {
	f.cur = append(f.cur, p)
	f.last = p
}

func (f *flattener) QuadTo(c, p geometry.Point) {
	p0 := f.last
	n := f.segments(dist(p0, c) + dist(c, p))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		f.cur = append(f.cur, geometry.Point{
			X: mt*mt*p0.X + 2*mt*t*c.X + t*t*p.X,
			Y: mt*mt*p0.Y + 2*mt*t*c.Y + t*t*p.Y,
		})
	}
	f.last = p
}

func (f *flattener) CubeTo(c1, c2, p geometry.Point) {
	p0 := f.last
	n := f.segments(dist(p0, c1) + dist(c1, c2) + dist(c2, p))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
		f.cur = append(f.cur, geometry.Point{
			X: a*p0.X + b*c1.X + c*c2.X + d*p.X,
			Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p.Y,
		})
	}
	f.last = p
}

func (f *flattener) Close() {
	// Drop an explicit return to the start point; polygons are implicitly closed.
	if n := len(f.cur); n > 1 && f.cur[n-1] == f.start {
		f.cur = f.cur[:n-1]
	}
	f.flush()
	f.last = f.start
}

func (f *flattener) segments(controlLen float64) int {
	n := int(math.Ceil(math.Sqrt(controlLen / f.tolerance)))
	return max(1, min(n, 100))
}

func dist(a, b geometry.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// QuadToCubic returns the control points of the cubic segment equal to the
// quadratic one from p0 with control c, for renderers that only draw cubics.
func QuadToCubic(p0, c, p geometry.Point) (c1, c2 geometry.Point) {
	c1 = geometry.Point{X: p0.X + 2.0/3*(c.X-p0.X), Y: p0.Y + 2.0/3*(c.Y-p0.Y)}
	c2 = geometry.Point{X: p.X + 2.0/3*(c.X-p.X), Y: p.Y + 2.0/3*(c.Y-p.Y)}
	return c1, c2
}
