package tui

import (
	"math"

	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/hover"
	"github.com/jmylchreest/bezel/internal/shape"
)

// Canvas is the simulator's drawing surface. It keeps what the overlay last
// drew so the view can rasterize it into terminal cells.
type Canvas struct {
	frame   geometry.Rect
	morph   float64
	params  shape.Params
	visible bool
	content bool
	timer   string

	path *shape.Path // frame-local, rebuilt lazily
}

// NewCanvas creates a hidden canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// SetFrame implements transition.Surface.
func (c *Canvas) SetFrame(frame geometry.Rect) {
	if frame.Width != c.frame.Width || frame.Height != c.frame.Height {
		c.path = nil
	}
	c.frame = frame
}

// SetMorph implements transition.Surface.
func (c *Canvas) SetMorph(progress float64) {
	if progress != c.morph {
		c.path = nil
	}
	c.morph = progress
}

// Show implements transition.Surface.
func (c *Canvas) Show() { c.visible = true }

// Hide hides the silhouette.
func (c *Canvas) Hide() { c.visible = false }

// SetContentVisible shows or hides the timer row.
func (c *Canvas) SetContentVisible(visible bool) { c.content = visible }

// SetShape selects the silhouette parameters.
func (c *Canvas) SetShape(params shape.Params) {
	c.params = params
	c.path = nil
}

// SetTimerText updates the countdown label.
func (c *Canvas) SetTimerText(text string) { c.timer = text }

func (c *Canvas) Frame() geometry.Rect { return c.frame }
func (c *Canvas) Morph() float64       { return c.morph }
func (c *Canvas) Params() shape.Params { return c.params }
func (c *Canvas) Visible() bool        { return c.visible }
func (c *Canvas) ContentVisible() bool { return c.content }
func (c *Canvas) TimerText() string    { return c.timer }

// Path returns the current silhouette in frame-local coordinates.
func (c *Canvas) Path() *shape.Path {
	if c.path == nil {
		c.path = shape.Generate(c.frame.Local(), c.morph, c.params)
	}
	return c.path
}

// Filled reports whether screen point p is covered by the silhouette.
func (c *Canvas) Filled(p geometry.Point) bool {
	if !c.visible || !c.frame.Contains(p) {
		return false
	}
	return c.Path().Contains(hover.ToLocal(p, c.frame))
}

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// Viewport maps terminal cells onto a region of the y-up screen space. Row 0
// is the top of the region.
type Viewport struct {
	Left  float64 // Screen x of the left edge
	Top   float64 // Screen y of the top edge
	Scale float64 // Screen units per column
	Cols  int
	Rows  int
}

// NewViewport fits focus, plus margin on the left, right and bottom, into
// cols x rows cells, anchored at focus's top edge.
func NewViewport(focus geometry.Rect, margin float64, cols, rows int) Viewport {
	cols = max(cols, 1)
	rows = max(rows, 1)
	width := focus.Width + 2*margin
	height := focus.Height + margin
	scale := math.Max(width/float64(cols), height/(cellAspect*float64(rows)))
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return Viewport{
		Left:  focus.MidX() - scale*float64(cols)/2,
		Top:   focus.MaxY(),
		Scale: scale,
		Cols:  cols,
		Rows:  rows,
	}
}

// CellCenter returns the screen point at the centre of a cell.
func (v Viewport) CellCenter(col, row int) geometry.Point {
	return geometry.Point{
		X: v.Left + (float64(col)+0.5)*v.Scale,
		Y: v.Top - (float64(row)+0.5)*v.Scale*cellAspect,
	}
}

// PointerAt returns where a pointer in a cell is reported: horizontally
// centred and half a unit below the cell's top edge, so the first row
// reaches the top band of the screen.
func (v Viewport) PointerAt(col, row int) geometry.Point {
	return geometry.Point{
		X: v.Left + (float64(col)+0.5)*v.Scale,
		Y: v.Top - float64(row)*v.Scale*cellAspect - 0.5,
	}
}

// Cell returns the cell containing screen point p.
func (v Viewport) Cell(p geometry.Point) (col, row int, ok bool) {
	fc := (p.X - v.Left) / v.Scale
	fr := (v.Top - p.Y) / (v.Scale * cellAspect)
	if fc < 0 || fr < 0 || fc >= float64(v.Cols) || fr >= float64(v.Rows) {
		return 0, 0, false
	}
	return int(fc), int(fr), true
}

// cellKind is what a cell shows, in increasing priority.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellOuter
	cellMiddle
	cellActive // middle zone and top band
	cellFill
	cellPointer
)

// rasterize samples the canvas at every cell centre and, when zones is set,
// classifies the point a pointer in each cell would report against
// reference.
func rasterize(c *Canvas, v Viewport, reference geometry.Rect, cfg hover.Config, zones bool, pointer *geometry.Point) [][]cellKind {
	grid := make([][]cellKind, v.Rows)
	for row := range grid {
		grid[row] = make([]cellKind, v.Cols)
		for col := range grid[row] {
			switch {
			case c.Filled(v.CellCenter(col, row)):
				grid[row][col] = cellFill
			case zones:
				z := hover.Classify(v.PointerAt(col, row), reference, cfg)
				switch {
				case z.ExpandEligible():
					grid[row][col] = cellActive
				case z.InsideMiddle:
					grid[row][col] = cellMiddle
				case z.InsideOuter:
					grid[row][col] = cellOuter
				}
			}
		}
	}
	if pointer != nil {
		if col, row, ok := v.Cell(*pointer); ok {
			grid[row][col] = cellPointer
		}
	}
	return grid
}
