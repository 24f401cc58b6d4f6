package geometry

import "math"

// Point is a position in screen or overlay space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is an axis-aligned rectangle. In screen space Y is the bottom edge.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MinY returns the lower edge in y-up space (the top edge in y-down space).
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the upper edge in y-up space (the bottom edge in y-down space).
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// MidX returns the horizontal centre.
func (r Rect) MidX() float64 { return r.X + r.Width/2 }

// MidY returns the vertical centre.
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }

// IsEmpty reports whether the rectangle has no area.
// NaN sizes count as empty.
func (r Rect) IsEmpty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// Inset shrinks the rectangle by dx on each side horizontally and dy on each
// side vertically. Negative values grow it.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{
		X:      r.X + dx,
		Y:      r.Y + dy,
		Width:  r.Width - 2*dx,
		Height: r.Height - 2*dy,
	}
}

// Contains reports whether p lies inside r. The min edges are inclusive and
// the max edges exclusive, so adjacent rectangles never both contain a point.
func (r Rect) Contains(p Point) bool {
	if r.IsEmpty() {
		return false
	}
	return p.X >= r.MinX() && p.X < r.MaxX() &&
		p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Local returns r translated to the origin.
func (r Rect) Local() Rect {
	return Rect{Width: r.Width, Height: r.Height}
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// LerpRect interpolates every component of two rectangles.
func LerpRect(a, b Rect, t float64) Rect {
	return Rect{
		X:      Lerp(a.X, b.X, t),
		Y:      Lerp(a.Y, b.Y, t),
		Width:  Lerp(a.Width, b.Width, t),
		Height: Lerp(a.Height, b.Height, t),
	}
}

// Clamp01 clamps v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
