package shape

import (
	"math"

	"github.com/jmylchreest/bezel/internal/geometry"
)

// Family selects the silhouette family.
type Family string

const (
	// FamilyBezel morphs from a notch-like top profile to a flat-top pill.
	FamilyBezel Family = "bezel"
	// FamilyEar has fixed concave ears at the top corners.
	FamilyEar Family = "ear"
)

// ValidFamilies returns all valid family values.
func ValidFamilies() []Family {
	return []Family{FamilyBezel, FamilyEar}
}

const (
	// Shoulders shallower than this are drawn as straight joins.
	shoulderThreshold = 0.5
	// Horizontal reach of the first shoulder control point, as a fraction
	// of the inset. Keeps the tangent horizontal where the top edge ends.
	shoulderReach = 0.58
	// Vertical drop of the second shoulder control point, as a fraction of
	// the shoulder depth.
	shoulderDrop = 0.35
)

// Params configures the silhouette.
type Params struct {
	Family       Family
	TopInset     float64 // Narrowing at each side of the top edge at morph 0
	CurveHeight  float64 // Depth of the shoulder at morph 0
	BottomRadius float64 // Convex bottom corner radius
	EarRadius    float64 // Concave ear radius (ear family)
}

// Variants pairs the parameters used with a hardware notch and without one.
type Variants struct {
	Notch   Params
	NoNotch Params
}

// Pick returns the parameters for the given display.
func (v Variants) Pick(hasNotch bool) Params {
	if hasNotch {
		return v.Notch
	}
	return v.NoNotch
}

// Generate returns the silhouette for rect in the configured family. morph
// only affects the bezel family.
func Generate(rect geometry.Rect, morph float64, p Params) *Path {
	if p.Family == FamilyEar {
		return EarNotch(rect, p)
	}
	return Bezel(rect, morph, p)
}

// Bezel morphs from a notch-like profile (morph 0: inset top edge with
// curved shoulders) to a full-width flat top (morph 1). Bottom corners are
// rounded throughout. Degenerate rectangles yield RoundedRect.
func Bezel(rect geometry.Rect, morph float64, p Params) *Path {
	if !usable(rect) {
		return RoundedRect(rect, p.BottomRadius)
	}
	progress := geometry.Clamp01(morph)
	w, h := rect.Width, rect.Height
	radius := clampRadius(p.BottomRadius, w/2, h/2)

	startInset := math.Min(nonNegative(p.TopInset), math.Max(w/2-1, 0))
	startDepth := math.Min(nonNegative(p.CurveHeight), math.Max(h-radius-1, 0))
	inset := geometry.Lerp(startInset, 0, progress)
	depth := geometry.Lerp(startDepth, 0, progress)

	minX, maxX := rect.MinX(), rect.MaxX()
	top, bottom := rect.MinY(), rect.MaxY()
	leftTopX := minX + inset
	rightTopX := maxX - inset
	shoulderY := top + depth
	curved := depth > shoulderThreshold

	path := &Path{}
	path.MoveTo(pt(leftTopX, top))
	path.LineTo(pt(rightTopX, top))

	if curved {
		path.CubeTo(
			pt(rightTopX+inset*shoulderReach, top),
			pt(maxX, top+depth*shoulderDrop),
			pt(maxX, shoulderY),
		)
	} else {
		path.LineTo(pt(maxX, top))
	}

	path.LineTo(pt(maxX, bottom-radius))
	path.QuadTo(pt(maxX, bottom), pt(maxX-radius, bottom))
	path.LineTo(pt(minX+radius, bottom))
	path.QuadTo(pt(minX, bottom), pt(minX, bottom-radius))

	if curved {
		path.LineTo(pt(minX, shoulderY))
		path.CubeTo(
			pt(minX, top+depth*shoulderDrop),
			pt(leftTopX-inset*shoulderReach, top),
			pt(leftTopX, top),
		)
	} else {
		path.LineTo(pt(minX, top))
		path.LineTo(pt(leftTopX, top))
	}

	return path.Close()
}

// EarNotch draws a flat top spanning the full width, concave ears curving
// in from each top corner, vertical sides and rounded bottom corners.
// Bounds too small for the ears fall back to RoundedRect.
func EarNotch(rect geometry.Rect, p Params) *Path {
	ear := nonNegative(p.EarRadius)
	bottomR := nonNegative(p.BottomRadius)
	if !usable(rect) || rect.Width < MinEarWidth(p) || rect.Height < MinEarHeight(p) {
		return RoundedRect(rect, p.BottomRadius)
	}
	w, h := rect.Width, rect.Height
	ear = clampRadius(ear, w/4, h/2)
	bottomR = clampRadius(bottomR, (w-2*ear)/2, h-ear)

	minX, maxX := rect.MinX(), rect.MaxX()
	top, bottom := rect.MinY(), rect.MaxY()
	innerL, innerR := minX+ear, maxX-ear

	path := &Path{}
	path.MoveTo(pt(minX, top))
	path.LineTo(pt(maxX, top))
	path.QuadTo(pt(innerR, top), pt(innerR, top+ear))
	path.LineTo(pt(innerR, bottom-bottomR))
	path.QuadTo(pt(innerR, bottom), pt(innerR-bottomR, bottom))
	path.LineTo(pt(innerL+bottomR, bottom))
	path.QuadTo(pt(innerL, bottom), pt(innerL, bottom-bottomR))
	path.LineTo(pt(innerL, top+ear))
	path.QuadTo(pt(innerL, top), pt(minX, top))
	return path.Close()
}

// MinEarWidth is the narrowest rectangle the ear family draws without
// falling back.
func MinEarWidth(p Params) float64 {
	return 2 * (nonNegative(p.EarRadius) + nonNegative(p.BottomRadius))
}

// MinEarHeight is the shortest rectangle the ear family draws without
// falling back.
func MinEarHeight(p Params) float64 {
	return nonNegative(p.EarRadius) + nonNegative(p.BottomRadius)
}

// RoundedRect draws rect with all four corners rounded by radius, clamped
// to half the width and height. An unusable rectangle yields a closed
// single-point path at its origin.
func RoundedRect(rect geometry.Rect, radius float64) *Path {
	path := &Path{}
	if !usable(rect) {
		x, y := finiteOr(rect.X), finiteOr(rect.Y)
		return path.MoveTo(pt(x, y)).Close()
	}
	r := clampRadius(nonNegative(radius), rect.Width/2, rect.Height/2)
	minX, maxX := rect.MinX(), rect.MaxX()
	top, bottom := rect.MinY(), rect.MaxY()

	path.MoveTo(pt(minX+r, top))
	path.LineTo(pt(maxX-r, top))
	path.QuadTo(pt(maxX, top), pt(maxX, top+r))
	path.LineTo(pt(maxX, bottom-r))
	path.QuadTo(pt(maxX, bottom), pt(maxX-r, bottom))
	path.LineTo(pt(minX+r, bottom))
	path.QuadTo(pt(minX, bottom), pt(minX, bottom-r))
	path.LineTo(pt(minX, top+r))
	path.QuadTo(pt(minX, top), pt(minX+r, top))
	return path.Close()
}

func pt(x, y float64) geometry.Point { return geometry.Point{X: x, Y: y} }

func usable(r geometry.Rect) bool {
	return !r.IsEmpty() &&
		!math.IsInf(r.Width, 0) && !math.IsInf(r.Height, 0) &&
		!math.IsNaN(r.X) && !math.IsNaN(r.Y) &&
		!math.IsInf(r.X, 0) && !math.IsInf(r.Y, 0)
}

func clampRadius(r float64, limits ...float64) float64 {
	r = nonNegative(r)
	for _, l := range limits {
		r = math.Min(r, math.Max(l, 0))
	}
	return r
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func finiteOr(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
