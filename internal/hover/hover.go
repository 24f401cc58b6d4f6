// Package hover classifies pointer positions against the overlay's hover
// zones.
//
// Three regions are derived from a reference rectangle (the collapsed frame
// while collapsed, the expanded frame while expanded):
//
//   - outer: the reference padded by Padding on every side; leaving it
//     proposes a collapse.
//   - middle: the reference minus EdgeExclusion on the left and right,
//     padded by Padding; the excluded bands hold interactive elements.
//   - top band: the top TopBand fraction of the reference's height.
//
// Expansion is proposed only inside the middle zone and the top band.
package hover

import (
	"github.com/jmylchreest/bezel/internal/geometry"
)

// Config holds the zone geometry.
type Config struct {
	Padding       float64 // Margin added around the reference
	EdgeExclusion float64 // Width removed from each side for the middle zone
	TopBand       float64 // Fraction of the reference height that activates
}

// DefaultConfig returns the stock zone geometry.
func DefaultConfig() Config {
	return Config{Padding: 30, EdgeExclusion: 60, TopBand: 0.05}
}

// Intent is the action a classification proposes.
type Intent int

const (
	IntentNone Intent = iota
	IntentExpand
	IntentCollapse
)

func (i Intent) String() string {
	switch i {
	case IntentExpand:
		return "expand"
	case IntentCollapse:
		return "collapse"
	default:
		return "none"
	}
}

// Zone is the classification of one pointer position.
type Zone struct {
	InsideOuter  bool `json:"inside_outer"`
	InsideMiddle bool `json:"inside_middle"`
	NearTop      bool `json:"near_top"`
}

// ExpandEligible reports whether the position may start a dwell.
func (z Zone) ExpandEligible() bool {
	return z.InsideMiddle && z.NearTop
}

// Intent returns the proposal for this zone. Collapse wins whenever the
// pointer is outside the outer zone.
func (z Zone) Intent() Intent {
	switch {
	case !z.InsideOuter:
		return IntentCollapse
	case z.ExpandEligible():
		return IntentExpand
	default:
		return IntentNone
	}
}

// Classify computes the zone of screen point p relative to reference. Both are
// in the global y-up space.
func Classify(p geometry.Point, reference geometry.Rect, cfg Config) Zone {
	return Zone{
		InsideOuter:  OuterZone(reference, cfg).Contains(p),
		InsideMiddle: MiddleZone(reference, cfg).Contains(p),
		NearTop:      p.Y >= reference.MaxY()-reference.Height*cfg.TopBand,
	}
}

// OuterZone returns the reference padded on every side.
func OuterZone(reference geometry.Rect, cfg Config) geometry.Rect {
	return reference.Inset(-cfg.Padding, -cfg.Padding)
}

// SurfaceBounds returns the region a surface must cover to receive every
// pointer sample that can affect frame: the outer zone, clipped at the
// frame's top edge.
func SurfaceBounds(frame geometry.Rect, cfg Config) geometry.Rect {
	outer := OuterZone(frame, cfg)
	outer.Height = frame.MaxY() - outer.Y
	if outer.Height < 0 {
		outer.Height = 0
	}
	return outer
}

// MiddleZone returns the reference with the edge bands removed, padded. A
// reference narrower than both bands yields an empty zone.
func MiddleZone(reference geometry.Rect, cfg Config) geometry.Rect {
	core := reference
	core.X += cfg.EdgeExclusion
	core.Width -= 2 * cfg.EdgeExclusion
	if core.Width < 0 {
		return geometry.Rect{X: reference.MidX(), Y: reference.Y}
	}
	return core.Inset(-cfg.Padding, -cfg.Padding)
}

// ToScreen converts a point in frame-local y-down coordinates (origin at the
// frame's top-left) to global y-up coordinates.
func ToScreen(local geometry.Point, frame geometry.Rect) geometry.Point {
	return geometry.Point{X: frame.X + local.X, Y: frame.MaxY() - local.Y}
}

// ToLocal is the inverse of ToScreen.
func ToLocal(screen geometry.Point, frame geometry.Rect) geometry.Point {
	return geometry.Point{X: screen.X - frame.X, Y: frame.MaxY() - screen.Y}
}
