package input

import (
	"context"
	"time"

	"github.com/jmylchreest/bezel/internal/geometry"
)

// DemoFrames are the frames the demo trace is laid out against.
type DemoFrames struct {
	Collapsed geometry.Rect
	Expanded  geometry.Rect
}

// DemoAdapter produces a fixed trace: the pointer rests away from the
// bezel, dwells in the top band until it expands, moves into the
// expanded body and finally leaves.
type DemoAdapter struct {
	frames DemoFrames
}

// NewDemoAdapter creates a demo trace for frames.
func NewDemoAdapter(frames DemoFrames) *DemoAdapter {
	return &DemoAdapter{frames: frames}
}

// Name returns the adapter identifier.
func (a *DemoAdapter) Name() string {
	return "demo"
}

// Import returns the demo trace.
func (a *DemoAdapter) Import(_ context.Context) ([]Event, error) {
	c, e := a.frames.Collapsed, a.frames.Expanded
	return []Event{
		{At: 0, Kind: EventMove, Point: geometry.Point{X: c.MidX(), Y: c.Y - 200}},
		{At: 1200 * time.Millisecond, Kind: EventMove, Point: geometry.Point{X: c.MidX(), Y: c.MaxY() - 1}},
		{At: 2500 * time.Millisecond, Kind: EventMove, Point: geometry.Point{X: e.MidX(), Y: e.MidY()}},
		{At: 3500 * time.Millisecond, Kind: EventLeave},
	}, nil
}
