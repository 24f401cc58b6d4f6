package hover

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/bezel/internal/geometry"
)

// Collapsed frame for a notch centred at 640 under a top edge at 900.
var collapsed = geometry.Rect{X: 490, Y: 864, Width: 300, Height: 36}

func TestClassify(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name   string
		p      geometry.Point
		zone   Zone
		intent Intent
	}{
		{
			name:   "centre of top band",
			p:      geometry.Point{X: 640, Y: 899},
			zone:   Zone{InsideOuter: true, InsideMiddle: true, NearTop: true},
			intent: IntentExpand,
		},
		{
			name:   "below the top band",
			p:      geometry.Point{X: 640, Y: 880},
			zone:   Zone{InsideOuter: true, InsideMiddle: true},
			intent: IntentNone,
		},
		{
			name:   "edge exclusion band",
			p:      geometry.Point{X: 500, Y: 899},
			zone:   Zone{InsideOuter: true, NearTop: true},
			intent: IntentNone,
		},
		{
			name:   "padding beside the middle zone",
			p:      geometry.Point{X: 525, Y: 899},
			zone:   Zone{InsideOuter: true, InsideMiddle: true, NearTop: true},
			intent: IntentExpand,
		},
		{
			name:   "below the outer zone",
			p:      geometry.Point{X: 640, Y: 800},
			zone:   Zone{},
			intent: IntentCollapse,
		},
		{
			name:   "left of the outer zone",
			p:      geometry.Point{X: 455, Y: 899},
			zone:   Zone{NearTop: true},
			intent: IntentCollapse,
		},
		{
			name:   "outer padding edge is inclusive",
			p:      geometry.Point{X: 460, Y: 834},
			zone:   Zone{InsideOuter: true},
			intent: IntentNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := Classify(tt.p, collapsed, cfg)
			assert.Equal(t, tt.zone, z)
			assert.Equal(t, tt.intent, z.Intent())
		})
	}
}

func TestClassify_TopBandScalesWithReference(t *testing.T) {
	cfg := DefaultConfig()
	expanded := geometry.Rect{X: 460, Y: 720, Width: 360, Height: 180}

	// 5% of 180 is 9.
	assert.True(t, Classify(geometry.Point{X: 640, Y: 891.5}, expanded, cfg).NearTop)
	assert.False(t, Classify(geometry.Point{X: 640, Y: 890}, expanded, cfg).NearTop)
}

func TestClassify_NarrowReferenceNeverExpands(t *testing.T) {
	cfg := DefaultConfig()
	narrow := geometry.Rect{X: 600, Y: 864, Width: 100, Height: 36}

	z := Classify(geometry.Point{X: 650, Y: 899}, narrow, cfg)
	assert.True(t, z.InsideOuter)
	assert.False(t, z.InsideMiddle)
	assert.Equal(t, IntentNone, z.Intent())
}

func TestZones(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, geometry.Rect{X: 460, Y: 834, Width: 360, Height: 96}, OuterZone(collapsed, cfg))
	assert.Equal(t, geometry.Rect{X: 520, Y: 834, Width: 240, Height: 96}, MiddleZone(collapsed, cfg))
}

func TestIntent_String(t *testing.T) {
	assert.Equal(t, "none", IntentNone.String())
	assert.Equal(t, "expand", IntentExpand.String())
	assert.Equal(t, "collapse", IntentCollapse.String())
}

func TestLocalScreenConversion(t *testing.T) {
	frame := collapsed

	top := ToScreen(geometry.Point{X: 0, Y: 0}, frame)
	assert.Equal(t, geometry.Point{X: 490, Y: 900}, top)

	bottom := ToScreen(geometry.Point{X: 150, Y: 36}, frame)
	assert.Equal(t, geometry.Point{X: 640, Y: 864}, bottom)

	p := geometry.Point{X: 12.5, Y: 7}
	assert.Equal(t, p, ToLocal(ToScreen(p, frame), frame))
}

func TestSurfaceBounds(t *testing.T) {
	frame := geometry.Rect{X: 810, Y: 1044, Width: 300, Height: 36}
	got := SurfaceBounds(frame, DefaultConfig())
	assert.Equal(t, geometry.Rect{X: 780, Y: 1014, Width: 360, Height: 66}, got)
	assert.Equal(t, frame.MaxY(), got.MaxY())

	cfg := DefaultConfig()
	cfg.Padding = 0
	assert.Equal(t, frame, SurfaceBounds(frame, cfg))
}
