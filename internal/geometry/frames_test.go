package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testVariants() Variants {
	notch := Sizing{
		CollapsedWidth:  300,
		CollapsedHeight: 36,
		ExpandedWidth:   360,
		ExpandedHeight:  180,
		NotchPadding:    10,
		NotchHeight:     32,
	}
	noNotch := notch
	noNotch.CollapsedHeight = 28
	return Variants{Notch: notch, NoNotch: noNotch}
}

func TestModel_CollapsedFrame(t *testing.T) {
	m := NewModel(NotchInfo{CenterX: 640, TopY: 900, NotchWidth: 200, HasNotch: true}, testVariants())

	r := m.CollapsedFrame()
	assert.Equal(t, 640.0, r.MidX())
	assert.Equal(t, 300.0, r.Width)
	assert.Equal(t, 36.0, r.Height)
	assert.Equal(t, 900.0-36.0, r.Y)
	assert.Equal(t, 900.0, r.MaxY())
}

func TestModel_NotchAndExpandedFrames(t *testing.T) {
	m := NewModel(NotchInfo{CenterX: 640, TopY: 900, NotchWidth: 200, HasNotch: true}, testVariants())

	n := m.NotchFrame()
	assert.Equal(t, Rect{X: 535, Y: 868, Width: 210, Height: 32}, n)

	e := m.ExpandedFrame()
	assert.Equal(t, Rect{X: 460, Y: 720, Width: 360, Height: 180}, e)
}

func TestModel_SizingFollowsHasNotch(t *testing.T) {
	m := NewModel(NotchInfo{CenterX: 500, TopY: 800, NotchWidth: 300}, testVariants())
	assert.Equal(t, 28.0, m.CollapsedFrame().Height)

	m = m.WithInfo(NotchInfo{CenterX: 500, TopY: 800, NotchWidth: 200, HasNotch: true})
	assert.Equal(t, 36.0, m.CollapsedFrame().Height)
}

func TestModel_WithInfoLeavesNoResidue(t *testing.T) {
	m := NewModel(NotchInfo{CenterX: 640, TopY: 900, NotchWidth: 200, HasNotch: true}, testVariants())
	before := m.CollapsedFrame()

	m2 := m.WithInfo(NotchInfo{CenterX: 1000, TopY: 1200, NotchWidth: 180, HasNotch: true})
	assert.Equal(t, 1000.0, m2.CollapsedFrame().MidX())
	assert.Equal(t, 1200.0, m2.CollapsedFrame().MaxY())
	assert.Equal(t, 1000.0, m2.ExpandedFrame().MidX())
	assert.Equal(t, 1200.0, m2.ExpandedFrame().MaxY())

	// The original snapshot is untouched.
	assert.Equal(t, before, m.CollapsedFrame())
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{5, 5}, true},
		{"min corner inclusive", Point{0, 0}, true},
		{"max edge exclusive", Point{10, 5}, false},
		{"outside", Point{-1, 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}

	assert.False(t, Rect{Width: math.NaN(), Height: 1}.Contains(Point{}))
}

func TestRect_Inset(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	assert.Equal(t, Rect{X: 0, Y: 5, Width: 40, Height: 30}, r.Inset(-10, -5))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-1))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
	assert.Equal(t, 1.0, Clamp01(3))
	assert.Equal(t, 0.25, Clamp01(0.25))
}
