package output

import (
	"time"

	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/shape"
	"github.com/jmylchreest/bezel/internal/transition"
)

// Shape is a silhouette generated for a frame size and morph progress.
type Shape struct {
	Family shape.Family  `json:"family" yaml:"family"`
	Morph  float64       `json:"morph" yaml:"morph"`
	Rect   geometry.Rect `json:"rect" yaml:"rect"`
	D      string        `json:"d" yaml:"d"`

	Path *shape.Path `json:"-" yaml:"-"`
}

// NewShape generates the silhouette for a w x h frame.
func NewShape(width, height, morph float64, params shape.Params) *Shape {
	rect := geometry.Rect{Width: width, Height: height}
	p := shape.Generate(rect, morph, params)
	return &Shape{
		Family: params.Family,
		Morph:  geometry.Clamp01(morph),
		Rect:   rect,
		D:      p.SVG(),
		Path:   p,
	}
}

// Frames is the notch geometry with its three derived frames.
type Frames struct {
	Notch             geometry.NotchInfo `json:"notch_info" yaml:"notch_info"`
	transition.Frames `yaml:",inline"`
}

// NewFrames derives the frames for a model.
func NewFrames(m geometry.Model) *Frames {
	return &Frames{
		Notch: m.Info(),
		Frames: transition.Frames{
			Notch:     m.NotchFrame(),
			Collapsed: m.CollapsedFrame(),
			Expanded:  m.ExpandedFrame(),
		},
	}
}

// Sample is one surface update.
type Sample struct {
	At      time.Duration `json:"-" yaml:"-"`
	AtMS    int64         `json:"at_ms" yaml:"at_ms"`
	State   string        `json:"state" yaml:"state"`
	Frame   geometry.Rect `json:"frame" yaml:"frame"`
	Morph   float64       `json:"morph" yaml:"morph"`
	Visible bool          `json:"visible" yaml:"visible"`
}

// Timeline is an ordered list of samples.
type Timeline []Sample
