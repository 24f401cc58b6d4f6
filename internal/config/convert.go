package config

import (
	"github.com/jmylchreest/bezel/internal/animation"
	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/hover"
	"github.com/jmylchreest/bezel/internal/intent"
	"github.com/jmylchreest/bezel/internal/shape"
	"github.com/jmylchreest/bezel/internal/transition"
)

// Sizing returns the frame sizing for displays with and without a notch.
func (c *Config) Sizing() geometry.Variants {
	notch := geometry.Sizing{
		CollapsedWidth:  c.Bezel.CollapsedWidth,
		CollapsedHeight: c.Bezel.CollapsedHeight,
		ExpandedWidth:   c.Bezel.ExpandedWidth,
		ExpandedHeight:  c.Bezel.ExpandedHeight,
		NotchPadding:    c.Bezel.NotchPadding,
		NotchHeight:     c.Bezel.NotchHeight,
	}
	noNotch := notch
	noNotch.CollapsedHeight = deref(c.Bezel.NoNotch.CollapsedHeight, notch.CollapsedHeight)
	return geometry.Variants{Notch: notch, NoNotch: noNotch}
}

// ShapeParams returns the silhouette parameters for displays with and
// without a notch.
func (c *Config) ShapeParams() shape.Variants {
	notch := shape.Params{
		Family:       shape.Family(c.Shape.Family),
		TopInset:     c.Shape.TopInset,
		CurveHeight:  c.Shape.CurveHeight,
		BottomRadius: c.Shape.BottomRadius,
		EarRadius:    c.Shape.EarRadius,
	}
	noNotch := notch
	noNotch.TopInset = deref(c.Bezel.NoNotch.TopInset, notch.TopInset)
	noNotch.BottomRadius = deref(c.Bezel.NoNotch.BottomRadius, notch.BottomRadius)
	return shape.Variants{Notch: notch, NoNotch: noNotch}
}

// TransitionConfig returns the animation timing. An unknown easing falls back
// to the spring curve; Validate reports it.
func (c *Config) TransitionConfig() transition.Config {
	easing, err := animation.ParseEasing(c.Animation.Easing)
	if err != nil {
		easing = animation.EaseSpring
	}
	return transition.Config{
		OpenDelay:        c.Animation.OpenDelay.Duration(),
		OpenDuration:     c.Animation.OpenDuration.Duration(),
		ExpandDuration:   c.Animation.ExpandDuration.Duration(),
		CollapseDuration: c.Animation.CollapseDuration.Duration(),
		FrameInterval:    c.Animation.FrameInterval.Duration(),
		Easing:           easing,
	}
}

// IntentConfig returns the hover zone geometry and timing.
func (c *Config) IntentConfig() intent.Config {
	return intent.Config{
		Hover: hover.Config{
			Padding:       c.Hover.Padding,
			EdgeExclusion: c.Hover.EdgeExclusion,
			TopBand:       c.Hover.TopBand,
		},
		Debounce: c.Hover.Debounce.Duration(),
		Dwell:    c.Hover.Dwell.Duration(),
	}
}

// FallbackNotchWidth is the width synthesized for displays that report no
// notch.
func (c *Config) FallbackNotchWidth() float64 {
	if c.Notch.Width > 0 {
		return c.Notch.Width
	}
	return c.Bezel.CollapsedWidth
}
