// Package animation interpolates values over time on a clock.Scheduler.
package animation

import (
	"fmt"
	"math"
)

// EasingFunc maps linear progress in [0,1] to eased progress.
type EasingFunc func(t float64) float64

var (
	// EaseLinear moves at constant speed.
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep accelerates at the start and decelerates at the end.
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3 - 2*t)
	}

	// EaseOutCubic starts fast and settles.
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1
		return t1*t1*t1 + 1
	}

	// EaseSpring is the overlay's open curve: a steep start that settles
	// gently, cubic-bezier(0.16, 1, 0.3, 1).
	EaseSpring = CubicBezier(0.16, 1, 0.3, 1)
)

// Easing names accepted by ParseEasing.
const (
	EasingSpring     = "spring"
	EasingLinear     = "linear"
	EasingSmoothstep = "smoothstep"
	EasingOutCubic   = "ease-out-cubic"
)

// ValidEasings returns all valid easing names.
func ValidEasings() []string {
	return []string{EasingSpring, EasingLinear, EasingSmoothstep, EasingOutCubic}
}

// ParseEasing returns the easing registered under name.
func ParseEasing(name string) (EasingFunc, error) {
	switch name {
	case EasingSpring, "":
		return EaseSpring, nil
	case EasingLinear:
		return EaseLinear, nil
	case EasingSmoothstep:
		return EaseSmoothstep, nil
	case EasingOutCubic:
		return EaseOutCubic, nil
	}
	return nil, fmt.Errorf("unknown easing %q (valid: %v)", name, ValidEasings())
}

// CubicBezier returns a CSS-style timing curve through (0,0), (x1,y1),
// (x2,y2), (1,1). x1 and x2 are clamped to [0,1] so the curve is a function
// of time.
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	x1 = math.Max(0, math.Min(1, x1))
	x2 = math.Max(0, math.Min(1, x2))

	// Polynomial coefficients for B(s) = ((a*s + b)*s + c)*s.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	solve := func(x float64) float64 {
		const eps = 1e-7
		s := x
		for range 8 {
			err := sampleX(s) - x
			if math.Abs(err) < eps {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= err / d
		}
		// Newton stalled; bisect.
		lo, hi := 0.0, 1.0
		s = x
		for range 64 {
			v := sampleX(s)
			if math.Abs(v-x) < eps {
				break
			}
			if v < x {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return s
	}

	return func(t float64) float64 {
		switch {
		case math.IsNaN(t) || t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return sampleY(solve(t))
	}
}
