package geometry

// NotchInfo describes the notch of the target display, or the synthesized
// equivalent on displays without one. Values are in screen space.
type NotchInfo struct {
	CenterX    float64 `json:"center_x" yaml:"center_x"`       // Centre of the notch
	TopY       float64 `json:"top_y" yaml:"top_y"`             // Top edge of the screen
	NotchWidth float64 `json:"notch_width" yaml:"notch_width"` // Physical or estimated width
	HasNotch   bool    `json:"has_notch" yaml:"has_notch"`     // Hardware notch detected
}

// Detector produces notch metrics. Detect must not fail; implementations
// fall back to Synthesize when the hardware reports nothing.
type Detector interface {
	Detect() NotchInfo
}

// Watcher is implemented by detectors that can report display
// configuration changes. The returned function stops the watch.
type Watcher interface {
	Watch(onChange func(NotchInfo)) (stop func())
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func() NotchInfo

// Detect calls f.
func (f DetectorFunc) Detect() NotchInfo { return f() }

// StaticDetector always reports the same metrics.
type StaticDetector NotchInfo

// Detect returns the stored metrics.
func (s StaticDetector) Detect() NotchInfo { return NotchInfo(s) }

// Synthesize builds metrics for a display without a notch: centred on the
// top edge of screen with the given width. An empty screen yields a
// zero-positioned result rather than an error.
func Synthesize(screen Rect, width float64) NotchInfo {
	if width < 0 {
		width = 0
	}
	if screen.IsEmpty() {
		return NotchInfo{NotchWidth: width}
	}
	return NotchInfo{
		CenterX:    screen.MidX(),
		TopY:       screen.MaxY(),
		NotchWidth: width,
	}
}

// FromAuxiliaryAreas derives notch metrics from the two usable areas either
// side of the notch. It reports false when either area is empty or they
// overlap, in which case callers should Synthesize.
func FromAuxiliaryAreas(screen, left, right Rect) (NotchInfo, bool) {
	if left.IsEmpty() || right.IsEmpty() {
		return NotchInfo{}, false
	}
	width := right.MinX() - left.MaxX()
	if width <= 0 {
		return NotchInfo{}, false
	}
	return NotchInfo{
		CenterX:    left.MaxX() + width/2,
		TopY:       screen.MaxY(),
		NotchWidth: width,
		HasNotch:   true,
	}, true
}
