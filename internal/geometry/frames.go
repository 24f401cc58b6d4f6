package geometry

// Sizing holds the overlay dimensions for one display variant.
type Sizing struct {
	CollapsedWidth  float64
	CollapsedHeight float64
	ExpandedWidth   float64
	ExpandedHeight  float64
	NotchPadding    float64 // Extra width of the notch frame over the notch itself
	NotchHeight     float64 // Approximate height of a hardware notch
}

// Variants pairs the sizing used with a hardware notch and without one.
type Variants struct {
	Notch   Sizing
	NoNotch Sizing
}

// Pick returns the sizing for the given display.
func (v Variants) Pick(info NotchInfo) Sizing {
	if info.HasNotch {
		return v.Notch
	}
	return v.NoNotch
}

// Model is an immutable snapshot of the notch metrics and the sizing that
// frames are derived from. Frames are computed on demand so they always
// reflect the snapshot's NotchInfo.
type Model struct {
	info     NotchInfo
	variants Variants
}

// NewModel creates a model for the given metrics.
func NewModel(info NotchInfo, variants Variants) Model {
	return Model{info: info, variants: variants}
}

// Info returns the notch metrics.
func (m Model) Info() NotchInfo { return m.info }

// Sizing returns the sizing selected for the current metrics.
func (m Model) Sizing() Sizing { return m.variants.Pick(m.info) }

// WithInfo returns a copy of the model with new metrics.
func (m Model) WithInfo(info NotchInfo) Model {
	m.info = info
	return m
}

// NotchFrame matches the hardware notch and is the starting point of the
// open transition.
func (m Model) NotchFrame() Rect {
	s := m.Sizing()
	return m.anchored(m.info.NotchWidth+s.NotchPadding, s.NotchHeight)
}

// CollapsedFrame is the resting frame of the bezel.
func (m Model) CollapsedFrame() Rect {
	s := m.Sizing()
	return m.anchored(s.CollapsedWidth, s.CollapsedHeight)
}

// ExpandedFrame is the frame while the bezel is open.
func (m Model) ExpandedFrame() Rect {
	s := m.Sizing()
	return m.anchored(s.ExpandedWidth, s.ExpandedHeight)
}

// anchored centres a w×h rectangle on the notch, hanging from the top edge.
func (m Model) anchored(w, h float64) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{
		X:      m.info.CenterX - w/2,
		Y:      m.info.TopY - h,
		Width:  w,
		Height: h,
	}
}
