package output

import (
	"time"

	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/shape"
	"github.com/jmylchreest/bezel/internal/transition"
)

// Recorder is a headless surface that appends a Sample for every frame or
// morph update. Consecutive updates at the same instant are merged.
type Recorder struct {
	now   func() time.Time
	start time.Time

	state   string
	frame   geometry.Rect
	morph   float64
	visible bool

	Params   shape.Params
	Content  bool
	Timer    string
	timeline Timeline
}

// NewRecorder creates a recorder timestamping samples relative to the
// current time of now.
func NewRecorder(now func() time.Time) *Recorder {
	return &Recorder{now: now, start: now(), state: transition.Opening.String()}
}

// StateChanged tags subsequent samples with the new state. It matches
// transition.StateFunc.
func (r *Recorder) StateChanged(_, to transition.State) {
	r.state = to.String()
	r.record()
}

// SetFrame implements transition.Surface.
func (r *Recorder) SetFrame(frame geometry.Rect) {
	r.frame = frame
	r.record()
}

// SetMorph implements transition.Surface.
func (r *Recorder) SetMorph(progress float64) {
	r.morph = progress
	r.record()
}

// Show implements transition.Surface.
func (r *Recorder) Show() {
	r.visible = true
	r.record()
}

// Hide hides the surface.
func (r *Recorder) Hide() {
	r.visible = false
	r.record()
}

// SetContentVisible records content visibility.
func (r *Recorder) SetContentVisible(visible bool) { r.Content = visible }

// SetShape records the silhouette parameters.
func (r *Recorder) SetShape(params shape.Params) { r.Params = params }

// SetTimerText records the countdown label.
func (r *Recorder) SetTimerText(text string) { r.Timer = text }

// Timeline returns the recorded samples.
func (r *Recorder) Timeline() Timeline {
	return append(Timeline(nil), r.timeline...)
}

// Last returns the most recent sample.
func (r *Recorder) Last() (Sample, bool) {
	if len(r.timeline) == 0 {
		return Sample{}, false
	}
	return r.timeline[len(r.timeline)-1], true
}

func (r *Recorder) record() {
	at := r.now().Sub(r.start)
	s := Sample{
		At:      at,
		AtMS:    at.Milliseconds(),
		State:   r.state,
		Frame:   r.frame,
		Morph:   r.morph,
		Visible: r.visible,
	}
	if n := len(r.timeline); n > 0 && r.timeline[n-1].At == at {
		r.timeline[n-1] = s
		return
	}
	r.timeline = append(r.timeline, s)
}
