// Package transition owns the overlay's visual state and sequences its frame
// animations.
//
// The controller is a small state machine:
//
//	Opening -> Collapsed <-> Expanding -> Expanded <-> Collapsing -> Collapsed
//
// At most one animation is in flight. Requests that arrive while one runs
// are dropped rather than queued.
package transition

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/bezel/internal/animation"
	"github.com/jmylchreest/bezel/internal/clock"
	"github.com/jmylchreest/bezel/internal/geometry"
)

// Surface is the drawable the controller positions. It owns rendering; the
// controller only writes the frame and the morph parameter.
type Surface interface {
	SetFrame(frame geometry.Rect)
	SetMorph(progress float64)
	Show()
}

// Config holds animation timing.
type Config struct {
	OpenDelay        time.Duration
	OpenDuration     time.Duration
	ExpandDuration   time.Duration
	CollapseDuration time.Duration
	FrameInterval    time.Duration
	Easing           animation.EasingFunc
}

// DefaultConfig returns the stock timing.
func DefaultConfig() Config {
	return Config{
		OpenDelay:        80 * time.Millisecond,
		OpenDuration:     900 * time.Millisecond,
		ExpandDuration:   300 * time.Millisecond,
		CollapseDuration: 200 * time.Millisecond,
		FrameInterval:    animation.DefaultFrameInterval,
		Easing:           animation.EaseSpring,
	}
}

// StateFunc observes state changes.
type StateFunc func(from, to State)

// Controller sequences open, expand and collapse. It must be used from a
// single control thread, the same one the scheduler delivers callbacks on.
type Controller struct {
	sched   clock.Scheduler
	surface Surface
	model   geometry.Model
	cfg     Config
	logger  *slog.Logger

	state       State
	changedAt   time.Time
	openStarted bool
	tween       *animation.Tween
	frame       geometry.Rect
	morph       float64
	observers   []StateFunc
}

// New creates a controller in the Opening state. Nothing is shown until
// AnimateOpen.
func New(sched clock.Scheduler, surface Surface, model geometry.Model, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		sched:     sched,
		surface:   surface,
		model:     model,
		cfg:       cfg,
		logger:    logger,
		state:     Opening,
		changedAt: sched.Now(),
	}
}

// OnStateChange registers an observer called after every state change.
func (c *Controller) OnStateChange(f StateFunc) {
	c.observers = append(c.observers, f)
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// ChangedAt returns when the state last changed.
func (c *Controller) ChangedAt() time.Time {
	return c.changedAt
}

// IsAnimating reports whether a transition is in flight.
func (c *Controller) IsAnimating() bool {
	return c.state.IsAnimating()
}

// NotchInfo returns the current geometry snapshot.
func (c *Controller) NotchInfo() geometry.NotchInfo {
	return c.model.Info()
}

// Model returns the geometry model frames are derived from.
func (c *Controller) Model() geometry.Model {
	return c.model
}

// Frame returns the last frame written to the surface.
func (c *Controller) Frame() geometry.Rect {
	return c.frame
}

// Morph returns the last morph parameter written to the surface.
func (c *Controller) Morph() float64 {
	return c.morph
}

// SetConfig replaces the timing used by subsequent transitions.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg
}

// HoverReference returns the rectangle hover zones are measured against:
// the expanded frame while expanded or expanding, the collapsed frame
// otherwise.
func (c *Controller) HoverReference() geometry.Rect {
	if c.state.IsExpanded() {
		return c.model.ExpandedFrame()
	}
	return c.model.CollapsedFrame()
}

// AnimateOpen runs the launch transition from the notch profile to the
// collapsed bezel. Only the first call has any effect.
func (c *Controller) AnimateOpen() bool {
	if c.openStarted || c.state != Opening {
		c.logger.Debug("open rejected", "state", c.state)
		return false
	}
	c.openStarted = true

	c.setMorph(0)
	c.setFrame(c.model.NotchFrame())
	c.surface.Show()

	c.logger.Debug("opening",
		"delay_ms", c.cfg.OpenDelay.Milliseconds(),
		"duration_ms", c.cfg.OpenDuration.Milliseconds(),
	)
	c.tween = animation.Start(c.sched, animation.Options{
		Delay:    c.cfg.OpenDelay,
		Duration: c.cfg.OpenDuration,
		Interval: c.cfg.FrameInterval,
		Easing:   c.cfg.Easing,
	}, func(p float64) {
		// Endpoints are re-derived per frame so a display change mid-flight
		// lands on the new geometry.
		c.setFrame(geometry.LerpRect(c.model.NotchFrame(), c.model.CollapsedFrame(), p))
		c.setMorph(p)
	}, func() {
		c.tween = nil
		c.setMorph(1)
		c.fire(eventOpened)
	})
	return true
}

// Expand animates to the expanded frame. It returns false, changing
// nothing, while a transition is in flight or when already expanded.
func (c *Controller) Expand() bool {
	return c.resize(eventExpand, eventExpanded, c.cfg.ExpandDuration, func() geometry.Rect {
		return c.model.ExpandedFrame()
	})
}

// Collapse animates back to the collapsed frame, guarded like Expand.
func (c *Controller) Collapse() bool {
	return c.resize(eventCollapse, eventCollapsed, c.cfg.CollapseDuration, func() geometry.Rect {
		return c.model.CollapsedFrame()
	})
}

// target is called on every frame, so it must read c.model at call time.
func (c *Controller) resize(begin, end event, d time.Duration, target func() geometry.Rect) bool {
	if !c.fire(begin) {
		return false
	}
	from := c.frame
	c.tween = animation.Start(c.sched, animation.Options{
		Duration: d,
		Interval: c.cfg.FrameInterval,
		Easing:   c.cfg.Easing,
	}, func(p float64) {
		c.setFrame(geometry.LerpRect(from, target(), p))
	}, func() {
		c.tween = nil
		c.fire(end)
	})
	return true
}

// UpdateNotchInfo replaces the geometry snapshot. It does not move the
// surface; call Reapply for that.
func (c *Controller) UpdateNotchInfo(info geometry.NotchInfo) {
	c.model = c.model.WithInfo(info)
	c.logger.Debug("notch info updated",
		"center_x", info.CenterX,
		"top_y", info.TopY,
		"notch_width", info.NotchWidth,
		"has_notch", info.HasNotch,
	)
}

// SetModel replaces the geometry model, sizing included. Like
// UpdateNotchInfo it does not move the surface.
func (c *Controller) SetModel(m geometry.Model) {
	c.model = m
}

// Reapply writes the frame for the current settled state. In-flight
// animations already track the current geometry and are left alone.
func (c *Controller) Reapply() {
	switch c.state {
	case Collapsed:
		c.setFrame(c.model.CollapsedFrame())
	case Expanded:
		c.setFrame(c.model.ExpandedFrame())
	case Opening:
		if !c.openStarted {
			c.setFrame(c.model.NotchFrame())
		}
	}
}

// Frames returns the three derived frames for the current geometry.
func (c *Controller) Frames() Frames {
	return Frames{
		Notch:     c.model.NotchFrame(),
		Collapsed: c.model.CollapsedFrame(),
		Expanded:  c.model.ExpandedFrame(),
	}
}

// Frames groups the derived frames.
type Frames struct {
	Notch     geometry.Rect `json:"notch" yaml:"notch"`
	Collapsed geometry.Rect `json:"collapsed" yaml:"collapsed"`
	Expanded  geometry.Rect `json:"expanded" yaml:"expanded"`
}

// fire is the only place the state changes.
func (c *Controller) fire(e event) bool {
	next, ok := transitions[c.state][e]
	if !ok {
		c.logger.Debug("transition rejected", "state", c.state, "event", e)
		return false
	}
	from := c.state
	c.state = next
	c.changedAt = c.sched.Now()
	c.logger.Debug("state changed", "from", from, "to", next, "event", e)
	for _, f := range c.observers {
		f(from, next)
	}
	return true
}

func (c *Controller) setFrame(r geometry.Rect) {
	c.frame = r
	c.surface.SetFrame(r)
}

func (c *Controller) setMorph(p float64) {
	p = geometry.Clamp01(p)
	c.morph = p
	c.surface.SetMorph(p)
}
