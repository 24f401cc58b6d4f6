package daemon

import (
	"log/slog"
	"math"

	"github.com/jmylchreest/bezel/internal/clock"
	"github.com/jmylchreest/bezel/internal/config"
	"github.com/jmylchreest/bezel/internal/countdown"
	"github.com/jmylchreest/bezel/internal/dbus"
	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/hover"
	"github.com/jmylchreest/bezel/internal/intent"
	"github.com/jmylchreest/bezel/internal/shape"
	"github.com/jmylchreest/bezel/internal/transition"
)

// Surface is everything the overlay draws on. The GTK window and the
// terminal simulator both implement it.
type Surface interface {
	transition.Surface
	Hide()
	SetContentVisible(visible bool)
	SetShape(params shape.Params)
	SetTimerText(text string)
}

// Chime plays the countdown completion sound.
type Chime interface {
	Play(path string) error
	SetVolume(percent int)
}

// Options configures an Overlay.
type Options struct {
	Scheduler clock.Scheduler
	Surface   Surface
	Detector  geometry.Detector
	Config    *config.Config
	Chime     Chime     // optional
	Notifier  *Notifier // optional
	Logger    *slog.Logger
}

// offscreen is a sample that lies outside every hover zone.
var offscreen = geometry.Point{X: math.Inf(-1), Y: math.Inf(-1)}

// Overlay wires pointer input, hover intent, the transition controller and
// the countdown to a surface. Like the controller it lives on the control
// thread; use Remote from other goroutines.
type Overlay struct {
	sched    clock.Scheduler
	surface  Surface
	detector geometry.Detector
	chime    Chime
	notifier *Notifier
	logger   *slog.Logger

	cfg        *config.Config
	controller *transition.Controller
	debouncer  *intent.Debouncer
	timer      *countdown.Timer

	enabled bool
	started bool
}

// NewOverlay detects the display geometry and builds the overlay in the
// Opening state. Nothing is drawn until Start.
func NewOverlay(opts Options) *Overlay {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	o := &Overlay{
		sched:    opts.Scheduler,
		surface:  opts.Surface,
		detector: opts.Detector,
		chime:    opts.Chime,
		notifier: opts.Notifier,
		logger:   logger,
		cfg:      cfg,
		enabled:  true,
	}

	info := o.detector.Detect()
	model := geometry.NewModel(info, cfg.Sizing())
	o.controller = transition.New(o.sched, o.surface, model, cfg.TransitionConfig(), logger.With("component", "transition"))
	o.controller.OnStateChange(o.stateChanged)

	o.debouncer = intent.New(o.sched, cfg.IntentConfig(), o.controller.HoverReference, o.handleIntent, logger.With("component", "intent"))

	o.timer = countdown.New(o.sched, cfg.Timer.Minutes)
	o.timer.OnChange = o.timerChanged
	o.timer.OnComplete = o.timerComplete

	if o.chime != nil {
		o.chime.SetVolume(cfg.Timer.Volume)
	}
	return o
}

// Start shapes the surface and runs the launch animation. Later calls do
// nothing. A disabled overlay opens hidden.
func (o *Overlay) Start() {
	if o.started {
		return
	}
	o.started = true

	info := o.controller.NotchInfo()
	o.logger.Info("overlay starting",
		"center_x", info.CenterX,
		"top_y", info.TopY,
		"notch_width", info.NotchWidth,
		"has_notch", info.HasNotch,
	)
	o.surface.SetShape(o.shapeParams())
	o.surface.SetContentVisible(false)
	o.surface.SetTimerText(o.timer.String())
	o.controller.AnimateOpen()
	if !o.enabled {
		// Disabled before launch: the animation still settles the state,
		// but the surface stays hidden until re-enabled.
		o.surface.Hide()
	}
}

// OnStateChange registers an observer for controller state changes.
func (o *Overlay) OnStateChange(f transition.StateFunc) {
	o.controller.OnStateChange(f)
}

// Controller returns the transition controller.
func (o *Overlay) Controller() *transition.Controller { return o.controller }

// Debouncer returns the hover-intent debouncer.
func (o *Overlay) Debouncer() *intent.Debouncer { return o.debouncer }

// Timer returns the countdown timer.
func (o *Overlay) Timer() *countdown.Timer { return o.timer }

// Config returns the active configuration.
func (o *Overlay) Config() *config.Config { return o.cfg }

// PointerMoved feeds a pointer position in screen coordinates.
func (o *Overlay) PointerMoved(p geometry.Point) {
	if !o.enabled {
		return
	}
	o.debouncer.Sample(p)
}

// PointerLeft reports that the pointer left the surface entirely.
func (o *Overlay) PointerLeft() {
	o.PointerMoved(offscreen)
}

func (o *Overlay) handleIntent(i hover.Intent) {
	switch i {
	case hover.IntentExpand:
		o.controller.Expand()
	case hover.IntentCollapse:
		o.controller.Collapse()
	}
}

func (o *Overlay) stateChanged(_, to transition.State) {
	switch to {
	case transition.Expanding:
		o.surface.SetContentVisible(true)
	case transition.Collapsing:
		o.surface.SetContentVisible(false)
	}
}

// Expand requests the expanded state directly, bypassing hover intent.
func (o *Overlay) Expand() bool {
	if !o.enabled {
		return false
	}
	return o.controller.Expand()
}

// Collapse requests the collapsed state directly.
func (o *Overlay) Collapse() bool {
	if !o.enabled {
		return false
	}
	return o.controller.Collapse()
}

// Enabled reports whether the overlay reacts to the pointer.
func (o *Overlay) Enabled() bool { return o.enabled }

// SetEnabled shows or hides the overlay. A disabled overlay ignores the
// pointer and direct requests; it is collapsed when enabled again.
func (o *Overlay) SetEnabled(enabled bool) {
	if o.enabled == enabled {
		return
	}
	o.enabled = enabled
	o.logger.Info("overlay enabled changed", "enabled", enabled)

	if !enabled {
		o.debouncer.Reset()
		o.controller.Collapse()
		o.surface.Hide()
		return
	}
	if !o.started {
		return
	}
	if o.controller.State() == transition.Expanded {
		o.controller.Collapse()
	}
	o.surface.Show()
}

// Toggle flips the enabled flag and returns the new value.
func (o *Overlay) Toggle() bool {
	o.SetEnabled(!o.enabled)
	return o.enabled
}

// Status reports the controller state for the control interface.
func (o *Overlay) Status() dbus.Status {
	return dbus.Status{
		State:     o.controller.State().String(),
		Enabled:   o.enabled,
		ChangedAt: o.controller.ChangedAt(),
	}
}

// DisplayChanged applies new notch metrics: the settled frame and the shape
// follow at once, an in-flight animation retargets itself.
func (o *Overlay) DisplayChanged(info geometry.NotchInfo) {
	o.controller.UpdateNotchInfo(info)
	o.surface.SetShape(o.shapeParams())
	o.controller.Reapply()
}

// Redetect re-reads the detector and applies the result.
func (o *Overlay) Redetect() {
	o.DisplayChanged(o.detector.Detect())
}

// ApplyConfig switches to a new validated configuration.
func (o *Overlay) ApplyConfig(cfg *config.Config) {
	o.cfg = cfg
	o.controller.SetModel(geometry.NewModel(o.controller.NotchInfo(), cfg.Sizing()))
	o.controller.SetConfig(cfg.TransitionConfig())
	o.debouncer.SetConfig(cfg.IntentConfig())
	o.timer.SetMinutes(cfg.Timer.Minutes)
	if o.chime != nil {
		o.chime.SetVolume(cfg.Timer.Volume)
	}
	o.surface.SetShape(o.shapeParams())
	o.controller.Reapply()
	o.logger.Debug("config applied")
}

// ToggleTimer starts or pauses the countdown.
func (o *Overlay) ToggleTimer() { o.timer.Toggle() }

// ResetTimer stops the countdown and restores a full session.
func (o *Overlay) ResetTimer() { o.timer.Reset() }

func (o *Overlay) shapeParams() shape.Params {
	return o.cfg.ShapeParams().Pick(o.controller.NotchInfo().HasNotch)
}

func (o *Overlay) timerChanged() {
	o.surface.SetTimerText(o.timer.String())
}

func (o *Overlay) timerComplete() {
	o.logger.Info("countdown complete", "minutes", o.cfg.Timer.Minutes)
	if o.chime != nil {
		if err := o.chime.Play(o.cfg.ChimePath()); err != nil && o.notifier != nil {
			o.notifier.NotifyAudioError(err)
		}
	}
	if o.notifier != nil {
		o.notifier.NotifySessionComplete(o.cfg.Timer.Minutes)
	}
}
