// Package intent turns raw pointer samples into stable expand and collapse
// decisions.
//
// Samples are coalesced by a short debounce window; only the sample that
// survives a quiet period is classified. Expansion additionally requires the
// pointer to stay eligible for a dwell period, while leaving the outer zone
// collapses immediately.
package intent

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/bezel/internal/clock"
	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/hover"
)

// Config holds the timing and zone geometry.
type Config struct {
	Hover    hover.Config
	Debounce time.Duration
	Dwell    time.Duration
}

// DefaultConfig returns the stock timing.
func DefaultConfig() Config {
	return Config{
		Hover:    hover.DefaultConfig(),
		Debounce: 20 * time.Millisecond,
		Dwell:    500 * time.Millisecond,
	}
}

// ReferenceFunc returns the rectangle hover zones are derived from. It is
// called when a debounced sample is classified, so it always reflects the
// current visual state.
type ReferenceFunc func() geometry.Rect

// Debouncer emits hover.IntentExpand and hover.IntentCollapse. It is not safe
// for concurrent use; samples and scheduler callbacks must arrive on one
// thread.
type Debouncer struct {
	sched     clock.Scheduler
	cfg       Config
	reference ReferenceFunc
	onIntent  func(hover.Intent)
	logger    *slog.Logger

	latest   geometry.Point
	debounce clock.Timer
	dwell    clock.Timer
	inZone   bool
	episode  uint64
}

// New creates a Debouncer. onIntent receives every emitted intent.
func New(sched clock.Scheduler, cfg Config, reference ReferenceFunc, onIntent func(hover.Intent), logger *slog.Logger) *Debouncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Debouncer{
		sched:     sched,
		cfg:       cfg,
		reference: reference,
		onIntent:  onIntent,
		logger:    logger,
	}
}

// SetConfig replaces the configuration. Pending timers keep their original
// deadlines.
func (d *Debouncer) SetConfig(cfg Config) {
	d.cfg = cfg
}

// Config returns the active configuration.
func (d *Debouncer) Config() Config {
	return d.cfg
}

// Sample records a pointer position in global screen coordinates. The newest
// sample always replaces any pending one.
func (d *Debouncer) Sample(p geometry.Point) {
	d.latest = p
	if d.debounce != nil {
		d.debounce.Stop()
	}
	d.debounce = d.sched.AfterFunc(d.cfg.Debounce, d.settle)
}

// Reset cancels pending timers and forgets the current episode.
func (d *Debouncer) Reset() {
	if d.debounce != nil {
		d.debounce.Stop()
		d.debounce = nil
	}
	d.cancelDwell()
	d.inZone = false
}

// Pending reports whether the debounce and dwell timers are armed.
func (d *Debouncer) Pending() (debounce, dwell bool) {
	return d.debounce != nil, d.dwell != nil
}

// InZone reports whether the last classified sample was expand-eligible.
func (d *Debouncer) InZone() bool {
	return d.inZone
}

func (d *Debouncer) settle() {
	d.debounce = nil
	zone := hover.Classify(d.latest, d.reference(), d.cfg.Hover)

	switch {
	case !zone.InsideOuter:
		d.cancelDwell()
		d.inZone = false
		d.logger.Debug("pointer left outer zone", "x", d.latest.X, "y", d.latest.Y)
		d.emit(hover.IntentCollapse)

	case zone.ExpandEligible():
		if d.inZone {
			return
		}
		d.inZone = true
		d.episode++
		episode := d.episode
		d.dwell = d.sched.AfterFunc(d.cfg.Dwell, func() { d.dwellElapsed(episode) })
		d.logger.Debug("dwell started", "episode", episode, "dwell_ms", d.cfg.Dwell.Milliseconds())

	default:
		if d.inZone {
			d.logger.Debug("pointer left expand zone", "episode", d.episode)
		}
		d.cancelDwell()
		d.inZone = false
	}
}

func (d *Debouncer) dwellElapsed(episode uint64) {
	if episode != d.episode || !d.inZone {
		return
	}
	d.dwell = nil
	d.logger.Debug("dwell confirmed", "episode", episode)
	d.emit(hover.IntentExpand)
}

func (d *Debouncer) cancelDwell() {
	if d.dwell != nil {
		d.dwell.Stop()
		d.dwell = nil
	}
}

func (d *Debouncer) emit(i hover.Intent) {
	if d.onIntent != nil {
		d.onIntent(i)
	}
}
