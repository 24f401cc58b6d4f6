package animation

import (
	"time"

	"github.com/jmylchreest/bezel/internal/clock"
)

// DefaultFrameInterval is the frame period used when Options.Interval is
// unset.
const DefaultFrameInterval = 16 * time.Millisecond

// Options configures a Tween.
type Options struct {
	Delay    time.Duration // Wait before the first frame
	Duration time.Duration // Length of the animation after Delay
	Interval time.Duration // Frame period (default: DefaultFrameInterval)
	Easing   EasingFunc    // Easing (default: EaseLinear)
}

// Tween drives a step function from eased progress 0 to 1 on a scheduler.
// Frames and completion run as scheduler callbacks, never inside Start.
type Tween struct {
	sched    clock.Scheduler
	opts     Options
	step     func(progress float64)
	done     func()
	start    time.Time
	timer    clock.Timer
	finished bool
}

// Start schedules a tween. step receives eased progress on every frame,
// ending with exactly 1; done runs once after the final frame. Either may be
// nil.
func Start(sched clock.Scheduler, opts Options, step func(progress float64), done func()) *Tween {
	if opts.Interval <= 0 {
		opts.Interval = DefaultFrameInterval
	}
	if opts.Easing == nil {
		opts.Easing = EaseLinear
	}
	t := &Tween{sched: sched, opts: opts, step: step, done: done}
	t.timer = sched.AfterFunc(max(opts.Delay, 0), t.begin)
	return t
}

func (t *Tween) begin() {
	t.start = t.sched.Now()
	t.frame()
}

func (t *Tween) frame() {
	if t.finished {
		return
	}
	elapsed := t.sched.Now().Sub(t.start)
	raw := 1.0
	if t.opts.Duration > 0 && elapsed < t.opts.Duration {
		raw = float64(elapsed) / float64(t.opts.Duration)
	}

	progress := 1.0
	if raw < 1 {
		progress = t.opts.Easing(raw)
	}
	if t.step != nil {
		t.step(progress)
	}
	if raw >= 1 {
		t.finish()
		return
	}
	next := min(t.opts.Interval, t.opts.Duration-elapsed)
	t.timer = t.sched.AfterFunc(next, t.frame)
}

func (t *Tween) finish() {
	if t.finished {
		return
	}
	t.finished = true
	t.timer = nil
	if t.done != nil {
		t.done()
	}
}

// Stop cancels the tween without running done. It returns false if the
// tween already finished or was stopped.
func (t *Tween) Stop() bool {
	if t.finished {
		return false
	}
	t.finished = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	return true
}

// Finished reports whether the tween completed or was stopped.
func (t *Tween) Finished() bool {
	return t.finished
}
