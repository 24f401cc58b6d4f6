// Package countdown implements the focus timer shown in the bezel's top bar.
package countdown

import (
	"fmt"
	"time"

	"github.com/jmylchreest/bezel/internal/clock"
)

// DefaultMinutes is the default session length.
const DefaultMinutes = 25

// State is the timer's run state.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Timer counts down in whole seconds on a scheduler. After reaching zero it
// resets to idle on the following tick and reports completion.
type Timer struct {
	sched     clock.Scheduler
	length    int
	remaining int
	state     State
	tick      clock.Timer

	// OnChange runs after every visible change.
	OnChange func()
	// OnComplete runs when a session finishes.
	OnComplete func()
}

// New returns an idle timer of the given length. Non-positive minutes use
// DefaultMinutes.
func New(sched clock.Scheduler, minutes int) *Timer {
	if minutes <= 0 {
		minutes = DefaultMinutes
	}
	return &Timer{sched: sched, length: minutes * 60, remaining: minutes * 60}
}

// State returns the run state.
func (t *Timer) State() State { return t.state }

// Remaining returns the time left.
func (t *Timer) Remaining() time.Duration {
	return time.Duration(t.remaining) * time.Second
}

// String formats the remaining time as m:ss.
func (t *Timer) String() string {
	return Format(t.remaining)
}

// Format renders whole seconds as m:ss.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Toggle starts an idle or paused timer and pauses a running one.
func (t *Timer) Toggle() {
	if t.state == Running {
		t.Pause()
		return
	}
	t.Start()
}

// Start runs the timer.
func (t *Timer) Start() {
	if t.state == Running {
		return
	}
	t.state = Running
	t.schedule()
	t.changed()
}

// Pause stops the timer, keeping the remaining time.
func (t *Timer) Pause() {
	if t.state != Running {
		return
	}
	t.stop()
	t.state = Paused
	t.changed()
}

// Reset returns to idle with a full session.
func (t *Timer) Reset() {
	t.stop()
	t.state = Idle
	t.remaining = t.length
	t.changed()
}

// SetMinutes changes the session length. An idle timer picks it up at once;
// otherwise it applies from the next reset.
func (t *Timer) SetMinutes(minutes int) {
	if minutes <= 0 {
		minutes = DefaultMinutes
	}
	t.length = minutes * 60
	if t.state == Idle && t.remaining != t.length {
		t.remaining = t.length
		t.changed()
	}
}

func (t *Timer) schedule() {
	t.tick = t.sched.AfterFunc(time.Second, t.onTick)
}

func (t *Timer) onTick() {
	t.tick = nil
	if t.state != Running {
		return
	}
	if t.remaining > 0 {
		t.remaining--
		t.schedule()
		t.changed()
		return
	}
	t.Reset()
	if t.OnComplete != nil {
		t.OnComplete()
	}
}

func (t *Timer) stop() {
	if t.tick != nil {
		t.tick.Stop()
		t.tick = nil
	}
}

func (t *Timer) changed() {
	if t.OnChange != nil {
		t.OnChange()
	}
}
