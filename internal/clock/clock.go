// Package clock abstracts deferred callbacks so the overlay's timing logic
// can run against the wall clock, a GUI main loop or a logical clock.
//
// All callbacks scheduled through a Scheduler are expected to run on the
// caller's control thread. Real achieves that with a dispatch function; the
// GTK build schedules on the GLib main loop; Manual runs callbacks inline
// from Advance.
package clock

import (
	"sync"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or was stopped before.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real schedules on the wall clock. Callbacks are handed to Dispatch, which
// should hop onto the control thread; a nil Dispatch calls them directly on
// the timer goroutine.
type Real struct {
	Dispatch func(func())
}

// NewReal returns a wall-clock scheduler that delivers callbacks via dispatch.
func NewReal(dispatch func(func())) *Real {
	return &Real{Dispatch: dispatch}
}

// Now returns the current wall-clock time.
func (r *Real) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f after d.
func (r *Real) AfterFunc(d time.Duration, f func()) Timer {
	t := &realTimer{}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		run := func() {
			// A Stop that raced with expiry still wins once on the
			// control thread.
			if t.markFired() {
				f()
			}
		}
		if r.Dispatch != nil {
			r.Dispatch(run)
			return
		}
		run()
	})
	return t
}

type realTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	done  bool
}

func (t *realTimer) markFired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (t *realTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.timer.Stop()
	return true
}
