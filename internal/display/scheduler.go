package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"

	"github.com/jmylchreest/bezel/internal/clock"
)

// Scheduler runs callbacks on the GLib main loop, the control thread of the
// GTK build.
type Scheduler struct{}

var _ clock.Scheduler = Scheduler{}

// Now returns the wall-clock time.
func (Scheduler) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f on the main loop after d, rounded up to whole
// milliseconds.
func (Scheduler) AfterFunc(d time.Duration, f func()) clock.Timer {
	if d < 0 {
		d = 0
	}
	ms := uint((d + time.Millisecond - 1) / time.Millisecond)

	t := &glibTimer{}
	t.handle = glib.TimeoutAdd(ms, func() bool {
		if t.done {
			return false
		}
		t.done = true
		f()
		return false
	})
	return t
}

// Dispatch queues f on the main loop. It is safe to call from any goroutine.
func Dispatch(f func()) {
	glib.IdleAdd(f)
}

// glibTimer is only touched on the main loop.
type glibTimer struct {
	handle glib.SourceHandle
	done   bool
}

func (t *glibTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	glib.SourceRemove(t.handle)
	return true
}
