package daemon

import (
	"github.com/jmylchreest/bezel/internal/dbus"
)

// Remote serves control requests from other goroutines by hopping onto the
// control thread through dispatch and waiting for the result.
type Remote struct {
	overlay  *Overlay
	dispatch func(func())
}

var _ dbus.Handler = (*Remote)(nil)

// NewRemote wraps overlay. A nil dispatch calls through directly, which is
// only safe when the caller already is the control thread.
func NewRemote(overlay *Overlay, dispatch func(func())) *Remote {
	return &Remote{overlay: overlay, dispatch: dispatch}
}

func (r *Remote) call(f func()) {
	if r.dispatch == nil {
		f()
		return
	}
	done := make(chan struct{})
	r.dispatch(func() {
		defer close(done)
		f()
	})
	<-done
}

// Expand implements dbus.Handler.
func (r *Remote) Expand() bool {
	var ok bool
	r.call(func() { ok = r.overlay.Expand() })
	return ok
}

// Collapse implements dbus.Handler.
func (r *Remote) Collapse() bool {
	var ok bool
	r.call(func() { ok = r.overlay.Collapse() })
	return ok
}

// SetEnabled implements dbus.Handler.
func (r *Remote) SetEnabled(enabled bool) {
	r.call(func() { r.overlay.SetEnabled(enabled) })
}

// Status implements dbus.Handler.
func (r *Remote) Status() dbus.Status {
	var st dbus.Status
	r.call(func() { st = r.overlay.Status() })
	return st
}
