package dbus

import (
	"time"

	"github.com/godbus/dbus/v5"
)

// Urgency levels defined by the freedesktop.org notifications protocol.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// Status is the overlay state reported by GetState.
type Status struct {
	State     string    `json:"state" yaml:"state"`
	Enabled   bool      `json:"enabled" yaml:"enabled"`
	ChangedAt time.Time `json:"changed_at" yaml:"changed_at"`
}

// Handler serves control requests. Implementations must be safe to call
// from the bus goroutine.
type Handler interface {
	Expand() bool
	Collapse() bool
	SetEnabled(enabled bool)
	Status() Status
}

// Notification is an outgoing org.freedesktop.Notifications.Notify call.
type Notification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// SetHint sets a hint, allocating the map if needed.
func (n *Notification) SetHint(key string, value any) {
	if n.Hints == nil {
		n.Hints = make(map[string]dbus.Variant)
	}
	n.Hints[key] = dbus.MakeVariant(value)
}

func unixMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromUnixMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
