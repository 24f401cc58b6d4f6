// Package input provides pointer trace sources used to replay hover input
// against the overlay without a display.
package input

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/jmylchreest/bezel/internal/clock"
	"github.com/jmylchreest/bezel/internal/geometry"
)

// EventKind identifies a trace event.
type EventKind string

const (
	EventMove     EventKind = "move"
	EventLeave    EventKind = "leave"
	EventExpand   EventKind = "expand"
	EventCollapse EventKind = "collapse"
	EventEnable   EventKind = "enable"
	EventDisable  EventKind = "disable"
)

// Event is one step of a trace. At is relative to the start of the replay;
// Point is in the global y-up space and only used by EventMove.
type Event struct {
	At    time.Duration
	Kind  EventKind
	Point geometry.Point
}

// TraceAdapter fetches a pointer trace from a source.
type TraceAdapter interface {
	// Name returns the adapter identifier (e.g., "demo", "stdin").
	Name() string

	// Import reads the trace, ordered by time.
	Import(ctx context.Context) ([]Event, error)
}

// NewAdapter creates a TraceAdapter for source: "demo" (or empty) for the
// built-in hover demo around frames, "-" or "stdin" for standard input, and
// anything else is read as a file path.
func NewAdapter(source string, frames DemoFrames) (TraceAdapter, error) {
	switch source {
	case "", "demo":
		return NewDemoAdapter(frames), nil
	case "-", "stdin":
		return NewStdinAdapter(), nil
	}

	if _, err := os.Stat(source); err != nil {
		return nil, &AdapterError{
			Source:  source,
			Message: "unknown or unavailable trace source",
			Err:     err,
		}
	}
	return NewFileAdapter(source), nil
}

// Sink receives replayed events. daemon.Overlay satisfies it.
type Sink interface {
	PointerMoved(p geometry.Point)
	PointerLeft()
	Expand() bool
	Collapse() bool
	SetEnabled(enabled bool)
}

// Replay advances m to each event's time and delivers it to sink, then
// advances a further tail so trailing timers and animations run.
func Replay(m *clock.Manual, sink Sink, events []Event, tail time.Duration) {
	start := m.Now()
	for _, ev := range events {
		m.AdvanceTo(start.Add(ev.At))
		switch ev.Kind {
		case EventMove:
			sink.PointerMoved(ev.Point)
		case EventLeave:
			sink.PointerLeft()
		case EventExpand:
			sink.Expand()
		case EventCollapse:
			sink.Collapse()
		case EventEnable:
			sink.SetEnabled(true)
		case EventDisable:
			sink.SetEnabled(false)
		}
	}
	m.Advance(tail)
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Line    int // 1-based line of a parse error, 0 if not applicable
	Err     error
}

func (e *AdapterError) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = e.Source + ":" + strconv.Itoa(e.Line) + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
