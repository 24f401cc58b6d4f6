package input

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/bezel/internal/geometry"
)

// StdinAdapter reads a trace from standard input.
type StdinAdapter struct {
	reader io.Reader
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter() *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader) *StdinAdapter {
	return &StdinAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Import reads the trace from standard input. See ParseTrace for the
// accepted formats.
func (a *StdinAdapter) Import(ctx context.Context) ([]Event, error) {
	// Read all input
	scanner := bufio.NewScanner(a.reader)
	const maxSize = 10 * 1024 * 1024 // 10MB max
	scanner.Buffer(make([]byte, 64*1024), maxSize)

	var data []byte
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data = append(data, scanner.Bytes()...)
		data = append(data, '\n')
	}

	if err := scanner.Err(); err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to read stdin",
			Err:     err,
		}
	}

	return ParseTrace("stdin", data)
}

// FileAdapter reads a trace from a file.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a new FileAdapter.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Name returns the adapter identifier.
func (a *FileAdapter) Name() string {
	return "file"
}

// Import reads and parses the file.
func (a *FileAdapter) Import(_ context.Context) ([]Event, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, &AdapterError{
			Source:  a.path,
			Message: "failed to read trace",
			Err:     err,
		}
	}
	return ParseTrace(a.path, data)
}

// ParseTrace parses a trace in one of two formats:
//
//  1. A JSON array of {"at_ms", "kind", "x", "y"} objects; kind defaults to
//     "move".
//  2. One event per line: "<ms> <x> <y>" for a move, or "<ms> <kind>" for the
//     other kinds. Blank lines and lines starting with # are ignored.
//
// Events are returned ordered by time; events at the same time keep their
// input order.
func ParseTrace(source string, data []byte) ([]Event, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var events []Event
	var err error
	if trimmed[0] == '[' {
		events, err = parseJSONTrace(source, trimmed)
	} else {
		events, err = parseLineTrace(source, trimmed)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })
	return events, nil
}

// jsonEvent represents an event in the JSON format.
type jsonEvent struct {
	AtMS int64     `json:"at_ms"`
	Kind EventKind `json:"kind,omitempty"`
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
}

func parseJSONTrace(source string, data []byte) ([]Event, error) {
	var entries []jsonEvent
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &AdapterError{
			Source:  source,
			Message: "failed to parse JSON trace",
			Err:     err,
		}
	}

	events := make([]Event, 0, len(entries))
	for i, entry := range entries {
		kind := entry.Kind
		if kind == "" {
			kind = EventMove
		}
		if !validKind(kind) || entry.AtMS < 0 {
			return nil, &AdapterError{
				Source:  source,
				Message: fmt.Sprintf("invalid event %d", i),
			}
		}
		events = append(events, Event{
			At:    time.Duration(entry.AtMS) * time.Millisecond,
			Kind:  kind,
			Point: geometry.Point{X: entry.X, Y: entry.Y},
		})
	}
	return events, nil
}

func parseLineTrace(source string, data []byte) ([]Event, error) {
	var events []Event
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ev, err := parseLine(line)
		if err != nil {
			return nil, &AdapterError{
				Source:  source,
				Message: "invalid trace line",
				Line:    i + 1,
				Err:     err,
			}
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseLine(line string) (Event, error) {
	fields := strings.Fields(line)
	ms, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || ms < 0 {
		return Event{}, fmt.Errorf("bad time %q", fields[0])
	}
	ev := Event{At: time.Duration(ms) * time.Millisecond}

	switch len(fields) {
	case 2:
		ev.Kind = EventKind(strings.ToLower(fields[1]))
		if !validKind(ev.Kind) || ev.Kind == EventMove {
			return Event{}, fmt.Errorf("bad event %q", fields[1])
		}
	case 3:
		x, errX := strconv.ParseFloat(fields[1], 64)
		y, errY := strconv.ParseFloat(fields[2], 64)
		if errX != nil || errY != nil {
			return Event{}, fmt.Errorf("bad point %q %q", fields[1], fields[2])
		}
		ev.Kind = EventMove
		ev.Point = geometry.Point{X: x, Y: y}
	default:
		return Event{}, fmt.Errorf("expected 2 or 3 fields, got %d", len(fields))
	}
	return ev, nil
}

func validKind(k EventKind) bool {
	switch k {
	case EventMove, EventLeave, EventExpand, EventCollapse, EventEnable, EventDisable:
		return true
	}
	return false
}
