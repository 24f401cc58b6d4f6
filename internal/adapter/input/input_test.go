package input

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bezel/internal/adapter/output"
	"github.com/jmylchreest/bezel/internal/clock"
	"github.com/jmylchreest/bezel/internal/config"
	"github.com/jmylchreest/bezel/internal/daemon"
	"github.com/jmylchreest/bezel/internal/geometry"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestParseTrace_Lines(t *testing.T) {
	data := []byte(`
# approach
0 960 900
1200 960.5 1079
1800 collapse
1700 EXPAND
3000 leave
`)
	events, err := ParseTrace("test", data)
	require.NoError(t, err)
	require.Len(t, events, 5)

	assert.Equal(t, Event{At: 0, Kind: EventMove, Point: geometry.Point{X: 960, Y: 900}}, events[0])
	assert.Equal(t, geometry.Point{X: 960.5, Y: 1079}, events[1].Point)
	assert.Equal(t, EventExpand, events[2].Kind, "sorted by time")
	assert.Equal(t, 1700*time.Millisecond, events[2].At)
	assert.Equal(t, EventCollapse, events[3].Kind)
	assert.Equal(t, EventLeave, events[4].Kind)
}

func TestParseTrace_JSON(t *testing.T) {
	data := []byte(`[
		{"at_ms": 20, "x": 1, "y": 2},
		{"at_ms": 10, "kind": "disable"},
		{"at_ms": 20, "kind": "enable"}
	]`)
	events, err := ParseTrace("test", data)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, EventDisable, events[0].Kind)
	assert.Equal(t, EventMove, events[1].Kind, "stable for equal times")
	assert.Equal(t, geometry.Point{X: 1, Y: 2}, events[1].Point)
	assert.Equal(t, EventEnable, events[2].Kind)
}

func TestParseTrace_Empty(t *testing.T) {
	events, err := ParseTrace("test", []byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestParseTrace_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
	}{
		{"bad time", "abc 1 2", 1},
		{"negative time", "-5 leave", 1},
		{"unknown kind", "0 leave\n10 jump", 2},
		{"move needs point", "0 move", 1},
		{"bad point", "0 1 y", 1},
		{"too many fields", "0 1 2 3", 1},
		{"bad json", `[{"at_ms": "x"}]`, 0},
		{"bad json kind", `[{"at_ms": 1, "kind": "jump"}]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTrace("trace.txt", []byte(tt.data))
			require.Error(t, err)

			var adapterErr *AdapterError
			require.True(t, errors.As(err, &adapterErr))
			assert.Equal(t, tt.line, adapterErr.Line)
			if tt.line > 0 {
				assert.True(t, strings.HasPrefix(err.Error(), "trace.txt:"))
			}
		})
	}
}

func TestStdinAdapter(t *testing.T) {
	adapter := NewStdinAdapterWithReader(strings.NewReader("0 leave\n"))
	assert.Equal(t, "stdin", adapter.Name())

	events, err := adapter.Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Event{{Kind: EventLeave}}, events)
}

func TestNewAdapter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.txt")
	require.NoError(t, os.WriteFile(path, []byte("5 expand\n"), 0o644))

	tests := []struct {
		source string
		name   string
	}{
		{"", "demo"},
		{"demo", "demo"},
		{"-", "stdin"},
		{"stdin", "stdin"},
		{path, "file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, err := NewAdapter(tt.source, DemoFrames{})
			require.NoError(t, err)
			assert.Equal(t, tt.name, adapter.Name())
		})
	}

	adapter, err := NewAdapter(path, DemoFrames{})
	require.NoError(t, err)
	events, err := adapter.Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Event{{At: 5 * time.Millisecond, Kind: EventExpand}}, events)

	_, err = NewAdapter(filepath.Join(dir, "missing"), DemoFrames{})
	assert.Error(t, err)
}

type recordingSink struct {
	clock *clock.Manual
	calls []string
}

func (s *recordingSink) log(name string) {
	s.calls = append(s.calls, s.clock.Now().Sub(epoch).String()+" "+name)
}

func (s *recordingSink) PointerMoved(geometry.Point) { s.log("move") }
func (s *recordingSink) PointerLeft()                { s.log("leave") }
func (s *recordingSink) Expand() bool                { s.log("expand"); return true }
func (s *recordingSink) Collapse() bool              { s.log("collapse"); return true }
func (s *recordingSink) SetEnabled(enabled bool) {
	if enabled {
		s.log("enable")
	} else {
		s.log("disable")
	}
}

func TestReplay(t *testing.T) {
	m := clock.NewManual(epoch)
	sink := &recordingSink{clock: m}
	events := []Event{
		{At: 0, Kind: EventMove},
		{At: 10 * time.Millisecond, Kind: EventExpand},
		{At: 10 * time.Millisecond, Kind: EventDisable},
		{At: 50 * time.Millisecond, Kind: EventEnable},
		{At: 60 * time.Millisecond, Kind: EventCollapse},
		{At: 70 * time.Millisecond, Kind: EventLeave},
	}

	Replay(m, sink, events, time.Second)
	assert.Equal(t, []string{
		"0s move", "10ms expand", "10ms disable", "50ms enable", "60ms collapse", "70ms leave",
	}, sink.calls)
	assert.Equal(t, epoch.Add(1070*time.Millisecond), m.Now())
}

func TestReplay_DemoAgainstOverlay(t *testing.T) {
	m := clock.NewManual(epoch)
	rec := output.NewRecorder(m.Now)
	info := geometry.NotchInfo{CenterX: 960, TopY: 1080, NotchWidth: 200, HasNotch: true}

	overlay := daemon.NewOverlay(daemon.Options{
		Scheduler: m,
		Surface:   rec,
		Detector:  geometry.StaticDetector(info),
		Config:    config.DefaultConfig(),
	})
	overlay.OnStateChange(rec.StateChanged)
	overlay.Start()

	frames := overlay.Controller().Frames()
	events, err := NewDemoAdapter(DemoFrames{Collapsed: frames.Collapsed, Expanded: frames.Expanded}).Import(context.Background())
	require.NoError(t, err)
	Replay(m, overlay, events, time.Second)

	var expandingAt, collapsingAt int64 = -1, -1
	sawExpanded := false
	for _, s := range rec.Timeline() {
		switch {
		case s.State == "expanding" && expandingAt < 0:
			expandingAt = s.AtMS
		case s.State == "expanded":
			sawExpanded = true
			assert.Equal(t, frames.Expanded, s.Frame)
		case s.State == "collapsing" && collapsingAt < 0:
			collapsingAt = s.AtMS
		}
	}
	assert.Equal(t, int64(1720), expandingAt, "20ms debounce plus 500ms dwell after 1200ms")
	assert.True(t, sawExpanded)
	assert.Equal(t, int64(3520), collapsingAt)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "collapsed", last.State)
	assert.Equal(t, frames.Collapsed, last.Frame)
	assert.False(t, rec.Content)
}
