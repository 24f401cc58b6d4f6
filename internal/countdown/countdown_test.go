package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/bezel/internal/clock"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{25 * 60, "25:00"},
		{61, "1:01"},
		{9, "0:09"},
		{0, "0:00"},
		{-3, "0:00"},
		{100 * 60, "100:00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.seconds))
		})
	}
}

func TestTimer_Defaults(t *testing.T) {
	tm := New(clock.NewManual(epoch), 0)
	assert.Equal(t, Idle, tm.State())
	assert.Equal(t, "25:00", tm.String())
}

func TestTimer_CountsDown(t *testing.T) {
	m := clock.NewManual(epoch)
	tm := New(m, 1)
	changes := 0
	tm.OnChange = func() { changes++ }

	tm.Start()
	assert.Equal(t, Running, tm.State())
	m.Advance(15 * time.Second)
	assert.Equal(t, "0:45", tm.String())
	assert.Equal(t, 16, changes)
}

func TestTimer_PauseAndResume(t *testing.T) {
	m := clock.NewManual(epoch)
	tm := New(m, 1)

	tm.Toggle()
	m.Advance(10 * time.Second)
	tm.Toggle()
	assert.Equal(t, Paused, tm.State())
	m.Advance(time.Minute)
	assert.Equal(t, 50*time.Second, tm.Remaining())
	assert.Zero(t, m.Pending())

	tm.Toggle()
	m.Advance(5 * time.Second)
	assert.Equal(t, "0:45", tm.String())
}

func TestTimer_CompletesAndResets(t *testing.T) {
	m := clock.NewManual(epoch)
	tm := New(m, 1)
	completed := 0
	tm.OnComplete = func() { completed++ }

	tm.Start()
	m.Advance(60 * time.Second)
	assert.Equal(t, "0:00", tm.String())
	assert.Zero(t, completed)

	m.Advance(time.Second)
	assert.Equal(t, 1, completed)
	assert.Equal(t, Idle, tm.State())
	assert.Equal(t, "1:00", tm.String())
	assert.Zero(t, m.Pending())
}

func TestTimer_SetMinutes(t *testing.T) {
	m := clock.NewManual(epoch)
	tm := New(m, 25)
	tm.SetMinutes(5)
	assert.Equal(t, "5:00", tm.String())

	tm.Start()
	m.Advance(time.Second)
	tm.SetMinutes(10)
	assert.Equal(t, "4:59", tm.String(), "running session keeps its length")
	tm.Reset()
	assert.Equal(t, "10:00", tm.String())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "paused", Paused.String())
}
