package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManual_FiresInDeadlineOrder(t *testing.T) {
	m := NewManual(epoch)
	var got []string
	m.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	m.Advance(9 * time.Millisecond)
	assert.Empty(t, got)

	m.Advance(time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)

	m.Advance(time.Hour)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, epoch.Add(time.Hour+10*time.Millisecond), m.Now())
}

func TestManual_NowDuringCallbackIsDeadline(t *testing.T) {
	m := NewManual(epoch)
	var at time.Time
	m.AfterFunc(25*time.Millisecond, func() { at = m.Now() })
	m.Advance(time.Second)
	assert.Equal(t, epoch.Add(25*time.Millisecond), at)
}

func TestManual_Stop(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	timer := m.AfterFunc(time.Millisecond, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	m.Advance(time.Second)
	assert.False(t, fired)
	assert.Zero(t, m.Pending())
}

func TestManual_StopAfterFire(t *testing.T) {
	m := NewManual(epoch)
	timer := m.AfterFunc(time.Millisecond, func() {})
	m.Advance(time.Millisecond)
	assert.False(t, timer.Stop())
}

func TestManual_ChainedCallbacksWithinWindow(t *testing.T) {
	m := NewManual(epoch)
	var ticks []time.Duration
	var tick func()
	tick = func() {
		ticks = append(ticks, m.Now().Sub(epoch))
		if len(ticks) < 10 {
			m.AfterFunc(16*time.Millisecond, tick)
		}
	}
	m.AfterFunc(16*time.Millisecond, tick)

	m.Advance(50 * time.Millisecond)
	assert.Equal(t, []time.Duration{16 * time.Millisecond, 32 * time.Millisecond, 48 * time.Millisecond}, ticks)

	elapsed := m.Flush(time.Minute)
	assert.Len(t, ticks, 10)
	assert.Equal(t, 160*time.Millisecond, m.Now().Sub(epoch))
	assert.Equal(t, 110*time.Millisecond, elapsed)
}

func TestManual_ZeroDelay(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	m.AfterFunc(-time.Second, func() { fired = true })
	m.Advance(0)
	assert.True(t, fired)
}

func TestManual_Deadlines(t *testing.T) {
	m := NewManual(epoch)
	m.AfterFunc(500*time.Millisecond, func() {})
	m.AfterFunc(20*time.Millisecond, func() {})
	m.Advance(5 * time.Millisecond)
	assert.Equal(t, []time.Duration{15 * time.Millisecond, 495 * time.Millisecond}, m.Deadlines())
}

func TestManual_AdvanceBackwardsIgnored(t *testing.T) {
	m := NewManual(epoch)
	m.AdvanceTo(epoch.Add(-time.Hour))
	assert.Equal(t, epoch, m.Now())
}

func TestReal_DispatchesCallback(t *testing.T) {
	var mu sync.Mutex
	dispatched := 0
	done := make(chan struct{})

	r := NewReal(func(f func()) {
		mu.Lock()
		dispatched++
		mu.Unlock()
		f()
	})
	r.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "callback not delivered")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, dispatched)
}

func TestReal_StopBeforeFire(t *testing.T) {
	r := NewReal(nil)
	fired := make(chan struct{}, 1)
	timer := r.AfterFunc(time.Hour, func() { fired <- struct{}{} })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
}
