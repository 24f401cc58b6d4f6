package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a logical clock. Time only moves when Advance is called, and due
// callbacks run synchronously inside Advance in deadline order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

// NewManual returns a logical clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the logical time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules f to run once the clock has advanced by d. A
// non-positive d runs on the next Advance, including Advance(0).
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, deadline: m.now.Add(d), seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, running every callback whose
// deadline falls inside the window. Callbacks scheduled by callbacks run too
// if they fall due before the end of the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	end := m.now.Add(d)
	m.mu.Unlock()
	m.AdvanceTo(end)
}

// AdvanceTo moves the clock to t. Moving backwards is ignored.
func (m *Manual) AdvanceTo(t time.Time) {
	for {
		m.mu.Lock()
		next := m.nextDueLocked(t)
		if next == nil {
			if t.After(m.now) {
				m.now = t
			}
			m.mu.Unlock()
			return
		}
		m.removeLocked(next)
		if next.deadline.After(m.now) {
			m.now = next.deadline
		}
		m.mu.Unlock()
		next.f()
	}
}

// Flush advances until no callbacks remain, up to limit of logical time. It
// returns the time advanced.
func (m *Manual) Flush(limit time.Duration) time.Duration {
	start := m.Now()
	for {
		m.mu.Lock()
		var next *manualTimer
		if len(m.timers) > 0 {
			next = m.earliestLocked()
		}
		m.mu.Unlock()
		if next == nil || next.deadline.Sub(start) > limit {
			break
		}
		m.AdvanceTo(next.deadline)
	}
	return m.Now().Sub(start)
}

// Pending returns the number of scheduled callbacks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Deadlines returns the remaining time until each scheduled callback, in
// firing order.
func (m *Manual) Deadlines() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	timers := append([]*manualTimer(nil), m.timers...)
	sort.Slice(timers, func(i, j int) bool { return timers[i].before(timers[j]) })
	out := make([]time.Duration, len(timers))
	for i, t := range timers {
		out[i] = t.deadline.Sub(m.now)
	}
	return out
}

func (m *Manual) earliestLocked() *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if best == nil || t.before(best) {
			best = t
		}
	}
	return best
}

func (m *Manual) nextDueLocked(limit time.Time) *manualTimer {
	best := m.earliestLocked()
	if best == nil || best.deadline.After(limit) {
		return nil
	}
	return best
}

func (m *Manual) removeLocked(t *manualTimer) bool {
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

type manualTimer struct {
	m        *Manual
	deadline time.Time
	seq      uint64
	f        func()
}

func (t *manualTimer) before(o *manualTimer) bool {
	if t.deadline.Equal(o.deadline) {
		return t.seq < o.seq
	}
	return t.deadline.Before(o.deadline)
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	return t.m.removeLocked(t)
}
