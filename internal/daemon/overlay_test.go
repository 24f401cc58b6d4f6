package daemon

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bezel/internal/clock"
	"github.com/jmylchreest/bezel/internal/config"
	"github.com/jmylchreest/bezel/internal/dbus"
	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/shape"
	"github.com/jmylchreest/bezel/internal/transition"
)

var epoch = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

var testNotch = geometry.NotchInfo{CenterX: 960, TopY: 1080, NotchWidth: 200, HasNotch: true}

type fakeSurface struct {
	frame          geometry.Rect
	morph          float64
	visible        bool
	shows, hides   int
	contentVisible bool
	shape          shape.Params
	timerText      string
}

func (s *fakeSurface) SetFrame(r geometry.Rect)       { s.frame = r }
func (s *fakeSurface) SetMorph(p float64)             { s.morph = p }
func (s *fakeSurface) Show()                          { s.visible = true; s.shows++ }
func (s *fakeSurface) Hide()                          { s.visible = false; s.hides++ }
func (s *fakeSurface) SetContentVisible(visible bool) { s.contentVisible = visible }
func (s *fakeSurface) SetShape(p shape.Params)        { s.shape = p }
func (s *fakeSurface) SetTimerText(text string)       { s.timerText = text }

type fakeChime struct {
	played []string
	volume int
	err    error
}

func (c *fakeChime) Play(path string) error {
	c.played = append(c.played, path)
	return c.err
}

func (c *fakeChime) SetVolume(percent int) { c.volume = percent }

type fakeSender struct {
	sent []*dbus.Notification
}

func (s *fakeSender) Send(n *dbus.Notification) (uint32, error) {
	s.sent = append(s.sent, n)
	return uint32(len(s.sent)), nil
}

type harness struct {
	clock   *clock.Manual
	surface *fakeSurface
	chime   *fakeChime
	sender  *fakeSender
	overlay *Overlay
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h := &harness{
		clock:   clock.NewManual(epoch),
		surface: &fakeSurface{},
		chime:   &fakeChime{},
		sender:  &fakeSender{},
	}
	h.overlay = NewOverlay(Options{
		Scheduler: h.clock,
		Surface:   h.surface,
		Detector:  geometry.StaticDetector(testNotch),
		Config:    cfg,
		Chime:     h.chime,
		Notifier:  NewNotifier(h.sender, nil),
	})
	return h
}

// opened starts the overlay and runs the launch animation to completion.
func (h *harness) opened(t *testing.T) {
	t.Helper()
	h.overlay.Start()
	h.clock.Advance(time.Second)
	require.Equal(t, transition.Collapsed, h.overlay.Controller().State())
}

// hoverPoint is a point near the top centre of the current hover reference.
func (h *harness) hoverPoint() geometry.Point {
	ref := h.overlay.Controller().HoverReference()
	return geometry.Point{X: ref.MidX(), Y: ref.MaxY() - 0.5}
}

func TestOverlay_Start(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, transition.Opening, h.overlay.Controller().State())
	assert.False(t, h.surface.visible, "nothing shown before Start")

	h.opened(t)

	assert.True(t, h.surface.visible)
	assert.Equal(t, 1.0, h.surface.morph)
	assert.Equal(t, h.overlay.Controller().Frames().Collapsed, h.surface.frame)
	assert.Equal(t, shape.FamilyBezel, h.surface.shape.Family)
	assert.Equal(t, 32.0, h.surface.shape.TopInset, "notch sizing on a notched display")
	assert.Equal(t, "25:00", h.surface.timerText)
	assert.False(t, h.surface.contentVisible)
	assert.Equal(t, 80, h.chime.volume)

	h.overlay.Start()
	assert.Equal(t, 1, h.surface.shows, "Start runs once")
}

func TestOverlay_HoverExpandsAndLeavingCollapses(t *testing.T) {
	h := newHarness(t, nil)
	h.opened(t)

	h.overlay.PointerMoved(h.hoverPoint())
	h.clock.Advance(519 * time.Millisecond)
	assert.Equal(t, transition.Collapsed, h.overlay.Controller().State())

	h.clock.Advance(time.Millisecond)
	assert.Equal(t, transition.Expanding, h.overlay.Controller().State())
	assert.True(t, h.surface.contentVisible)

	h.clock.Advance(300 * time.Millisecond)
	assert.Equal(t, transition.Expanded, h.overlay.Controller().State())
	assert.Equal(t, h.overlay.Controller().Frames().Expanded, h.surface.frame)

	h.overlay.PointerLeft()
	h.clock.Advance(20 * time.Millisecond)
	assert.Equal(t, transition.Collapsing, h.overlay.Controller().State())
	assert.False(t, h.surface.contentVisible)

	h.clock.Advance(200 * time.Millisecond)
	assert.Equal(t, transition.Collapsed, h.overlay.Controller().State())
	assert.Equal(t, h.overlay.Controller().Frames().Collapsed, h.surface.frame)
}

func TestOverlay_DisabledIgnoresPointer(t *testing.T) {
	h := newHarness(t, nil)
	h.opened(t)

	h.overlay.SetEnabled(false)
	assert.False(t, h.surface.visible)
	assert.False(t, h.overlay.Enabled())

	h.overlay.PointerMoved(h.hoverPoint())
	h.clock.Advance(time.Second)
	assert.Equal(t, transition.Collapsed, h.overlay.Controller().State())
	assert.False(t, h.overlay.Expand())

	assert.True(t, h.overlay.Toggle())
	assert.True(t, h.surface.visible)
	assert.True(t, h.overlay.Expand())
}

func TestOverlay_DisableMidExpandCollapsesOnEnable(t *testing.T) {
	h := newHarness(t, nil)
	h.opened(t)

	require.True(t, h.overlay.Expand())
	h.overlay.SetEnabled(false)
	h.clock.Advance(time.Second)
	assert.Equal(t, transition.Expanded, h.overlay.Controller().State(), "collapse is dropped mid-animation")

	h.overlay.SetEnabled(true)
	assert.Equal(t, transition.Collapsing, h.overlay.Controller().State())
	h.clock.Advance(time.Second)
	assert.Equal(t, transition.Collapsed, h.overlay.Controller().State())
}

func TestOverlay_Status(t *testing.T) {
	h := newHarness(t, nil)
	h.opened(t)

	st := h.overlay.Status()
	assert.Equal(t, "collapsed", st.State)
	assert.True(t, st.Enabled)
	assert.Equal(t, epoch.Add(980*time.Millisecond), st.ChangedAt)
}

func TestOverlay_DisplayChanged(t *testing.T) {
	h := newHarness(t, nil)
	h.opened(t)

	moved := geometry.NotchInfo{CenterX: 1280, TopY: 1440, NotchWidth: 180}
	h.overlay.DisplayChanged(moved)

	collapsed := h.overlay.Controller().Frames().Collapsed
	assert.Equal(t, collapsed, h.surface.frame)
	assert.Equal(t, 1280.0, collapsed.MidX())
	assert.Equal(t, 1440.0, collapsed.MaxY())
	assert.Equal(t, 32.0, collapsed.Height, "no-notch collapsed height")
	assert.Equal(t, 0.0, h.surface.shape.TopInset, "no-notch shape")
}

func TestOverlay_DisplayChangedMidAnimation(t *testing.T) {
	moved := geometry.NotchInfo{CenterX: 400, TopY: 900, NotchWidth: 200, HasNotch: true}

	t.Run("expanding", func(t *testing.T) {
		h := newHarness(t, nil)
		h.opened(t)

		require.True(t, h.overlay.Expand())
		h.clock.Advance(50 * time.Millisecond)
		h.overlay.DisplayChanged(moved)
		h.clock.Advance(time.Second)

		expanded := h.overlay.Controller().Frames().Expanded
		assert.Equal(t, transition.Expanded, h.overlay.Controller().State())
		assert.Equal(t, expanded, h.surface.frame)
		assert.Equal(t, 400.0, expanded.MidX())
		assert.Equal(t, 900.0, expanded.MaxY())
	})

	t.Run("collapsing", func(t *testing.T) {
		h := newHarness(t, nil)
		h.opened(t)

		require.True(t, h.overlay.Expand())
		h.clock.Advance(time.Second)
		require.True(t, h.overlay.Collapse())
		h.clock.Advance(50 * time.Millisecond)
		h.overlay.DisplayChanged(moved)
		h.clock.Advance(time.Second)

		collapsed := h.overlay.Controller().Frames().Collapsed
		assert.Equal(t, transition.Collapsed, h.overlay.Controller().State())
		assert.Equal(t, collapsed, h.surface.frame)
		assert.Equal(t, 400.0, collapsed.MidX())
		assert.Equal(t, 900.0, collapsed.MaxY())
	})
}

func TestOverlay_StartWhileDisabledStaysHidden(t *testing.T) {
	h := newHarness(t, nil)
	h.overlay.SetEnabled(false)

	h.opened(t)
	assert.False(t, h.surface.visible)

	h.overlay.SetEnabled(true)
	assert.True(t, h.surface.visible)
	assert.Equal(t, h.overlay.Controller().Frames().Collapsed, h.surface.frame)
}

func TestOverlay_ApplyConfig(t *testing.T) {
	h := newHarness(t, nil)
	h.opened(t)

	cfg := config.DefaultConfig()
	cfg.Bezel.CollapsedWidth = 420
	cfg.Shape.Family = string(shape.FamilyEar)
	cfg.Timer.Minutes = 50
	cfg.Timer.Volume = 30
	cfg.Hover.Dwell = config.Duration(100 * time.Millisecond)
	h.overlay.ApplyConfig(cfg)

	assert.Equal(t, 420.0, h.surface.frame.Width)
	assert.Equal(t, shape.FamilyEar, h.surface.shape.Family)
	assert.Equal(t, "50:00", h.surface.timerText)
	assert.Equal(t, 30, h.chime.volume)

	h.overlay.PointerMoved(h.hoverPoint())
	h.clock.Advance(120 * time.Millisecond)
	assert.Equal(t, transition.Expanding, h.overlay.Controller().State())
}

func TestOverlay_CountdownCompletion(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timer.Minutes = 1
	cfg.Timer.Chime = "/usr/share/sounds/bell.oga"
	h := newHarness(t, cfg)
	h.opened(t)

	h.overlay.ToggleTimer()
	h.clock.Advance(30 * time.Second)
	assert.Equal(t, "0:30", h.surface.timerText)

	h.clock.Advance(30 * time.Second)
	assert.Equal(t, "0:00", h.surface.timerText)
	assert.Empty(t, h.chime.played)

	h.clock.Advance(time.Second)
	assert.Equal(t, "1:00", h.surface.timerText)
	assert.Equal(t, []string{"/usr/share/sounds/bell.oga"}, h.chime.played)
	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, "Focus session complete", h.sender.sent[0].Summary)
}

func TestOverlay_ChimeErrorIsReported(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timer.Minutes = 1
	h := newHarness(t, cfg)
	h.chime.err = errors.New("no device")
	h.opened(t)

	h.overlay.ToggleTimer()
	h.clock.Advance(61 * time.Second)

	require.Len(t, h.sender.sent, 2)
	assert.Equal(t, "Audio Error", h.sender.sent[0].Summary)
	assert.Contains(t, h.sender.sent[0].Body, "no device")
	assert.Equal(t, "Focus session complete", h.sender.sent[1].Summary)
}

func TestOverlay_ResetTimer(t *testing.T) {
	h := newHarness(t, nil)
	h.opened(t)

	h.overlay.ToggleTimer()
	h.clock.Advance(5 * time.Second)
	assert.Equal(t, "24:55", h.surface.timerText)

	h.overlay.ResetTimer()
	assert.Equal(t, "25:00", h.surface.timerText)
	assert.Zero(t, h.clock.Pending())
}

func TestRemote_DispatchesOntoControlThread(t *testing.T) {
	h := newHarness(t, nil)
	h.opened(t)

	dispatched := 0
	r := NewRemote(h.overlay, func(f func()) {
		dispatched++
		go f()
	})

	assert.True(t, r.Expand())
	assert.Equal(t, "expanding", r.Status().State)
	r.SetEnabled(false)
	assert.False(t, h.overlay.Enabled())
	assert.False(t, r.Collapse())
	assert.Equal(t, 4, dispatched)
}
