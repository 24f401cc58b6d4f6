// Package tui provides the BubbleTea-based terminal simulator. It drives a
// real overlay against a logical clock and rasterizes the silhouette into
// terminal cells, so hover intent and transitions can be explored without a
// compositor.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/bezel/internal/adapter/output"
	"github.com/jmylchreest/bezel/internal/clock"
	"github.com/jmylchreest/bezel/internal/config"
	"github.com/jmylchreest/bezel/internal/countdown"
	"github.com/jmylchreest/bezel/internal/daemon"
	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/hover"
	"github.com/jmylchreest/bezel/internal/shape"
	"github.com/jmylchreest/bezel/internal/theme"
	"github.com/jmylchreest/bezel/internal/transition"
)

const (
	tickInterval = 33 * time.Millisecond
	maxTickStep  = 250 * time.Millisecond // Longer gaps (suspend, slow terminal) are clipped
	slowSpeed    = 0.25
	viewMargin   = 40.0

	zoneToggle = "timer-toggle"
	zoneReset  = "timer-reset"
)

// DefaultScreen is the simulated display.
var DefaultScreen = geometry.Rect{Width: 1920, Height: 1080}

// Options configures the simulator.
type Options struct {
	Config           *config.Config
	Theme            *theme.Theme
	Screen           geometry.Rect // Zero = DefaultScreen
	Start            time.Time     // Logical clock start; zero = now
	ClipboardCommand string
	Chime            daemon.Chime // optional
	Logger           *slog.Logger // nil = discard
}

// simulation holds the state shared by every copy of the Model.
type simulation struct {
	cfg     *config.Config
	clock   *clock.Manual
	start   time.Time
	canvas  *Canvas
	overlay *daemon.Overlay
	info    geometry.NotchInfo
	zones   *zone.Manager

	fillColor string
	textColor string
}

// Model is the simulator's BubbleTea model.
type Model struct {
	sim *simulation

	// Components
	help help.Model
	keys KeyMap

	// State
	width     int
	height    int
	ready     bool
	paused    bool
	slow      bool
	showZones bool
	lastTick  time.Time
	pointer   *geometry.Point
	clipboard string

	// Status message
	statusMsg string
	statusErr bool
}

type tickMsg time.Time

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// New creates a simulator and starts the overlay's launch animation.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	screen := opts.Screen
	if screen.IsEmpty() {
		screen = DefaultScreen
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	th := opts.Theme
	if th == nil {
		if bundled, ok := theme.Bundled(theme.DefaultThemeName); ok {
			th = bundled
		} else {
			th = &theme.Theme{Fill: theme.Black, Text: theme.White}
		}
	}

	info := geometry.Synthesize(screen, cfg.FallbackNotchWidth())
	info.HasNotch = cfg.Notch.HasNotch

	sim := &simulation{
		cfg:       cfg,
		clock:     clock.NewManual(start),
		start:     start,
		canvas:    NewCanvas(),
		info:      info,
		zones:     zone.New(),
		fillColor: terminalColor(th.Fill),
		textColor: th.Text.Hex(),
	}
	sim.overlay = daemon.NewOverlay(daemon.Options{
		Scheduler: sim.clock,
		Surface:   sim.canvas,
		Detector:  geometry.DetectorFunc(func() geometry.NotchInfo { return sim.info }),
		Config:    cfg,
		Chime:     opts.Chime,
		Logger:    logger,
	})
	sim.overlay.Start()

	return Model{
		sim:       sim,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		clipboard: opts.ClipboardCommand,
	}
}

// Overlay returns the simulated overlay.
func (m Model) Overlay() *daemon.Overlay { return m.sim.overlay }

// Elapsed returns the logical time since the simulation started.
func (m Model) Elapsed() time.Duration { return m.sim.clock.Now().Sub(m.sim.start) }

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() && !m.paused {
			m.advance(now.Sub(m.lastTick))
		}
		m.lastTick = now
		return m, tick()

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = "Copy failed: " + msg.err.Error()
			m.statusErr = true
		} else {
			m.statusMsg = "Copied SVG path"
			m.statusErr = false
		}
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// advance moves the logical clock by a wall-clock delta.
func (m Model) advance(d time.Duration) {
	if d <= 0 {
		return
	}
	if d > maxTickStep {
		d = maxTickStep
	}
	if m.slow {
		d = time.Duration(float64(d) * slowSpeed)
	}
	m.sim.clock.Advance(d)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	o := m.sim.overlay

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Expand):
		o.Expand()
	case key.Matches(msg, m.keys.Collapse):
		o.Collapse()
	case key.Matches(msg, m.keys.Leave):
		m.pointer = nil
		o.PointerLeft()
	case key.Matches(msg, m.keys.Enable):
		o.Toggle()
	case key.Matches(msg, m.keys.Notch):
		m.sim.info.HasNotch = !m.sim.info.HasNotch
		o.Redetect()
	case key.Matches(msg, m.keys.Family):
		next := *m.sim.cfg
		next.Shape.Family = string(nextFamily(shape.Family(next.Shape.Family)))
		m.sim.cfg = &next
		o.ApplyConfig(&next)
	case key.Matches(msg, m.keys.Timer):
		o.ToggleTimer()
	case key.Matches(msg, m.keys.Reset):
		o.ResetTimer()
	case key.Matches(msg, m.keys.Zones):
		m.showZones = !m.showZones
	case key.Matches(msg, m.keys.Slow):
		m.slow = !m.slow
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Copy):
		return m, m.copySVG()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		if z := m.sim.zones.Get(zoneToggle); z != nil && z.InBounds(msg) {
			m.sim.overlay.ToggleTimer()
			return m, nil
		}
		if z := m.sim.zones.Get(zoneReset); z != nil && z.InBounds(msg) {
			m.sim.overlay.ResetTimer()
			return m, nil
		}
	}

	if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
		return m, nil
	}
	vp := m.viewport()
	row := msg.Y - headerRows
	if row < 0 || row >= vp.Rows || msg.X < 0 || msg.X >= vp.Cols {
		if m.pointer != nil {
			m.pointer = nil
			m.sim.overlay.PointerLeft()
		}
		return m, nil
	}
	p := vp.PointerAt(msg.X, row)
	m.pointer = &p
	m.sim.overlay.PointerMoved(p)
	return m, nil
}

func (m Model) copySVG() tea.Cmd {
	c := m.sim.canvas
	s := output.NewShape(c.Frame().Width, c.Frame().Height, c.Morph(), c.Params())
	command := m.clipboard
	return func() tea.Msg {
		return copyResultMsg{err: copyText(s.D, command)}
	}
}

func nextFamily(f shape.Family) shape.Family {
	families := shape.ValidFamilies()
	for i, candidate := range families {
		if candidate == f {
			return families[(i+1)%len(families)]
		}
	}
	return families[0]
}

// headerRows is the number of lines above the canvas.
const headerRows = 1

// viewport returns the cell mapping for the current size and geometry.
func (m Model) viewport() Viewport {
	frames := m.sim.overlay.Controller().Frames()
	focus := hover.SurfaceBounds(frames.Expanded, m.sim.cfg.IntentConfig().Hover)
	return NewViewport(focus, viewMargin, m.width, m.canvasRows())
}

func (m Model) canvasRows() int {
	return max(m.height-headerRows-lipgloss.Height(m.footer()), 1)
}

// View renders the simulator.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	view := m.header() + "\n" + m.canvas() + "\n" + m.footer()
	return m.sim.zones.Scan(view)
}

func (m Model) header() string {
	o := m.sim.overlay
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	parts := []string{
		titleStyle.Render("bezel"),
		"state " + o.Controller().State().String(),
		fmt.Sprintf("t=%.2fs", m.Elapsed().Seconds()),
	}
	if !o.Enabled() {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("disabled"))
	}
	if m.sim.info.HasNotch {
		parts = append(parts, "notch")
	} else {
		parts = append(parts, "no notch")
	}
	parts = append(parts, string(m.sim.canvas.Params().Family))
	if m.slow {
		parts = append(parts, fmt.Sprintf("%gx", slowSpeed))
	}
	if m.paused {
		parts = append(parts, "paused")
	}
	return strings.Join(parts, dim.Render("  │  "))
}

func (m Model) footer() string {
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		return statusStyle.Render(m.statusMsg)
	}
	return m.help.View(m.keys)
}

type cellStyle struct {
	glyph string
	style lipgloss.Style
}

// cellStyles maps cell kinds to their glyph and style.
func (m Model) cellStyles() map[cellKind]cellStyle {
	return map[cellKind]cellStyle{
		cellEmpty:   {" ", lipgloss.NewStyle()},
		cellOuter:   {"·", lipgloss.NewStyle().Foreground(lipgloss.Color("8"))},
		cellMiddle:  {"░", lipgloss.NewStyle().Foreground(lipgloss.Color("8"))},
		cellActive:  {"▒", lipgloss.NewStyle().Foreground(lipgloss.Color("10"))},
		cellFill:    {"█", lipgloss.NewStyle().Foreground(lipgloss.Color(m.sim.fillColor))},
		cellPointer: {"◆", lipgloss.NewStyle().Foreground(lipgloss.Color("11"))},
	}
}

func (m Model) canvas() string {
	vp := m.viewport()
	c := m.sim.canvas
	reference := m.sim.overlay.Controller().HoverReference()
	grid := rasterize(c, vp, reference, m.sim.cfg.IntentConfig().Hover, m.showZones, m.pointer)

	// Timer row sits at the vertical centre of the frame.
	contentRow, contentCol := -1, 0
	var content string
	if c.Visible() && c.ContentVisible() {
		content, contentCol, contentRow = m.content(vp)
	}

	styles := m.cellStyles()
	var sb strings.Builder
	for row, cells := range grid {
		if row > 0 {
			sb.WriteByte('\n')
		}
		if row == contentRow {
			width := lipgloss.Width(content)
			sb.WriteString(renderCells(cells[:contentCol], styles))
			sb.WriteString(content)
			sb.WriteString(renderCells(cells[min(contentCol+width, len(cells)):], styles))
			continue
		}
		sb.WriteString(renderCells(cells, styles))
	}
	return sb.String()
}

// content renders the timer label and buttons and returns where they go.
func (m Model) content(vp Viewport) (string, int, int) {
	o := m.sim.overlay
	frame := m.sim.canvas.Frame()

	icon := "▶"
	if o.Timer().State() == countdown.Running {
		icon = "⏸"
	}
	label := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.sim.textColor)).
		Background(lipgloss.Color(m.sim.fillColor)).
		Render(" " + m.sim.canvas.TimerText() + " ")
	button := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.sim.textColor)).
		Background(lipgloss.Color(m.sim.fillColor))
	content := label +
		m.sim.zones.Mark(zoneToggle, button.Render("["+icon+"]")) +
		button.Render(" ") +
		m.sim.zones.Mark(zoneReset, button.Render("[↺]"))

	col, row, ok := vp.Cell(geometry.Point{X: frame.MidX(), Y: frame.MidY()})
	width := lipgloss.Width(content)
	if !ok || width > vp.Cols {
		return "", 0, -1
	}
	col = min(max(col-width/2, 0), vp.Cols-width)
	return content, col, row
}

// renderCells styles runs of equal cells.
func renderCells(cells []cellKind, styles map[cellKind]cellStyle) string {
	var sb strings.Builder
	for i := 0; i < len(cells); {
		j := i
		for j < len(cells) && cells[j] == cells[i] {
			j++
		}
		s := styles[cells[i]]
		sb.WriteString(s.style.Render(strings.Repeat(s.glyph, j-i)))
		i = j
	}
	return sb.String()
}

// terminalColor returns the hex colour used to draw fill in the terminal.
// Very dark fills are lifted so the silhouette shows on dark backgrounds.
func terminalColor(c theme.Color) string {
	l, _, _ := c.RGB.Lab()
	if l < 0.2 {
		return c.RGB.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.25).Clamped().Hex()
	}
	return c.Hex()
}

// State reports the controller state, for tests and scripted runs.
func (m Model) State() transition.State {
	return m.sim.overlay.Controller().State()
}

// RunOptions configures the TUI.
type RunOptions struct {
	Options
	Output io.Writer // nil = stdout
}

// Run starts the simulator and blocks until it quits.
func Run(opts RunOptions) error {
	m := New(opts.Options)
	defer m.sim.zones.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(m, programOpts...)

	_, err := p.Run()
	return err
}
