package display

import (
	"log/slog"
	"math"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/hover"
	"github.com/jmylchreest/bezel/internal/shape"
	"github.com/jmylchreest/bezel/internal/theme"
)

// Window is the layer-shell surface the bezel is drawn on. The window
// covers the frame plus the hover padding so that pointer motion in the
// outer zone is still reported. All methods must run on the GTK main thread.
type Window struct {
	window   *gtk.Window
	area     *gtk.DrawingArea
	content  *gtk.Box
	timerLbl *gtk.Label
	logger   *slog.Logger

	screen geometry.Rect
	hover  hover.Config
	theme  *theme.Theme

	frame  geometry.Rect
	canvas geometry.Rect
	morph  float64
	params shape.Params

	// Callbacks
	OnPointer     func(p geometry.Point)
	OnLeave       func()
	OnTimerToggle func()
	OnTimerReset  func()
}

// NewWindow creates a hidden bezel window on monitor. screen is the
// monitor's bounds in the same space as the frames.
func NewWindow(app *gtk.Application, monitor *gdk.Monitor, screen geometry.Rect, hoverCfg hover.Config, th *theme.Theme, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}

	w := &Window{
		logger: logger,
		screen: screen,
		hover:  hoverCfg,
		theme:  th,
	}

	w.window = gtk.NewWindow()
	w.window.SetApplication(app)
	w.window.SetDecorated(false)
	w.window.SetResizable(false)
	w.window.AddCSSClass("bezel")

	// Initialize layer-shell
	layershell.InitForWindow(w.window)
	layershell.SetLayer(w.window, layershell.LayerShellLayerTop)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeLeft, true)
	layershell.SetExclusiveZone(w.window, 0) // Don't reserve space
	layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w.window, "bezel")
	if monitor != nil {
		layershell.SetMonitor(w.window, monitor)
	}

	w.buildUI()
	w.connectSignals()
	return w
}

func (w *Window) buildUI() {
	w.area = gtk.NewDrawingArea()
	w.area.SetDrawFunc(func(_ *gtk.DrawingArea, cr *cairo.Context, _, _ int) {
		w.draw(cr)
	})

	w.timerLbl = gtk.NewLabel("")
	w.timerLbl.AddCSSClass("bezel-timer")

	toggleBtn := gtk.NewButtonFromIconName("media-playback-start-symbolic")
	toggleBtn.AddCSSClass("bezel-button")
	toggleBtn.SetTooltipText("Start or pause")
	toggleBtn.ConnectClicked(func() {
		if w.OnTimerToggle != nil {
			w.OnTimerToggle()
		}
	})

	resetBtn := gtk.NewButtonFromIconName("view-refresh-symbolic")
	resetBtn.AddCSSClass("bezel-button")
	resetBtn.SetTooltipText("Reset")
	resetBtn.ConnectClicked(func() {
		if w.OnTimerReset != nil {
			w.OnTimerReset()
		}
	})

	w.content = gtk.NewBox(gtk.OrientationHorizontal, 12)
	w.content.AddCSSClass("bezel-content")
	w.content.SetHAlign(gtk.AlignCenter)
	w.content.SetVAlign(gtk.AlignEnd)
	w.content.Append(w.timerLbl)
	w.content.Append(toggleBtn)
	w.content.Append(resetBtn)
	w.content.SetCanTarget(false)

	overlay := gtk.NewOverlay()
	overlay.SetChild(w.area)
	overlay.AddOverlay(w.content)
	w.window.SetChild(overlay)
}

func (w *Window) connectSignals() {
	motionCtrl := gtk.NewEventControllerMotion()
	motionCtrl.ConnectMotion(func(x, y float64) {
		if w.OnPointer != nil {
			w.OnPointer(hover.ToScreen(geometry.Point{X: x, Y: y}, w.canvas))
		}
	})
	motionCtrl.ConnectLeave(func() {
		if w.OnLeave != nil {
			w.OnLeave()
		}
	})
	w.window.AddController(motionCtrl)
}

// SetFrame implements transition.Surface. The window is resized and moved
// so the frame sits at its screen position.
func (w *Window) SetFrame(frame geometry.Rect) {
	w.frame = frame
	canvas := hover.SurfaceBounds(frame, w.hover)
	if canvas != w.canvas {
		w.canvas = canvas
		width, height := pixels(canvas.Width), pixels(canvas.Height)
		w.window.SetDefaultSize(width, height)
		w.window.SetSizeRequest(width, height)
		layershell.SetMargin(w.window, layershell.LayerShellEdgeLeft, pixels(canvas.X-w.screen.X))
		layershell.SetMargin(w.window, layershell.LayerShellEdgeTop, pixels(w.screen.MaxY()-canvas.MaxY()))
	}
	w.area.QueueDraw()
}

// SetMorph implements transition.Surface.
func (w *Window) SetMorph(progress float64) {
	w.morph = progress
	w.area.QueueDraw()
}

// Show implements transition.Surface.
func (w *Window) Show() {
	w.window.SetVisible(true)
}

// Hide hides the window.
func (w *Window) Hide() {
	w.window.SetVisible(false)
}

// SetContentVisible fades the expanded content in or out.
func (w *Window) SetContentVisible(visible bool) {
	if visible {
		w.content.AddCSSClass("revealed")
	} else {
		w.content.RemoveCSSClass("revealed")
	}
	w.content.SetCanTarget(visible)
}

// SetShape selects the silhouette parameters.
func (w *Window) SetShape(params shape.Params) {
	w.params = params
	w.area.QueueDraw()
}

// SetTimerText updates the countdown label.
func (w *Window) SetTimerText(text string) {
	w.timerLbl.SetText(text)
}

// SetTheme switches the fill colour.
func (w *Window) SetTheme(th *theme.Theme) {
	w.theme = th
	w.area.QueueDraw()
}

// SetHover updates the padding used to size the window.
func (w *Window) SetHover(cfg hover.Config) {
	w.hover = cfg
	w.canvas = geometry.Rect{}
	w.SetFrame(w.frame)
}

// SetMonitor moves the window to another output. screen is the new
// monitor's bounds.
func (w *Window) SetMonitor(monitor *gdk.Monitor, screen geometry.Rect) {
	if monitor != nil {
		layershell.SetMonitor(w.window, monitor)
	}
	w.screen = screen
	w.canvas = geometry.Rect{}
	w.SetFrame(w.frame)
}

// Close destroys the window.
func (w *Window) Close() {
	w.window.Destroy()
}

func (w *Window) draw(cr *cairo.Context) {
	cr.SetOperator(cairo.OPERATOR_CLEAR)
	cr.Paint()
	cr.SetOperator(cairo.OPERATOR_OVER)

	if w.frame.IsEmpty() {
		return
	}

	// Frame-local y-down origin inside the canvas.
	cr.Translate(w.frame.X-w.canvas.X, w.canvas.MaxY()-w.frame.MaxY())
	path := shape.Generate(w.frame.Local(), w.morph, w.params)
	path.Walk(&cairoPath{cr: cr})

	fill := theme.Black
	if w.theme != nil {
		fill = w.theme.Fill
	}
	cr.SetSourceRGBA(fill.Components())
	cr.Fill()
}

// cairoPath replays a shape.Path onto a cairo context.
type cairoPath struct {
	cr      *cairo.Context
	current geometry.Point
}

func (c *cairoPath) MoveTo(p geometry.Point) {
	c.cr.MoveTo(p.X, p.Y)
	c.current = p
}

func (c *cairoPath) LineTo(p geometry.Point) {
	c.cr.LineTo(p.X, p.Y)
	c.current = p
}

func (c *cairoPath) QuadTo(ctrl, p geometry.Point) {
	c1, c2 := shape.QuadToCubic(c.current, ctrl, p)
	c.CubeTo(c1, c2, p)
}

func (c *cairoPath) CubeTo(c1, c2, p geometry.Point) {
	c.cr.CurveTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
	c.current = p
}

func (c *cairoPath) Close() {
	c.cr.ClosePath()
}

func pixels(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return int(math.Round(v))
}
