package display

import (
	"log/slog"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"

	"github.com/jmylchreest/bezel/internal/config"
	"github.com/jmylchreest/bezel/internal/geometry"
)

// MonitorDetector derives notch metrics from the configured GDK monitor.
// Wayland reports no notch geometry, so a hardware notch comes from the
// [notch] config section; otherwise one is synthesized at the top centre.
// Coordinates are monitor-local and y-up.
type MonitorDetector struct {
	display *gdk.Display
	logger  *slog.Logger

	monitor  int // 0 = primary, 1+ = specific monitor
	hasNotch bool
	width    float64
}

var (
	_ geometry.Detector = (*MonitorDetector)(nil)
	_ geometry.Watcher  = (*MonitorDetector)(nil)
)

// NewMonitorDetector creates a detector for the default display.
func NewMonitorDetector(cfg *config.Config, logger *slog.Logger) (*MonitorDetector, error) {
	if logger == nil {
		logger = slog.Default()
	}
	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, &DisplayError{Message: "no display available"}
	}
	d := &MonitorDetector{display: display, logger: logger}
	d.Configure(cfg)
	return d, nil
}

// Configure picks up monitor and notch settings.
func (d *MonitorDetector) Configure(cfg *config.Config) {
	d.monitor = cfg.Display.Monitor
	d.hasNotch = cfg.Notch.HasNotch
	d.width = cfg.FallbackNotchWidth()
}

// Monitor returns the monitor the overlay is placed on, or nil when none is
// connected.
func (d *MonitorDetector) Monitor() *gdk.Monitor {
	monitors := d.display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return nil
	}

	index := uint(0)
	if d.monitor > 0 {
		index = uint(d.monitor - 1)
		if index >= monitors.NItems() {
			d.logger.Warn("configured monitor not available, using primary",
				"configured", d.monitor,
				"available", monitors.NItems(),
			)
			index = 0
		}
	}
	return wrapMonitor(monitors.Item(index))
}

// Screen returns the monitor bounds in monitor-local y-up coordinates.
func (d *MonitorDetector) Screen() geometry.Rect {
	m := d.Monitor()
	if m == nil {
		return geometry.Rect{}
	}
	g := m.Geometry()
	return geometry.Rect{Width: float64(g.Width()), Height: float64(g.Height())}
}

// Detect implements geometry.Detector.
func (d *MonitorDetector) Detect() geometry.NotchInfo {
	info := geometry.Synthesize(d.Screen(), d.width)
	info.HasNotch = d.hasNotch
	return info
}

// Watch reports monitor hot-plug as new notch metrics.
func (d *MonitorDetector) Watch(onChange func(geometry.NotchInfo)) (stop func()) {
	monitors := d.display.Monitors()
	handle := monitors.ConnectItemsChanged(func(position, removed, added uint) {
		d.logger.Info("monitor configuration changed", "count", monitors.NItems())
		onChange(d.Detect())
	})
	return func() { monitors.HandlerDisconnect(handle) }
}

// wrapMonitor wraps a glib.Object as a gdk.Monitor.
// This is necessary because gotk4 doesn't expose the wrapMonitor function.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	// gdk.Monitor embeds a *glib.Object; this mirrors gotk4's internal wrapper.
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
