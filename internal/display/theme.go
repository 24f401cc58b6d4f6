package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/bezel/internal/theme"
)

// ThemeLoader installs a theme's CSS on a GTK display and swaps it on
// reload. It must be used from the GTK main thread.
type ThemeLoader struct {
	logger   *slog.Logger
	provider *gtk.CSSProvider
	dir      string
	applied  bool
}

// NewThemeLoader creates a loader that resolves user themes from the
// default themes directory.
func NewThemeLoader(logger *slog.Logger) *ThemeLoader {
	if logger == nil {
		logger = slog.Default()
	}

	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
		dir = ""
	}

	return &ThemeLoader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
		dir:      dir,
	}
}

// Load resolves a theme by name and swaps the provider's CSS. A missing or
// broken theme falls back and is logged; the returned theme is always usable.
func (l *ThemeLoader) Load(name string) *theme.Theme {
	t, err := theme.Resolve(name, l.dir)
	if err != nil {
		l.logger.Warn("theme fallback", "theme", name, "error", err)
	}

	l.provider.LoadFromString(t.CSS)
	l.logger.Info("loaded theme", "name", t.Name, "path", t.Path, "bundled", t.IsBundled)
	return t
}

// Apply installs the provider on a display, the default one when nil. Only
// the first call has any effect.
func (l *ThemeLoader) Apply(display *gdk.Display) {
	if l.applied {
		return
	}
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	l.applied = true
	l.logger.Debug("applied theme to display")
}
