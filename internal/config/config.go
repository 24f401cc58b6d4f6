// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/bezel/internal/animation"
	"github.com/jmylchreest/bezel/internal/shape"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "20ms", "0.9s", "1m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '20ms', '0.9s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Milliseconds returns the duration in milliseconds.
func (d Duration) Milliseconds() int {
	return int(time.Duration(d).Milliseconds())
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the configuration for bezel and bezeld.
// Loaded from ~/.config/bezel/bezel.toml
type Config struct {
	Bezel     BezelConfig     `toml:"bezel"`
	Animation AnimationConfig `toml:"animation"`
	Hover     HoverConfig     `toml:"hover"`
	Shape     ShapeConfig     `toml:"shape"`
	Notch     NotchConfig     `toml:"notch"`
	Display   DisplayConfig   `toml:"display"`
	Timer     TimerConfig     `toml:"timer"`
}

// BezelConfig contains the overlay dimensions.
type BezelConfig struct {
	CollapsedWidth  float64       `toml:"collapsed_width"`
	CollapsedHeight float64       `toml:"collapsed_height"`
	ExpandedWidth   float64       `toml:"expanded_width"`
	ExpandedHeight  float64       `toml:"expanded_height"`
	NotchPadding    float64       `toml:"notch_padding"` // Notch frame is notch width + this
	NotchHeight     float64       `toml:"notch_height"`  // Height of the notch frame
	NoNotch         NoNotchConfig `toml:"no_notch"`
}

// NoNotchConfig overrides sizing on displays without a hardware notch.
// Unset values inherit the notch sizing.
type NoNotchConfig struct {
	CollapsedHeight *float64 `toml:"collapsed_height,omitempty"`
	TopInset        *float64 `toml:"top_inset,omitempty"`
	BottomRadius    *float64 `toml:"bottom_radius,omitempty"`
}

// AnimationConfig contains transition timing.
type AnimationConfig struct {
	OpenDelay        Duration `toml:"open_delay"`
	OpenDuration     Duration `toml:"open_duration"`
	ExpandDuration   Duration `toml:"expand_duration"`
	CollapseDuration Duration `toml:"collapse_duration"`
	FrameInterval    Duration `toml:"frame_interval"`
	Easing           string   `toml:"easing"` // spring, linear, smoothstep, ease-out-cubic
}

// HoverConfig contains hover-intent settings.
type HoverConfig struct {
	Padding       float64  `toml:"padding"`        // Margin around the reference frame
	EdgeExclusion float64  `toml:"edge_exclusion"` // Side bands that never expand
	TopBand       float64  `toml:"top_band"`       // Fraction of height that activates
	Debounce      Duration `toml:"debounce"`
	Dwell         Duration `toml:"dwell"`
}

// ShapeConfig contains silhouette parameters.
type ShapeConfig struct {
	Family       string  `toml:"family"` // bezel, ear
	TopInset     float64 `toml:"top_inset"`
	CurveHeight  float64 `toml:"curve_height"`
	BottomRadius float64 `toml:"bottom_radius"`
	EarRadius    float64 `toml:"ear_radius"`
}

// NotchConfig overrides notch metrics for displays that do not report them.
type NotchConfig struct {
	Width    float64 `toml:"width"` // 0 = use collapsed_width
	HasNotch bool    `toml:"has_notch"`
}

// DisplayConfig selects the target output.
type DisplayConfig struct {
	Monitor int    `toml:"monitor"` // 0 = primary, 1+ = specific monitor
	Theme   string `toml:"theme"`   // Bundled theme name or a file in ~/.config/bezel/themes
}

// TimerConfig contains countdown settings.
type TimerConfig struct {
	Minutes int    `toml:"minutes"`
	Chime   string `toml:"chime"`  // Sound played when a session ends
	Volume  int    `toml:"volume"` // 0-100
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Bezel: BezelConfig{
			CollapsedWidth:  300,
			CollapsedHeight: 36,
			ExpandedWidth:   360,
			ExpandedHeight:  180,
			NotchPadding:    10,
			NotchHeight:     32,
			NoNotch: NoNotchConfig{
				CollapsedHeight: ptr(32.0),
				TopInset:        ptr(0.0),
				BottomRadius:    ptr(10.0),
			},
		},
		Animation: AnimationConfig{
			OpenDelay:        Duration(80 * time.Millisecond),
			OpenDuration:     Duration(900 * time.Millisecond),
			ExpandDuration:   Duration(300 * time.Millisecond),
			CollapseDuration: Duration(200 * time.Millisecond),
			FrameInterval:    Duration(16 * time.Millisecond),
			Easing:           animation.EasingSpring,
		},
		Hover: HoverConfig{
			Padding:       30,
			EdgeExclusion: 60,
			TopBand:       0.05,
			Debounce:      Duration(20 * time.Millisecond),
			Dwell:         Duration(500 * time.Millisecond),
		},
		Shape: ShapeConfig{
			Family:       string(shape.FamilyBezel),
			TopInset:     32,
			CurveHeight:  12,
			BottomRadius: 12,
			EarRadius:    10,
		},
		Display: DisplayConfig{
			Theme: "default",
		},
		Timer: TimerConfig{
			Minutes: 25,
			Volume:  80,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise the user config directory.
func ConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		configHome = dir
	}
	return filepath.Join(configHome, "bezel", "bezel.toml"), nil
}

// Load loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns the default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	sizes := []struct {
		name  string
		value float64
	}{
		{"bezel.collapsed_width", c.Bezel.CollapsedWidth},
		{"bezel.collapsed_height", c.Bezel.CollapsedHeight},
		{"bezel.expanded_width", c.Bezel.ExpandedWidth},
		{"bezel.expanded_height", c.Bezel.ExpandedHeight},
		{"bezel.notch_height", c.Bezel.NotchHeight},
	}
	for _, s := range sizes {
		if s.value <= 0 {
			return fmt.Errorf("%s must be positive, got %g", s.name, s.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"bezel.notch_padding", c.Bezel.NotchPadding},
		{"bezel.no_notch.collapsed_height", deref(c.Bezel.NoNotch.CollapsedHeight, 0)},
		{"bezel.no_notch.top_inset", deref(c.Bezel.NoNotch.TopInset, 0)},
		{"bezel.no_notch.bottom_radius", deref(c.Bezel.NoNotch.BottomRadius, 0)},
		{"hover.padding", c.Hover.Padding},
		{"hover.edge_exclusion", c.Hover.EdgeExclusion},
		{"shape.top_inset", c.Shape.TopInset},
		{"shape.curve_height", c.Shape.CurveHeight},
		{"shape.bottom_radius", c.Shape.BottomRadius},
		{"shape.ear_radius", c.Shape.EarRadius},
		{"notch.width", c.Notch.Width},
	}
	for _, s := range nonNegative {
		if s.value < 0 {
			return fmt.Errorf("%s must not be negative, got %g", s.name, s.value)
		}
	}

	if c.Hover.TopBand <= 0 || c.Hover.TopBand > 1 {
		return fmt.Errorf("hover.top_band must be in (0, 1], got %g", c.Hover.TopBand)
	}

	durations := []struct {
		name  string
		value Duration
	}{
		{"animation.open_delay", c.Animation.OpenDelay},
		{"animation.open_duration", c.Animation.OpenDuration},
		{"animation.expand_duration", c.Animation.ExpandDuration},
		{"animation.collapse_duration", c.Animation.CollapseDuration},
		{"hover.debounce", c.Hover.Debounce},
		{"hover.dwell", c.Hover.Dwell},
	}
	for _, d := range durations {
		if d.value < 0 {
			return fmt.Errorf("%s must not be negative, got %s", d.name, d.value.Duration())
		}
	}
	if c.Animation.FrameInterval <= 0 {
		return fmt.Errorf("animation.frame_interval must be positive, got %s", c.Animation.FrameInterval.Duration())
	}

	if _, err := animation.ParseEasing(c.Animation.Easing); err != nil {
		return fmt.Errorf("animation.easing: %w", err)
	}

	if !slices.Contains(shape.ValidFamilies(), shape.Family(c.Shape.Family)) {
		return fmt.Errorf("invalid shape family %q, must be one of: %v", c.Shape.Family, shape.ValidFamilies())
	}

	if c.Display.Monitor < 0 {
		return fmt.Errorf("display.monitor must not be negative, got %d", c.Display.Monitor)
	}

	if c.Timer.Minutes < 1 || c.Timer.Minutes > 24*60 {
		return fmt.Errorf("timer.minutes must be between 1 and 1440, got %d", c.Timer.Minutes)
	}
	if c.Timer.Volume < 0 || c.Timer.Volume > 100 {
		return fmt.Errorf("timer.volume must be between 0 and 100, got %d", c.Timer.Volume)
	}

	return nil
}

// ChimePath returns the countdown chime path with ~ expanded.
func (c *Config) ChimePath() string {
	return expandPath(c.Timer.Chime)
}

func ptr[T any](v T) *T { return &v }

func deref(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
