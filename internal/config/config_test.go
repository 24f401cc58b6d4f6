package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/shape"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 300.0, cfg.Bezel.CollapsedWidth)
	assert.Equal(t, 36.0, cfg.Bezel.CollapsedHeight)
	assert.Equal(t, 360.0, cfg.Bezel.ExpandedWidth)
	assert.Equal(t, 180.0, cfg.Bezel.ExpandedHeight)
	assert.Equal(t, 900*time.Millisecond, cfg.Animation.OpenDuration.Duration())
	assert.Equal(t, 300*time.Millisecond, cfg.Animation.ExpandDuration.Duration())
	assert.Equal(t, 200*time.Millisecond, cfg.Animation.CollapseDuration.Duration())
	assert.Equal(t, 80*time.Millisecond, cfg.Animation.OpenDelay.Duration())
	assert.Equal(t, 30.0, cfg.Hover.Padding)
	assert.Equal(t, 20*time.Millisecond, cfg.Hover.Debounce.Duration())
	assert.Equal(t, 500*time.Millisecond, cfg.Hover.Dwell.Duration())
	assert.Equal(t, 60.0, cfg.Hover.EdgeExclusion)
	assert.Equal(t, 0.05, cfg.Hover.TopBand)
	assert.Equal(t, 32.0, cfg.Shape.TopInset)
	assert.Equal(t, 12.0, cfg.Shape.CurveHeight)
	assert.Equal(t, 12.0, cfg.Shape.BottomRadius)
	assert.Equal(t, 25, cfg.Timer.Minutes)
	assert.Equal(t, "default", cfg.Display.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/bezel.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bezel.toml")

	content := `
[bezel]
collapsed_width = 280
expanded_height = 200

[bezel.no_notch]
collapsed_height = 28

[animation]
open_duration = "1.2s"
expand_duration = 250
easing = "smoothstep"

[hover]
padding = 40
dwell = "750ms"

[shape]
family = "ear"
ear_radius = 8

[notch]
width = 190
has_notch = true

[timer]
minutes = 50
chime = "~/sounds/bell.wav"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 280.0, cfg.Bezel.CollapsedWidth)
	assert.Equal(t, 200.0, cfg.Bezel.ExpandedHeight)
	assert.Equal(t, 28.0, *cfg.Bezel.NoNotch.CollapsedHeight)
	assert.Equal(t, 10.0, *cfg.Bezel.NoNotch.BottomRadius, "unset override keeps its default")
	assert.Equal(t, 1200*time.Millisecond, cfg.Animation.OpenDuration.Duration())
	assert.Equal(t, 250*time.Millisecond, cfg.Animation.ExpandDuration.Duration())
	assert.Equal(t, "smoothstep", cfg.Animation.Easing)
	assert.Equal(t, 40.0, cfg.Hover.Padding)
	assert.Equal(t, 750*time.Millisecond, cfg.Hover.Dwell.Duration())
	assert.Equal(t, "ear", cfg.Shape.Family)
	assert.Equal(t, 8.0, cfg.Shape.EarRadius)
	assert.Equal(t, 190.0, cfg.FallbackNotchWidth())
	assert.True(t, cfg.Notch.HasNotch)
	assert.Equal(t, 50, cfg.Timer.Minutes)

	// Untouched values keep their defaults.
	assert.Equal(t, 36.0, cfg.Bezel.CollapsedHeight)
	assert.Equal(t, 20*time.Millisecond, cfg.Hover.Debounce.Duration())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sounds", "bell.wav"), cfg.ChimePath())
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bezel.toml")
	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := Parse([]byte("[hover]\ndwell = \"soon\"\n"))
	assert.ErrorContains(t, err, "invalid duration")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"negative width", func(c *Config) { c.Bezel.CollapsedWidth = -1 }, "bezel.collapsed_width"},
		{"zero expanded height", func(c *Config) { c.Bezel.ExpandedHeight = 0 }, "bezel.expanded_height"},
		{"negative radius", func(c *Config) { c.Shape.BottomRadius = -2 }, "shape.bottom_radius"},
		{"negative override", func(c *Config) { c.Bezel.NoNotch.TopInset = ptr(-1.0) }, "bezel.no_notch.top_inset"},
		{"top band zero", func(c *Config) { c.Hover.TopBand = 0 }, "hover.top_band"},
		{"top band too large", func(c *Config) { c.Hover.TopBand = 1.5 }, "hover.top_band"},
		{"top band one", func(c *Config) { c.Hover.TopBand = 1 }, ""},
		{"negative dwell", func(c *Config) { c.Hover.Dwell = Duration(-time.Second) }, "hover.dwell"},
		{"zero frame interval", func(c *Config) { c.Animation.FrameInterval = 0 }, "animation.frame_interval"},
		{"unknown easing", func(c *Config) { c.Animation.Easing = "bounce" }, "unknown easing"},
		{"unknown family", func(c *Config) { c.Shape.Family = "blob" }, "invalid shape family"},
		{"volume", func(c *Config) { c.Timer.Volume = 101 }, "timer.volume"},
		{"minutes", func(c *Config) { c.Timer.Minutes = 0 }, "timer.minutes"},
		{"monitor", func(c *Config) { c.Display.Monitor = -1 }, "display.monitor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "bezel.toml")

	cfg := DefaultConfig()
	cfg.Hover.Dwell = Duration(650 * time.Millisecond)
	cfg.Shape.Family = string(shape.FamilyEar)
	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("900")))
	assert.Equal(t, 900*time.Millisecond, d.Duration())
	assert.Equal(t, 900, d.Milliseconds())

	require.NoError(t, d.UnmarshalText([]byte("0.9s")))
	assert.Equal(t, 900*time.Millisecond, d.Duration())

	text, err := Duration(20 * time.Millisecond).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "20ms", string(text))
}

func TestDuration_TOMLValue(t *testing.T) {
	var doc struct {
		D Duration `toml:"d"`
	}
	require.NoError(t, toml.Unmarshal([]byte(`d = "1m30s"`), &doc))
	assert.Equal(t, 90*time.Second, doc.D.Duration())
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/bezel/bezel.toml", path)
}

func TestConfig_Sizing(t *testing.T) {
	cfg := DefaultConfig()
	v := cfg.Sizing()

	assert.Equal(t, 36.0, v.Pick(geometry.NotchInfo{HasNotch: true}).CollapsedHeight)
	assert.Equal(t, 32.0, v.Pick(geometry.NotchInfo{}).CollapsedHeight)

	cfg.Bezel.NoNotch.CollapsedHeight = nil
	assert.Equal(t, 36.0, cfg.Sizing().NoNotch.CollapsedHeight, "unset override inherits")
}

func TestConfig_ShapeParams(t *testing.T) {
	cfg := DefaultConfig()
	v := cfg.ShapeParams()

	assert.Equal(t, 32.0, v.Pick(true).TopInset)
	assert.Equal(t, 0.0, v.Pick(false).TopInset)
	assert.Equal(t, 10.0, v.Pick(false).BottomRadius)
	assert.Equal(t, shape.FamilyBezel, v.Pick(false).Family)
}

func TestConfig_TransitionAndIntent(t *testing.T) {
	cfg := DefaultConfig()

	tc := cfg.TransitionConfig()
	assert.Equal(t, 900*time.Millisecond, tc.OpenDuration)
	assert.Equal(t, 16*time.Millisecond, tc.FrameInterval)
	require.NotNil(t, tc.Easing)
	assert.Equal(t, 1.0, tc.Easing(1))

	ic := cfg.IntentConfig()
	assert.Equal(t, 60.0, ic.Hover.EdgeExclusion)
	assert.Equal(t, 500*time.Millisecond, ic.Dwell)
}

func TestConfig_FallbackNotchWidth(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 300.0, cfg.FallbackNotchWidth())
}

func TestSchema(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Bezel Configuration", doc["title"])

	s := string(data)
	assert.Contains(t, s, `"collapsed_width"`)
	assert.Contains(t, s, `"edge_exclusion"`)
	assert.Contains(t, s, `"no_notch"`)
	assert.Contains(t, s, `"Duration such as`)
	assert.NotContains(t, s, `"CollapsedWidth"`)

	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok)
	for _, tt := range []struct{ def, key string }{
		{"AnimationConfig", "open_delay"},
		{"AnimationConfig", "frame_interval"},
		{"HoverConfig", "dwell"},
	} {
		def, ok := defs[tt.def].(map[string]any)
		require.True(t, ok, tt.def)
		props := def["properties"].(map[string]any)
		prop := props[tt.key].(map[string]any)
		assert.Equal(t, "string", prop["type"], tt.key)
		assert.Contains(t, prop["description"], "Duration such as", tt.key)
	}
	assert.Equal(t, 7, strings.Count(s, `Duration such as`), "every duration field is described")
}
