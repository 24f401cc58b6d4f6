package theme

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in    string
		hex   string
		alpha float64
	}{
		{"#000", "#000000", 1},
		{"#FFFFFF", "#ffffff", 1},
		{"#ff000080", "#ff0000", 128.0 / 255},
		{"#f008", "#ff0000", 136.0 / 255},
		{"rgb(255, 128, 0)", "#ff8000", 1},
		{"rgba(246, 246, 246, 0.5)", "#f6f6f6", 0.5},
		{"rgba(300, 0, 0, 2)", "#ff0000", 1},
		{"  White ", "#ffffff", 1},
		{"transparent", "#000000", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.hex, c.Hex())
			assert.InDelta(t, tt.alpha, c.A, 1e-9)
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#ggg", "rgb(1, 2)", "rgba(1, 2, 3)", "rgb(a, b, c)", "hsl(0, 0%, 0%)", "@other"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestColor_Conversions(t *testing.T) {
	c, err := ParseColor("rgba(255, 0, 51, 0.5)")
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 51, A: 128}, c.NRGBA())

	r, g, b, a := c.Components()
	assert.InDelta(t, 1, r, 1e-9)
	assert.InDelta(t, 0, g, 1e-9)
	assert.InDelta(t, 0.2, b, 1e-9)
	assert.InDelta(t, 0.5, a, 1e-9)
}

func TestDefinedColor(t *testing.T) {
	css := `@define-color bezel_fill #111111;
@define-color bezel_text @theme_fg_color;
@define-color bezel_fill #222222;`

	c, ok := DefinedColor(css, FillColorName)
	require.True(t, ok)
	assert.Equal(t, "#222222", c.Hex(), "last definition wins")

	_, ok = DefinedColor(css, TextColorName)
	assert.False(t, ok, "references are not resolved")

	_, ok = DefinedColor(css, "other")
	assert.False(t, ok)
}
