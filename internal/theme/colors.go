package theme

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB colour with straight alpha.
type Color struct {
	RGB colorful.Color
	A   float64
}

var (
	Black = Color{RGB: colorful.Color{}, A: 1}
	White = Color{RGB: colorful.Color{R: 1, G: 1, B: 1}, A: 1}
)

// Hex returns the colour as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return c.RGB.Clamped().Hex()
}

// NRGBA converts to the standard library's non-premultiplied colour.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.RGB.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clampUnit(c.A)*255 + 0.5)}
}

// Components returns red, green, blue and alpha in [0, 1], as cairo wants
// them.
func (c Color) Components() (r, g, b, a float64) {
	cl := c.RGB.Clamped()
	return cl.R, cl.G, cl.B, clampUnit(c.A)
}

// ParseColor parses the colour forms used in bundled and user themes:
// #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(r, g, b), rgba(r, g, b, a), and the
// names black, white and transparent.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	case "transparent":
		return Color{}, nil
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		return parseHex(hex)
	}
	if args, ok := cutFunc(s, "rgba"); ok {
		return parseRGB(args, true)
	}
	if args, ok := cutFunc(s, "rgb"); ok {
		return parseRGB(args, false)
	}
	return Color{}, fmt.Errorf("unsupported color %q", s)
}

func parseHex(hex string) (Color, error) {
	alpha := 1.0
	switch len(hex) {
	case 4, 8:
		n := len(hex) / 4
		a, err := strconv.ParseUint(strings.Repeat(hex[len(hex)-n:], 2/n), 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color #%s: %w", hex, err)
		}
		alpha = float64(a) / 255
		hex = hex[:len(hex)-n]
	case 3, 6:
	default:
		return Color{}, fmt.Errorf("invalid color #%s", hex)
	}
	rgb, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color #%s: %w", hex, err)
	}
	return Color{RGB: rgb, A: alpha}, nil
}

func parseRGB(args string, withAlpha bool) (Color, error) {
	parts := strings.Split(args, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("expected %d components, got %d", want, len(parts))
	}

	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color component %q: %w", p, err)
		}
		v[i] = f
	}
	return Color{
		RGB: colorful.Color{R: v[0] / 255, G: v[1] / 255, B: v[2] / 255}.Clamped(),
		A:   clampUnit(v[3]),
	}, nil
}

func cutFunc(s, name string) (string, bool) {
	rest, ok := strings.CutPrefix(s, name+"(")
	if !ok {
		return "", false
	}
	return strings.CutSuffix(rest, ")")
}

func clampUnit(v float64) float64 {
	return max(0, min(1, v))
}

var defineColorRegex = regexp.MustCompile(`@define-color\s+([\w-]+)\s+([^;]+);`)

// DefinedColor returns the last @define-color value for name in css. Values
// that reference other colours are not resolved.
func DefinedColor(css, name string) (Color, bool) {
	var found Color
	ok := false
	for _, m := range defineColorRegex.FindAllStringSubmatch(css, -1) {
		if m[1] != name {
			continue
		}
		if c, err := ParseColor(m[2]); err == nil {
			found, ok = c, true
		}
	}
	return found, ok
}
