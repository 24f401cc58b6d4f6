// Package output provides output formatters for shapes, frames and
// recorded transition timelines.
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/bezel/internal/theme"
)

// Formatter writes the documents produced by the CLI.
type Formatter interface {
	// FormatShape writes a single silhouette.
	FormatShape(w io.Writer, s *Shape) error

	// FormatFrames writes the derived frames for a notch.
	FormatFrames(w io.Writer, f *Frames) error

	// FormatTimeline writes the surface updates recorded during a replay.
	FormatTimeline(w io.Writer, tl Timeline) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatSVG   FormatType = "svg"
	FormatPNG   FormatType = "png"
)

// ValidFormats lists the accepted format names.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatSVG, FormatPNG}
}

// ErrUnsupported is returned when a format cannot represent a document.
var ErrUnsupported = errors.New("unsupported by this format")

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch FormatType(strings.ToLower(string(format))) {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatYAML:
		return NewYAMLFormatter(opts), nil
	case FormatSVG:
		return NewSVGFormatter(opts), nil
	case FormatPNG:
		return NewPNGFormatter(opts), nil
	case FormatPlain, "":
		return NewPlainFormatter(opts)
	default:
		return nil, fmt.Errorf("unknown format %q (valid: %v)", format, ValidFormats())
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template string      // Custom template for plain format
	Fill     theme.Color // Silhouette colour for svg/png
	Scale    float64     // Pixel scale for png (0 = 1)
	Padding  float64     // Margin around the silhouette for svg/png
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		Fill:    theme.Black,
		Scale:   1,
		Padding: 4,
	}
}
