package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/bezel/internal/geometry"
)

// SVGFormatter renders shapes and frames as standalone SVG documents.
type SVGFormatter struct {
	opts FormatterOptions
}

// NewSVGFormatter creates a new SVG formatter.
func NewSVGFormatter(opts FormatterOptions) *SVGFormatter {
	return &SVGFormatter{opts: opts}
}

// FormatShape writes the silhouette as a filled path.
func (f *SVGFormatter) FormatShape(w io.Writer, s *Shape) error {
	pad := f.opts.Padding
	var sb strings.Builder
	f.header(&sb, -pad, -pad, s.Rect.Width+2*pad, s.Rect.Height+2*pad)
	_, _, _, a := f.opts.Fill.Components()
	fmt.Fprintf(&sb, "  <path d=%q fill=%q fill-opacity=\"%s\"/>\n", s.D, f.opts.Fill.Hex(), num(a))
	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatFrames outlines the three frames in y-down screen space, with the
// top of the screen at y = 0.
func (f *SVGFormatter) FormatFrames(w io.Writer, fr *Frames) error {
	pad := f.opts.Padding
	bounds := union(fr.Frames.Notch, fr.Collapsed, fr.Expanded)
	top := fr.Notch.TopY

	var sb strings.Builder
	f.header(&sb, bounds.X-pad, top-bounds.MaxY()-pad, bounds.Width+2*pad, bounds.Height+2*pad)
	for _, item := range []struct {
		id   string
		rect geometry.Rect
	}{
		{"expanded", fr.Expanded},
		{"collapsed", fr.Collapsed},
		{"notch", fr.Frames.Notch},
	} {
		r := item.rect
		fmt.Fprintf(&sb, "  <rect id=%q x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"none\" stroke=%q/>\n",
			item.id, num(r.X), num(top-r.MaxY()), num(r.Width), num(r.Height), f.opts.Fill.Hex())
	}
	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTimeline is not supported.
func (f *SVGFormatter) FormatTimeline(io.Writer, Timeline) error {
	return fmt.Errorf("svg timeline: %w", ErrUnsupported)
}

func (f *SVGFormatter) header(sb *strings.Builder, x, y, w, h float64) {
	fmt.Fprintf(sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%s %s %s %s\" width=\"%s\" height=\"%s\">\n",
		num(x), num(y), num(w), num(h), num(w), num(h))
}

func union(rects ...geometry.Rect) geometry.Rect {
	var out geometry.Rect
	for i, r := range rects {
		if i == 0 {
			out = r
			continue
		}
		minX := min(out.MinX(), r.MinX())
		minY := min(out.MinY(), r.MinY())
		maxX := max(out.MaxX(), r.MaxX())
		maxY := max(out.MaxY(), r.MaxY())
		out = geometry.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	}
	return out
}
