package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/jmylchreest/bezel/internal/geometry"
)

// PlainFormatter formats documents as human-readable text. A custom
// template, if set, is executed against the document instead.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// FormatShape writes the family, size and path data.
func (f *PlainFormatter) FormatShape(w io.Writer, s *Shape) error {
	if f.template != nil {
		return f.execute(w, s)
	}
	_, err := fmt.Fprintf(w, "family: %s\nmorph:  %s\nsize:   %s x %s\npath:   %s\n",
		s.Family, num(s.Morph), num(s.Rect.Width), num(s.Rect.Height), s.D)
	return err
}

// FormatFrames writes one line per frame.
func (f *PlainFormatter) FormatFrames(w io.Writer, fr *Frames) error {
	if f.template != nil {
		return f.execute(w, fr)
	}
	var sb strings.Builder
	notch := "synthesized"
	if fr.Notch.HasNotch {
		notch = "hardware"
	}
	fmt.Fprintf(&sb, "notch:     %s, center %s, top %s, width %s\n",
		notch, num(fr.Notch.CenterX), num(fr.Notch.TopY), num(fr.Notch.NotchWidth))
	fmt.Fprintf(&sb, "notch:     %s\n", rect(fr.Frames.Notch))
	fmt.Fprintf(&sb, "collapsed: %s\n", rect(fr.Collapsed))
	fmt.Fprintf(&sb, "expanded:  %s\n", rect(fr.Expanded))
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTimeline writes one line per sample.
func (f *PlainFormatter) FormatTimeline(w io.Writer, tl Timeline) error {
	for _, s := range tl {
		if f.template != nil {
			if err := f.execute(w, s); err != nil {
				return err
			}
			continue
		}
		line := fmt.Sprintf("%6dms  %-10s  %s  morph=%.3f", s.AtMS, s.State, rect(s.Frame), s.Morph)
		if !s.Visible {
			line += "  hidden"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) execute(w io.Writer, data any) error {
	if err := f.template.Execute(w, data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"num":  num,
		"rect": rect,
	}
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64)
}

func rect(r geometry.Rect) string {
	return fmt.Sprintf("%sx%s+%s+%s", num(r.Width), num(r.Height), num(r.X), num(r.Y))
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // no "-0"
	}
	return r
}
