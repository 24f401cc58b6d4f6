package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats documents as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// FormatShape writes the shape as a YAML mapping.
func (f *YAMLFormatter) FormatShape(w io.Writer, s *Shape) error {
	return f.encode(w, s)
}

// FormatFrames writes the frames as a YAML mapping.
func (f *YAMLFormatter) FormatFrames(w io.Writer, fr *Frames) error {
	return f.encode(w, fr)
}

// FormatTimeline writes the samples as a YAML sequence.
func (f *YAMLFormatter) FormatTimeline(w io.Writer, tl Timeline) error {
	if tl == nil {
		tl = Timeline{}
	}
	return f.encode(w, tl)
}

func (f *YAMLFormatter) encode(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
