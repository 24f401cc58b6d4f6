package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats documents as indented JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// FormatShape writes the shape as a JSON object.
func (f *JSONFormatter) FormatShape(w io.Writer, s *Shape) error {
	return f.encode(w, s)
}

// FormatFrames writes the frames as a JSON object.
func (f *JSONFormatter) FormatFrames(w io.Writer, fr *Frames) error {
	return f.encode(w, fr)
}

// FormatTimeline writes the samples as a JSON array.
func (f *JSONFormatter) FormatTimeline(w io.Writer, tl Timeline) error {
	if tl == nil {
		tl = Timeline{}
	}
	return f.encode(w, tl)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
