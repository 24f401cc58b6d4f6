package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/jmylchreest/bezel/internal/geometry"
)

// maxPNGSide bounds the rendered image.
const maxPNGSide = 8192

// PNGFormatter rasterizes shapes into anti-aliased PNG images.
type PNGFormatter struct {
	opts FormatterOptions
}

// NewPNGFormatter creates a new PNG formatter.
func NewPNGFormatter(opts FormatterOptions) *PNGFormatter {
	return &PNGFormatter{opts: opts}
}

// FormatShape renders the silhouette on a transparent background.
func (f *PNGFormatter) FormatShape(w io.Writer, s *Shape) error {
	img, err := f.Rasterize(s)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// FormatFrames is not supported.
func (f *PNGFormatter) FormatFrames(io.Writer, *Frames) error {
	return fmt.Errorf("png frames: %w", ErrUnsupported)
}

// FormatTimeline is not supported.
func (f *PNGFormatter) FormatTimeline(io.Writer, Timeline) error {
	return fmt.Errorf("png timeline: %w", ErrUnsupported)
}

// Rasterize draws the shape into a new image.
func (f *PNGFormatter) Rasterize(s *Shape) (*image.NRGBA, error) {
	scale := f.opts.Scale
	if scale <= 0 {
		scale = 1
	}
	pad := f.opts.Padding

	width := int(math.Ceil((s.Rect.Width + 2*pad) * scale))
	height := int(math.Ceil((s.Rect.Height + 2*pad) * scale))
	if width <= 0 || height <= 0 || width > maxPNGSide || height > maxPNGSide {
		return nil, fmt.Errorf("png size %dx%d out of range", width, height)
	}

	r := vector.NewRasterizer(width, height)
	r.DrawOp = draw.Src
	s.Path.Walk(&rasterPath{r: r, scale: scale, offset: pad})

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	r.Draw(img, img.Bounds(), image.NewUniform(f.opts.Fill.NRGBA()), image.Point{})
	return img, nil
}

// rasterPath feeds path commands to a vector.Rasterizer.
type rasterPath struct {
	r      *vector.Rasterizer
	scale  float64
	offset float64
}

func (p *rasterPath) xy(pt geometry.Point) (float32, float32) {
	return float32((pt.X + p.offset) * p.scale), float32((pt.Y + p.offset) * p.scale)
}

func (p *rasterPath) MoveTo(pt geometry.Point) { p.r.MoveTo(p.xy(pt)) }
func (p *rasterPath) LineTo(pt geometry.Point) { p.r.LineTo(p.xy(pt)) }

func (p *rasterPath) QuadTo(c, pt geometry.Point) {
	cx, cy := p.xy(c)
	x, y := p.xy(pt)
	p.r.QuadTo(cx, cy, x, y)
}

func (p *rasterPath) CubeTo(c1, c2, pt geometry.Point) {
	ax, ay := p.xy(c1)
	bx, by := p.xy(c2)
	x, y := p.xy(pt)
	p.r.CubeTo(ax, ay, bx, by, x, y)
}

func (p *rasterPath) Close() { p.r.ClosePath() }
