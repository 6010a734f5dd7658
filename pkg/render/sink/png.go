package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"

	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   int
	colours int
}

// WithScale sets the integer upscale factor (default 1). Values below 1 are
// treated as 1.
func WithScale(s int) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithIndexed writes a paletted PNG with at most n colours, one of which is
// reserved for full transparency. n is clamped to [2, 256].
func WithIndexed(n int) PNGOption {
	return func(r *pngRenderer) { r.colours = min(max(n, 2), 256) }
}

// RenderPNG encodes img as PNG.
func RenderPNG(img *render.Image, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	if img.Width == 0 || img.Height == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot encode empty image %q", img.Name)
	}

	var out image.Image = Upscale(img.NRGBA(), r.scale)
	if r.colours > 0 {
		out = toPaletted(out, r.colours)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", img.Name)
	}
	return buf.Bytes(), nil
}

// Upscale replicates every pixel of src into a scale×scale block.
func Upscale(src *image.NRGBA, scale int) *image.NRGBA {
	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// toPaletted reduces m to n colours. Entry 0 is always fully transparent.
func toPaletted(m image.Image, n int) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	pal := append(color.Palette{color.Transparent}, q.Quantize(make(color.Palette, 0, n-1), m)...)

	b := m.Bounds()
	pm := image.NewPaletted(b, pal)
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}
