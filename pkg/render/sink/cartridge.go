package sink

import (
	"bytes"

	"github.com/matzehuels/pixelforge/pkg/quantize"
	"github.com/matzehuels/pixelforge/pkg/render"
)

// Cartridge geometry and header lines.
const (
	CartridgeWidth  = 128
	CartridgeHeight = 128

	cartridgeHeader  = "pico-8 cartridge // http://www.pico-8.com"
	cartridgeVersion = "version 42"
	cartridgeGfx     = "__gfx__"
)

// CartridgeOption configures cartridge rendering.
type CartridgeOption func(*cartridgeRenderer)

type cartridgeRenderer struct {
	dither      quantize.Dither
	transparent uint8
}

// WithDither selects the dithering method (default ordered).
func WithDither(d quantize.Dither) CartridgeOption {
	return func(r *cartridgeRenderer) { r.dither = d }
}

// WithTransparentIndex sets the palette index written for transparent
// pixels (default 0).
func WithTransparentIndex(i uint8) CartridgeOption {
	return func(r *cartridgeRenderer) { r.transparent = i & 0x0f }
}

// RenderCartridge writes img as the __gfx__ section of a PICO-8 cartridge.
// The image is cropped or transparent-padded to 128×128 from its top-left
// corner before quantization.
func RenderCartridge(img *render.Image, opts ...CartridgeOption) []byte {
	r := cartridgeRenderer{dither: quantize.DefaultDither}
	for _, opt := range opts {
		opt(&r)
	}

	canvas := render.NewImage(img.Name, CartridgeWidth, CartridgeHeight)
	for y := 0; y < min(img.Height, CartridgeHeight); y++ {
		for x := 0; x < min(img.Width, CartridgeWidth); x++ {
			canvas.Set(x, y, img.At(x, y))
		}
	}

	indices := quantize.Quantize(canvas, quantize.Options{
		Palette:          quantize.Pico8,
		Dither:           r.dither,
		TransparentIndex: r.transparent,
	})

	const hex = "0123456789abcdef"
	var buf bytes.Buffer
	buf.Grow(3*64 + CartridgeHeight*(CartridgeWidth+1))
	for _, line := range []string{cartridgeHeader, cartridgeVersion, cartridgeGfx} {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	for _, row := range indices {
		for _, idx := range row {
			buf.WriteByte(hex[idx&0x0f])
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
