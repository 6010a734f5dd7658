// Package quantize maps images onto a small fixed palette, optionally with
// ordered (Bayer) or Floyd–Steinberg error-diffusion dithering.
//
// Nearest-colour search is exhaustive and uses the "redmean" weighted
// squared distance, which tracks perceived difference far better than plain
// RGB distance at negligible cost. Transparent input always maps to the
// configured transparent index.
package quantize

import (
	"strings"

	"github.com/matzehuels/pixelforge/pkg/colour"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/render"
)

// Pico8 is the fixed 16-colour PICO-8 palette.
var Pico8 = []colour.Colour{
	colour.RGB(0, 0, 0),       // black
	colour.RGB(29, 43, 83),    // dark blue
	colour.RGB(126, 37, 83),   // dark purple
	colour.RGB(0, 135, 81),    // dark green
	colour.RGB(171, 82, 54),   // brown
	colour.RGB(95, 87, 79),    // dark grey
	colour.RGB(194, 195, 199), // light grey
	colour.RGB(255, 241, 232), // white
	colour.RGB(255, 0, 77),    // red
	colour.RGB(255, 163, 0),   // orange
	colour.RGB(255, 236, 39),  // yellow
	colour.RGB(0, 228, 54),    // green
	colour.RGB(41, 173, 255),  // blue
	colour.RGB(131, 118, 156), // indigo
	colour.RGB(255, 119, 168), // pink
	colour.RGB(255, 204, 170), // peach
}

// Dither selects the dithering method.
type Dither int

const (
	DitherNone Dither = iota
	DitherOrdered
	DitherFloydSteinberg
)

// DefaultDither is used when no method is configured.
const DefaultDither = DitherOrdered

func (d Dither) String() string {
	switch d {
	case DitherNone:
		return "none"
	case DitherOrdered:
		return "ordered"
	case DitherFloydSteinberg:
		return "floyd-steinberg"
	}
	return "unknown"
}

// ParseDither parses a method name, case-insensitively. The empty string
// selects [DefaultDither]; "bayer" and "fs" are accepted as aliases.
func ParseDither(s string) (Dither, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultDither, nil
	case "none":
		return DitherNone, nil
	case "ordered", "bayer":
		return DitherOrdered, nil
	case "floyd-steinberg", "fs":
		return DitherFloydSteinberg, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput,
		"unknown dither method %q (want none, ordered or floyd-steinberg)", s)
}

// Options configures [Quantize].
type Options struct {
	// Palette is the target palette; nil means [Pico8]. At most 256 entries.
	Palette []colour.Colour
	Dither  Dither
	// TransparentIndex is emitted for every fully transparent pixel.
	TransparentIndex uint8
}

func (o Options) palette() []colour.Colour {
	if len(o.Palette) == 0 {
		return Pico8
	}
	return o.Palette
}

// Distance returns the redmean-weighted squared distance between the RGB
// channels of a and b. Alpha is ignored.
func Distance(a, b colour.Colour) int {
	rmean := (int(a.R) + int(b.R)) / 2
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return ((512+rmean)*dr*dr)>>8 + 4*dg*dg + ((767-rmean)*db*db)>>8
}

// Nearest returns the index of the palette entry closest to c, or
// transparent when c is fully transparent. Ties go to the lowest index.
func Nearest(c colour.Colour, pal []colour.Colour, transparent uint8) uint8 {
	if c.IsTransparent() {
		return transparent
	}
	best, bestDist := 0, -1
	for i, p := range pal {
		if d := Distance(c, p); bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// Quantize maps every pixel of img to a palette index, returning rows of
// indices. The image is not modified.
func Quantize(img *render.Image, opts Options) [][]uint8 {
	pal := opts.palette()
	switch opts.Dither {
	case DitherOrdered:
		return ordered(img, pal, opts.TransparentIndex)
	case DitherFloydSteinberg:
		return floydSteinberg(img, pal, opts.TransparentIndex)
	default:
		return direct(img, pal, opts.TransparentIndex)
	}
}

func newIndexGrid(w, h int) [][]uint8 {
	out := make([][]uint8, h)
	for y := range out {
		out[y] = make([]uint8, w)
	}
	return out
}

func direct(img *render.Image, pal []colour.Colour, transparent uint8) [][]uint8 {
	out := newIndexGrid(img.Width, img.Height)
	for y := range out {
		for x := range out[y] {
			out[y][x] = Nearest(img.At(x, y), pal, transparent)
		}
	}
	return out
}
