package quantize

import (
	"github.com/matzehuels/pixelforge/pkg/colour"
	"github.com/matzehuels/pixelforge/pkg/render"
)

// bayer4 is the 4×4 ordered-dither threshold matrix.
var bayer4 = [4][4]float32{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// orderedSpread is the channel offset range of ordered dithering.
const orderedSpread = 32

// ordered shifts each channel by (t/16 - 0.5) × spread before the lookup.
// Pixels are independent of each other.
func ordered(img *render.Image, pal []colour.Colour, transparent uint8) [][]uint8 {
	out := newIndexGrid(img.Width, img.Height)
	for y := range out {
		for x := range out[y] {
			c := img.At(x, y)
			if c.IsTransparent() {
				out[y][x] = transparent
				continue
			}
			offset := (bayer4[y%4][x%4]/16 - 0.5) * orderedSpread
			adjusted := colour.RGB(
				toByte(float32(c.R)+offset),
				toByte(float32(c.G)+offset),
				toByte(float32(c.B)+offset),
			)
			out[y][x] = Nearest(adjusted, pal, transparent)
		}
	}
	return out
}

// diffusion lists the Floyd–Steinberg neighbours and weights.
var diffusion = [4]struct {
	dx, dy int
	w      float32
}{
	{1, 0, 7.0 / 16},
	{-1, 1, 3.0 / 16},
	{0, 1, 5.0 / 16},
	{1, 1, 1.0 / 16},
}

// floydSteinberg diffuses each pixel's quantization error onto its
// unprocessed neighbours. Errors accumulate in float32 and are only clamped
// for the lookup; transparent neighbours receive nothing.
func floydSteinberg(img *render.Image, pal []colour.Colour, transparent uint8) [][]uint8 {
	w, h := img.Width, img.Height
	out := newIndexGrid(w, h)
	buf := make([][3]float32, w*h)
	for i, p := range img.Pix {
		buf[i] = [3]float32{float32(p.R), float32(p.G), float32(p.B)}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.Pix[y*w+x].IsTransparent() {
				out[y][x] = transparent
				continue
			}
			old := buf[y*w+x]
			idx := Nearest(colour.RGB(toByte(old[0]), toByte(old[1]), toByte(old[2])), pal, transparent)
			out[y][x] = idx

			chosen := pal[idx]
			residual := [3]float32{
				old[0] - float32(chosen.R),
				old[1] - float32(chosen.G),
				old[2] - float32(chosen.B),
			}
			for _, n := range diffusion {
				nx, ny := x+n.dx, y+n.dy
				if nx < 0 || nx >= w || ny >= h || img.Pix[ny*w+nx].IsTransparent() {
					continue
				}
				for c := range residual {
					buf[ny*w+nx][c] += residual[c] * n.w
				}
			}
		}
	}
	return out
}

// toByte clamps to [0, 255] and truncates.
func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
