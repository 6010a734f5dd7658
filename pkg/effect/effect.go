// Package effect implements the post-processing effects a shader applies to
// every rendered shape.
//
// Effects operate on colour channels only: alpha is preserved and fully
// transparent pixels are never touched, so sprite silhouettes survive any
// chain of effects unchanged.
//
// Supported effects and their parameters (defaults in parentheses):
//
//	brightness  amount   -1..1 (0)    adds amount×255 to each channel
//	contrast    amount   -1..1 (0)    scales channels around mid-grey
//	vignette    strength  0..1 (0.3)  darkens towards the corners
//	scanlines   opacity   0..1 (0.1)  darkens every gap-th row
//	            gap       ≥1   (2)
package effect

import (
	"math"
	"slices"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/colour"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/render"
)

// Effect names.
const (
	Brightness = "brightness"
	Contrast   = "contrast"
	Vignette   = "vignette"
	Scanlines  = "scanlines"
)

type applyFunc func(img *render.Image, e asset.Effect)

var effects = map[string]applyFunc{
	Brightness: brightness,
	Contrast:   contrast,
	Vignette:   vignette,
	Scanlines:  scanlines,
}

// Names returns the supported effect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(effects))
	for name := range effects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate checks that every effect is known.
func Validate(chain []asset.Effect) error {
	for _, e := range chain {
		if _, ok := effects[e.Name]; !ok {
			return errors.New(errors.ErrCodeUnknownEffect, "unknown effect %q", e.Name)
		}
	}
	return nil
}

// Apply runs the chain in order on a copy of img. The input is never
// modified. An unknown effect fails before any effect runs.
func Apply(img *render.Image, chain []asset.Effect) (*render.Image, error) {
	if err := Validate(chain); err != nil {
		return nil, err
	}
	out := img.Clone()
	for _, e := range chain {
		effects[e.Name](out, e)
	}
	return out, nil
}

func brightness(img *render.Image, e asset.Effect) {
	delta := clamp(e.Param("amount", 0), -1, 1) * 255
	mapOpaque(img, func(_, _ int, v float64) float64 { return v + delta })
}

func contrast(img *render.Image, e asset.Effect) {
	factor := 1 + clamp(e.Param("amount", 0), -1, 1)
	mapOpaque(img, func(_, _ int, v float64) float64 { return (v-128)*factor + 128 })
}

func vignette(img *render.Image, e asset.Effect) {
	strength := clamp(e.Param("strength", 0.3), 0, 1)
	cx, cy := float64(img.Width-1)/2, float64(img.Height-1)/2
	maxDist := math.Hypot(cx, cy)
	if maxDist == 0 || strength == 0 {
		return
	}
	mapOpaque(img, func(x, y int, v float64) float64 {
		d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
		return v * (1 - strength*d*d)
	})
}

func scanlines(img *render.Image, e asset.Effect) {
	opacity := clamp(e.Param("opacity", 0.1), 0, 1)
	gap := max(int(e.Param("gap", 2)), 1)
	mapOpaque(img, func(_, y int, v float64) float64 {
		if y%gap != gap-1 {
			return v
		}
		return v * (1 - opacity)
	})
}

// mapOpaque applies f to the colour channels of every non-transparent pixel.
func mapOpaque(img *render.Image, f func(x, y int, v float64) float64) {
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := y*img.Width + x
			p := img.Pix[i]
			if p.IsTransparent() {
				continue
			}
			img.Pix[i] = colour.Colour{
				R: channel(f(x, y, float64(p.R))),
				G: channel(f(x, y, float64(p.G))),
				B: channel(f(x, y, float64(p.B))),
				A: p.A,
			}
		}
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 255)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
