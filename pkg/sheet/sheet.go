// Package sheet packs rendered images into a single sprite sheet.
//
// Packing uses a shelf strategy: sprites are placed left to right in rows,
// tallest first, on a canvas whose width is the smallest power of two that
// can hold the widest sprite and the square root of the padded total area.
// The result is fully determined by the input order, sizes and padding.
package sheet

import (
	"math"
	"slices"

	"github.com/matzehuels/pixelforge/pkg/render"
)

// Name is the name given to packed sheet images.
const Name = "sheet"

// Frame is the position of one packed sprite on the sheet.
type Frame struct {
	Name string
	X, Y int
	W, H int
}

// Contains reports whether the frame lies entirely inside a w×h canvas.
func (f Frame) Contains(w, h int) bool {
	return f.X >= 0 && f.Y >= 0 && f.X+f.W <= w && f.Y+f.H <= h
}

// Pack places images on a shared sheet and returns it together with one
// frame per image, in input order. Padding is the number of transparent
// pixels kept between neighbouring sprites.
//
// An empty input yields a 0×0 sheet and no frames.
func Pack(images []*render.Image, padding int) (*render.Image, []Frame) {
	if len(images) == 0 {
		return render.NewImage(Name, 0, 0), nil
	}
	padding = max(padding, 0)

	order := make([]int, len(images))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return images[b].Height - images[a].Height
	})

	widest, area := 0, 0
	for _, img := range images {
		widest = max(widest, img.Width)
		area += (img.Width + padding) * (img.Height + padding)
	}
	width := nextPowerOfTwo(max(widest, int(math.Ceil(math.Sqrt(float64(area))))))

	frames := make([]Frame, len(images))
	x, y, rowH := 0, 0, 0
	for _, i := range order {
		img := images[i]
		if x+img.Width > width && x > 0 {
			y += rowH + padding
			x, rowH = 0, 0
		}
		frames[i] = Frame{Name: img.Name, X: x, Y: y, W: img.Width, H: img.Height}
		rowH = max(rowH, img.Height)
		x += img.Width + padding
	}

	sheet := render.NewImage(Name, width, y+rowH)
	for i, img := range images {
		render.Blit(sheet, img, frames[i].X, frames[i].Y)
	}
	return sheet, frames
}

// Fixed packs images like [Pack] and then crops or pads the sheet to exactly
// width×height. Frames that no longer fit entirely are returned separately
// as overflow; their pixels may be partially cropped.
func Fixed(images []*render.Image, padding, width, height int) (*render.Image, []Frame, []Frame) {
	packed, frames := Pack(images, padding)

	sheet := render.NewImage(Name, width, height)
	render.Blit(sheet, packed, 0, 0)

	var fit, overflow []Frame
	for _, f := range frames {
		if f.Contains(width, height) {
			fit = append(fit, f)
		} else {
			overflow = append(overflow, f)
		}
	}
	return sheet, fit, overflow
}

// nextPowerOfTwo returns the smallest power of two ≥ n, with 1 for n ≤ 1.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
