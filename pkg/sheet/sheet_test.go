package sheet

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pixelforge/pkg/colour"
	"github.com/matzehuels/pixelforge/pkg/render"
)

func sprite(name string, w, h int, c colour.Colour) *render.Image {
	img := render.NewImage(name, w, h)
	for i := range img.Pix {
		img.Pix[i] = c
	}
	return img
}

func overlaps(a, b Frame) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func TestPackThreeSquares(t *testing.T) {
	images := []*render.Image{
		sprite("a", 4, 4, colour.RGB(255, 0, 0)),
		sprite("b", 4, 4, colour.RGB(0, 255, 0)),
		sprite("c", 4, 4, colour.RGB(0, 0, 255)),
	}
	sheet, frames := Pack(images, 0)

	// Area 48 → ⌈√48⌉ = 7 → width 8: two sprites on the first shelf.
	assert.Equal(t, 8, sheet.Width)
	assert.Equal(t, 8, sheet.Height)
	assert.Equal(t, 48, sheet.Opaque())
	require.Len(t, frames, 3)
	assert.Equal(t, Frame{Name: "a", X: 0, Y: 0, W: 4, H: 4}, frames[0])
	assert.Equal(t, Frame{Name: "b", X: 4, Y: 0, W: 4, H: 4}, frames[1])
	assert.Equal(t, Frame{Name: "c", X: 0, Y: 4, W: 4, H: 4}, frames[2])
}

func TestPackTallestFirstKeepsInputOrder(t *testing.T) {
	images := []*render.Image{
		sprite("short", 2, 1, colour.Black),
		sprite("tall", 2, 3, colour.Black),
		sprite("mid", 2, 2, colour.Black),
	}
	_, frames := Pack(images, 0)

	require.Len(t, frames, 3)
	assert.Equal(t, []string{"short", "tall", "mid"}, []string{frames[0].Name, frames[1].Name, frames[2].Name})
	assert.Equal(t, 0, frames[1].X, "tallest sprite is placed first")
	assert.Less(t, frames[1].X, frames[2].X)
}

func TestPackInvariants(t *testing.T) {
	var images []*render.Image
	for i := 0; i < 17; i++ {
		w, h := 1+(i*7)%9, 1+(i*5)%6
		images = append(images, sprite(fmt.Sprintf("s%02d", i), w, h, colour.RGB(uint8(i*10), 0, 0)))
	}

	for _, padding := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("padding=%d", padding), func(t *testing.T) {
			sheet, frames := Pack(images, padding)
			require.Len(t, frames, len(images))

			w := sheet.Width
			assert.Equal(t, 0, w&(w-1), "width %d is not a power of two", w)

			for i, f := range frames {
				assert.Equal(t, images[i].Name, f.Name)
				assert.True(t, f.Contains(sheet.Width, sheet.Height), "frame %v outside sheet", f)
				for j := i + 1; j < len(frames); j++ {
					assert.False(t, overlaps(f, frames[j]), "%v overlaps %v", f, frames[j])
				}
				for y := 0; y < f.H; y++ {
					for x := 0; x < f.W; x++ {
						if sheet.At(f.X+x, f.Y+y) != images[i].At(x, y) {
							t.Fatalf("frame %s pixel (%d, %d) differs", f.Name, x, y)
						}
					}
				}
			}
		})
	}
}

func TestPackDeterministic(t *testing.T) {
	images := []*render.Image{sprite("a", 3, 2, colour.Black), sprite("b", 5, 2, colour.White), sprite("c", 1, 4, colour.Black)}
	s1, f1 := Pack(images, 1)
	s2, f2 := Pack(images, 1)
	assert.Equal(t, f1, f2)
	assert.Equal(t, s1.Pix, s2.Pix)
}

func TestPackEmpty(t *testing.T) {
	sheet, frames := Pack(nil, 2)
	assert.Empty(t, frames)
	assert.Equal(t, 0, sheet.Width)
	assert.Equal(t, 0, sheet.Height)
}

func TestFixed(t *testing.T) {
	images := []*render.Image{sprite("big", 8, 8, colour.Black), sprite("small", 2, 2, colour.White)}

	sheet, fit, overflow := Fixed(images, 0, 8, 8)
	assert.Equal(t, 8, sheet.Width)
	assert.Equal(t, 8, sheet.Height)
	require.Len(t, fit, 1)
	assert.Equal(t, "big", fit[0].Name)
	require.Len(t, overflow, 1)
	assert.Equal(t, "small", overflow[0].Name)

	sheet, fit, overflow = Fixed(images, 0, 32, 32)
	assert.Equal(t, 32, sheet.Width)
	assert.Len(t, fit, 2)
	assert.Empty(t, overflow)
	assert.Equal(t, 68, sheet.Opaque())
}

func TestNextPowerOfTwo(t *testing.T) {
	for n, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 7: 8, 8: 8, 9: 16, 129: 256} {
		assert.Equal(t, want, nextPowerOfTwo(n), "nextPowerOfTwo(%d)", n)
	}
}
