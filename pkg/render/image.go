package render

import (
	"cmp"
	"image"
	"slices"

	"github.com/matzehuels/pixelforge/pkg/colour"
)

// Image is a named, row-major RGBA pixel grid.
type Image struct {
	Name   string
	Tags   []string
	Width  int
	Height int
	Pix    []colour.Colour
}

// NewImage returns a fully transparent image.
func NewImage(name string, width, height int) *Image {
	return &Image{
		Name:   name,
		Width:  width,
		Height: height,
		Pix:    make([]colour.Colour, width*height),
	}
}

// At returns the pixel at (x, y), or transparent outside the image.
func (m *Image) At(x, y int) colour.Colour {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return colour.Transparent
	}
	return m.Pix[y*m.Width+x]
}

// Set writes a pixel. Writes outside the image are ignored.
func (m *Image) Set(x, y int, c colour.Colour) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = c
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	c := *m
	c.Pix = append([]colour.Colour(nil), m.Pix...)
	c.Tags = append([]string(nil), m.Tags...)
	return &c
}

// Opaque counts pixels with non-zero alpha.
func (m *Image) Opaque() int {
	n := 0
	for _, p := range m.Pix {
		if p.A > 0 {
			n++
		}
	}
	return n
}

// Rows returns the pixels as a slice of rows.
func (m *Image) Rows() [][]colour.Colour {
	rows := make([][]colour.Colour, m.Height)
	for y := range rows {
		rows[y] = m.Pix[y*m.Width : (y+1)*m.Width]
	}
	return rows
}

// ColourCount is one entry of a colour histogram.
type ColourCount struct {
	Colour colour.Colour
	Count  int
}

// Histogram counts the opaque colours of the image, most frequent first.
// Equal counts keep the order in which the colours first appear, scanning
// rows top to bottom.
func (m *Image) Histogram() []ColourCount {
	index := make(map[colour.Colour]int)
	var out []ColourCount
	for _, row := range m.Rows() {
		for _, c := range row {
			if c.IsTransparent() {
				continue
			}
			i, ok := index[c]
			if !ok {
				i = len(out)
				index[c] = i
				out = append(out, ColourCount{Colour: c})
			}
			out[i].Count++
		}
	}
	slices.SortStableFunc(out, func(a, b ColourCount) int { return cmp.Compare(b.Count, a.Count) })
	return out
}

// NRGBA converts the image to the standard library representation.
func (m *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			out.SetNRGBA(x, y, m.At(x, y).NRGBA())
		}
	}
	return out
}

// FromImage converts any image into an Image.
func FromImage(name string, src image.Image) *Image {
	b := src.Bounds()
	m := NewImage(name, b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Pix[y*m.Width+x] = colour.FromColor(src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return m
}
