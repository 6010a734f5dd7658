// Package colour provides the RGBA colour value used throughout pixelforge
// and the small expression language palettes are written in.
//
// A colour expression is one of four forms:
//
//	#F0A          hex literal (#RGB, #RGBA, #RRGGBB or #RRGGBBAA)
//	$gold         reference to another named colour (the $ is optional)
//	20%           percentage, only valid as a function argument
//	darken($gold, 20%)
//
// Expressions are parsed once with [ParseExpr] and evaluated with [Eval]
// against a lookup function supplied by the caller.
package colour

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Colour is an 8-bit-per-channel RGBA value with straight (non-premultiplied)
// alpha. Two colours are equal when every channel matches.
type Colour struct {
	R, G, B, A uint8
}

var (
	Transparent = Colour{0, 0, 0, 0}
	Black       = Colour{0, 0, 0, 255}
	White       = Colour{255, 255, 255, 255}
	// Missing marks a glyph that could not be resolved during rendering.
	Missing = Colour{255, 0, 255, 255}
)

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Colour { return Colour{r, g, b, 255} }

// RGBA implements [color.Color].
func (c Colour) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA converts to the standard library representation.
func (c Colour) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts any [color.Color] into a Colour.
func FromColor(c color.Color) Colour {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Colour{n.R, n.G, n.B, n.A}
}

// IsTransparent reports whether the alpha channel is zero.
func (c Colour) IsTransparent() bool { return c.A == 0 }

// String formats the colour as #RRGGBB when opaque and #RRGGBBAA otherwise.
func (c Colour) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseHex parses #RGB, #RGBA, #RRGGBB and #RRGGBBAA. The leading # is
// optional. Short forms duplicate each nibble.
func ParseHex(s string) (Colour, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var digits string
	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		digits = b.String()
	case 6, 8:
		digits = hex
	default:
		return Colour{}, errors.New(errors.ErrCodeInvalidExpression,
			"invalid hex colour %q: expected 3, 4, 6 or 8 digits", s)
	}

	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < len(digits)/2; i++ {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return Colour{}, errors.Wrap(errors.ErrCodeInvalidExpression, err, "invalid hex colour %q", s)
		}
		ch[i] = uint8(v)
	}
	return Colour{ch[0], ch[1], ch[2], ch[3]}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// It is intended for package-level tables.
func MustParseHex(s string) Colour {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
