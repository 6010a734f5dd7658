package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Lookup resolves a colour name (without $) to a colour.
type Lookup func(name string) (Colour, bool)

// Functions lists the colour functions understood by [Eval].
var Functions = []string{"darken", "lighten", "saturate", "desaturate", "mix", "alpha"}

// Eval evaluates expr, resolving references through lookup.
func Eval(expr Expr, lookup Lookup) (Colour, error) {
	switch expr.Kind {
	case ExprHex:
		return ParseHex(expr.Hex)
	case ExprRef:
		if lookup != nil {
			if c, ok := lookup(expr.Name); ok {
				return c, nil
			}
		}
		return Colour{}, errors.New(errors.ErrCodeUndefinedColour, "undefined colour: $%s", expr.Name)
	case ExprPercent:
		return Colour{}, errors.New(errors.ErrCodeInvalidExpression,
			"percentage %s cannot be evaluated as a colour", expr)
	case ExprCall:
		return evalCall(expr, lookup)
	}
	return Colour{}, errors.New(errors.ErrCodeInternal, "unknown expression kind %d", expr.Kind)
}

func evalCall(expr Expr, lookup Lookup) (Colour, error) {
	switch expr.Name {
	case "darken", "lighten", "saturate", "desaturate", "alpha":
		if len(expr.Args) != 2 {
			return Colour{}, errors.New(errors.ErrCodeInvalidExpression,
				"%s() requires 2 arguments, got %d", expr.Name, len(expr.Args))
		}
		c, err := Eval(expr.Args[0], lookup)
		if err != nil {
			return Colour{}, err
		}
		pct, err := percentArg(expr.Name, expr.Args[1])
		if err != nil {
			return Colour{}, err
		}
		switch expr.Name {
		case "darken":
			return adjustHSL(c, 0, -pct/100), nil
		case "lighten":
			return adjustHSL(c, 0, pct/100), nil
		case "saturate":
			return adjustHSL(c, pct/100, 0), nil
		case "desaturate":
			return adjustHSL(c, -pct/100, 0), nil
		default:
			c.A = clampByte(math.Round(pct / 100 * 255))
			return c, nil
		}

	case "mix":
		if len(expr.Args) != 3 {
			return Colour{}, errors.New(errors.ErrCodeInvalidExpression,
				"mix() requires 3 arguments, got %d", len(expr.Args))
		}
		a, err := Eval(expr.Args[0], lookup)
		if err != nil {
			return Colour{}, err
		}
		b, err := Eval(expr.Args[1], lookup)
		if err != nil {
			return Colour{}, err
		}
		pct, err := percentArg("mix", expr.Args[2])
		if err != nil {
			return Colour{}, err
		}
		return Mix(a, b, pct/100), nil
	}

	return Colour{}, errors.New(errors.ErrCodeUnknownFunction,
		"unknown colour function %s() (available: darken, lighten, saturate, desaturate, mix, alpha)", expr.Name)
}

func percentArg(fn string, e Expr) (float64, error) {
	if e.Kind != ExprPercent {
		return 0, errors.New(errors.ErrCodeInvalidExpression,
			"%s() expects a percentage argument, got %s", fn, e)
	}
	return e.Percent, nil
}

// Mix linearly interpolates all four channels. factor is clamped to [0, 1];
// 0 yields a and 1 yields b.
func Mix(a, b Colour, factor float64) Colour {
	f := math.Max(0, math.Min(1, factor))
	inv := 1 - f
	lerp := func(x, y uint8) uint8 {
		return clampByte(math.Round(float64(x)*inv + float64(y)*f))
	}
	return Colour{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A)}
}

// adjustHSL moves saturation and lightness toward 1 (positive delta) or 0
// (negative delta) by the given fraction of the remaining range.
func adjustHSL(c Colour, ds, dl float64) Colour {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()

	s = shift(s, ds)
	l = shift(l, dl)

	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return Colour{r, g, b, c.A}
}

func shift(v, delta float64) float64 {
	if delta > 0 {
		v += (1 - v) * delta
	} else {
		v += v * delta
	}
	return math.Max(0, math.Min(1, v))
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
