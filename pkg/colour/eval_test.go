package colour

import (
	"testing"

	"github.com/matzehuels/pixelforge/pkg/errors"
)

func lookupFrom(m map[string]Colour) Lookup {
	return func(name string) (Colour, bool) {
		c, ok := m[name]
		return c, ok
	}
}

func eval(t *testing.T, src string, lookup Lookup) (Colour, error) {
	t.Helper()
	e, err := ParseExpr(src)
	if err != nil {
		t.Fatalf("ParseExpr(%q) error: %v", src, err)
	}
	return Eval(e, lookup)
}

func TestEval(t *testing.T) {
	lookup := lookupFrom(map[string]Colour{
		"black": Black,
		"white": White,
		"red":   RGB(255, 0, 0),
		"grey":  RGB(128, 128, 128),
	})

	tests := []struct {
		expr string
		want Colour
	}{
		{"#00FF00", RGB(0, 255, 0)},
		{"$red", RGB(255, 0, 0)},
		{"red", RGB(255, 0, 0)},
		{"mix($black, $white, 50%)", Colour{128, 128, 128, 255}},
		{"mix($black, $white, 0%)", Black},
		{"mix($black, $white, 100%)", White},
		{"mix($black, $white, 150%)", White},
		{"alpha($red, 50%)", Colour{255, 0, 0, 128}},
		{"alpha($red, 0%)", Colour{255, 0, 0, 0}},
		{"alpha($red, 200%)", Colour{255, 0, 0, 255}},
		{"darken($white, 100%)", Black},
		{"lighten($black, 100%)", White},
		{"darken($red, 0%)", RGB(255, 0, 0)},
		{"lighten($red, 50%)", RGB(255, 128, 128)},
		{"darken($red, 50%)", RGB(128, 0, 0)},
		{"desaturate($red, 100%)", RGB(128, 128, 128)},
		{"saturate($red, 50%)", RGB(255, 0, 0)},
		{"desaturate($grey, 50%)", RGB(128, 128, 128)},
		{"darken(alpha($white, 50%), 100%)", Colour{0, 0, 0, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := eval(t, tt.expr, lookup)
			if err != nil {
				t.Fatalf("Eval(%q) error: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	lookup := lookupFrom(map[string]Colour{"red": RGB(255, 0, 0)})

	tests := []struct {
		expr string
		code errors.Code
	}{
		{"$missing", errors.ErrCodeUndefinedColour},
		{"50%", errors.ErrCodeInvalidExpression},
		{"darken($red)", errors.ErrCodeInvalidExpression},
		{"darken($red, #fff)", errors.ErrCodeInvalidExpression},
		{"mix($red, $red)", errors.ErrCodeInvalidExpression},
		{"blur($red, 5%)", errors.ErrCodeUnknownFunction},
		{"mix($red, $missing, 50%)", errors.ErrCodeUndefinedColour},
		{"#12", errors.ErrCodeInvalidExpression},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := eval(t, tt.expr, lookup)
			if !errors.Is(err, tt.code) {
				t.Errorf("Eval(%q) error = %v, want %s", tt.expr, err, tt.code)
			}
		})
	}
}

func TestEvalUnknownFunctionNamesCall(t *testing.T) {
	_, err := eval(t, "glow(#fff, 5%)", nil)
	if err == nil || !contains(err.Error(), "glow") {
		t.Errorf("error = %v, want it to name glow", err)
	}
}

func TestEvalNilLookup(t *testing.T) {
	if _, err := eval(t, "$a", nil); !errors.Is(err, errors.ErrCodeUndefinedColour) {
		t.Errorf("Eval with nil lookup error = %v", err)
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
