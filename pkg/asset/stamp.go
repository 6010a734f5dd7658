package asset

import (
	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Token is the semantic value of one stamp pixel.
type Token int

const (
	TokenTransparent Token = iota
	TokenEdge
	TokenFill
)

// ParseToken maps a stamp character to its token: $ is edge, . and space are
// fill, x and X are transparent.
func ParseToken(r rune) (Token, bool) {
	switch r {
	case '$':
		return TokenEdge, true
	case '.', ' ':
		return TokenFill, true
	case 'x', 'X':
		return TokenTransparent, true
	}
	return TokenTransparent, false
}

// String returns the canonical character for the token.
func (t Token) String() string {
	switch t {
	case TokenEdge:
		return "$"
	case TokenFill:
		return "."
	}
	return "x"
}

// Stamp is a fixed-size grid of tokens resolved through the active palette.
type Stamp struct {
	Name string
	// Glyph, when non-zero, lets shapes place the stamp without a legend entry.
	Glyph   rune
	tokens  [][]Token
	builtin bool
}

// NewStamp parses token rows into a stamp. Rows must be non-empty and of
// equal length.
func NewStamp(name string, glyph rune, rows []string) (*Stamp, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "stamp %s: no pixel rows", name)
	}
	tokens := make([][]Token, len(rows))
	width := -1
	for y, row := range rows {
		runes := []rune(row)
		if width == -1 {
			width = len(runes)
		}
		if len(runes) != width || width == 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument,
				"stamp %s: row %d has %d pixels, want %d", name, y+1, len(runes), width)
		}
		tokens[y] = make([]Token, width)
		for x, r := range runes {
			t, ok := ParseToken(r)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidDocument,
					"stamp %s: unknown token %q at (%d, %d)", name, r, x, y)
			}
			tokens[y][x] = t
		}
	}
	return &Stamp{Name: name, Glyph: glyph, tokens: tokens}, nil
}

func singleStamp(name string, glyph rune, t Token) *Stamp {
	return &Stamp{Name: name, Glyph: glyph, tokens: [][]Token{{t}}, builtin: true}
}

// IsBuiltin reports whether the stamp comes from the builtin table.
func (s *Stamp) IsBuiltin() bool { return s.builtin }

// Width returns the stamp width in pixels.
func (s *Stamp) Width() int {
	if len(s.tokens) == 0 {
		return 0
	}
	return len(s.tokens[0])
}

// Height returns the stamp height in pixels.
func (s *Stamp) Height() int { return len(s.tokens) }

// At returns the token at (x, y), or transparent outside the stamp.
func (s *Stamp) At(x, y int) Token {
	if y < 0 || y >= len(s.tokens) || x < 0 || x >= len(s.tokens[y]) {
		return TokenTransparent
	}
	return s.tokens[y][x]
}
