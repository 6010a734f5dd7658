package asset

import (
	"slices"

	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Brush is a tiling pattern of positional letters. Letters are bound to
// colours only where the brush is used.
type Brush struct {
	Name    string
	pattern [][]rune
}

// NewBrush builds a brush from pattern rows, which must be non-empty and of
// equal length.
func NewBrush(name string, rows []string) (*Brush, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "brush %s: empty pattern", name)
	}
	pattern := make([][]rune, len(rows))
	for y, row := range rows {
		pattern[y] = []rune(row)
		if len(pattern[y]) == 0 || len(pattern[y]) != len(pattern[0]) {
			return nil, errors.New(errors.ErrCodeInvalidDocument,
				"brush %s: row %d has %d letters, want %d", name, y+1, len(pattern[y]), len(pattern[0]))
		}
	}
	return &Brush{Name: name, pattern: pattern}, nil
}

func mustBrush(name string, rows ...string) *Brush {
	b, err := NewBrush(name, rows)
	if err != nil {
		panic(err)
	}
	return b
}

// Width returns the pattern width.
func (b *Brush) Width() int { return len(b.pattern[0]) }

// Height returns the pattern height.
func (b *Brush) Height() int { return len(b.pattern) }

// Sample returns the letter at (x, y), wrapping on both axes.
func (b *Brush) Sample(x, y int) rune {
	return b.pattern[mod(y, b.Height())][mod(x, b.Width())]
}

// Letters returns the distinct letters used by the pattern, sorted.
func (b *Brush) Letters() []rune {
	var out []rune
	for _, row := range b.pattern {
		for _, r := range row {
			if !slices.Contains(out, r) {
				out = append(out, r)
			}
		}
	}
	slices.Sort(out)
	return out
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
