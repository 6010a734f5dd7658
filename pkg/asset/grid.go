package asset

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Grid is a rectangular character grid. Rows are padded with spaces to the
// width of the longest row; an empty grid degenerates to a single space.
type Grid struct {
	cells  [][]rune
	width  int
	height int
	empty  bool
}

// NewGrid builds a grid from text rows.
func NewGrid(rows []string) Grid {
	width := 0
	for _, r := range rows {
		width = max(width, utf8.RuneCountInString(r))
	}
	if len(rows) == 0 || width == 0 {
		return Grid{cells: [][]rune{{' '}}, width: 1, height: 1, empty: true}
	}

	cells := make([][]rune, len(rows))
	for y, r := range rows {
		row := make([]rune, 0, width)
		row = append(row, []rune(r)...)
		for len(row) < width {
			row = append(row, ' ')
		}
		cells[y] = row
	}
	return Grid{cells: cells, width: width, height: len(rows)}
}

// ParseGrid splits text on newlines and builds a grid. Trailing carriage
// returns are removed.
func ParseGrid(text string) Grid {
	text = strings.Trim(text, "\n")
	if text == "" {
		return NewGrid(nil)
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return NewGrid(lines)
}

// Width returns the number of columns.
func (g Grid) Width() int {
	if g.cells == nil {
		return 1
	}
	return g.width
}

// Height returns the number of rows.
func (g Grid) Height() int {
	if g.cells == nil {
		return 1
	}
	return g.height
}

// At returns the rune at (x, y), or a space outside the grid.
func (g Grid) At(x, y int) rune {
	if y < 0 || y >= len(g.cells) || x < 0 || x >= len(g.cells[y]) {
		return ' '
	}
	return g.cells[y][x]
}

// Rows returns the grid as strings.
func (g Grid) Rows() []string {
	if g.cells == nil {
		return []string{" "}
	}
	out := make([]string, len(g.cells))
	for i, r := range g.cells {
		out[i] = string(r)
	}
	return out
}

// Glyphs returns the distinct runes in the grid in sorted order.
func (g Grid) Glyphs() []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, row := range g.cells {
		for _, r := range row {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	slices.Sort(out)
	return out
}

// IsEmpty reports whether the grid was built from empty input.
func (g Grid) IsEmpty() bool { return g.empty || g.cells == nil }

// Blank reports whether every cell is a space.
func (g Grid) Blank() bool {
	for _, row := range g.cells {
		for _, r := range row {
			if r != ' ' {
				return false
			}
		}
	}
	return true
}
