package asset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatP8  = "p8"
)

// PaletteMode selects how PNG output stores colours.
type PaletteMode string

const (
	PaletteRGBA    PaletteMode = "rgba"
	PaletteIndexed PaletteMode = "indexed"
)

// SheetKind selects whether and how rendered images are packed.
type SheetKind int

const (
	SheetNone SheetKind = iota
	SheetAuto
	SheetFixed
)

// Sheet is a sheet packing configuration.
type Sheet struct {
	Kind          SheetKind
	Width, Height int
}

// ParseSheet parses "none"/"false", "auto"/"true" or "WxH".
func ParseSheet(s string) (Sheet, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "false":
		return Sheet{Kind: SheetNone}, nil
	case "auto", "true":
		return Sheet{Kind: SheetAuto}, nil
	}
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return Sheet{}, errors.New(errors.ErrCodeInvalidInput,
			"invalid sheet config %q (expected none, auto or WxH)", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return Sheet{}, errors.New(errors.ErrCodeInvalidInput, "invalid sheet width %q", w)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return Sheet{}, errors.New(errors.ErrCodeInvalidInput, "invalid sheet height %q", h)
	}
	return Sheet{Kind: SheetFixed, Width: width, Height: height}, nil
}

func (s Sheet) String() string {
	switch s.Kind {
	case SheetAuto:
		return "auto"
	case SheetFixed:
		return fmt.Sprintf("%dx%d", s.Width, s.Height)
	}
	return "none"
}

// Target is an output profile.
type Target struct {
	Name        string
	Format      string
	Scale       int // zero means unset
	Sheet       Sheet
	Padding     int
	PaletteMode PaletteMode
	Shader      string
	// Dither names the dithering method for p8 output.
	Dither string
}

// Validate checks the format and palette mode.
func (t *Target) Validate() error {
	switch t.Format {
	case FormatPNG, FormatP8:
	default:
		return errors.New(errors.ErrCodeInvalidDocument,
			"target %s: unknown format %q (expected png or p8)", t.Name, t.Format)
	}
	switch t.PaletteMode {
	case "", PaletteRGBA, PaletteIndexed:
	default:
		return errors.New(errors.ErrCodeInvalidDocument,
			"target %s: unknown palette mode %q (expected rgba or indexed)", t.Name, t.PaletteMode)
	}
	if t.Scale < 0 || t.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "target %s: scale and padding must not be negative", t.Name)
	}
	return nil
}
