// Package project loads pixelforge projects from TOML files.
//
// A project file holds any number of assets, one table per asset, keyed by
// kind and name:
//
//	[palette.dusk]
//	parent = "default"
//	colours = { gold = "#FFD700", edge = "darken($gold, 40%)" }
//	variants.night = { gold = "#806B00" }
//
//	[stamp.brick]
//	glyph = "B"
//	grid = """
//	$$
//	$.
//	"""
//
//	[shape.wall]
//	tags = ["solid"]
//	grid = """
//	+--+
//	|~~|
//	"""
//	legend = { "~" = { fill = "checker", bindings = { A = "$gold", B = "#000" } } }
//
//	[prefab.house]
//	grid = "WW"
//	legend = { W = "wall" }
//
//	[target.game]
//	format = "png"
//	scale = 4
//	sheet = "auto"
//
// Decoding never stops at the first problem: every malformed document is
// reported in one joined error.
package project

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Extension is the file extension of project files.
const Extension = ".toml"

// Load decodes the given files into a new registry seeded with the
// builtins. Files are decoded in order, so a later definition replaces an
// earlier one of the same kind and name. Directories are searched
// recursively with [Discover].
func Load(paths ...string) (*asset.Registry, error) {
	reg := asset.NewRegistry().WithBuiltins()

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", p)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := Discover(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	var errs []error
	for _, path := range files {
		if err := decodeFile(path, reg); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Discover returns every project file below root in lexical order. Hidden
// directories are skipped.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Extension {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "scan %s", root)
	}
	slices.Sort(files)
	return files, nil
}

func decodeFile(path string, reg *asset.Registry) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f, path, reg)
}

// Decode reads one TOML document from r and adds its assets to reg. source
// names the document in error messages. Assets are added only when the
// whole document is valid.
func Decode(r io.Reader, source string, reg *asset.Registry) error {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s", source)
	}
	if err := unknownKinds(md, source); err != nil {
		return err
	}
	staged, err := doc.assets(source)
	if err != nil {
		return err
	}
	staged.addTo(reg)
	return nil
}

// unknownKinds rejects top-level tables that do not name an asset kind.
func unknownKinds(md toml.MetaData, source string) error {
	seen := make(map[string]bool)
	var errs []error
	for _, key := range md.Undecoded() {
		if len(key) == 0 || seen[key[0]] {
			continue
		}
		seen[key[0]] = true
		if _, ok := asset.ParseKind(key[0]); !ok {
			errs = append(errs, errors.New(errors.ErrCodeInvalidDocument,
				"%s: unknown asset kind %q", source, key[0]))
		}
	}
	return errors.Join(errs...)
}
