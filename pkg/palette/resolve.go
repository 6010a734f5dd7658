package palette

import (
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/pixelforge/pkg/errors"
)

// ResolveAll builds every palette in builders, parents before children.
// Builtin palettes (at least [Default]) are available as parents and are
// included in the result unless a builder of the same name shadows them.
//
// A parent chain that loops back on itself fails with DEPENDENCY_CYCLE; a
// parent that is neither built nor builtin fails with MISSING_REFERENCE.
// Errors for independent palettes are collected and joined.
func ResolveAll(builders map[string]*Builder) (map[string]*Palette, error) {
	out := map[string]*Palette{DefaultName: Default()}
	state := make(map[string]int) // 1 = building, 2 = done
	failed := make(map[string]error)
	var errs []error

	var build func(name string, path []string) (*Palette, error)
	build = func(name string, path []string) (*Palette, error) {
		b, ok := builders[name]
		if !ok {
			if p, ok := out[name]; ok {
				return p, nil
			}
			return nil, errors.New(errors.ErrCodeMissingReference, "palette %q not found", name)
		}
		switch state[name] {
		case 2:
			if err, ok := failed[name]; ok {
				return nil, err
			}
			return out[name], nil
		case 1:
			cycle := append(slices.Clone(path), name)
			return nil, errors.New(errors.ErrCodeDependencyCycle,
				"palette inheritance cycle: %s", strings.Join(cycle, " -> "))
		}

		state[name] = 1
		defer func() { state[name] = 2 }()

		var parent *Palette
		if b.Parent != "" {
			pp, err := build(b.Parent, append(path, name))
			if err != nil {
				failed[name] = err
				return nil, err
			}
			parent = pp
		}
		p, err := b.Build(parent)
		if err != nil {
			failed[name] = err
			return nil, err
		}
		out[name] = p
		return p, nil
	}

	for _, name := range slices.Sorted(maps.Keys(builders)) {
		if _, err := build(name, nil); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return out, joinUnique(errs)
	}
	return out, nil
}

// joinUnique joins errors, dropping repeats of the same message that arise
// when several children share one broken parent.
func joinUnique(errs []error) error {
	seen := make(map[string]bool, len(errs))
	var kept []error
	for _, err := range errs {
		if seen[err.Error()] {
			continue
		}
		seen[err.Error()] = true
		kept = append(kept, err)
	}
	return errors.Join(kept...)
}
