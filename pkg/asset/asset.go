// Package asset defines the typed documents pixelforge compiles and the
// registry that holds them for one build.
//
// Every asset is addressed by an [ID]: a (Kind, Name) pair. Kinds partition
// the namespace, so a shape and a brush may share a name.
//
// Builtin stamps, brushes, the default palette, the default shader and the
// web/sheet/p8 targets are inserted by [Registry.WithBuiltins]. User assets
// added afterwards replace builtins of the same kind and name.
package asset

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Kind partitions the asset namespace.
type Kind string

const (
	KindPalette Kind = "palette"
	KindStamp   Kind = "stamp"
	KindBrush   Kind = "brush"
	KindShader  Kind = "shader"
	KindShape   Kind = "shape"
	KindPrefab  Kind = "prefab"
	KindMap     Kind = "map"
	KindTarget  Kind = "target"
)

// Kinds lists every kind in dependency order, leaves first.
var Kinds = []Kind{KindPalette, KindStamp, KindBrush, KindShader, KindShape, KindPrefab, KindMap, KindTarget}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// rank orders kinds so that sorted IDs list leaves first.
func (k Kind) rank() int {
	for i, kk := range Kinds {
		if kk == k {
			return i
		}
	}
	return len(Kinds)
}

// ID identifies one asset.
type ID struct {
	Kind Kind
	Name string
}

// NewID is shorthand for ID{Kind: kind, Name: name}.
func NewID(kind Kind, name string) ID { return ID{Kind: kind, Name: name} }

// ParseID parses the kind:name form produced by [ID.String].
func ParseID(s string) (ID, error) {
	k, name, ok := strings.Cut(s, ":")
	if !ok || name == "" {
		return ID{}, errors.New(errors.ErrCodeInvalidInput, "asset %q must be written as kind:name", s)
	}
	kind, ok := ParseKind(k)
	if !ok {
		return ID{}, errors.New(errors.ErrCodeInvalidInput, "asset %q has unknown kind %q", s, k)
	}
	return NewID(kind, name), nil
}

// String formats the ID as kind:name.
func (id ID) String() string { return fmt.Sprintf("%s:%s", id.Kind, id.Name) }

// Compare orders IDs by kind rank, then by name.
func (id ID) Compare(other ID) int {
	if c := cmp.Compare(id.Kind.rank(), other.Kind.rank()); c != 0 {
		return c
	}
	return cmp.Compare(id.Name, other.Name)
}
