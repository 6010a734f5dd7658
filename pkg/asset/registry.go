package asset

import (
	"maps"
	"slices"

	"github.com/matzehuels/pixelforge/pkg/palette"
)

// Registry holds every asset of one build, one name-keyed map per kind.
// Adding an asset whose kind and name already exist replaces it.
//
// A Registry is not safe for concurrent mutation. Once populated it is
// read-only and may be shared between goroutines.
type Registry struct {
	Palettes map[string]*palette.Builder
	Stamps   map[string]*Stamp
	Brushes  map[string]*Brush
	Shaders  map[string]*Shader
	Shapes   map[string]*Shape
	Prefabs  map[string]*Composite
	Maps     map[string]*Composite
	Targets  map[string]*Target

	builtin map[ID]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Palettes: make(map[string]*palette.Builder),
		Stamps:   make(map[string]*Stamp),
		Brushes:  make(map[string]*Brush),
		Shaders:  make(map[string]*Shader),
		Shapes:   make(map[string]*Shape),
		Prefabs:  make(map[string]*Composite),
		Maps:     make(map[string]*Composite),
		Targets:  make(map[string]*Target),
		builtin:  make(map[ID]bool),
	}
}

// WithBuiltins inserts the builtin assets and returns r. Call it before
// adding user assets so they shadow builtins of the same name.
func (r *Registry) WithBuiltins() *Registry {
	r.AddPalette(DefaultPalette())
	r.builtin[NewID(KindPalette, palette.DefaultName)] = true
	for _, s := range BuiltinStamps() {
		r.AddStamp(s)
		r.builtin[NewID(KindStamp, s.Name)] = true
	}
	for _, b := range BuiltinBrushes() {
		r.AddBrush(b)
		r.builtin[NewID(KindBrush, b.Name)] = true
	}
	for _, s := range BuiltinShaders() {
		r.AddShader(s)
		r.builtin[NewID(KindShader, s.Name)] = true
	}
	for _, t := range BuiltinTargets() {
		r.AddTarget(t)
		r.builtin[NewID(KindTarget, t.Name)] = true
	}
	return r
}

// AddPalette adds or replaces a palette; the other Add methods behave the same
// way for their kinds.
func (r *Registry) AddPalette(b *palette.Builder) {
	r.Palettes[b.Name] = b
	delete(r.builtin, NewID(KindPalette, b.Name))
}

func (r *Registry) AddStamp(s *Stamp) {
	r.Stamps[s.Name] = s
	delete(r.builtin, NewID(KindStamp, s.Name))
}

func (r *Registry) AddBrush(b *Brush) {
	r.Brushes[b.Name] = b
	delete(r.builtin, NewID(KindBrush, b.Name))
}

func (r *Registry) AddShader(s *Shader) {
	r.Shaders[s.Name] = s
	delete(r.builtin, NewID(KindShader, s.Name))
}

func (r *Registry) AddShape(s *Shape) {
	r.Shapes[s.Name] = s
	delete(r.builtin, NewID(KindShape, s.Name))
}

// AddComposite adds a prefab or map according to c.Kind.
func (r *Registry) AddComposite(c *Composite) {
	if c.Kind == KindMap {
		r.Maps[c.Name] = c
	} else {
		c.Kind = KindPrefab
		r.Prefabs[c.Name] = c
	}
	delete(r.builtin, c.ID())
}

func (r *Registry) AddTarget(t *Target) {
	r.Targets[t.Name] = t
	delete(r.builtin, NewID(KindTarget, t.Name))
}

// IsBuiltin reports whether id currently refers to an unshadowed builtin.
func (r *Registry) IsBuiltin(id ID) bool { return r.builtin[id] }

// Has reports whether the registry holds id.
func (r *Registry) Has(id ID) bool {
	switch id.Kind {
	case KindPalette:
		_, ok := r.Palettes[id.Name]
		return ok
	case KindStamp:
		_, ok := r.Stamps[id.Name]
		return ok
	case KindBrush:
		_, ok := r.Brushes[id.Name]
		return ok
	case KindShader:
		_, ok := r.Shaders[id.Name]
		return ok
	case KindShape:
		_, ok := r.Shapes[id.Name]
		return ok
	case KindPrefab:
		_, ok := r.Prefabs[id.Name]
		return ok
	case KindMap:
		_, ok := r.Maps[id.Name]
		return ok
	case KindTarget:
		_, ok := r.Targets[id.Name]
		return ok
	}
	return false
}

// Names returns the sorted names registered for kind.
func (r *Registry) Names(kind Kind) []string {
	switch kind {
	case KindPalette:
		return slices.Sorted(maps.Keys(r.Palettes))
	case KindStamp:
		return slices.Sorted(maps.Keys(r.Stamps))
	case KindBrush:
		return slices.Sorted(maps.Keys(r.Brushes))
	case KindShader:
		return slices.Sorted(maps.Keys(r.Shaders))
	case KindShape:
		return slices.Sorted(maps.Keys(r.Shapes))
	case KindPrefab:
		return slices.Sorted(maps.Keys(r.Prefabs))
	case KindMap:
		return slices.Sorted(maps.Keys(r.Maps))
	case KindTarget:
		return slices.Sorted(maps.Keys(r.Targets))
	}
	return nil
}

// IDs returns every asset ID, leaves first by kind and sorted by name.
func (r *Registry) IDs() []ID {
	var ids []ID
	for _, k := range Kinds {
		for _, name := range r.Names(k) {
			ids = append(ids, NewID(k, name))
		}
	}
	return ids
}

// Len returns the total number of assets.
func (r *Registry) Len() int {
	return len(r.Palettes) + len(r.Stamps) + len(r.Brushes) + len(r.Shaders) +
		len(r.Shapes) + len(r.Prefabs) + len(r.Maps) + len(r.Targets)
}

// Composite returns the prefab or map addressed by id.
func (r *Registry) Composite(id ID) (*Composite, bool) {
	switch id.Kind {
	case KindPrefab:
		c, ok := r.Prefabs[id.Name]
		return c, ok
	case KindMap:
		c, ok := r.Maps[id.Name]
		return c, ok
	}
	return nil, false
}

// ResolvePiece returns the ID a composite legend name refers to: a shape
// if one exists, otherwise a prefab.
func (r *Registry) ResolvePiece(name string) (ID, bool) {
	if _, ok := r.Shapes[name]; ok {
		return NewID(KindShape, name), true
	}
	if _, ok := r.Prefabs[name]; ok {
		return NewID(KindPrefab, name), true
	}
	return ID{}, false
}
