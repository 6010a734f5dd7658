package asset

import (
	"slices"
	"strings"

	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Effect is one post-processing step of a shader. Params holds numeric
// parameters by name; their meaning is defined by the effect.
type Effect struct {
	Name   string
	Params map[string]float64
}

// Param returns a parameter or def when unset.
func (e Effect) Param(name string, def float64) float64 {
	if v, ok := e.Params[name]; ok {
		return v
	}
	return def
}

// Shader selects the palette and variant used for rendering and lists the
// effects applied to every rendered shape.
type Shader struct {
	Name    string
	Palette string
	Variant string
	Effects []Effect
	Parent  string
}

// DefaultShaderName is the name of the builtin shader.
const DefaultShaderName = "default"

// FlattenShader resolves the inheritance chain of the named shader. The
// palette and variant are inherited when unset and parent effects run before
// the child's own.
func FlattenShader(shaders map[string]*Shader, name string) (*Shader, error) {
	var chain []*Shader
	seen := make(map[string]bool)
	for cur := name; cur != ""; {
		if seen[cur] {
			path := make([]string, 0, len(chain)+1)
			for _, s := range chain {
				path = append(path, s.Name)
			}
			path = append(path, cur)
			return nil, errors.New(errors.ErrCodeDependencyCycle,
				"shader inheritance cycle: %s", strings.Join(path, " -> "))
		}
		seen[cur] = true
		s, ok := shaders[cur]
		if !ok {
			if cur == name {
				return nil, errors.New(errors.ErrCodeNotFound, "shader %q not found", name)
			}
			return nil, errors.New(errors.ErrCodeMissingReference,
				"shader %q inherits unknown shader %q", chain[len(chain)-1].Name, cur)
		}
		chain = append(chain, s)
		cur = s.Parent
	}

	out := &Shader{Name: name}
	for _, s := range slices.Backward(chain) {
		if s.Palette != "" {
			out.Palette = s.Palette
		}
		if s.Variant != "" {
			out.Variant = s.Variant
		}
		out.Effects = append(out.Effects, s.Effects...)
	}
	if out.Palette == "" {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "shader %q does not name a palette", name)
	}
	return out, nil
}
