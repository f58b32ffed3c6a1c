package geometry

import (
	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
)

// Source is anything that can answer template lookups. The engine accepts a
// Source so callers can inject a reduced or extended registry.
type Source interface {
	Lookup(kind circuit.Kind) (Template, error)
}

// Registry is an immutable kind → template table. Build one with Standard or
// NewRegistry and pass it to the engine; there is no package-level instance.
type Registry struct {
	templates map[circuit.Kind]Template
}

// NewRegistry builds a registry from explicit templates. Later templates for
// the same kind replace earlier ones.
func NewRegistry(templates ...Template) *Registry {
	r := &Registry{templates: make(map[circuit.Kind]Template, len(templates))}
	for _, t := range templates {
		r.templates[t.Kind] = t.clone()
	}
	return r
}

// Standard returns a registry holding the built-in template of every kind.
func Standard() *Registry {
	kinds := circuit.Kinds()
	templates := make([]Template, 0, len(kinds))
	for _, k := range kinds {
		templates = append(templates, builtin(k))
	}
	return NewRegistry(templates...)
}

// Lookup returns the template for kind, or ErrCodeUnknownComponentType.
// The returned template is a copy; mutating it does not affect the registry.
func (r *Registry) Lookup(kind circuit.Kind) (Template, error) {
	t, ok := r.templates[kind]
	if !ok {
		return Template{}, errors.New(errors.ErrCodeUnknownComponentType, "no geometry for component type %s", kind)
	}
	return t.clone(), nil
}

// Kinds returns the registered kinds in enum order.
func (r *Registry) Kinds() []circuit.Kind {
	out := make([]circuit.Kind, 0, len(r.templates))
	for _, k := range circuit.Kinds() {
		if _, ok := r.templates[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int { return len(r.templates) }

// PinOf returns one pin template, reporting ErrCodeUnknownComponentType or
// ErrCodePinNotFound.
func PinOf(src Source, kind circuit.Kind, pin string) (PinTemplate, error) {
	t, err := src.Lookup(kind)
	if err != nil {
		return PinTemplate{}, err
	}
	p, ok := t.Pin(pin)
	if !ok {
		return PinTemplate{}, errors.New(errors.ErrCodePinNotFound, "pin %q not found on %s (has %v)", pin, kind, t.PinNames())
	}
	return p, nil
}
