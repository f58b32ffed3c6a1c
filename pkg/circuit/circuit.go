package circuit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/mieza/pkg/errors"
)

// =============================================================================
// Geometry Primitives
// =============================================================================

// Point is a 2D coordinate in schematic units. The y axis grows downward, as
// in SVG.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// String formats the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", formatCoord(p.X), formatCoord(p.Y))
}

func formatCoord(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Size is a component footprint.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// =============================================================================
// Rotation
// =============================================================================

// Rotation is a component orientation in degrees. Only the four quarter turns
// are legal; other values are representable so that input can be rejected
// with ErrCodeInvalidRotation instead of being silently coerced.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Valid reports whether r is one of the four quarter turns.
func (r Rotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// Validate returns ErrCodeInvalidRotation for values outside the legal set.
func (r Rotation) Validate() error {
	if !r.Valid() {
		return errors.New(errors.ErrCodeInvalidRotation, "invalid rotation %d (must be 0, 90, 180, or 270)", int(r))
	}
	return nil
}

// ParseRotation accepts "90", "90deg", or "90°".
func ParseRotation(s string) (Rotation, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimSuffix(trimmed, "deg")
	trimmed = strings.TrimSuffix(trimmed, "°")
	deg, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidRotation, err, "invalid rotation %q", s)
	}
	r := Rotation(deg)
	if err := r.Validate(); err != nil {
		return 0, err
	}
	return r, nil
}

// =============================================================================
// Circuit Graph
// =============================================================================

// PinRef names one pin on one component instance.
type PinRef struct {
	Component string `json:"component" yaml:"component"`
	Pin       string `json:"pin" yaml:"pin"`
}

// String formats the reference as "component.pin".
func (r PinRef) String() string { return r.Component + "." + r.Pin }

// ParsePinRef parses "component.pin". The pin part may itself not contain a
// dot, so the split happens at the first one.
func ParsePinRef(s string) (PinRef, error) {
	comp, pin, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || comp == "" || pin == "" || strings.Contains(pin, ".") {
		return PinRef{}, errors.New(errors.ErrCodeInvalidInput, "invalid pin reference %q (want component.pin)", s)
	}
	return PinRef{Component: comp, Pin: pin}, nil
}

// Component is one placed instance of a kind.
type Component struct {
	ID         string            `json:"id" yaml:"id"`
	Kind       Kind              `json:"kind" yaml:"kind"`
	Value      string            `json:"value,omitempty" yaml:"value,omitempty"`
	Label      string            `json:"label,omitempty" yaml:"label,omitempty"`
	Position   *Point            `json:"position,omitempty" yaml:"position,omitempty"` // nil = auto-place
	Rotation   Rotation          `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (c *Component) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// Connection is a wire between two pins.
type Connection struct {
	From       PinRef            `json:"from" yaml:"from"`
	To         PinRef            `json:"to" yaml:"to"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// NetDeclaration groups pins into one named net without drawing wires.
type NetDeclaration struct {
	Name    string   `json:"name" yaml:"name"`
	Members []PinRef `json:"members" yaml:"members"`
}

// Circuit is the abstract circuit graph produced by the parser. Component
// order is significant: auto-placement processes components in this order.
type Circuit struct {
	Components  []Component      `json:"components" yaml:"components"`
	Connections []Connection     `json:"connections,omitempty" yaml:"connections,omitempty"`
	Nets        []NetDeclaration `json:"nets,omitempty" yaml:"nets,omitempty"`
}

// Index returns a lookup from component ID to its position in Components.
func (c *Circuit) Index() map[string]int {
	idx := make(map[string]int, len(c.Components))
	for i, comp := range c.Components {
		idx[comp.ID] = i
	}
	return idx
}

// Component returns the component with the given ID.
func (c *Circuit) Component(id string) (*Component, bool) {
	for i := range c.Components {
		if c.Components[i].ID == id {
			return &c.Components[i], true
		}
	}
	return nil, false
}

// Validate checks structural well-formedness: valid ids, unique ids, known
// kinds, and legal rotations. Referential integrity of connections is left
// to the engine, which reports ErrCodeDanglingConnection itself.
func (c *Circuit) Validate() error {
	seen := make(map[string]bool, len(c.Components))
	for _, comp := range c.Components {
		if err := errors.ValidateComponentID(comp.ID); err != nil {
			return err
		}
		if seen[comp.ID] {
			return errors.New(errors.ErrCodeDuplicateComponent, "duplicate component id %q", comp.ID)
		}
		seen[comp.ID] = true
		if !comp.Kind.Valid() {
			return errors.New(errors.ErrCodeUnknownComponentType, "component %s has unknown type %s", comp.ID, comp.Kind)
		}
		if err := comp.Rotation.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRotation, err, "component %s", comp.ID)
		}
	}
	for _, n := range c.Nets {
		if err := errors.ValidateNetName(n.Name); err != nil {
			return err
		}
	}
	return nil
}
