package layout

import (
	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/geometry"
)

// Rotate turns an offset about the origin by a quarter-turn multiple.
// Screen coordinates are used (y grows downward), so 90° maps (x, y) to
// (-y, x).
func Rotate(p circuit.Point, r circuit.Rotation) (circuit.Point, error) {
	switch r {
	case circuit.Rotate0:
		return p, nil
	case circuit.Rotate90:
		return circuit.Point{X: -p.Y, Y: p.X}, nil
	case circuit.Rotate180:
		return circuit.Point{X: -p.X, Y: -p.Y}, nil
	case circuit.Rotate270:
		return circuit.Point{X: p.Y, Y: -p.X}, nil
	}
	return circuit.Point{}, r.Validate()
}

// ResolvePin returns the absolute coordinate of a pin on a component of the
// given kind placed at base with rotation r.
//
// It fails with UNKNOWN_COMPONENT_TYPE, PIN_NOT_FOUND, or INVALID_ROTATION and
// never substitutes the component centre for a pin it cannot find.
func ResolvePin(src geometry.Source, kind circuit.Kind, pin string, base circuit.Point, r circuit.Rotation) (circuit.Point, error) {
	tmpl, err := geometry.PinOf(src, kind, pin)
	if err != nil {
		return circuit.Point{}, err
	}
	off, err := Rotate(tmpl.Offset, r)
	if err != nil {
		return circuit.Point{}, err
	}
	return base.Add(off), nil
}

// RotatedSize swaps width and height for quarter and three-quarter turns.
func RotatedSize(s circuit.Size, r circuit.Rotation) circuit.Size {
	if r == circuit.Rotate90 || r == circuit.Rotate270 {
		return circuit.Size{Width: s.Height, Height: s.Width}
	}
	return s
}

// resolveRef resolves one connection endpoint against placed components.
func resolveRef(src geometry.Source, placed map[string]*PositionedComponent, ref circuit.PinRef) (circuit.Point, error) {
	pc, ok := placed[ref.Component]
	if !ok {
		return circuit.Point{}, errors.New(errors.ErrCodeDanglingConnection, "connection references unknown component %q", ref.Component)
	}
	pt, err := ResolvePin(src, pc.Kind, ref.Pin, pc.Position, pc.Rotation)
	if err != nil {
		return circuit.Point{}, errors.Wrap(errors.GetCode(err), err, "resolve %s", ref)
	}
	return pt, nil
}
