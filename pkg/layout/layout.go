package layout

import (
	"math"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/geometry"
)

// =============================================================================
// Layout Types
// =============================================================================

// Layout is the complete geometric result of one resolution pass: every
// component placed, every pin resolved, every connection routed. Renderers
// draw it as-is.
type Layout struct {
	Components  []PositionedComponent `json:"components" bson:"components"`
	Connections []RoutedConnection    `json:"connections" bson:"connections"`
	Bounds      Bounds                `json:"bounds" bson:"bounds"`
}

// PositionedComponent is a component with its absolute position, rotated
// footprint, and absolute pin coordinates.
type PositionedComponent struct {
	ID         string            `json:"id" bson:"id"`
	Kind       circuit.Kind      `json:"kind" bson:"kind"`
	Value      string            `json:"value,omitempty" bson:"value,omitempty"`
	Label      string            `json:"label,omitempty" bson:"label,omitempty"`
	Position   circuit.Point     `json:"position" bson:"position"`
	Size       circuit.Size      `json:"size" bson:"size"`
	Rotation   circuit.Rotation  `json:"rotation" bson:"rotation"`
	Pins       []PlacedPin       `json:"pins" bson:"pins"`
	Properties map[string]string `json:"properties,omitempty" bson:"properties,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (pc *PositionedComponent) DisplayLabel() string {
	if pc.Label != "" {
		return pc.Label
	}
	return pc.ID
}

// Pin returns the placed pin with the given name.
func (pc *PositionedComponent) Pin(name string) (PlacedPin, bool) {
	for _, p := range pc.Pins {
		if p.Name == name {
			return p, true
		}
	}
	return PlacedPin{}, false
}

// PlacedPin is a pin at its absolute coordinate.
type PlacedPin struct {
	Name      string             `json:"name" bson:"name"`
	Position  circuit.Point      `json:"position" bson:"position"`
	Direction geometry.Direction `json:"direction" bson:"direction"`
	Class     geometry.Class     `json:"class" bson:"class"`
}

// RoutedConnection is a connection with its orthogonal path. Path always has
// at least two points; the first is the source pin and the last the
// destination pin.
type RoutedConnection struct {
	From       circuit.PinRef    `json:"from" bson:"from"`
	To         circuit.PinRef    `json:"to" bson:"to"`
	Path       []circuit.Point   `json:"path" bson:"path"`
	Properties map[string]string `json:"properties,omitempty" bson:"properties,omitempty"`
}

// Bounds is the axis-aligned box enclosing all footprints and wires.
type Bounds struct {
	MinX float64 `json:"min_x" bson:"min_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Component returns the positioned component with the given ID.
func (l *Layout) Component(id string) (*PositionedComponent, bool) {
	for i := range l.Components {
		if l.Components[i].ID == id {
			return &l.Components[i], true
		}
	}
	return nil, false
}

// =============================================================================
// Layout Computation
// =============================================================================

// Compute places, resolves, and routes a circuit.
//
// It returns the first error encountered: DUPLICATE_COMPONENT before
// placement, INVALID_ROTATION or UNKNOWN_COMPONENT_TYPE while placing
// components, DANGLING_CONNECTION or PIN_NOT_FOUND while routing. Nothing
// partial is returned on failure.
func Compute(src geometry.Source, c *circuit.Circuit) (Layout, error) {
	seen := make(map[string]bool, len(c.Components))
	for _, comp := range c.Components {
		if seen[comp.ID] {
			return Layout{}, errors.New(errors.ErrCodeDuplicateComponent, "duplicate component id %q", comp.ID)
		}
		seen[comp.ID] = true
	}

	positions := Place(c.Components, c.Connections)

	placed := make(map[string]*PositionedComponent, len(c.Components))
	out := Layout{
		Components:  make([]PositionedComponent, 0, len(c.Components)),
		Connections: make([]RoutedConnection, 0, len(c.Connections)),
	}

	for _, comp := range c.Components {
		pc, err := position(src, comp, positions[comp.ID])
		if err != nil {
			return Layout{}, err
		}
		out.Components = append(out.Components, pc)
	}
	for i := range out.Components {
		placed[out.Components[i].ID] = &out.Components[i]
	}

	for _, conn := range c.Connections {
		from, err := resolveRef(src, placed, conn.From)
		if err != nil {
			return Layout{}, err
		}
		to, err := resolveRef(src, placed, conn.To)
		if err != nil {
			return Layout{}, err
		}
		out.Connections = append(out.Connections, RoutedConnection{
			From:       conn.From,
			To:         conn.To,
			Path:       Route(from, to),
			Properties: conn.Properties,
		})
	}

	out.Bounds = bounds(out)
	return out, nil
}

func position(src geometry.Source, comp circuit.Component, at circuit.Point) (PositionedComponent, error) {
	if err := comp.Rotation.Validate(); err != nil {
		return PositionedComponent{}, errors.Wrap(errors.ErrCodeInvalidRotation, err, "component %s", comp.ID)
	}
	tmpl, err := src.Lookup(comp.Kind)
	if err != nil {
		return PositionedComponent{}, errors.Wrap(errors.ErrCodeUnknownComponentType, err, "component %s", comp.ID)
	}

	pins := make([]PlacedPin, 0, len(tmpl.Pins))
	for _, pt := range tmpl.Pins {
		off, err := Rotate(pt.Offset, comp.Rotation)
		if err != nil {
			return PositionedComponent{}, err
		}
		pins = append(pins, PlacedPin{
			Name:      pt.Name,
			Position:  at.Add(off),
			Direction: pt.Direction,
			Class:     pt.Class,
		})
	}

	return PositionedComponent{
		ID:         comp.ID,
		Kind:       comp.Kind,
		Value:      comp.Value,
		Label:      comp.Label,
		Position:   at,
		Size:       RotatedSize(tmpl.Size, comp.Rotation),
		Rotation:   comp.Rotation,
		Pins:       pins,
		Properties: comp.Properties,
	}, nil
}

func bounds(l Layout) Bounds {
	if len(l.Components) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	extend := func(p circuit.Point) {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	for _, pc := range l.Components {
		hw, hh := pc.Size.Width/2, pc.Size.Height/2
		extend(circuit.Point{X: pc.Position.X - hw, Y: pc.Position.Y - hh})
		extend(circuit.Point{X: pc.Position.X + hw, Y: pc.Position.Y + hh})
		for _, p := range pc.Pins {
			extend(p.Position)
		}
	}
	for _, rc := range l.Connections {
		for _, p := range rc.Path {
			extend(p)
		}
	}
	return b
}
