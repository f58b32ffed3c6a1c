package geometry

import (
	"fmt"

	"github.com/matzehuels/mieza/pkg/circuit"
)

// Direction is the signal flow of a pin.
type Direction int

const (
	DirPassive Direction = iota
	DirInput
	DirOutput
	DirBidirectional
	DirPower
)

var directionNames = [...]string{
	DirPassive:       "passive",
	DirInput:         "input",
	DirOutput:        "output",
	DirBidirectional: "bidirectional",
	DirPower:         "power",
}

func (d Direction) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	for i, name := range directionNames {
		if name == string(b) {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("unknown pin direction %q", b)
}

// Class is the electrical class of a pin.
type Class int

const (
	ClassAnalog Class = iota
	ClassDigital
	ClassPower
	ClassGround
)

var classNames = [...]string{
	ClassAnalog:  "analog",
	ClassDigital: "digital",
	ClassPower:   "power",
	ClassGround:  "ground",
}

func (c Class) String() string {
	if c >= 0 && int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(b []byte) error {
	for i, name := range classNames {
		if name == string(b) {
			*c = Class(i)
			return nil
		}
	}
	return fmt.Errorf("unknown pin class %q", b)
}

// PinTemplate describes one pin of a kind, with its offset from the component
// centre before rotation.
type PinTemplate struct {
	Name      string        `json:"name"`
	Offset    circuit.Point `json:"offset"`
	Direction Direction     `json:"direction"`
	Class     Class         `json:"class"`
}

// Template is the static footprint of a kind: its unrotated size and its pins
// in a fixed order. Pin order is significant; net auto-naming and netlist
// export both walk pins in template order.
type Template struct {
	Kind circuit.Kind  `json:"kind"`
	Size circuit.Size  `json:"size"`
	Pins []PinTemplate `json:"pins"`
}

// Pin returns the pin template with the given name.
func (t Template) Pin(name string) (PinTemplate, bool) {
	for _, p := range t.Pins {
		if p.Name == name {
			return p, true
		}
	}
	return PinTemplate{}, false
}

// PinNames returns the pin names in template order.
func (t Template) PinNames() []string {
	names := make([]string, len(t.Pins))
	for i, p := range t.Pins {
		names[i] = p.Name
	}
	return names
}

func (t Template) clone() Template {
	out := t
	out.Pins = append([]PinTemplate(nil), t.Pins...)
	return out
}
