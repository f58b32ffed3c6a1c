package netlist

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
)

// DefaultTitle is the first line of an exported netlist.
const DefaultTitle = "Mieza SPICE Netlist"

// SPICEOption configures SPICE export.
type SPICEOption func(*spiceConfig)

type spiceConfig struct {
	title       string
	models      bool
	connections bool
}

// WithTitle replaces the title comment.
func WithTitle(title string) SPICEOption {
	return func(c *spiceConfig) { c.title = title }
}

// WithModels appends default .model cards for every semiconductor model
// referenced by the netlist.
func WithModels() SPICEOption {
	return func(c *spiceConfig) { c.models = true }
}

// WithoutConnections drops the trailing list of wires.
func WithoutConnections() SPICEOption {
	return func(c *spiceConfig) { c.connections = false }
}

// ExportSPICE renders a SPICE netlist for c using the resolved nets.
func ExportSPICE(c *circuit.Circuit, nets *Nets, opts ...SPICEOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSPICE(&buf, c, nets, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSPICE writes a SPICE netlist to w.
//
// Each supported component becomes one card whose nodes are the net ids of
// its pins in SPICE terminal order. Ground symbols produce no card since
// their net is already node 0. Kinds SPICE has no primitive for are listed as
// comments. Component values are normalized with [Normalize]; a value that
// cannot be parsed fails the export with INVALID_INPUT.
func WriteSPICE(w io.Writer, c *circuit.Circuit, nets *Nets, opts ...SPICEOption) error {
	cfg := spiceConfig{title: DefaultTitle, connections: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "* %s\n", cfg.title)
	buf.WriteString("* Generated from CDL\n\n")

	used := make(map[string]string)
	for i := range c.Components {
		comp := &c.Components[i]
		line, model, err := card(comp, nets)
		if err != nil {
			return errors.Wrap(errors.GetCode(err), err, "component %s", comp.ID)
		}
		if line == "" {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		if model != "" {
			used[model] = modelTypes[model]
		}
	}

	if cfg.models && len(used) > 0 {
		buf.WriteString("\n")
		names := make([]string, 0, len(used))
		for name := range used {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&buf, ".model %s %s\n", name, used[name])
		}
	}

	if cfg.connections {
		buf.WriteString("\n* Connections:\n")
		for _, conn := range c.Connections {
			fmt.Fprintf(&buf, "* %s -> %s\n", conn.From, conn.To)
		}
	}

	buf.WriteString("\n.end\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// modelTypes maps the model names used on cards to their SPICE device type.
var modelTypes = map[string]string{
	"DDIODE":    "D",
	"DZENER":    "D",
	"DSCHOTTKY": "D",
	"DLED":      "D",
	"QNPN":      "NPN",
	"QPNP":      "PNP",
	"NMOS":      "NMOS",
	"PMOS":      "PMOS",
}

// card returns the SPICE line for one component and the model it references.
// An empty line means the component has no card.
func card(comp *circuit.Component, nets *Nets) (line, model string, err error) {
	node := func(pin string) string {
		id, ok := nets.NetOf(circuit.PinRef{Component: comp.ID, Pin: pin})
		if !ok {
			return Ground
		}
		return id
	}
	value := func(def string, u Unit) (string, error) {
		v := comp.Value
		if v == "" {
			v = def
		}
		return Normalize(v, u)
	}
	two := func(letter, a, b, def string, u Unit, extra string) (string, string, error) {
		v, err := value(def, u)
		if err != nil {
			return "", "", err
		}
		return fmt.Sprintf("%s %s %s %s%s", designator(letter, comp.ID), node(a), node(b), extra, v), "", nil
	}

	switch comp.Kind {
	case circuit.KindResistor:
		return two("R", "1", "2", "1", UnitResistance, "")
	case circuit.KindCapacitor:
		return two("C", "1", "2", "1pF", UnitCapacitance, "")
	case circuit.KindInductor:
		return two("L", "1", "2", "1uH", UnitInductance, "")
	case circuit.KindDCVoltage:
		return two("V", "+", "-", "0V", UnitVoltage, "DC ")
	case circuit.KindDCCurrent:
		return two("I", "+", "-", "0A", UnitCurrent, "DC ")
	case circuit.KindACVoltage:
		return two("V", "1", "2", "0V", UnitVoltage, "AC ")
	case circuit.KindACCurrent:
		return two("I", "1", "2", "0A", UnitCurrent, "AC ")
	case circuit.KindDiode, circuit.KindZenerDiode, circuit.KindSchottkyDiode, circuit.KindLED:
		model = diodeModel(comp.Kind)
		return fmt.Sprintf("%s %s %s %s", designator("D", comp.ID), node("A"), node("K"), model), model, nil
	case circuit.KindNPNTransistor:
		return fmt.Sprintf("%s %s %s %s QNPN", designator("Q", comp.ID), node("C"), node("B"), node("E")), "QNPN", nil
	case circuit.KindPNPTransistor:
		return fmt.Sprintf("%s %s %s %s QPNP", designator("Q", comp.ID), node("C"), node("B"), node("E")), "QPNP", nil
	case circuit.KindNMOSTransistor:
		return fmt.Sprintf("%s %s %s %s %s NMOS", designator("M", comp.ID), node("D"), node("G"), node("S"), node("S")), "NMOS", nil
	case circuit.KindPMOSTransistor:
		return fmt.Sprintf("%s %s %s %s %s PMOS", designator("M", comp.ID), node("D"), node("G"), node("S"), node("S")), "PMOS", nil
	case circuit.KindOpAmp:
		return fmt.Sprintf("%s %s %s %s OPAMP", designator("X", comp.ID), node("-"), node("+"), node("OUT")), "", nil
	case circuit.KindSignalGround, circuit.KindChassisGround, circuit.KindEarthGround:
		return "", "", nil
	}
	return fmt.Sprintf("* Component %s of type %s not supported in SPICE export", comp.ID, comp.Kind), "", nil
}

func diodeModel(k circuit.Kind) string {
	switch k {
	case circuit.KindZenerDiode:
		return "DZENER"
	case circuit.KindSchottkyDiode:
		return "DSCHOTTKY"
	case circuit.KindLED:
		return "DLED"
	}
	return "DDIODE"
}

// designator prefixes id with the SPICE element letter unless it already
// starts with it, so R1 stays R1 and LOAD becomes RLOAD.
func designator(letter, id string) string {
	if strings.HasPrefix(strings.ToUpper(id), letter) {
		return id
	}
	return letter + id
}
