package check

import (
	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/geometry"
	"github.com/matzehuels/mieza/pkg/netlist"
)

// =============================================================================
// Errors
// =============================================================================

// components checks every instance on its own and returns the templates of
// the ones that can take part in reference checks.
func (ch *checker) components() map[string]geometry.Template {
	templates := make(map[string]geometry.Template, len(ch.c.Components))
	seen := make(map[string]bool, len(ch.c.Components))
	for _, comp := range ch.c.Components {
		if err := errors.ValidateComponentID(comp.ID); err != nil {
			ch.fail(RuleInvalidID, errors.GetCode(err), comp.ID, "", "%s", errors.UserMessage(err))
		}
		if seen[comp.ID] {
			ch.fail(RuleDuplicate, errors.ErrCodeDuplicateComponent, comp.ID, "", "duplicate component id %q", comp.ID)
			continue
		}
		seen[comp.ID] = true

		if err := comp.Rotation.Validate(); err != nil {
			ch.fail(RuleInvalidRotation, errors.ErrCodeInvalidRotation, comp.ID, "",
				"%s has invalid rotation %d (must be 0, 90, 180, or 270)", comp.ID, int(comp.Rotation))
		}

		tmpl, err := ch.src.Lookup(comp.Kind)
		if err != nil {
			ch.fail(RuleUnknownKind, errors.ErrCodeUnknownComponentType, comp.ID, "",
				"%s has unknown component type %s", comp.ID, comp.Kind)
			continue
		}
		templates[comp.ID] = tmpl
	}
	return templates
}

// references checks that every connection endpoint and net member names an
// existing component and a pin on its template.
func (ch *checker) references(templates map[string]geometry.Template) {
	ids := make(map[string]bool, len(ch.c.Components))
	for _, comp := range ch.c.Components {
		ids[comp.ID] = true
	}

	check := func(ref circuit.PinRef, where string) {
		if !ids[ref.Component] {
			ch.fail(RuleDangling, errors.ErrCodeDanglingConnection, ref.Component, ref.Pin,
				"%s references missing component %s", where, ref.Component)
			return
		}
		tmpl, ok := templates[ref.Component]
		if !ok {
			return
		}
		if _, ok := tmpl.Pin(ref.Pin); !ok {
			ch.fail(RuleUnknownPin, errors.ErrCodePinNotFound, ref.Component, ref.Pin,
				"%s references pin %s, which %s (%s) does not have", where, ref.Pin, ref.Component, tmpl.Kind)
		}
	}

	for _, conn := range ch.c.Connections {
		where := "connection " + conn.From.String() + " -> " + conn.To.String()
		check(conn.From, where)
		check(conn.To, where)
	}
	for _, n := range ch.c.Nets {
		for _, m := range n.Members {
			check(m, "net "+n.Name)
		}
	}
}

func (ch *checker) netNames() {
	for _, n := range ch.c.Nets {
		if err := errors.ValidateNetName(n.Name); err != nil {
			ch.fail(RuleInvalidNetName, errors.GetCode(err), "", "", "%s", errors.UserMessage(err))
		}
	}
}

// =============================================================================
// Warnings
// =============================================================================

func (ch *checker) values() {
	for _, comp := range ch.c.Components {
		unit, ok := netlist.UnitOf(comp.Kind)
		if !ok || comp.Value == "" {
			continue
		}
		if _, err := netlist.ParseValue(comp.Value, unit); err != nil {
			ch.warn(RuleValueFormat, comp.ID, "", "%s value %q is not a valid %s", comp.ID, comp.Value, unit)
		}
	}
}

// shortable lists sources that must not have their terminals on one net.
var shortable = map[circuit.Kind]bool{
	circuit.KindDCVoltage:       true,
	circuit.KindACVoltage:       true,
	circuit.KindBattery:         true,
	circuit.KindSignalGenerator: true,
}

func (ch *checker) connectivity(templates map[string]geometry.Template, nets *netlist.Nets) {
	connected := make(map[circuit.PinRef]bool)
	for _, conn := range ch.c.Connections {
		connected[conn.From] = true
		connected[conn.To] = true
	}
	for _, n := range ch.c.Nets {
		for _, m := range n.Members {
			connected[m] = true
		}
	}

	undriven := ch.undrivenNets(templates, nets)

	for _, comp := range ch.c.Components {
		tmpl := templates[comp.ID]
		for _, pin := range tmpl.Pins {
			ref := circuit.PinRef{Component: comp.ID, Pin: pin.Name}
			net, _ := nets.NetOf(ref)
			switch {
			case isDigitalInput(pin) && undriven[net] && !connected[ref]:
				ch.warn(RuleFloatingInput, comp.ID, pin.Name, "digital input %s is unconnected", ref)
			case isDigitalInput(pin) && undriven[net]:
				ch.warn(RuleFloatingInput, comp.ID, pin.Name, "digital input %s is on net %s, which nothing drives", ref, net)
			case !connected[ref]:
				ch.warn(RuleUnconnectedPin, comp.ID, pin.Name, "pin %s is unconnected", ref)
			}
		}

		if shortable[comp.Kind] && len(tmpl.Pins) >= 2 {
			first, _ := nets.NetOf(circuit.PinRef{Component: comp.ID, Pin: tmpl.Pins[0].Name})
			shorted := true
			for _, pin := range tmpl.Pins[1:] {
				if id, _ := nets.NetOf(circuit.PinRef{Component: comp.ID, Pin: pin.Name}); id != first {
					shorted = false
					break
				}
			}
			if shorted {
				ch.warn(RuleShortedSource, comp.ID, "", "source %s is shorted: all terminals are on net %s", comp.ID, first)
			}
		}
	}
}

// undrivenNets returns the non-ground nets made up solely of digital inputs.
func (ch *checker) undrivenNets(templates map[string]geometry.Template, nets *netlist.Nets) map[string]bool {
	out := make(map[string]bool)
	for _, n := range nets.List() {
		if n.ID == netlist.Ground {
			continue
		}
		all := true
		for _, m := range n.Members {
			pin, ok := templates[m.Component].Pin(m.Pin)
			if !ok || !isDigitalInput(pin) {
				all = false
				break
			}
		}
		if all {
			out[n.ID] = true
		}
	}
	return out
}

func isDigitalInput(p geometry.PinTemplate) bool {
	return p.Class == geometry.ClassDigital && p.Direction == geometry.DirInput
}
