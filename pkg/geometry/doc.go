// Package geometry holds the static footprint of every component kind: its
// unrotated size and the ordered list of pins with their offsets from the
// component centre.
//
// A [Registry] is an immutable value. Build the built-in table with
// [Standard] and pass it to the layout and netlist packages:
//
//	reg := geometry.Standard()
//	tmpl, err := reg.Lookup(circuit.KindResistor)
//	// tmpl.Pins[0] is "1" at (-20, 0)
//
// Lookups for kinds the registry does not hold fail with
// UNKNOWN_COMPONENT_TYPE; [PinOf] additionally reports PIN_NOT_FOUND.
package geometry
