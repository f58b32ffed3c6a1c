// Package netlist resolves a circuit's pins into electrical nets and exports
// them as a SPICE netlist.
//
// # Net Resolution
//
// [Resolve] runs a union-find over every pin of every component. Explicit net
// declarations name their class; connections merge classes; classes formed by
// wires alone are named N1, N2, ... in creation order. Any class touching a
// pin of a ground symbol is net [Ground] ("0"), no matter when the ground
// wire was seen. The result is total: each pin maps to exactly one net.
//
// # SPICE Export
//
// [ExportSPICE] writes one card per component in SPICE terminal order, using
// the resolved net ids as node names:
//
//	* Mieza SPICE Netlist
//	* Generated from CDL
//
//	V1 N1 0 DC 5
//	R1 N1 0 1k
//
//	* Connections:
//	* V1.+ -> R1.1
//	* R1.2 -> GND1.GND
//	* V1.- -> GND1.GND
//
//	.end
//
// Values are rewritten with [Normalize] ("4k7" becomes "4.7k", "1M" becomes
// "1Meg").
package netlist
