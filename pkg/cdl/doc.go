// Package cdl parses the circuit description language into a [circuit.Circuit].
//
// CDL is line oriented. Each line holds one statement:
//
//	R1 resistor 10k (10, 20) rotation=90deg label="Load" tol=5
//	R1.2 -> C1.1 [color=red]
//	net VCC: U1.VCC, R1.1
//
// A component line is an id, a kind (canonical name or alias such as r, gnd,
// or 555), then an optional value, an optional "(x, y)" position, and any
// number of key=value properties. The rotation and label keys set the
// corresponding component fields; other keys land in Properties. Comments
// start with // or # and run to end of line.
//
// Syntax errors carry ErrCodeParse with a line:column position. Unknown kinds
// and illegal rotations keep their engine codes (ErrCodeUnknownComponentType,
// ErrCodeInvalidRotation) with the position prefixed.
//
// [Format] writes a circuit back out as CDL.
package cdl
