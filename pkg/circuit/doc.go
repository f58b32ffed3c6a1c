// Package circuit defines the abstract circuit graph: component instances,
// pin-to-pin connections, and explicit net declarations.
//
// A [Circuit] is what the CDL parser produces and what the layout and netlist
// engines consume. It can also be stored as JSON or YAML with [ReadFile] and
// [WriteFile].
//
// # Kinds
//
// Component types form the closed [Kind] enumeration. [ParseKind] accepts the
// canonical snake_case name or one of the short aliases ("r", "gnd", "555").
// Kinds serialize by canonical name.
//
// # Rotation
//
// [Rotation] is expressed in degrees. Only 0, 90, 180, and 270 are legal;
// anything else fails validation with INVALID_ROTATION.
package circuit
