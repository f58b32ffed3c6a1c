// Package check reports problems in a circuit before layout.
//
// [Run] collects every finding instead of stopping at the first one, which is
// what the engine does. Errors mirror the engine's failure codes (duplicate
// ids, unknown kinds, illegal rotations, dangling references, unknown pins)
// so a clean report guarantees the engine will accept the circuit.
//
// Warnings flag electrically suspicious but legal input:
//   - unconnected pins
//   - digital inputs on a net that no output, power, or passive pin drives
//   - voltage sources whose terminals share a net
//   - values that do not parse in the component's unit
package check
