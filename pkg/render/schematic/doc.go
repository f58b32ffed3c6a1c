// Package schematic draws a computed layout as an SVG schematic.
//
// Each component becomes a group translated to its position and rotated by
// its orientation, holding the symbol body and the leads that join the body
// to the pins. Labels and values are drawn upright above and below the
// rotated footprint. Wires are drawn along their routed paths.
//
// Symbols follow one of three conventions, selected with [WithStyle]:
//
//	ieee  zigzag resistors, distinctive-shape gates
//	iec   box resistors, box gates with "&", "≥1", "=1" glyphs
//	din   as iec, with DIN fuse and earth symbols
//
// [WithTheme] picks a light or dark palette. The output is deterministic: the
// same layout and options always produce the same bytes.
package schematic
