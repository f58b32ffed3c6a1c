// Package render turns computed layouts into pictures.
//
// # Overview
//
//   - Format conversion (SVG to PDF/PNG) lives here
//   - Schematic drawing is in the [schematic] subpackage
//   - Connectivity diagrams are in the [nodelink] subpackage
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). Both renderers produce SVG, so this is the one place the
// other formats come from.
//
//	svg, err := schematic.RenderSVG(l, schematic.WithTheme(schematic.ThemeDark))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [schematic]: github.com/matzehuels/mieza/pkg/render/schematic
// [nodelink]: github.com/matzehuels/mieza/pkg/render/nodelink
package render
