// Package nodelink renders circuits as connectivity diagrams.
//
// # Overview
//
// Where the schematic renderer draws symbols at their computed positions,
// this package hands the circuit to Graphviz and lets it arrange components
// as boxes joined by wires. It is useful for eyeballing which pins end up
// connected without reading coordinates.
//
// # Usage
//
//	dot := nodelink.ToDOT(c, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Passing resolved nets switches to a bipartite view where each net is a node:
//
//	nets, _ := netlist.Resolve(geometry.Standard(), c)
//	dot := nodelink.ToDOT(c, nodelink.Options{Nets: nets})
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
package nodelink
