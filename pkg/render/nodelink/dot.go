package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/netlist"
	"github.com/matzehuels/mieza/pkg/render"
)

// Options configures connectivity diagram rendering.
type Options struct {
	// Detailed includes value, rotation, and properties in component labels.
	// When false, only the ID and kind are shown.
	Detailed bool

	// Nets, when set, draws each net as its own node with one edge per
	// member pin instead of one edge per wire. Net declarations then show
	// up even though they have no wire.
	Nets *netlist.Nets
}

// ToDOT converts a circuit to Graphviz DOT for a node-link connectivity view.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Ground symbols are drawn as grey ellipses so the return path stands out.
func ToDOT(c *circuit.Circuit, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, comp := range c.Components {
		label := fmtLabel(comp, opts.Detailed)
		attrs := fmtAttrs(comp, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", comp.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	if opts.Nets != nil {
		writeNets(&buf, opts.Nets)
	} else {
		for _, conn := range c.Connections {
			fmt.Fprintf(&buf, "  %q -- %q [taillabel=%q, headlabel=%q];\n",
				conn.From.Component, conn.To.Component, conn.From.Pin, conn.To.Pin)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeNets emits one point-shaped node per net. Net node ids are prefixed
// so they cannot clash with component ids.
func writeNets(buf *bytes.Buffer, nets *netlist.Nets) {
	for _, n := range nets.List() {
		id := "net:" + n.ID
		attrs := []string{"shape=ellipse", fmt.Sprintf("label=%q", n.ID), "fontsize=10", "style=filled", "fillcolor=\"#eef3ff\""}
		if n.ID == netlist.Ground {
			attrs[len(attrs)-1] = "fillcolor=lightgrey"
		}
		fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
		for _, m := range n.Members {
			fmt.Fprintf(buf, "  %q -- %q [taillabel=%q];\n", m.Component, id, m.Pin)
		}
	}
}

func fmtLabel(comp circuit.Component, detailed bool) string {
	head := comp.DisplayLabel() + "\n" + comp.Kind.String()
	if !detailed {
		return head
	}

	var parts []string
	if comp.Value != "" {
		parts = append(parts, "value: "+comp.Value)
	}
	if comp.Rotation != circuit.Rotate0 {
		parts = append(parts, fmt.Sprintf("rotation: %d", int(comp.Rotation)))
	}
	for _, k := range slices.Sorted(maps.Keys(comp.Properties)) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, comp.Properties[k]))
	}
	if len(parts) == 0 {
		return head
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(comp circuit.Component, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if comp.Kind.IsGround() {
		attrs = append(attrs, "shape=ellipse", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
