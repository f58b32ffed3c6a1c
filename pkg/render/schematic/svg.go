package schematic

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/layout"
	"github.com/matzehuels/mieza/pkg/netlist"
)

// DefaultPadding is the margin added around the layout bounds.
const DefaultPadding = 40.0

// Option configures RenderSVG.
type Option func(*renderer)

type renderer struct {
	theme   Theme
	style   Style
	padding float64
	pinDots bool
	nets    *netlist.Nets
	title   string
}

func WithTheme(t Theme) Option      { return func(r *renderer) { r.theme = t } }
func WithStyle(s Style) Option      { return func(r *renderer) { r.style = s } }
func WithPadding(p float64) Option  { return func(r *renderer) { r.padding = p } }
func WithoutPinDots() Option        { return func(r *renderer) { r.pinDots = false } }
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }
func WithNetLabels(n *netlist.Nets) Option {
	return func(r *renderer) { r.nets = n }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{theme: ThemeLight, style: StyleIEEE, padding: DefaultPadding, pinDots: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.padding < 0 {
		r.padding = 0
	}
	return r
}

// RenderSVG draws a layout as a standalone SVG document. Components are drawn
// in layout order, then wires, then pin and junction dots.
func RenderSVG(l layout.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)
	pal := r.theme.Palette()

	minX, minY := l.Bounds.MinX-r.padding, l.Bounds.MinY-r.padding
	w, h := l.Bounds.Width()+2*r.padding, l.Bounds.Height()+2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(minX), num(minY), num(w), num(h), num(w), num(h))
	if r.title != "" {
		buf.WriteString("  <title>")
		escape(&buf, r.title)
		buf.WriteString("</title>\n")
	}
	renderStyle(&buf, pal)
	fmt.Fprintf(&buf, `  <rect class="background" x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(minX), num(minY), num(w), num(h), pal.Background)

	buf.WriteString(`  <g id="components">` + "\n")
	for i := range l.Components {
		r.renderComponent(&buf, &l.Components[i])
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g id="wires">` + "\n")
	for _, conn := range l.Connections {
		renderWire(&buf, conn)
	}
	buf.WriteString("  </g>\n")

	r.renderDots(&buf, l)
	if r.nets != nil {
		r.renderNetLabels(&buf, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderStyle(buf *bytes.Buffer, pal Palette) {
	fmt.Fprintf(buf, `  <style>
    .wire { stroke: %[1]s; stroke-width: 2; fill: none; stroke-linecap: round; stroke-linejoin: round; }
    .component { stroke: %[2]s; stroke-width: 2; fill: none; stroke-linejoin: round; }
    .text { font-family: Arial, sans-serif; font-size: 12px; fill: %[3]s; }
    .glyph { font-family: Arial, sans-serif; font-size: 9px; fill: %[3]s; }
    .net { font-family: Arial, sans-serif; font-size: 9px; fill: %[3]s; font-style: italic; }
    .pin { fill: %[4]s; }
    .junction { fill: %[1]s; }
  </style>
`, pal.Wire, pal.Stroke, pal.Text, pal.Pin)
}

func (r *renderer) renderComponent(buf *bytes.Buffer, pc *layout.PositionedComponent) {
	size := layout.RotatedSize(pc.Size, pc.Rotation)
	s := symbolFor(pc.Kind, r.style, size)

	d := s.body
	for _, pin := range pc.Pins {
		d += s.lead(localOffset(pin.Position, pc.Position, pc.Rotation))
	}

	fmt.Fprintf(buf, `    <g id="comp-%s" class="component kind-%s" transform="translate(%s %s) rotate(%d)">`+"\n",
		attr(pc.ID), pc.Kind, num(pc.Position.X), num(pc.Position.Y), int(pc.Rotation))
	fmt.Fprintf(buf, `      <path d="%s"/>`+"\n", trimPath(d))
	buf.WriteString("    </g>\n")

	x, y := pc.Position.X, pc.Position.Y
	if s.glyph != "" {
		fmt.Fprintf(buf, `    <text class="glyph" x="%s" y="%s" text-anchor="middle" dominant-baseline="central">`, num(x), num(y))
		escape(buf, s.glyph)
		buf.WriteString("</text>\n")
	}
	fmt.Fprintf(buf, `    <text class="text label" x="%s" y="%s" text-anchor="middle">`, num(x), num(y-pc.Size.Height/2-6))
	escape(buf, pc.DisplayLabel())
	buf.WriteString("</text>\n")
	if pc.Value != "" {
		fmt.Fprintf(buf, `    <text class="text value" x="%s" y="%s" text-anchor="middle">`, num(x), num(y+pc.Size.Height/2+14))
		escape(buf, pc.Value)
		buf.WriteString("</text>\n")
	}
}

func renderWire(buf *bytes.Buffer, conn layout.RoutedConnection) {
	if len(conn.Path) < 2 {
		return
	}
	var d bytes.Buffer
	for i, p := range conn.Path {
		if i == 0 {
			fmt.Fprintf(&d, "M %s %s", num(p.X), num(p.Y))
			continue
		}
		fmt.Fprintf(&d, " L %s %s", num(p.X), num(p.Y))
	}
	fmt.Fprintf(buf, `    <path class="wire" data-from="%s" data-to="%s" d="%s"/>`+"\n",
		attr(conn.From.String()), attr(conn.To.String()), d.String())
}

// renderDots marks every pin, and draws a junction wherever two or more
// wires meet at the same pin.
func (r *renderer) renderDots(buf *bytes.Buffer, l layout.Layout) {
	wires := make(map[circuit.PinRef]int)
	for _, conn := range l.Connections {
		wires[conn.From]++
		wires[conn.To]++
	}

	buf.WriteString(`  <g id="pins">` + "\n")
	for _, pc := range l.Components {
		for _, pin := range pc.Pins {
			ref := circuit.PinRef{Component: pc.ID, Pin: pin.Name}
			switch {
			case wires[ref] >= 2:
				fmt.Fprintf(buf, `    <circle class="junction" cx="%s" cy="%s" r="3"/>`+"\n", num(pin.Position.X), num(pin.Position.Y))
			case r.pinDots:
				fmt.Fprintf(buf, `    <circle class="pin" cx="%s" cy="%s" r="1.5"/>`+"\n", num(pin.Position.X), num(pin.Position.Y))
			}
		}
	}
	buf.WriteString("  </g>\n")
}

// renderNetLabels tags each net once, next to its first member's pin.
func (r *renderer) renderNetLabels(buf *bytes.Buffer, l layout.Layout) {
	buf.WriteString(`  <g id="nets">` + "\n")
	for _, n := range r.nets.List() {
		for _, m := range n.Members {
			pc, ok := l.Component(m.Component)
			if !ok {
				continue
			}
			pin, ok := pc.Pin(m.Pin)
			if !ok {
				continue
			}
			fmt.Fprintf(buf, `    <text class="net" x="%s" y="%s">`, num(pin.Position.X+4), num(pin.Position.Y-4))
			escape(buf, n.ID)
			buf.WriteString("</text>\n")
			break
		}
	}
	buf.WriteString("  </g>\n")
}

// localOffset undoes a component's placement, returning the pin's offset in
// template coordinates.
func localOffset(pin, center circuit.Point, rot circuit.Rotation) circuit.Point {
	off := circuit.Point{X: pin.X - center.X, Y: pin.Y - center.Y}
	inv := circuit.Rotation((360 - int(rot)) % 360)
	p, err := layout.Rotate(off, inv)
	if err != nil {
		return off
	}
	return p
}

func trimPath(d string) string {
	for len(d) > 0 && d[len(d)-1] == ' ' {
		d = d[:len(d)-1]
	}
	return d
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}

func attr(s string) string {
	var b bytes.Buffer
	escape(&b, s)
	return b.String()
}
