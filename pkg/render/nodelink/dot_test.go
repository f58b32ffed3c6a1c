package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/geometry"
	"github.com/matzehuels/mieza/pkg/netlist"
)

func sample() *circuit.Circuit {
	return &circuit.Circuit{
		Components: []circuit.Component{
			{ID: "R1", Kind: circuit.KindResistor, Value: "10k", Properties: map[string]string{"tol": "1"}},
			{ID: "C1", Kind: circuit.KindCapacitor, Rotation: circuit.Rotate90},
			{ID: "GND1", Kind: circuit.KindSignalGround},
		},
		Connections: []circuit.Connection{
			{From: circuit.PinRef{Component: "R1", Pin: "2"}, To: circuit.PinRef{Component: "C1", Pin: "1"}},
			{From: circuit.PinRef{Component: "C1", Pin: "2"}, To: circuit.PinRef{Component: "GND1", Pin: "GND"}},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	if !strings.Contains(dot, "graph G") {
		t.Error("ToDOT() output missing graph declaration")
	}
	if !strings.Contains(dot, `"R1" [label="R1\nresistor"]`) {
		t.Errorf("ToDOT() output missing node R1:\n%s", dot)
	}
	if !strings.Contains(dot, `"R1" -- "C1" [taillabel="2", headlabel="1"]`) {
		t.Errorf("ToDOT() output missing wire:\n%s", dot)
	}
	if strings.Contains(dot, "net:") {
		t.Error("ToDOT() drew net nodes without nets")
	}
}

func TestToDOT_Ground(t *testing.T) {
	dot := ToDOT(sample(), Options{})
	if !strings.Contains(dot, `"GND1" [label="GND1\nsignal_ground", shape=ellipse, fillcolor=lightgrey, fontcolor=black]`) {
		t.Errorf("ToDOT() ground symbol not highlighted:\n%s", dot)
	}
}

func TestToDOT_Nets(t *testing.T) {
	c := sample()
	nets, err := netlist.Resolve(geometry.Standard(), c)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	dot := ToDOT(c, Options{Nets: nets})

	for _, want := range []string{
		`"net:0" [shape=ellipse, label="0", fontsize=10, style=filled, fillcolor=lightgrey]`,
		`"C1" -- "net:0" [taillabel="2"]`,
		`"GND1" -- "net:0" [taillabel="GND"]`,
		`"R1" -- "net:N1" [taillabel="2"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"R1" -- "C1"`) {
		t.Error("ToDOT() drew wires in net mode")
	}
}

func TestFmtLabel(t *testing.T) {
	comp := sample().Components[0]
	if got := fmtLabel(comp, false); got != "R1\nresistor" {
		t.Errorf("fmtLabel() simple = %q", got)
	}
	got := fmtLabel(comp, true)
	if !strings.Contains(got, "value: 10k") || !strings.Contains(got, "tol: 1") {
		t.Errorf("fmtLabel() detailed = %q", got)
	}

	rotated := sample().Components[1]
	if got := fmtLabel(rotated, true); !strings.HasSuffix(got, "rotation: 90") {
		t.Errorf("fmtLabel() detailed rotation = %q", got)
	}
}

func TestFmtLabel_UsesDisplayLabel(t *testing.T) {
	comp := circuit.Component{ID: "D1", Kind: circuit.KindLED, Label: "Power"}
	if got := fmtLabel(comp, false); got != "Power\nled" {
		t.Errorf("fmtLabel() = %q, want label in place of id", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
