package netlist

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/geometry"
)

func ref(s string) circuit.PinRef {
	r, err := circuit.ParsePinRef(s)
	if err != nil {
		panic(err)
	}
	return r
}

func wire(from, to string) circuit.Connection {
	return circuit.Connection{From: ref(from), To: ref(to)}
}

func comp(id string, k circuit.Kind) circuit.Component {
	return circuit.Component{ID: id, Kind: k}
}

func resistors(ids ...string) []circuit.Component {
	out := make([]circuit.Component, len(ids))
	for i, id := range ids {
		out[i] = comp(id, circuit.KindResistor)
	}
	return out
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		circuit circuit.Circuit
		want    map[string]string
	}{
		{
			name: "GroundScenario",
			circuit: circuit.Circuit{
				Components: []circuit.Component{
					comp("GND1", circuit.KindSignalGround),
					comp("R2", circuit.KindResistor),
					comp("V1", circuit.KindDCVoltage),
				},
				Connections: []circuit.Connection{wire("GND1.GND", "R2.2"), wire("R2.1", "V1.+")},
			},
			want: map[string]string{
				"GND1.GND": "0", "R2.2": "0",
				"R2.1": "N1", "V1.+": "N1",
				"V1.-": "N2",
			},
		},
		{
			name: "Chain",
			circuit: circuit.Circuit{
				Components:  resistors("A", "B", "C", "D"),
				Connections: []circuit.Connection{wire("A.2", "B.1"), wire("B.1", "C.1"), wire("C.1", "D.1")},
			},
			want: map[string]string{
				"A.2": "N1", "B.1": "N1", "C.1": "N1", "D.1": "N1",
				"A.1": "N2", "B.2": "N3", "C.2": "N4", "D.2": "N5",
			},
		},
		{
			name: "Declaration",
			circuit: circuit.Circuit{
				Components:  resistors("R1", "R2"),
				Nets:        []circuit.NetDeclaration{{Name: "VCC", Members: []circuit.PinRef{ref("R1.1"), ref("R2.1")}}},
				Connections: []circuit.Connection{wire("R1.2", "R2.2")},
			},
			want: map[string]string{"R1.1": "VCC", "R2.1": "VCC", "R1.2": "N1", "R2.2": "N1"},
		},
		{
			name: "SharedPinKeepsEarlierName",
			circuit: circuit.Circuit{
				Components: resistors("R1", "R2"),
				Nets: []circuit.NetDeclaration{
					{Name: "A", Members: []circuit.PinRef{ref("R1.1")}},
					{Name: "B", Members: []circuit.PinRef{ref("R2.1"), ref("R1.1")}},
				},
			},
			want: map[string]string{"R1.1": "A", "R2.1": "A", "R1.2": "N1", "R2.2": "N2"},
		},
		{
			name: "SameNameMerges",
			circuit: circuit.Circuit{
				Components: resistors("R1", "R2"),
				Nets: []circuit.NetDeclaration{
					{Name: "BUS", Members: []circuit.PinRef{ref("R1.2")}},
					{Name: "BUS", Members: []circuit.PinRef{ref("R2.2")}},
				},
			},
			want: map[string]string{"R1.2": "BUS", "R2.2": "BUS", "R1.1": "N1", "R2.1": "N2"},
		},
		{
			name: "AutoNamesSkipDeclared",
			circuit: circuit.Circuit{
				Components:  resistors("R1", "R2"),
				Nets:        []circuit.NetDeclaration{{Name: "N1", Members: []circuit.PinRef{ref("R1.1")}}},
				Connections: []circuit.Connection{wire("R1.2", "R2.1")},
			},
			want: map[string]string{"R1.1": "N1", "R1.2": "N2", "R2.1": "N2", "R2.2": "N3"},
		},
		{
			name: "MergedAutoClassesKeepOlderName",
			circuit: circuit.Circuit{
				Components: resistors("R1", "R2", "R3", "R4"),
				Connections: []circuit.Connection{
					wire("R3.1", "R4.1"),
					wire("R1.1", "R2.1"),
					wire("R2.1", "R3.1"),
				},
			},
			want: map[string]string{
				"R1.1": "N1", "R2.1": "N1", "R3.1": "N1", "R4.1": "N1",
				"R1.2": "N2", "R2.2": "N3", "R3.2": "N4", "R4.2": "N5",
			},
		},
		{
			name: "ConnectionJoinsDeclared",
			circuit: circuit.Circuit{
				Components:  resistors("R1", "R2", "R3"),
				Nets:        []circuit.NetDeclaration{{Name: "VCC", Members: []circuit.PinRef{ref("R1.1")}}},
				Connections: []circuit.Connection{wire("R2.1", "R3.1"), wire("R3.1", "R1.1")},
			},
			want: map[string]string{
				"R1.1": "VCC", "R2.1": "VCC", "R3.1": "VCC",
				"R1.2": "N1", "R2.2": "N2", "R3.2": "N3",
			},
		},
		{
			name: "GroundOverridesDeclaredName",
			circuit: circuit.Circuit{
				Components: []circuit.Component{comp("R1", circuit.KindResistor), comp("G", circuit.KindEarthGround)},
				Nets:       []circuit.NetDeclaration{{Name: "RET", Members: []circuit.PinRef{ref("R1.2")}}},
				Connections: []circuit.Connection{
					wire("R1.2", "G.GND"),
				},
			},
			want: map[string]string{"R1.1": "N1", "R1.2": "0", "G.GND": "0"},
		},
		{
			name: "GroundPinClassDoesNotForce",
			circuit: circuit.Circuit{
				Components: []circuit.Component{comp("V1", circuit.KindDCVoltage)},
			},
			want: map[string]string{"V1.+": "N1", "V1.-": "N2"},
		},
		{
			name: "UnconnectedGroundSymbol",
			circuit: circuit.Circuit{
				Components: []circuit.Component{comp("G", circuit.KindChassisGround)},
			},
			want: map[string]string{"G.GND": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nets, err := Resolve(geometry.Standard(), &tt.circuit)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if diff := cmp.Diff(tt.want, nets.Map()); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveList(t *testing.T) {
	c := &circuit.Circuit{
		Components: []circuit.Component{
			comp("R1", circuit.KindResistor),
			comp("GND", circuit.KindSignalGround),
		},
		Connections: []circuit.Connection{wire("GND.GND", "R1.2")},
	}
	nets, err := Resolve(geometry.Standard(), c)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []Net{
		{ID: "0", Members: []circuit.PinRef{ref("R1.2"), ref("GND.GND")}},
		{ID: "N1", Members: []circuit.PinRef{ref("R1.1")}},
	}
	if diff := cmp.Diff(want, nets.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	if nets.Len() != 2 {
		t.Errorf("Len() = %d, want 2", nets.Len())
	}
	if id, ok := nets.NetOf(ref("R1.1")); !ok || id != "N1" {
		t.Errorf("NetOf(R1.1) = %q, %v", id, ok)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		circuit  circuit.Circuit
		src      geometry.Source
		wantCode errors.Code
	}{
		{
			name: "DanglingConnection",
			circuit: circuit.Circuit{
				Components:  resistors("R1"),
				Connections: []circuit.Connection{wire("R1.1", "R7.2")},
			},
			wantCode: errors.ErrCodeDanglingConnection,
		},
		{
			name: "DanglingNetMember",
			circuit: circuit.Circuit{
				Components: resistors("R1"),
				Nets:       []circuit.NetDeclaration{{Name: "X", Members: []circuit.PinRef{ref("Q9.B")}}},
			},
			wantCode: errors.ErrCodeDanglingConnection,
		},
		{
			name: "PinNotFound",
			circuit: circuit.Circuit{
				Components:  resistors("R1", "R2"),
				Connections: []circuit.Connection{wire("R1.3", "R2.1")},
			},
			wantCode: errors.ErrCodePinNotFound,
		},
		{
			name:     "UnknownType",
			circuit:  circuit.Circuit{Components: resistors("R1")},
			src:      geometry.NewRegistry(),
			wantCode: errors.ErrCodeUnknownComponentType,
		},
		{
			name:     "Duplicate",
			circuit:  circuit.Circuit{Components: resistors("R1", "R1")},
			wantCode: errors.ErrCodeDuplicateComponent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.src
			if src == nil {
				src = geometry.Standard()
			}
			nets, err := Resolve(src, &tt.circuit)
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("Resolve() error = %v, want %v", err, tt.wantCode)
			}
			if nets != nil {
				t.Errorf("Resolve() returned nets alongside an error")
			}
		})
	}
}
