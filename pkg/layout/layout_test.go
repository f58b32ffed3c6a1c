package layout

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/geometry"
)

func pt(x, y float64) circuit.Point { return circuit.Point{X: x, Y: y} }

func at(x, y float64) *circuit.Point {
	p := pt(x, y)
	return &p
}

func conn(from, to string) circuit.Connection {
	f, err := circuit.ParsePinRef(from)
	if err != nil {
		panic(err)
	}
	t, err := circuit.ParsePinRef(to)
	if err != nil {
		panic(err)
	}
	return circuit.Connection{From: f, To: t}
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name        string
		components  []circuit.Component
		connections []circuit.Connection
		want        map[string]circuit.Point
	}{
		{
			name: "Explicit",
			components: []circuit.Component{
				{ID: "R1", Position: at(12, -7)},
			},
			want: map[string]circuit.Point{"R1": pt(12, -7)},
		},
		{
			name: "GridFromEmpty",
			components: []circuit.Component{
				{ID: "A"}, {ID: "B"}, {ID: "C"},
			},
			want: map[string]circuit.Point{"A": pt(0, 0), "B": pt(100, 0), "C": pt(200, 0)},
		},
		{
			name: "GridCountsExplicit",
			components: []circuit.Component{
				{ID: "A"}, {ID: "X", Position: at(500, 500)},
			},
			want: map[string]circuit.Point{"A": pt(100, 0), "X": pt(500, 500)},
		},
		{
			name: "NeighborMean",
			components: []circuit.Component{
				{ID: "A", Position: at(0, 0)},
				{ID: "B", Position: at(100, 100)},
				{ID: "C"},
			},
			connections: []circuit.Connection{conn("C.1", "A.1"), conn("B.2", "C.2")},
			want:        map[string]circuit.Point{"A": pt(0, 0), "B": pt(100, 100), "C": pt(100, 100)},
		},
		{
			name: "ParallelEdgesWeighMean",
			components: []circuit.Component{
				{ID: "A", Position: at(0, 0)},
				{ID: "B", Position: at(300, 0)},
				{ID: "C"},
			},
			connections: []circuit.Connection{conn("A.1", "C.1"), conn("A.2", "C.2"), conn("B.1", "C.1")},
			want:        map[string]circuit.Point{"A": pt(0, 0), "B": pt(300, 0), "C": pt(150, 50)},
		},
		{
			name: "LaterNeighborsDoNotCount",
			components: []circuit.Component{
				{ID: "C"}, {ID: "D"},
			},
			connections: []circuit.Connection{conn("C.1", "D.1")},
			want:        map[string]circuit.Point{"C": pt(0, 0), "D": pt(50, 50)},
		},
		{
			name:        "UnknownNeighborIgnored",
			components:  []circuit.Component{{ID: "A"}},
			connections: []circuit.Connection{conn("A.1", "ghost.1")},
			want:        map[string]circuit.Point{"A": pt(0, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(tt.components, tt.connections)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Place() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlaceGridWraps(t *testing.T) {
	comps := make([]circuit.Component, 12)
	for i := range comps {
		comps[i] = circuit.Component{ID: string(rune('A' + i))}
	}
	got := Place(comps, nil)
	if got["K"] != pt(0, 100) {
		t.Errorf("11th component at %v, want (0, 100)", got["K"])
	}
	if got["L"] != pt(100, 100) {
		t.Errorf("12th component at %v, want (100, 100)", got["L"])
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		rot  circuit.Rotation
		want circuit.Point
	}{
		{circuit.Rotate0, pt(10, 0)},
		{circuit.Rotate90, pt(0, 10)},
		{circuit.Rotate180, pt(-10, 0)},
		{circuit.Rotate270, pt(0, -10)},
	}
	for _, tt := range tests {
		got, err := Rotate(pt(10, 0), tt.rot)
		if err != nil {
			t.Fatalf("Rotate(%d): %v", tt.rot, err)
		}
		if got != tt.want {
			t.Errorf("Rotate((10,0), %d) = %v, want %v", tt.rot, got, tt.want)
		}
	}

	if _, err := Rotate(pt(10, 0), 45); !errors.Is(err, errors.ErrCodeInvalidRotation) {
		t.Errorf("Rotate(45) = %v, want INVALID_ROTATION", err)
	}
}

func TestResolvePin(t *testing.T) {
	reg := geometry.NewRegistry(geometry.Template{
		Kind: circuit.KindTestPoint,
		Size: circuit.Size{Width: 20, Height: 20},
		Pins: []geometry.PinTemplate{{Name: "P", Offset: pt(10, 0)}},
	})
	base := pt(100, 50)

	tests := []struct {
		name     string
		kind     circuit.Kind
		pin      string
		rot      circuit.Rotation
		want     circuit.Point
		wantCode errors.Code
	}{
		{name: "Rot0", kind: circuit.KindTestPoint, pin: "P", rot: 0, want: pt(110, 50)},
		{name: "Rot90", kind: circuit.KindTestPoint, pin: "P", rot: 90, want: pt(100, 60)},
		{name: "Rot180", kind: circuit.KindTestPoint, pin: "P", rot: 180, want: pt(90, 50)},
		{name: "Rot270", kind: circuit.KindTestPoint, pin: "P", rot: 270, want: pt(100, 40)},
		{name: "UnknownKind", kind: circuit.KindResistor, pin: "1", wantCode: errors.ErrCodeUnknownComponentType},
		{name: "UnknownPin", kind: circuit.KindTestPoint, pin: "Q", wantCode: errors.ErrCodePinNotFound},
		{name: "BadRotation", kind: circuit.KindTestPoint, pin: "P", rot: 45, wantCode: errors.ErrCodeInvalidRotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePin(reg, tt.kind, tt.pin, base, tt.rot)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("ResolvePin() error = %v, want %v", err, tt.wantCode)
				}
				if got != (circuit.Point{}) {
					t.Errorf("ResolvePin() returned %v alongside an error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePin() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolvePin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name     string
		from, to circuit.Point
		want     []circuit.Point
	}{
		{
			name: "Diagonal",
			from: pt(0, 0), to: pt(100, 50),
			want: []circuit.Point{pt(0, 0), pt(50, 0), pt(50, 50), pt(100, 50)},
		},
		{
			name: "Horizontal",
			from: pt(0, 0), to: pt(100, 0),
			want: []circuit.Point{pt(0, 0), pt(50, 0), pt(100, 0)},
		},
		{
			name: "Vertical",
			from: pt(0, 0), to: pt(0, 80),
			want: []circuit.Point{pt(0, 0), pt(0, 80)},
		},
		{
			name: "NearlyVertical",
			from: pt(0, 0), to: pt(0.5, 80),
			want: []circuit.Point{pt(0, 0), pt(0, 80), pt(0.5, 80)},
		},
		{
			name: "Coincident",
			from: pt(5, 5), to: pt(5, 5),
			want: []circuit.Point{pt(5, 5), pt(5, 5)},
		},
		{
			name: "Leftward",
			from: pt(170, 50), to: pt(80, 0),
			want: []circuit.Point{pt(170, 50), pt(125, 50), pt(125, 0), pt(80, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(tt.from, tt.to)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Route() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeScenario(t *testing.T) {
	c := &circuit.Circuit{
		Components: []circuit.Component{
			{ID: "R1", Kind: circuit.KindResistor},
			{ID: "R2", Kind: circuit.KindResistor, Position: at(100, 0)},
		},
		Connections: []circuit.Connection{conn("R1.2", "R2.1")},
	}

	l, err := Compute(geometry.Standard(), c)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	r1, _ := l.Component("R1")
	r2, _ := l.Component("R2")
	if r2.Position != pt(100, 0) {
		t.Errorf("R2 at %v, want (100, 0)", r2.Position)
	}
	if r1.Position != pt(150, 50) {
		t.Errorf("R1 at %v, want (150, 50)", r1.Position)
	}

	r1pin2, _ := r1.Pin("2")
	r2pin1, _ := r2.Pin("1")
	path := l.Connections[0].Path
	if path[0] != r1pin2.Position {
		t.Errorf("route starts at %v, want R1.2 %v", path[0], r1pin2.Position)
	}
	if path[len(path)-1] != r2pin1.Position {
		t.Errorf("route ends at %v, want R2.1 %v", path[len(path)-1], r2pin1.Position)
	}

	want := Bounds{MinX: 80, MinY: -5, MaxX: 170, MaxY: 55}
	if l.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", l.Bounds, want)
	}
}

func TestComputeRotatedFootprint(t *testing.T) {
	c := &circuit.Circuit{Components: []circuit.Component{
		{ID: "R1", Kind: circuit.KindResistor, Position: at(0, 0), Rotation: circuit.Rotate90},
	}}
	l, err := Compute(geometry.Standard(), c)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if got := l.Components[0].Size; got != (circuit.Size{Width: 10, Height: 40}) {
		t.Errorf("Size = %+v, want 10x40", got)
	}
	p1, _ := l.Components[0].Pin("1")
	if p1.Position != pt(0, -20) {
		t.Errorf("R1.1 at %v, want (0, -20)", p1.Position)
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name     string
		circuit  circuit.Circuit
		src      geometry.Source
		wantCode errors.Code
	}{
		{
			name: "Dangling",
			circuit: circuit.Circuit{
				Components:  []circuit.Component{{ID: "R1", Kind: circuit.KindResistor}},
				Connections: []circuit.Connection{conn("R1.1", "R9.1")},
			},
			wantCode: errors.ErrCodeDanglingConnection,
		},
		{
			name: "MissingPin",
			circuit: circuit.Circuit{
				Components: []circuit.Component{
					{ID: "R1", Kind: circuit.KindResistor},
					{ID: "C1", Kind: circuit.KindCapacitor},
				},
				Connections: []circuit.Connection{conn("R1.3", "C1.1")},
			},
			wantCode: errors.ErrCodePinNotFound,
		},
		{
			name: "BadRotation",
			circuit: circuit.Circuit{
				Components: []circuit.Component{{ID: "R1", Kind: circuit.KindResistor, Rotation: 30}},
			},
			wantCode: errors.ErrCodeInvalidRotation,
		},
		{
			name: "UnregisteredKind",
			circuit: circuit.Circuit{
				Components: []circuit.Component{{ID: "U1", Kind: circuit.KindOpAmp}},
			},
			src:      geometry.NewRegistry(),
			wantCode: errors.ErrCodeUnknownComponentType,
		},
		{
			name: "DuplicateID",
			circuit: circuit.Circuit{
				Components: []circuit.Component{
					{ID: "R1", Kind: circuit.KindResistor},
					{ID: "R1", Kind: circuit.KindCapacitor},
				},
				Connections: []circuit.Connection{conn("R1.1", "R1.2")},
			},
			wantCode: errors.ErrCodeDuplicateComponent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.src
			if src == nil {
				src = geometry.Standard()
			}
			l, err := Compute(src, &tt.circuit)
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("Compute() error = %v, want %v", err, tt.wantCode)
			}
			if len(l.Components) != 0 || len(l.Connections) != 0 {
				t.Errorf("Compute() returned partial layout on error")
			}
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	c := &circuit.Circuit{
		Components: []circuit.Component{
			{ID: "V1", Kind: circuit.KindDCVoltage, Value: "5V"},
			{ID: "R1", Kind: circuit.KindResistor, Rotation: circuit.Rotate90},
		},
		Connections: []circuit.Connection{conn("V1.+", "R1.1")},
	}
	want, err := Compute(geometry.Standard(), c)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteFile(want, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalRejectsShortPath(t *testing.T) {
	data := []byte(`{"components":[],"connections":[{"from":{"component":"A","pin":"1"},"to":{"component":"B","pin":"1"},"path":[{"x":0,"y":0}]}],"bounds":{}}`)
	if _, err := Unmarshal(data); err == nil {
		t.Error("Unmarshal() accepted a one-point path")
	}
}
