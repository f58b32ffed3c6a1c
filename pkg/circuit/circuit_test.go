package circuit

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/mieza/pkg/errors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"resistor", KindResistor, false},
		{"R", KindResistor, false},
		{" dc_voltage ", KindDCVoltage, false},
		{"vdc", KindDCVoltage, false},
		{"555", KindTimer555, false},
		{"gnd", KindSignalGround, false},
		{"earth_ground", KindEarthGround, false},
		{"flux_capacitor", KindInvalid, true},
		{"", KindInvalid, true},
		{"invalid", KindInvalid, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeUnknownComponentType) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnknownComponentType)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestKindsRoundTripByName(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 52 {
		t.Fatalf("len(Kinds()) = %d, want 52", len(kinds))
	}
	for _, k := range kinds {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v", k, got)
		}
	}
}

func TestKindIsGround(t *testing.T) {
	for _, k := range Kinds() {
		want := k == KindSignalGround || k == KindChassisGround || k == KindEarthGround
		if k.IsGround() != want {
			t.Errorf("%v.IsGround() = %v, want %v", k, k.IsGround(), want)
		}
	}
}

func TestParseRotation(t *testing.T) {
	tests := []struct {
		input   string
		want    Rotation
		wantErr bool
	}{
		{"0", Rotate0, false},
		{"90", Rotate90, false},
		{"180deg", Rotate180, false},
		{"270°", Rotate270, false},
		{"45", 0, true},
		{"-90", 0, true},
		{"360", 0, true},
		{"ninety", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRotation(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRotation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidRotation) {
					t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRotation)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseRotation(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePinRef(t *testing.T) {
	tests := []struct {
		input   string
		want    PinRef
		wantErr bool
	}{
		{"R1.1", PinRef{"R1", "1"}, false},
		{"U1.V+", PinRef{"U1", "V+"}, false},
		{" V1.- ", PinRef{"V1", "-"}, false},
		{"R1", PinRef{}, true},
		{".1", PinRef{}, true},
		{"R1.", PinRef{}, true},
		{"R1.a.b", PinRef{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePinRef(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePinRef(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePinRef(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCircuitValidate(t *testing.T) {
	tests := []struct {
		name     string
		circuit  Circuit
		wantCode errors.Code
	}{
		{
			name: "Valid",
			circuit: Circuit{Components: []Component{
				{ID: "R1", Kind: KindResistor},
				{ID: "GND", Kind: KindSignalGround, Rotation: Rotate90},
			}},
		},
		{
			name: "Duplicate",
			circuit: Circuit{Components: []Component{
				{ID: "R1", Kind: KindResistor},
				{ID: "R1", Kind: KindCapacitor},
			}},
			wantCode: errors.ErrCodeDuplicateComponent,
		},
		{
			name:     "BadID",
			circuit:  Circuit{Components: []Component{{ID: "1R", Kind: KindResistor}}},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "ZeroKind",
			circuit:  Circuit{Components: []Component{{ID: "X1"}}},
			wantCode: errors.ErrCodeUnknownComponentType,
		},
		{
			name:     "BadRotation",
			circuit:  Circuit{Components: []Component{{ID: "R1", Kind: KindResistor, Rotation: 45}}},
			wantCode: errors.ErrCodeInvalidRotation,
		},
		{
			name: "BadNetName",
			circuit: Circuit{
				Components: []Component{{ID: "R1", Kind: KindResistor}},
				Nets:       []NetDeclaration{{Name: "a b"}},
			},
			wantCode: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.circuit.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func sampleCircuit() *Circuit {
	return &Circuit{
		Components: []Component{
			{ID: "V1", Kind: KindDCVoltage, Value: "5V", Position: &Point{X: 0, Y: 0}},
			{ID: "R1", Kind: KindResistor, Value: "10k", Rotation: Rotate90, Label: "load"},
			{ID: "GND", Kind: KindSignalGround},
		},
		Connections: []Connection{
			{From: PinRef{"V1", "+"}, To: PinRef{"R1", "1"}},
			{From: PinRef{"R1", "2"}, To: PinRef{"GND", "GND"}, Properties: map[string]string{"color": "red"}},
		},
		Nets: []NetDeclaration{{Name: "VCC", Members: []PinRef{{"V1", "+"}}}},
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	for _, enc := range []Encoding{EncodingJSON, EncodingYAML} {
		t.Run(string(enc), func(t *testing.T) {
			want := sampleCircuit()
			data, err := Marshal(want, enc)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if !bytes.Contains(data, []byte("dc_voltage")) {
				t.Errorf("kind not serialized by name:\n%s", data)
			}
			got, err := Unmarshal(data, enc)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalUnknownKind(t *testing.T) {
	data := []byte(`{"components":[{"id":"X1","kind":"warp_core"}]}`)
	_, err := Unmarshal(data, EncodingJSON)
	if !errors.Is(err, errors.ErrCodeUnknownComponentType) {
		t.Errorf("Unmarshal() = %v, want UNKNOWN_COMPONENT_TYPE", err)
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	_, err := Unmarshal([]byte(`{"components":`), EncodingJSON)
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("Unmarshal() = %v, want PARSE_ERROR", err)
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "circuit.yaml")
	if err := WriteFile(sampleCircuit(), path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got.Components) != 3 {
		t.Errorf("components = %d, want 3", len(got.Components))
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) = %v, want FILE_NOT_FOUND", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "c.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(filepath.Join(dir, "c.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadFile(.txt) = %v, want INVALID_FORMAT", err)
	}
}
