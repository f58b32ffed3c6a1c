package netlist

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/geometry"
)

func divider() *circuit.Circuit {
	return &circuit.Circuit{
		Components: []circuit.Component{
			{ID: "V1", Kind: circuit.KindDCVoltage, Value: "5V"},
			{ID: "R1", Kind: circuit.KindResistor, Value: "1k"},
			{ID: "R2", Kind: circuit.KindResistor, Value: "2k"},
			{ID: "GND1", Kind: circuit.KindSignalGround},
		},
		Connections: []circuit.Connection{
			wire("V1.+", "R1.1"),
			wire("R1.2", "R2.1"),
			wire("R2.2", "GND1.GND"),
			wire("V1.-", "GND1.GND"),
		},
	}
}

func export(t *testing.T, c *circuit.Circuit, opts ...SPICEOption) string {
	t.Helper()
	nets, err := Resolve(geometry.Standard(), c)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	out, err := ExportSPICE(c, nets, opts...)
	if err != nil {
		t.Fatalf("ExportSPICE: %v", err)
	}
	return string(out)
}

func TestExportSPICEDivider(t *testing.T) {
	want := `* Mieza SPICE Netlist
* Generated from CDL

V1 N1 0 DC 5
R1 N1 N2 1k
R2 N2 0 2k

* Connections:
* V1.+ -> R1.1
* R1.2 -> R2.1
* R2.2 -> GND1.GND
* V1.- -> GND1.GND

.end
`
	if diff := cmp.Diff(want, export(t, divider())); diff != "" {
		t.Errorf("netlist mismatch (-want +got):\n%s", diff)
	}
}

func TestExportSPICECards(t *testing.T) {
	tests := []struct {
		name string
		comp circuit.Component
		want string
	}{
		{"Capacitor", circuit.Component{ID: "C1", Kind: circuit.KindCapacitor, Value: "100nF"}, "C1 N1 N2 100n"},
		{"CapacitorDefault", circuit.Component{ID: "C1", Kind: circuit.KindCapacitor}, "C1 N1 N2 1p"},
		{"Inductor", circuit.Component{ID: "L1", Kind: circuit.KindInductor, Value: "10mH"}, "L1 N1 N2 10m"},
		{"ACVoltage", circuit.Component{ID: "V2", Kind: circuit.KindACVoltage, Value: "1V"}, "V2 N1 N2 AC 1"},
		{"DCCurrent", circuit.Component{ID: "I1", Kind: circuit.KindDCCurrent, Value: "10mA"}, "I1 N1 N2 DC 10m"},
		{"Zener", circuit.Component{ID: "D1", Kind: circuit.KindZenerDiode}, "D1 N1 N2 DZENER"},
		{"LEDPrefixed", circuit.Component{ID: "LED1", Kind: circuit.KindLED}, "DLED1 N1 N2 DLED"},
		{"NPN", circuit.Component{ID: "Q1", Kind: circuit.KindNPNTransistor}, "Q1 N2 N1 N3 QNPN"},
		{"PNP", circuit.Component{ID: "Q2", Kind: circuit.KindPNPTransistor}, "Q2 N2 N1 N3 QPNP"},
		{"NMOS", circuit.Component{ID: "M1", Kind: circuit.KindNMOSTransistor}, "M1 N2 N1 N3 N3 NMOS"},
		{"OpAmp", circuit.Component{ID: "U1", Kind: circuit.KindOpAmp}, "XU1 N2 N1 N3 OPAMP"},
		{"Unsupported", circuit.Component{ID: "U2", Kind: circuit.KindTimer555}, "* Component U2 of type timer_555 not supported in SPICE export"},
		{"MegaResistor", circuit.Component{ID: "R1", Kind: circuit.KindResistor, Value: "1M"}, "R1 N1 N2 1Meg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := export(t, &circuit.Circuit{Components: []circuit.Component{tt.comp}}, WithoutConnections())
			lines := strings.Split(out, "\n")
			if len(lines) < 4 || lines[3] != tt.want {
				t.Errorf("card = %q, want %q\nfull netlist:\n%s", lines[3], tt.want, out)
			}
		})
	}
}

func TestExportSPICEModels(t *testing.T) {
	c := &circuit.Circuit{Components: []circuit.Component{
		{ID: "Q1", Kind: circuit.KindNPNTransistor},
		{ID: "D1", Kind: circuit.KindLED},
		{ID: "D2", Kind: circuit.KindLED},
	}}
	out := export(t, c, WithModels(), WithTitle("blinker"))
	if !strings.HasPrefix(out, "* blinker\n") {
		t.Errorf("title not applied:\n%s", out)
	}
	if !strings.Contains(out, ".model DLED D\n.model QNPN NPN\n") {
		t.Errorf("models missing or unsorted:\n%s", out)
	}
	if strings.Count(out, ".model DLED") != 1 {
		t.Errorf("model emitted more than once:\n%s", out)
	}
}

func TestExportSPICEBadValue(t *testing.T) {
	c := &circuit.Circuit{Components: []circuit.Component{{ID: "R1", Kind: circuit.KindResistor, Value: "lots"}}}
	nets, err := Resolve(geometry.Standard(), c)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := ExportSPICE(c, nets); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ExportSPICE() error = %v, want INVALID_INPUT", err)
	}
}
