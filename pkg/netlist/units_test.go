package netlist

import (
	"testing"

	"github.com/matzehuels/mieza/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input   string
		unit    Unit
		want    string
		wantErr bool
	}{
		{"10k", UnitResistance, "10k", false},
		{"10K", UnitResistance, "10k", false},
		{"4k7", UnitResistance, "4.7k", false},
		{"2R2", UnitResistance, "2.2", false},
		{"100Ω", UnitResistance, "100", false},
		{"100R", UnitResistance, "100", false},
		{"470 ohm", UnitResistance, "470", false},
		{"1M", UnitResistance, "1Meg", false},
		{"1Meg", UnitResistance, "1Meg", false},
		{"10 kΩ", UnitResistance, "10k", false},
		{"4.7uF", UnitCapacitance, "4.7u", false},
		{"100pF", UnitCapacitance, "100p", false},
		{"10µF", UnitCapacitance, "10u", false},
		{"2.2mF", UnitCapacitance, "2.2m", false},
		{"1µH", UnitInductance, "1u", false},
		{"5V", UnitVoltage, "5", false},
		{"-12v", UnitVoltage, "-12", false},
		{"3.3", UnitVoltage, "3.3", false},
		{"10mA", UnitCurrent, "10m", false},
		{"1e-3", UnitCurrent, "0.001", false},

		{"", UnitResistance, "", true},
		{"abc", UnitResistance, "", true},
		{"10x", UnitResistance, "", true},
		{"F", UnitCapacitance, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalize(tt.input, tt.unit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want INVALID_INPUT", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuantitySI(t *testing.T) {
	tests := []struct {
		input string
		unit  Unit
		want  float64
	}{
		{"10k", UnitResistance, 10000},
		{"2Meg", UnitResistance, 2e6},
		{"5V", UnitVoltage, 5},
		{"250m", UnitCurrent, 0.25},
	}
	for _, tt := range tests {
		q, err := ParseValue(tt.input, tt.unit)
		if err != nil {
			t.Fatalf("ParseValue(%q): %v", tt.input, err)
		}
		if q.SI() != tt.want {
			t.Errorf("ParseValue(%q).SI() = %v, want %v", tt.input, q.SI(), tt.want)
		}
	}
}
