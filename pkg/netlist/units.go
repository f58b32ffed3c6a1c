package netlist

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
)

// Unit is the physical quantity a component value is expressed in.
type Unit int

const (
	UnitResistance Unit = iota
	UnitCapacitance
	UnitInductance
	UnitVoltage
	UnitCurrent
)

// symbols lists accepted unit spellings, longest first.
var symbols = map[Unit][]string{
	UnitResistance:  {"ohms", "ohm", "Ω", "R"},
	UnitCapacitance: {"F", "f"},
	UnitInductance:  {"H", "h"},
	UnitVoltage:     {"V", "v"},
	UnitCurrent:     {"A", "a"},
}

func (u Unit) String() string {
	switch u {
	case UnitResistance:
		return "resistance"
	case UnitCapacitance:
		return "capacitance"
	case UnitInductance:
		return "inductance"
	case UnitVoltage:
		return "voltage"
	case UnitCurrent:
		return "current"
	}
	return "unknown"
}

// UnitOf returns the unit a kind's value is written in. Kinds whose value is
// free text (part numbers, colors) report false.
func UnitOf(k circuit.Kind) (Unit, bool) {
	switch k {
	case circuit.KindResistor, circuit.KindPotentiometer:
		return UnitResistance, true
	case circuit.KindCapacitor:
		return UnitCapacitance, true
	case circuit.KindInductor:
		return UnitInductance, true
	case circuit.KindDCVoltage, circuit.KindACVoltage, circuit.KindBattery:
		return UnitVoltage, true
	case circuit.KindDCCurrent, circuit.KindACCurrent:
		return UnitCurrent, true
	}
	return 0, false
}

// prefix is an SI multiplier and its SPICE spelling. SPICE reads "M" as
// milli, so mega is written "Meg".
type prefix struct {
	scale float64
	spice string
}

var prefixes = map[string]prefix{
	"p":   {1e-12, "p"},
	"n":   {1e-9, "n"},
	"u":   {1e-6, "u"},
	"µ":   {1e-6, "u"},
	"μ":   {1e-6, "u"},
	"m":   {1e-3, "m"},
	"k":   {1e3, "k"},
	"K":   {1e3, "k"},
	"M":   {1e6, "Meg"},
	"Meg": {1e6, "Meg"},
	"meg": {1e6, "Meg"},
	"MEG": {1e6, "Meg"},
	"G":   {1e9, "G"},
}

// rkm matches resistor-code values like 4k7 or 2R2, where the multiplier
// letter stands in for the decimal point.
var rkm = regexp.MustCompile(`^(\d+)([RKkM])(\d+)$`)

// Quantity is a parsed component value.
type Quantity struct {
	Mantissa float64 // number as written
	Prefix   string  // SPICE prefix, "" for none
	Scale    float64 // multiplier of Prefix
}

// SI returns the value in base units.
func (q Quantity) SI() float64 {
	if q.Scale == 0 {
		return q.Mantissa
	}
	return q.Mantissa * q.Scale
}

// SPICE formats the quantity the way SPICE expects: bare number plus prefix.
func (q Quantity) SPICE() string {
	return strconv.FormatFloat(q.Mantissa, 'f', -1, 64) + q.Prefix
}

// ParseValue parses a component value like "10k", "4.7uF", "5V", "4k7", or
// "100Ω" for the given unit. Unparseable values fail with INVALID_INPUT.
func ParseValue(s string, u Unit) (Quantity, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return Quantity{}, errors.New(errors.ErrCodeInvalidInput, "empty %s value", u)
	}

	if u == UnitResistance {
		if m := rkm.FindStringSubmatch(v); m != nil {
			num, err := strconv.ParseFloat(m[1]+"."+m[3], 64)
			if err == nil {
				if m[2] == "R" {
					return Quantity{Mantissa: num, Scale: 1}, nil
				}
				p := prefixes[m[2]]
				return Quantity{Mantissa: num, Prefix: p.spice, Scale: p.scale}, nil
			}
		}
	}

	v = stripUnit(v, u)
	num, pfx := splitPrefix(v)
	mantissa, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Quantity{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s value %q", u, s)
	}
	if pfx == "" {
		return Quantity{Mantissa: mantissa, Scale: 1}, nil
	}
	p, ok := prefixes[pfx]
	if !ok {
		return Quantity{}, errors.New(errors.ErrCodeInvalidInput, "invalid %s value %q: unknown prefix %q", u, s, pfx)
	}
	return Quantity{Mantissa: mantissa, Prefix: p.spice, Scale: p.scale}, nil
}

// Normalize rewrites a component value in SPICE notation.
func Normalize(s string, u Unit) (string, error) {
	q, err := ParseValue(s, u)
	if err != nil {
		return "", err
	}
	return q.SPICE(), nil
}

func stripUnit(v string, u Unit) string {
	for _, sym := range symbols[u] {
		if rest, ok := strings.CutSuffix(v, sym); ok && rest != "" {
			return strings.TrimSpace(rest)
		}
	}
	return v
}

// splitPrefix separates the trailing SI prefix from the number.
func splitPrefix(v string) (num, pfx string) {
	for _, p := range []string{"Meg", "meg", "MEG"} {
		if rest, ok := strings.CutSuffix(v, p); ok {
			return strings.TrimSpace(rest), p
		}
	}
	i := len(v)
	for i > 0 {
		c := v[i-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		i--
	}
	// Multi-byte µ and μ end up whole in the suffix.
	return v[:i], strings.TrimSpace(v[i:])
}
