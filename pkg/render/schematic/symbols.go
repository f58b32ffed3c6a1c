package schematic

import (
	"fmt"
	"math"

	"github.com/matzehuels/mieza/pkg/circuit"
)

// symbol is a component body drawn in template coordinates: unrotated, with
// the origin at the component centre. Pins outside the body box get a lead
// from the pin to the box edge.
type symbol struct {
	body  string // SVG path data
	box   extent
	glyph string // text centred in the body, if any
}

// extent is the distance from the origin to each side of a body.
type extent struct {
	L, R, T, B float64
}

func sym(body string, l, r, t, b float64) symbol {
	return symbol{body: body, box: extent{l, r, t, b}}
}

func (s symbol) withGlyph(g string) symbol {
	s.glyph = g
	return s
}

// circle returns path data for a full circle.
func circle(cx, cy, r float64) string {
	return fmt.Sprintf("M %s %s A %s %s 0 1 0 %s %s A %s %s 0 1 0 %s %s ",
		num(cx-r), num(cy), num(r), num(r), num(cx+r), num(cy),
		num(r), num(r), num(cx-r), num(cy))
}

func rect(l, t, r, b float64) string {
	return fmt.Sprintf("M %s %s H %s V %s H %s Z ", num(l), num(t), num(r), num(b), num(l))
}

const (
	zigzagH  = "M -12 0 L -10 -5 L -6 5 L -2 -5 L 2 5 L 6 -5 L 10 5 L 12 0 "
	coilH    = "M -12 0 A 3 3 0 0 1 -6 0 A 3 3 0 0 1 0 0 A 3 3 0 0 1 6 0 A 3 3 0 0 1 12 0 "
	sineWave = "M -6 0 Q -3 -6 0 0 T 6 0 "
	bubble   = "M 12 0 A 3 3 0 1 0 18 0 A 3 3 0 1 0 12 0 "
	andBody  = "M -12 -12 H 0 A 12 12 0 0 1 0 12 H -12 Z "
	orBody   = "M -12 -12 Q 4 -12 12 0 Q 4 12 -12 12 Q -6 0 -12 -12 Z "
	diodeTri = "M -8 -6 H 8 L 0 6 Z "
)

// symbolFor returns the body of kind in the given style. size is the
// unrotated template footprint, used for box-shaped parts.
func symbolFor(kind circuit.Kind, style Style, size circuit.Size) symbol {
	boxed := style != StyleIEEE

	switch kind {
	// Passive
	case circuit.KindResistor:
		if boxed {
			return sym(rect(-12, -4, 12, 4), 12, 12, 4, 4)
		}
		return sym(zigzagH, 12, 12, 5, 5)
	case circuit.KindCapacitor:
		return sym("M -8 -3 H 8 M -8 3 H 8 ", 8, 8, 3, 3)
	case circuit.KindInductor:
		if boxed {
			return sym(rect(-12, -3, 12, 3)+"M -12 0 H 12 ", 12, 12, 3, 3)
		}
		return sym(coilH, 12, 12, 3, 3)
	case circuit.KindPotentiometer:
		wiper := "M 8 0 H -3 M 1 -3 L -3 0 L 1 3 "
		if boxed {
			return sym("M -8 -10 V -8 M -8 8 V 10 "+rect(-11, -8, -5, 8)+wiper, 8, 8, 10, 10)
		}
		return sym("M -8 -10 V -8 L -12 -6 L -4 -2 L -12 2 L -4 6 L -8 8 V 10 "+wiper, 8, 8, 10, 10)
	case circuit.KindTransformer:
		return sym("M -12 -10 H -8 A 3.33 3.33 0 0 1 -8 -3.33 A 3.33 3.33 0 0 1 -8 3.33 A 3.33 3.33 0 0 1 -8 10 H -12 "+
			"M 12 -10 H 8 A 3.33 3.33 0 0 0 8 -3.33 A 3.33 3.33 0 0 0 8 3.33 A 3.33 3.33 0 0 0 8 10 H 12 "+
			"M -2 -10 V 10 M 2 -10 V 10 ", 12, 12, 10, 10)

	// Sources
	case circuit.KindDCVoltage:
		if boxed {
			return sym(circle(0, 0, 10)+"M 0 -10 V 10 ", 10, 10, 10, 10)
		}
		return sym(circle(0, 0, 10)+"M 0 -7 V -1 M -3 -4 H 3 M -3 5 H 3 ", 10, 10, 10, 10)
	case circuit.KindDCCurrent:
		if boxed {
			return sym(circle(0, 0, 10)+"M -10 0 H 10 ", 10, 10, 10, 10)
		}
		return sym(circle(0, 0, 10)+"M 0 6 V -6 M -3 -3 L 0 -6 L 3 -3 ", 10, 10, 10, 10)
	case circuit.KindACVoltage:
		return sym(circle(0, 0, 10)+sineWave, 10, 10, 10, 10)
	case circuit.KindACCurrent:
		return sym(circle(0, 0, 10)+"M -6 3 Q -3 -3 0 3 T 6 3 M 0 0 V -7 M -2 -5 L 0 -7 L 2 -5 ", 10, 10, 10, 10)
	case circuit.KindSignalGenerator:
		return sym(circle(0, 0, 10)+sineWave, 10, 10, 10, 10)
	case circuit.KindBattery:
		return sym("M -4 -9 V 9 M 4 -5 V 5 M -9 -7 H -6 M -7.5 -8.5 V -5.5 ", 4, 4, 9, 9)

	// Semiconductors
	case circuit.KindDiode:
		return sym(diodeTri+"M -8 6 H 8 ", 8, 8, 6, 6)
	case circuit.KindZenerDiode:
		return sym(diodeTri+"M -10 8 L -8 6 H 8 L 10 4 ", 8, 8, 6, 6)
	case circuit.KindSchottkyDiode:
		return sym(diodeTri+"M -8 4 V 6 H 8 V 8 M -8 4 H -6 M 8 8 H 6 ", 8, 8, 6, 6)
	case circuit.KindLED:
		return sym(diodeTri+"M -8 6 H 8 M 10 -2 L 16 -8 M 13 -8 H 16 V -5 M 10 4 L 16 -2 M 13 -2 H 16 V 1 ", 8, 8, 6, 6)
	case circuit.KindNPNTransistor:
		return transistor(style, "M -4 -4 L 10 -10 M -4 4 L 10 10 M 4 5 L 10 10 L 3 9 ")
	case circuit.KindPNPTransistor:
		return transistor(style, "M -4 -4 L 10 -10 M -4 4 L 10 10 M 3 -9 L -4 -4 L 4 -5 ")
	case circuit.KindNMOSTransistor:
		return mosfet(style, "M -3 0 H 4 V 7 M 1 -3 L -3 0 L 1 3 ", "M -10 0 H -6 ")
	case circuit.KindPMOSTransistor:
		return mosfet(style, "M -3 0 H 4 V -7 M 0 -3 L 4 0 L 0 3 ", "M -10 0 H -9 "+circle(-7.5, 0, 1.5))
	case circuit.KindJFET:
		s := sym("M -10 0 H -3 M -3 -9 V 9 M -3 -7 H 10 V -10 M -3 7 H 10 V 10 M -8 -3 L -4 0 L -8 3 ", 10, 10, 10, 10)
		if boxed {
			s.body += circle(1, 0, 13)
		}
		return s

	// Integrated circuits and logic
	case circuit.KindOpAmp:
		return sym("M -15 -20 L 20 0 L -15 20 Z M -12 -10 H -6 M -9 -13 V -7 M -12 10 H -6 ", 15, 20, 11.43, 11.43)
	case circuit.KindComparator:
		return sym("M -15 -15 L 20 0 L -15 15 Z M -12 -10 H -6 M -9 -13 V -7 M -12 10 H -6 M 0 -3 H 4 V 3 H 8 ", 15, 20, 8.57, 8.57)
	case circuit.KindAndGate:
		return gate(style, andBody, "&", false)
	case circuit.KindNandGate:
		return gate(style, andBody, "&", true)
	case circuit.KindOrGate:
		return gate(style, orBody, "≥1", false)
	case circuit.KindNorGate:
		return gate(style, orBody, "≥1", true)
	case circuit.KindXorGate:
		return gate(style, orBody+"M -16 -12 Q -10 0 -16 12 ", "=1", false)
	case circuit.KindNotGate:
		if boxed {
			return sym(rect(-10, -8, 8, 8)+"M 8 0 A 2.5 2.5 0 1 0 13 0 A 2.5 2.5 0 1 0 8 0 ", 10, 13, 8, 8).withGlyph("1")
		}
		return sym("M -10 -8 L 8 0 L -10 8 Z M 8 0 A 2.5 2.5 0 1 0 13 0 A 2.5 2.5 0 1 0 8 0 ", 10, 13, 8, 8)
	case circuit.KindTimer555:
		return chip(size, "555")
	case circuit.KindFlipFlop:
		s := chip(size, "FF")
		s.body += "M -15 6 L -10 9 L -15 12 "
		return s
	case circuit.KindCounter:
		return chip(size, "CTR")
	case circuit.KindMultiplexer:
		if boxed {
			return chip(size, "MUX")
		}
		return sym("M -20 -25 L 20 -15 V 15 L -20 25 Z ", 20, 20, 25, 25).withGlyph("MUX")

	// Analog and electromechanical
	case circuit.KindVoltageRegulator:
		return chip(size, "REG")
	case circuit.KindCrystal:
		return sym(rect(-6, -4, 6, 4)+"M -7 -7 H 7 M -7 7 H 7 ", 7, 7, 7, 7)
	case circuit.KindRelay:
		return chip(size, "K")
	case circuit.KindSPSTSwitch:
		return sym("M -8 0 L 6 -7 "+circle(8, 0, 1), 8, 8, 0, 0)
	case circuit.KindSPDTSwitch:
		return sym("M -8 0 L 7 -8 "+circle(8, -10, 1)+circle(8, 10, 1), 8, 8, 10, 10)
	case circuit.KindDPDTSwitch:
		return sym("M -10 -5 L 9 -13 M -10 5 L 9 -3 M -1 -9 V 1 ", 10, 10, 15, 15)
	case circuit.KindFuse:
		if style == StyleDIN {
			return sym(rect(-9, -3, 9, 3)+"M -5 -3 V 3 M 5 -3 V 3 ", 9, 9, 3, 3)
		}
		if boxed {
			return sym(rect(-9, -3, 9, 3)+"M -9 0 H 9 ", 9, 9, 3, 3)
		}
		return sym("M -9 0 A 4.5 4.5 0 0 1 0 0 A 4.5 4.5 0 0 0 9 0 ", 9, 9, 0, 0)

	// Digital and interconnect
	case circuit.KindMicrocontroller:
		return chip(size, "MCU")
	case circuit.KindConnector:
		w, h := size.Width/2, size.Height/2
		return sym(rect(-w, -h, w, h), w, w, h, h)
	case circuit.KindTestPoint:
		return sym(circle(0, 0, 4), 4, 4, 4, 4)

	// Measurement
	case circuit.KindAmmeter:
		return sym(circle(0, 0, 10), 10, 10, 10, 10).withGlyph("A")
	case circuit.KindVoltmeter:
		return sym(circle(0, 0, 10), 10, 10, 10, 10).withGlyph("V")
	case circuit.KindOscilloscopeProbe:
		return sym("M -4 -12 H 4 L 6 8 H -6 Z M -6 14 H 6 M 0 8 V 14 ", 6, 6, 12, 14)

	// Miscellaneous
	case circuit.KindAntenna:
		return sym("M 0 -10 V 8 M -8 -10 L 0 0 L 8 -10 ", 8, 8, 10, 8)
	case circuit.KindSpeaker:
		return sym(rect(-8, -5, -2, 5)+"M -2 -5 L 6 -11 V 11 L -2 5 ", 8, 6, 5, 5)
	case circuit.KindMicrophone:
		return sym(circle(0, 0, 6)+"M -6 -6 V 6 ", 6, 6, 6, 6)
	case circuit.KindMotor:
		return sym(circle(0, 0, 10), 10, 10, 10, 10).withGlyph("M")
	case circuit.KindSignalGround:
		return sym("M -10 0 H 10 L 0 8 Z ", 10, 10, 0, 8)
	case circuit.KindChassisGround:
		return sym("M -10 0 H 10 M -10 0 L -14 6 M 0 0 L -4 6 M 10 0 L 6 6 ", 10, 10, 0, 6)
	case circuit.KindEarthGround:
		if style == StyleDIN {
			return sym("M -10 0 H 10 M -10 1.5 H 10 ", 10, 10, 0, 2)
		}
		return sym("M -10 0 H 10 M -6 4 H 6 M -2 8 H 2 ", 10, 10, 0, 8)
	}

	w, h := size.Width/2, size.Height/2
	return sym(rect(-w, -h, w, h), w, w, h, h).withGlyph("?")
}

func transistor(style Style, legs string) symbol {
	s := sym("M -10 0 H -4 M -4 -8 V 8 "+legs, 10, 10, 10, 10)
	if style != StyleIEEE {
		s.body += circle(1, 0, 13)
	}
	return s
}

func mosfet(style Style, channel, gate string) symbol {
	s := sym(gate+"M -6 -8 V 8 M -3 -9 V -5 M -3 -2 V 2 M -3 5 V 9 M -3 -7 H 10 V -10 M -3 7 H 10 V 10 "+channel,
		10, 10, 10, 10)
	if style != StyleIEEE {
		s.body += circle(1, 0, 13)
	}
	return s
}

// gate draws a two-input gate: the distinctive shape for IEEE, a labeled box
// otherwise. Inverting outputs get a bubble.
func gate(style Style, shape, glyph string, inverted bool) symbol {
	right := 12.0
	var s symbol
	if style == StyleIEEE {
		s = sym(shape, 12, right, 12, 12)
	} else {
		s = sym(rect(-12, -12, 12, 12), 12, right, 12, 12).withGlyph(glyph)
	}
	if inverted {
		s.body += bubble
		s.box.R = 18
	}
	return s
}

// chip draws an IC as a box inset from its footprint, leaving room for leads.
func chip(size circuit.Size, glyph string) symbol {
	w := math.Max(size.Width/2-10, 5)
	h := math.Max(size.Height/2-4, 5)
	return sym(rect(-w, -h, w, h), w, w, h, h).withGlyph(glyph)
}

// lead returns the path segment from a pin at local offset p to the body box,
// or "" if the pin lies on or inside it.
func (s symbol) lead(p circuit.Point) string {
	x, y := p.X, p.Y
	ex, ey := x, y
	switch {
	case x < -s.box.L:
		ex = -s.box.L
	case x > s.box.R:
		ex = s.box.R
	}
	if ex == x {
		switch {
		case y < -s.box.T:
			ey = -s.box.T
		case y > s.box.B:
			ey = s.box.B
		}
	}
	if ex == x && ey == y {
		return ""
	}
	return fmt.Sprintf("M %s %s L %s %s ", num(x), num(y), num(ex), num(ey))
}
