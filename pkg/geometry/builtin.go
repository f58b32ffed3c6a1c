package geometry

import (
	"fmt"

	"github.com/matzehuels/mieza/pkg/circuit"
)

func p(name string, x, y float64, dir Direction, class Class) PinTemplate {
	return PinTemplate{Name: name, Offset: circuit.Point{X: x, Y: y}, Direction: dir, Class: class}
}

func tpl(k circuit.Kind, w, h float64, pins ...PinTemplate) Template {
	return Template{Kind: k, Size: circuit.Size{Width: w, Height: h}, Pins: pins}
}

// Common pin layouts shared by several kinds.
func horizontal2(k circuit.Kind, half, w, h float64, dir Direction) Template {
	return tpl(k, w, h,
		p("1", -half, 0, dir, ClassAnalog),
		p("2", half, 0, dir, ClassAnalog),
	)
}

func vertical2(k circuit.Kind, w float64) Template {
	return tpl(k, w, 40,
		p("1", 0, -20, DirPassive, ClassAnalog),
		p("2", 0, 20, DirPassive, ClassAnalog),
	)
}

func diodeLike(k circuit.Kind) Template {
	return tpl(k, 20, 40,
		p("A", 0, -20, DirInput, ClassAnalog),
		p("K", 0, 20, DirOutput, ClassAnalog),
	)
}

func dcSource(k circuit.Kind) Template {
	return tpl(k, 20, 40,
		p("+", 0, -20, DirPower, ClassPower),
		p("-", 0, 20, DirPower, ClassGround),
	)
}

func gate2(k circuit.Kind, inX, outX, w float64) Template {
	return tpl(k, w, 30,
		p("A", inX, -10, DirInput, ClassDigital),
		p("B", inX, 10, DirInput, ClassDigital),
		p("Y", outX, 0, DirOutput, ClassDigital),
	)
}

// threeTerminal lays out a control pin on the left and two channel pins on
// the right. Pin order is fixed; flipped only swaps which channel pin sits on
// top.
func threeTerminal(k circuit.Kind, ctrl, first, second string, flipped bool) Template {
	y := 10.0
	if flipped {
		y = -y
	}
	return tpl(k, 40, 30,
		p(ctrl, -20, 0, DirInput, ClassAnalog),
		p(first, 20, -y, DirOutput, ClassAnalog),
		p(second, 20, y, DirOutput, ClassAnalog),
	)
}

func groundSymbol(k circuit.Kind) Template {
	return tpl(k, 20, 15, p("GND", 0, -15, DirPower, ClassGround))
}

func sensorWithGround(k circuit.Kind, out string) Template {
	return tpl(k, 40, 20,
		p(out, 20, 0, DirOutput, ClassAnalog),
		p("GND", -20, 0, DirPower, ClassGround),
	)
}

// builtin is the exhaustive kind → template table. Adding a kind without a
// case here panics in Standard, which the registry tests catch.
func builtin(k circuit.Kind) Template {
	switch k {
	// Passive
	case circuit.KindResistor:
		return horizontal2(k, 20, 40, 10, DirPassive)
	case circuit.KindCapacitor:
		return tpl(k, 10, 40,
			p("1", 0, -20, DirPassive, ClassAnalog),
			p("2", 0, 20, DirPassive, ClassAnalog),
		)
	case circuit.KindInductor:
		return horizontal2(k, 20, 40, 15, DirPassive)
	case circuit.KindPotentiometer:
		return tpl(k, 40, 25,
			p("1", -20, -10, DirPassive, ClassAnalog),
			p("2", -20, 10, DirPassive, ClassAnalog),
			p("W", 20, 0, DirPassive, ClassAnalog),
		)
	case circuit.KindTransformer:
		return tpl(k, 60, 30,
			p("P1", -30, -10, DirPassive, ClassAnalog),
			p("P2", -30, 10, DirPassive, ClassAnalog),
			p("S1", 30, -10, DirPassive, ClassAnalog),
			p("S2", 30, 10, DirPassive, ClassAnalog),
		)

	// Sources
	case circuit.KindDCVoltage, circuit.KindDCCurrent:
		return dcSource(k)
	case circuit.KindACVoltage, circuit.KindACCurrent:
		return vertical2(k, 20)
	case circuit.KindSignalGenerator:
		return sensorWithGround(k, "OUT")

	// Semiconductors
	case circuit.KindDiode, circuit.KindZenerDiode, circuit.KindSchottkyDiode, circuit.KindLED:
		return diodeLike(k)
	case circuit.KindNPNTransistor:
		return threeTerminal(k, "B", "C", "E", false)
	case circuit.KindPNPTransistor:
		return threeTerminal(k, "B", "C", "E", true)
	case circuit.KindNMOSTransistor, circuit.KindJFET:
		return threeTerminal(k, "G", "D", "S", false)
	case circuit.KindPMOSTransistor:
		return threeTerminal(k, "G", "D", "S", true)

	// Integrated circuits and logic
	case circuit.KindOpAmp:
		return tpl(k, 50, 50,
			p("+", -25, -10, DirInput, ClassAnalog),
			p("-", -25, 10, DirInput, ClassAnalog),
			p("OUT", 25, 0, DirOutput, ClassAnalog),
			p("V+", 0, -25, DirPower, ClassPower),
			p("V-", 0, 25, DirPower, ClassGround),
		)
	case circuit.KindComparator:
		return tpl(k, 50, 30,
			p("+", -25, -10, DirInput, ClassAnalog),
			p("-", -25, 10, DirInput, ClassAnalog),
			p("OUT", 25, 0, DirOutput, ClassDigital),
		)
	case circuit.KindTimer555:
		return tpl(k, 60, 50,
			p("GND", 0, 25, DirPower, ClassGround),
			p("TRIG", -30, -20, DirInput, ClassAnalog),
			p("OUT", 30, -20, DirOutput, ClassDigital),
			p("RESET", 30, -10, DirInput, ClassDigital),
			p("CTRL", 30, 0, DirInput, ClassAnalog),
			p("THR", -30, 0, DirInput, ClassAnalog),
			p("DIS", -30, 10, DirInput, ClassDigital),
			p("VCC", 0, -25, DirPower, ClassPower),
		)
	case circuit.KindAndGate, circuit.KindOrGate:
		return gate2(k, -20, 20, 40)
	case circuit.KindNandGate, circuit.KindNorGate:
		return gate2(k, -20, 25, 45)
	case circuit.KindXorGate:
		return gate2(k, -25, 20, 45)
	case circuit.KindNotGate:
		return tpl(k, 40, 20,
			p("A", -20, 0, DirInput, ClassDigital),
			p("Y", 20, 0, DirOutput, ClassDigital),
		)
	case circuit.KindFlipFlop:
		return tpl(k, 50, 40,
			p("D", -25, -15, DirInput, ClassDigital),
			p("CLK", -25, -5, DirInput, ClassDigital),
			p("CLR", -25, 5, DirInput, ClassDigital),
			p("Q", 25, -5, DirOutput, ClassDigital),
			p("QN", 25, 5, DirOutput, ClassDigital),
		)
	case circuit.KindCounter:
		return tpl(k, 60, 50,
			p("CLK", -30, -20, DirInput, ClassDigital),
			p("RST", -30, -10, DirInput, ClassDigital),
			p("Q0", 30, -15, DirOutput, ClassDigital),
			p("Q1", 30, -5, DirOutput, ClassDigital),
			p("Q2", 30, 5, DirOutput, ClassDigital),
			p("Q3", 30, 15, DirOutput, ClassDigital),
		)
	case circuit.KindMultiplexer:
		return tpl(k, 60, 50,
			p("I0", -30, -20, DirInput, ClassDigital),
			p("I1", -30, -10, DirInput, ClassDigital),
			p("I2", -30, 0, DirInput, ClassDigital),
			p("I3", -30, 10, DirInput, ClassDigital),
			p("SEL0", -30, 20, DirInput, ClassDigital),
			p("SEL1", -20, 20, DirInput, ClassDigital),
			p("OUT", 30, 0, DirOutput, ClassDigital),
		)

	// Analog and electromechanical
	case circuit.KindVoltageRegulator:
		return tpl(k, 40, 30,
			p("IN", -20, 0, DirInput, ClassAnalog),
			p("OUT", 20, 0, DirOutput, ClassAnalog),
			p("GND", 0, 20, DirPower, ClassGround),
		)
	case circuit.KindCrystal:
		return vertical2(k, 15)
	case circuit.KindRelay:
		return tpl(k, 50, 40,
			p("COIL1", -25, -15, DirInput, ClassAnalog),
			p("COIL2", -25, 15, DirInput, ClassAnalog),
			p("COM", 25, -5, DirPassive, ClassAnalog),
			p("NO", 25, -15, DirPassive, ClassAnalog),
			p("NC", 25, 5, DirPassive, ClassAnalog),
		)
	case circuit.KindSPSTSwitch:
		return horizontal2(k, 15, 30, 20, DirPassive)
	case circuit.KindSPDTSwitch:
		return tpl(k, 30, 30,
			p("COM", -15, 0, DirPassive, ClassAnalog),
			p("NO", 15, -10, DirPassive, ClassAnalog),
			p("NC", 15, 10, DirPassive, ClassAnalog),
		)
	case circuit.KindDPDTSwitch:
		return tpl(k, 40, 40,
			p("COM1", -20, -5, DirPassive, ClassAnalog),
			p("NO1", 20, -15, DirPassive, ClassAnalog),
			p("NC1", 20, 5, DirPassive, ClassAnalog),
			p("COM2", -20, 5, DirPassive, ClassAnalog),
			p("NO2", 20, -5, DirPassive, ClassAnalog),
			p("NC2", 20, 15, DirPassive, ClassAnalog),
		)
	case circuit.KindFuse:
		return horizontal2(k, 15, 30, 10, DirPassive)
	case circuit.KindBattery:
		return tpl(k, 30, 20,
			p("+", -15, 0, DirPower, ClassPower),
			p("-", 15, 0, DirPower, ClassPower),
		)

	// Digital and interconnect
	case circuit.KindMicrocontroller:
		return tpl(k, 80, 80,
			p("VCC", 0, -40, DirPower, ClassPower),
			p("GND", 0, 40, DirPower, ClassGround),
			p("PA0", -40, -30, DirBidirectional, ClassDigital),
			p("PA1", -40, -20, DirBidirectional, ClassDigital),
			p("PB0", -40, 20, DirBidirectional, ClassDigital),
			p("PB1", -40, 30, DirBidirectional, ClassDigital),
			p("XTAL1", 40, -30, DirInput, ClassAnalog),
			p("XTAL2", 40, -20, DirOutput, ClassAnalog),
		)
	case circuit.KindConnector:
		return tpl(k, 15, 50,
			p("1", 0, -20, DirPassive, ClassAnalog),
			p("2", 0, -10, DirPassive, ClassAnalog),
			p("3", 0, 0, DirPassive, ClassAnalog),
			p("4", 0, 10, DirPassive, ClassAnalog),
			p("5", 0, 20, DirPassive, ClassAnalog),
		)
	case circuit.KindTestPoint:
		return tpl(k, 10, 10, p("TP", 0, -10, DirPassive, ClassAnalog))

	// Measurement
	case circuit.KindAmmeter:
		return tpl(k, 40, 20,
			p("1", -20, 0, DirInput, ClassAnalog),
			p("2", 20, 0, DirOutput, ClassAnalog),
		)
	case circuit.KindVoltmeter:
		return tpl(k, 20, 40,
			p("POS", 0, -20, DirInput, ClassAnalog),
			p("NEG", 0, 20, DirInput, ClassAnalog),
		)
	case circuit.KindOscilloscopeProbe:
		return tpl(k, 20, 40,
			p("SIG", 0, -20, DirInput, ClassAnalog),
			p("GND", 0, 20, DirPower, ClassGround),
		)

	// Miscellaneous
	case circuit.KindAntenna:
		return tpl(k, 20, 20, p("ANT", 0, -20, DirBidirectional, ClassAnalog))
	case circuit.KindSpeaker, circuit.KindMotor:
		return tpl(k, 30, 30,
			p("1", -15, 0, DirOutput, ClassAnalog),
			p("2", 15, 0, DirOutput, ClassAnalog),
		)
	case circuit.KindMicrophone:
		return sensorWithGround(k, "OUT")
	case circuit.KindSignalGround, circuit.KindChassisGround, circuit.KindEarthGround:
		return groundSymbol(k)
	}
	panic(fmt.Sprintf("geometry: no built-in template for %s", k))
}
