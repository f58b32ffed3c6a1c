package circuit

import (
	"fmt"
	"strings"

	"github.com/matzehuels/mieza/pkg/errors"
)

// Kind identifies a component type. The set is closed: every value between
// KindResistor and KindEarthGround has a geometry template, and the zero value
// KindInvalid never does.
type Kind int

const (
	KindInvalid Kind = iota

	// Passive
	KindResistor
	KindCapacitor
	KindInductor
	KindPotentiometer
	KindTransformer

	// Sources
	KindDCVoltage
	KindDCCurrent
	KindACVoltage
	KindACCurrent
	KindSignalGenerator

	// Semiconductors
	KindDiode
	KindZenerDiode
	KindSchottkyDiode
	KindLED
	KindNPNTransistor
	KindPNPTransistor
	KindNMOSTransistor
	KindPMOSTransistor
	KindJFET

	// Integrated circuits and logic
	KindOpAmp
	KindComparator
	KindTimer555
	KindAndGate
	KindOrGate
	KindNotGate
	KindNandGate
	KindNorGate
	KindXorGate
	KindFlipFlop
	KindCounter
	KindMultiplexer

	// Analog and electromechanical
	KindVoltageRegulator
	KindCrystal
	KindRelay
	KindSPSTSwitch
	KindSPDTSwitch
	KindDPDTSwitch
	KindFuse
	KindBattery

	// Digital and interconnect
	KindMicrocontroller
	KindConnector
	KindTestPoint

	// Measurement
	KindAmmeter
	KindVoltmeter
	KindOscilloscopeProbe

	// Miscellaneous
	KindAntenna
	KindSpeaker
	KindMicrophone
	KindMotor
	KindSignalGround
	KindChassisGround
	KindEarthGround

	kindCount
)

// kindNames holds the canonical (serialized) name of each kind.
var kindNames = [kindCount]string{
	KindInvalid:           "invalid",
	KindResistor:          "resistor",
	KindCapacitor:         "capacitor",
	KindInductor:          "inductor",
	KindPotentiometer:     "potentiometer",
	KindTransformer:       "transformer",
	KindDCVoltage:         "dc_voltage",
	KindDCCurrent:         "dc_current",
	KindACVoltage:         "ac_voltage",
	KindACCurrent:         "ac_current",
	KindSignalGenerator:   "signal_generator",
	KindDiode:             "diode",
	KindZenerDiode:        "zener_diode",
	KindSchottkyDiode:     "schottky_diode",
	KindLED:               "led",
	KindNPNTransistor:     "npn_transistor",
	KindPNPTransistor:     "pnp_transistor",
	KindNMOSTransistor:    "nmos_transistor",
	KindPMOSTransistor:    "pmos_transistor",
	KindJFET:              "jfet",
	KindOpAmp:             "op_amp",
	KindComparator:        "comparator",
	KindTimer555:          "timer_555",
	KindAndGate:           "and_gate",
	KindOrGate:            "or_gate",
	KindNotGate:           "not_gate",
	KindNandGate:          "nand_gate",
	KindNorGate:           "nor_gate",
	KindXorGate:           "xor_gate",
	KindFlipFlop:          "flip_flop",
	KindCounter:           "counter",
	KindMultiplexer:       "multiplexer",
	KindVoltageRegulator:  "voltage_regulator",
	KindCrystal:           "crystal",
	KindRelay:             "relay",
	KindSPSTSwitch:        "spst_switch",
	KindSPDTSwitch:        "spdt_switch",
	KindDPDTSwitch:        "dpdt_switch",
	KindFuse:              "fuse",
	KindBattery:           "battery",
	KindMicrocontroller:   "microcontroller",
	KindConnector:         "connector",
	KindTestPoint:         "test_point",
	KindAmmeter:           "ammeter",
	KindVoltmeter:         "voltmeter",
	KindOscilloscopeProbe: "oscilloscope_probe",
	KindAntenna:           "antenna",
	KindSpeaker:           "speaker",
	KindMicrophone:        "microphone",
	KindMotor:             "motor",
	KindSignalGround:      "signal_ground",
	KindChassisGround:     "chassis_ground",
	KindEarthGround:       "earth_ground",
}

// kindAliases maps the short forms accepted in circuit descriptions.
var kindAliases = map[string]Kind{
	"r":         KindResistor,
	"c":         KindCapacitor,
	"l":         KindInductor,
	"pot":       KindPotentiometer,
	"t":         KindTransformer,
	"dc_v":      KindDCVoltage,
	"vdc":       KindDCVoltage,
	"dc_i":      KindDCCurrent,
	"idc":       KindDCCurrent,
	"ac_v":      KindACVoltage,
	"vac":       KindACVoltage,
	"ac_i":      KindACCurrent,
	"iac":       KindACCurrent,
	"sig_gen":   KindSignalGenerator,
	"sg":        KindSignalGenerator,
	"d":         KindDiode,
	"zener":     KindZenerDiode,
	"zd":        KindZenerDiode,
	"schottky":  KindSchottkyDiode,
	"sd":        KindSchottkyDiode,
	"npn":       KindNPNTransistor,
	"pnp":       KindPNPTransistor,
	"nmos":      KindNMOSTransistor,
	"pmos":      KindPMOSTransistor,
	"opamp":     KindOpAmp,
	"comp":      KindComparator,
	"555_timer": KindTimer555,
	"555":       KindTimer555,
	"and":       KindAndGate,
	"or":        KindOrGate,
	"not":       KindNotGate,
	"inverter":  KindNotGate,
	"nand":      KindNandGate,
	"nor":       KindNorGate,
	"xor":       KindXorGate,
	"ff":        KindFlipFlop,
	"mux":       KindMultiplexer,
	"regulator": KindVoltageRegulator,
	"reg":       KindVoltageRegulator,
	"xtal":      KindCrystal,
	"spst":      KindSPSTSwitch,
	"spdt":      KindSPDTSwitch,
	"dpdt":      KindDPDTSwitch,
	"bat":       KindBattery,
	"mcu":       KindMicrocontroller,
	"u":         KindMicrocontroller,
	"conn":      KindConnector,
	"tp":        KindTestPoint,
	"am":        KindAmmeter,
	"vm":        KindVoltmeter,
	"oscope":    KindOscilloscopeProbe,
	"probe":     KindOscilloscopeProbe,
	"mic":       KindMicrophone,
	"sgnd":      KindSignalGround,
	"ground":    KindSignalGround,
	"gnd":       KindSignalGround,
	"cgnd":      KindChassisGround,
	"egnd":      KindEarthGround,
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, int(kindCount)+len(kindAliases))
	for k := KindInvalid + 1; k < kindCount; k++ {
		m[kindNames[k]] = k
	}
	for alias, k := range kindAliases {
		m[alias] = k
	}
	return m
}()

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a canonical kind name or alias, case-insensitively.
// Unknown names fail with ErrCodeUnknownComponentType.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return KindInvalid, errors.New(errors.ErrCodeUnknownComponentType, "unknown component type: %q", s)
}

// Valid reports whether k is a member of the closed kind set.
func (k Kind) Valid() bool { return k > KindInvalid && k < kindCount }

// String returns the canonical name, or "kind(N)" for values outside the set.
func (k Kind) String() string {
	if k >= KindInvalid && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsGround reports whether k is one of the ground reference symbols.
// Every pin of a ground component is forced onto net "0".
func (k Kind) IsGround() bool {
	return k == KindSignalGround || k == KindChassisGround || k == KindEarthGround
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name in
// JSON and YAML.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.New(errors.ErrCodeUnknownComponentType, "cannot marshal %s", k)
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
