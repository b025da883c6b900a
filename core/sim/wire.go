package sim

import "github.com/12dit152/solarsim/core/model"

const (
	// copperResistivity is ohm*mm2/m at 20C.
	copperResistivity = 0.0172
	feetToMeters      = 0.3048
	// ampsPerMM2 is the fixed ampacity heuristic: 5 A per mm2 of copper.
	ampsPerMM2 = 5.0

	// The controller<->battery and battery<->inverter legs are assumed to
	// be short fixed runs; the AC leg is a fixed 230 V household run. Only
	// the solar leg uses the user's wiring configuration.
	shortRunFt = 5.0
	acVoltage  = 230.0
	acRunFt    = 20.0
	acGaugeMM2 = 2.5
)

// AnalyzeWire evaluates one conductor run carrying powerW at the given
// voltage. With no power or no voltage there is no current and nothing to
// evaluate, so the result is all zero and safe.
func AnalyzeWire(powerW, voltage, lengthFt, gaugeMM2 float64) model.WireSegment {
	if powerW <= 0 || voltage <= 0 {
		return model.WireSegment{IsSafe: true}
	}
	current := powerW / voltage
	lengthM := lengthFt * feetToMeters
	// Round trip: the return conductor doubles the run.
	resistance := copperResistivity * lengthM * 2 / gaugeMM2
	return model.WireSegment{
		CurrentA:     current,
		PowerLossW:   current * current * resistance,
		VoltageDropV: current * resistance,
		IsSafe:       current <= gaugeMM2*ampsPerMM2,
	}
}
