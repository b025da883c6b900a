// Package sun maps a continuous slider angle to a (sun intensity, time of
// day) pair. Independent arithmetic, not part of the engine.
package sun

import "math"

// Position is the result of mapping a slider angle.
type Position struct {
	Intensity float64 `json:"intensity"`
	TimeOfDay float64 `json:"time_of_day"`
}

// FromAngle maps an angle in degrees (0 = sunrise side of the arc, 180 =
// sunset side) onto the simulated day: 0 degrees is 06:00, 180 degrees is
// 18:00, and intensity follows the sine of the angle.
func FromAngle(angleDeg float64) Position {
	if angleDeg < 0 {
		angleDeg = 0
	}
	if angleDeg > 180 {
		angleDeg = 180
	}
	intensity := math.Sin(angleDeg * math.Pi / 180)
	if intensity < 0 {
		intensity = 0
	}
	return Position{
		Intensity: intensity,
		TimeOfDay: 6 + angleDeg/180*12,
	}
}
