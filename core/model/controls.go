package model

// Controls are the user-driven inputs the host holds between ticks. The
// battery energy is deliberately absent: it is owned by the integrator.
type Controls struct {
	SunIntensity float64 `json:"sun_intensity"`
	TimeOfDay    float64 `json:"time_of_day"`
	ACLoadW      float64 `json:"ac_load_w"`
	Mode         Mode    `json:"mode"`
}

// Inputs combines the controls with the battery's stored energy.
func (c Controls) Inputs(batteryEnergyWh float64) Inputs {
	return Inputs{
		SunIntensity:    c.SunIntensity,
		ACLoadW:         c.ACLoadW,
		TimeOfDay:       c.TimeOfDay,
		Mode:            c.Mode,
		BatteryEnergyWh: batteryEnergyWh,
	}
}
