package model

// Inputs are the time-varying quantities supplied on every engine call.
// Out-of-range values are a caller-side validation concern; the engine
// clamps the obvious ones (intensity, battery energy) and treats the rest
// as degenerate rather than exceptional.
type Inputs struct {
	SunIntensity    float64 `json:"sun_intensity" yaml:"sun_intensity"`
	ACLoadW         float64 `json:"ac_load_w" yaml:"ac_load_w"`
	TimeOfDay       float64 `json:"time_of_day" yaml:"time_of_day"`
	Mode            Mode    `json:"mode" yaml:"mode"`
	BatteryEnergyWh float64 `json:"battery_energy_wh" yaml:"battery_energy_wh"`
}

// WireSegment is the loss/safety evaluation of one conductor run. It is
// derived, stateless and recomputed on every call.
type WireSegment struct {
	CurrentA     float64 `json:"current_a"`
	PowerLossW   float64 `json:"power_loss_w"`
	VoltageDropV float64 `json:"voltage_drop_v"`
	// IsSafe reports whether the current stays within the conductor's
	// rated ampacity. It never clamps the current itself.
	IsSafe bool `json:"is_safe"`
}

// Snapshot is the engine's sole output: every electrical quantity in the
// system for one instant. It is a pure value with no identity beyond the
// call that produced it.
type Snapshot struct {
	EffectiveIntensity float64 `json:"effective_intensity"`
	GenerationW        float64 `json:"generation_w"`

	// Wire analysis for the four physical segments.
	SolarWire    WireSegment `json:"solar_wire"`    // array -> controller
	BatteryWire  WireSegment `json:"battery_wire"`  // controller -> battery
	InverterWire WireSegment `json:"inverter_wire"` // battery -> inverter
	LoadWire     WireSegment `json:"load_wire"`     // inverter -> AC load

	PowerAtControllerW float64 `json:"power_at_controller_w"`
	PowerToBatteryW    float64 `json:"power_to_battery_w"`

	BatteryEnergyWh float64 `json:"battery_energy_wh"`
	BatteryPercent  float64 `json:"battery_percent"`
	BatteryFull     bool    `json:"battery_full"`

	ACLoadW         float64 `json:"ac_load_w"`
	InverterDemandW float64 `json:"inverter_demand_w"`
	NetBatteryFlowW float64 `json:"net_battery_flow_w"` // positive = charging
	GridActive      bool    `json:"grid_active"`
	GridImportW     float64 `json:"grid_import_w"`
	GridExportW     float64 `json:"grid_export_w"`
	WastedPowerW    float64 `json:"wasted_power_w"`
}

// UnsafeSegments names the wire segments whose current exceeds ampacity.
func (s Snapshot) UnsafeSegments() []string {
	var out []string
	if !s.SolarWire.IsSafe {
		out = append(out, "solar")
	}
	if !s.BatteryWire.IsSafe {
		out = append(out, "battery")
	}
	if !s.InverterWire.IsSafe {
		out = append(out, "inverter")
	}
	if !s.LoadWire.IsSafe {
		out = append(out, "load")
	}
	return out
}
