// Package sizing recommends inverter, battery and panel sizes from an
// appliance list. It is independent arithmetic with no coupling to the
// power-flow engine.
package sizing

import (
	"fmt"
	"math"
)

// Appliance is one entry in the user's load list.
type Appliance struct {
	Name        string  `json:"name" yaml:"name"`
	Watts       float64 `json:"watts" yaml:"watts"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	HoursPerDay float64 `json:"hours_per_day" yaml:"hours_per_day"`
}

// Options tune the sizing assumptions.
type Options struct {
	SystemVoltage float64 `json:"system_voltage" yaml:"system_voltage"`
	// DepthOfDischarge is the usable battery fraction (lead-acid ~0.5).
	DepthOfDischarge float64 `json:"depth_of_discharge" yaml:"depth_of_discharge"`
	AutonomyDays     float64 `json:"autonomy_days" yaml:"autonomy_days"`
	PeakSunHours     float64 `json:"peak_sun_hours" yaml:"peak_sun_hours"`
	PanelWattage     float64 `json:"panel_wattage" yaml:"panel_wattage"`
	// SystemDerate covers wiring, controller and temperature losses.
	SystemDerate   float64 `json:"system_derate" yaml:"system_derate"`
	InverterMargin float64 `json:"inverter_margin" yaml:"inverter_margin"`
}

// DefaultOptions returns conventional small-installation assumptions.
func DefaultOptions() Options {
	return Options{
		SystemVoltage:    24,
		DepthOfDischarge: 0.5,
		AutonomyDays:     1,
		PeakSunHours:     5,
		PanelWattage:     250,
		SystemDerate:     0.8,
		InverterMargin:   1.25,
	}
}

// Recommendation is the calculator's output.
type Recommendation struct {
	PeakLoadW      float64 `json:"peak_load_w"`
	DailyEnergyWh  float64 `json:"daily_energy_wh"`
	InverterW      float64 `json:"inverter_w"`
	BatteryAh      float64 `json:"battery_ah"`
	BatteryVoltage float64 `json:"battery_voltage"`
	PanelCount     int     `json:"panel_count"`
	PanelWattage   float64 `json:"panel_wattage"`
	TotalArrayW    float64 `json:"total_array_w"`
}

// Recommend sizes the installation for the given appliance list.
func Recommend(appliances []Appliance, opts Options) (Recommendation, error) {
	if opts.SystemVoltage <= 0 || opts.DepthOfDischarge <= 0 || opts.PeakSunHours <= 0 ||
		opts.PanelWattage <= 0 || opts.SystemDerate <= 0 {
		return Recommendation{}, fmt.Errorf("sizing options must be positive")
	}
	if opts.AutonomyDays <= 0 {
		opts.AutonomyDays = 1
	}
	if opts.InverterMargin < 1 {
		opts.InverterMargin = 1
	}

	var peakW, dailyWh float64
	for _, a := range appliances {
		if a.Watts <= 0 || a.Quantity <= 0 {
			return Recommendation{}, fmt.Errorf("appliance %q: watts and quantity must be positive", a.Name)
		}
		if a.HoursPerDay < 0 || a.HoursPerDay > 24 {
			return Recommendation{}, fmt.Errorf("appliance %q: hours_per_day must be in [0,24]", a.Name)
		}
		w := a.Watts * float64(a.Quantity)
		peakW += w
		dailyWh += w * a.HoursPerDay
	}

	batteryAh := dailyWh * opts.AutonomyDays / (opts.SystemVoltage * opts.DepthOfDischarge)
	arrayW := dailyWh / (opts.PeakSunHours * opts.SystemDerate)
	panels := int(math.Ceil(arrayW / opts.PanelWattage))

	return Recommendation{
		PeakLoadW:      peakW,
		DailyEnergyWh:  dailyWh,
		InverterW:      math.Ceil(peakW * opts.InverterMargin),
		BatteryAh:      math.Ceil(batteryAh),
		BatteryVoltage: opts.SystemVoltage,
		PanelCount:     panels,
		PanelWattage:   opts.PanelWattage,
		TotalArrayW:    float64(panels) * opts.PanelWattage,
	}, nil
}
