package model

import "fmt"

// SystemConfig describes the installation being simulated. It is immutable
// per engine call; the host snapshots it together with the instant inputs so
// a tick never mixes old and new parameters.
type SystemConfig struct {
	PanelCount   int     `json:"panel_count" yaml:"panel_count"`
	PanelWattage float64 `json:"panel_wattage_w" yaml:"panel_wattage_w"`
	PanelVoltage float64 `json:"panel_voltage_v" yaml:"panel_voltage_v"`

	// DC wiring between the array and the charge controller.
	WireGauge  float64 `json:"wire_gauge_mm2" yaml:"wire_gauge_mm2"`
	WireLength float64 `json:"wire_length_ft" yaml:"wire_length_ft"`

	BatteryCapacityAh float64 `json:"battery_capacity_ah" yaml:"battery_capacity_ah"`
	BatteryVoltage    float64 `json:"battery_voltage_v" yaml:"battery_voltage_v"`
	// CRating limits charge current to capacity/C amps (C20 = capacity/20).
	CRating float64 `json:"c_rating" yaml:"c_rating"`

	InverterEfficiency   float64 `json:"inverter_efficiency" yaml:"inverter_efficiency"`
	ControllerEfficiency float64 `json:"controller_efficiency" yaml:"controller_efficiency"`
}

// DefaultSystemConfig returns a small 500 W / 24 V reference installation.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		PanelCount:           2,
		PanelWattage:         250,
		PanelVoltage:         25,
		WireGauge:            10,
		WireLength:           20,
		BatteryCapacityAh:    300,
		BatteryVoltage:       24,
		CRating:              20,
		InverterEfficiency:   0.8,
		ControllerEfficiency: 0.9,
	}
}

// Validate rejects configurations the engine would divide by. The engine
// assumes a validated configuration and may produce non-finite values if
// this precondition is violated.
func (c SystemConfig) Validate() error {
	if c.PanelCount <= 0 {
		return fmt.Errorf("panel_count must be positive, got %d", c.PanelCount)
	}
	if c.PanelWattage <= 0 {
		return fmt.Errorf("panel_wattage_w must be positive, got %v", c.PanelWattage)
	}
	if c.PanelVoltage <= 0 {
		return fmt.Errorf("panel_voltage_v must be positive, got %v", c.PanelVoltage)
	}
	if c.WireGauge <= 0 {
		return fmt.Errorf("wire_gauge_mm2 must be positive, got %v", c.WireGauge)
	}
	if c.WireLength <= 0 {
		return fmt.Errorf("wire_length_ft must be positive, got %v", c.WireLength)
	}
	if c.BatteryCapacityAh <= 0 {
		return fmt.Errorf("battery_capacity_ah must be positive, got %v", c.BatteryCapacityAh)
	}
	if c.BatteryVoltage <= 0 {
		return fmt.Errorf("battery_voltage_v must be positive, got %v", c.BatteryVoltage)
	}
	if c.CRating <= 0 {
		return fmt.Errorf("c_rating must be positive, got %v", c.CRating)
	}
	if c.InverterEfficiency <= 0 || c.InverterEfficiency > 1 {
		return fmt.Errorf("inverter_efficiency must be in (0,1], got %v", c.InverterEfficiency)
	}
	if c.ControllerEfficiency <= 0 || c.ControllerEfficiency > 1 {
		return fmt.Errorf("controller_efficiency must be in (0,1], got %v", c.ControllerEfficiency)
	}
	return nil
}

// MaxBatteryWh is the battery's usable energy ceiling.
func (c SystemConfig) MaxBatteryWh() float64 {
	return c.BatteryCapacityAh * c.BatteryVoltage
}

// MaxChargeCurrent is the C-rating charge current limit in amps.
func (c SystemConfig) MaxChargeCurrent() float64 {
	return c.BatteryCapacityAh / c.CRating
}

// MaxChargePower is the hard ceiling on how fast the battery accepts energy.
func (c SystemConfig) MaxChargePower() float64 {
	return c.MaxChargeCurrent() * c.BatteryVoltage
}
