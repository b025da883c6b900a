package config

import "fmt"

// SimulationConfig paces the tick loop and sets the initial conditions.
type SimulationConfig struct {
	// TickIntervalMS is the wall-clock cadence of the integrator.
	TickIntervalMS int `json:"tick_interval_ms" yaml:"tick_interval_ms"`
	// Acceleration scales wall-clock seconds into simulated time. The
	// classic presentation value is 10x real time.
	Acceleration float64 `json:"acceleration" yaml:"acceleration"`
	// InitialSoC is the battery's starting state of charge [0,1].
	InitialSoC float64 `json:"initial_soc" yaml:"initial_soc"`
	// Mode is the starting operating mode: off_grid, on_grid or hybrid.
	Mode string `json:"mode" yaml:"mode"`
	// SunAngle is the starting slider angle in degrees (90 = noon).
	SunAngle float64 `json:"sun_angle" yaml:"sun_angle"`
	// ACLoadW is the starting AC load.
	ACLoadW float64 `json:"ac_load_w" yaml:"ac_load_w"`
}

// SetDefaults applies sane defaults.
func (c *SimulationConfig) SetDefaults() {
	if c.TickIntervalMS == 0 {
		c.TickIntervalMS = 1000
	}
	if c.Acceleration == 0 {
		c.Acceleration = 10
	}
	if c.InitialSoC == 0 {
		c.InitialSoC = 0.5
	}
	if c.Mode == "" {
		c.Mode = "hybrid"
	}
	if c.SunAngle == 0 {
		c.SunAngle = 90
	}
}

// Validate checks mandatory fields.
func (c SimulationConfig) Validate() error {
	if c.TickIntervalMS <= 0 {
		return fmt.Errorf("tick_interval_ms must be positive")
	}
	if c.Acceleration <= 0 {
		return fmt.Errorf("acceleration must be positive")
	}
	if c.InitialSoC < 0 || c.InitialSoC > 1 {
		return fmt.Errorf("initial_soc must be in [0,1]")
	}
	if c.SunAngle < 0 || c.SunAngle > 180 {
		return fmt.Errorf("sun_angle must be in [0,180]")
	}
	if c.ACLoadW < 0 {
		return fmt.Errorf("ac_load_w must be non-negative")
	}
	return nil
}
