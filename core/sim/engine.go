// Package sim implements the instantaneous power-flow engine: a pure
// function from conditions and configuration to a full system snapshot.
// It never mutates shared state and is safe for any number of concurrent
// callers, including speculative what-if evaluations.
package sim

import "github.com/12dit152/solarsim/core/model"

// Daylight window: the sun only contributes between these hours. This
// models a fixed daylight period rather than solar-elevation astronomy.
const (
	daylightStart = 9.0
	daylightEnd   = 16.0
)

// EffectiveIntensity gates the supplied sun intensity by the daylight
// window and clamps it to [0,1].
func EffectiveIntensity(intensity, timeOfDay float64) float64 {
	if timeOfDay < daylightStart || timeOfDay > daylightEnd {
		return 0
	}
	return clamp(intensity, 0, 1)
}

// Evaluate derives every electrical quantity in the system for one
// instant. It never fails: malformed inputs degrade to zero power rather
// than raising errors. The configuration is assumed validated; zero or
// negative denominators produce non-finite results by contract.
func Evaluate(in model.Inputs, cfg model.SystemConfig) model.Snapshot {
	eff := EffectiveIntensity(in.SunIntensity, in.TimeOfDay)
	generation := float64(cfg.PanelCount) * cfg.PanelWattage * eff

	solarWire := AnalyzeWire(generation, cfg.PanelVoltage, cfg.WireLength, cfg.WireGauge)
	atController := generation - solarWire.PowerLossW
	if atController < 0 {
		atController = 0
	}
	available := atController * cfg.ControllerEfficiency

	// Battery state. Stored energy is clamped to the current capacity so a
	// live capacity edit can never report more than 100%.
	maxWh := cfg.MaxBatteryWh()
	energy := clamp(in.BatteryEnergyWh, 0, maxWh)
	percent := 0.0
	if maxWh > 0 {
		percent = energy / maxWh * 100
	}
	full := percent >= 100

	acLoad := in.ACLoadW
	if acLoad < 0 {
		acLoad = 0
	}
	demand := acLoad / cfg.InverterEfficiency

	f := route(in.Mode, cfg, in, generation, available, demand, percent)
	f = allocateController(f, available, cfg.InverterEfficiency)
	f = clampFullBattery(f, full, cfg.InverterEfficiency)
	f = netGrid(f)

	powerToBattery := f.controllerOutW + f.gridChargeW

	return model.Snapshot{
		EffectiveIntensity: eff,
		GenerationW:        generation,
		SolarWire:          solarWire,
		BatteryWire:        AnalyzeWire(powerToBattery, cfg.BatteryVoltage, shortRunFt, cfg.WireGauge),
		InverterWire:       AnalyzeWire(f.inverterDrawW, cfg.BatteryVoltage, shortRunFt, cfg.WireGauge),
		LoadWire:           AnalyzeWire(acLoad, acVoltage, acRunFt, acGaugeMM2),
		PowerAtControllerW: atController,
		PowerToBatteryW:    powerToBattery,
		BatteryEnergyWh:    energy,
		BatteryPercent:     percent,
		BatteryFull:        full,
		ACLoadW:            acLoad,
		InverterDemandW:    demand,
		NetBatteryFlowW:    f.netFlowW,
		GridActive:         f.gridActive,
		GridImportW:        f.gridImportW,
		GridExportW:        f.gridExportW,
		WastedPowerW:       f.wastedW,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
