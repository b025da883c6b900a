package sim

import "github.com/12dit152/solarsim/core/model"

const (
	// Hybrid mode keeps a 30% state-of-charge reserve before discharging.
	hybridReservePct = 30.0
	// Below 20% with low sun, hybrid mode emergency-charges from the grid.
	emergencyPct = 20.0
	lowSunLevel  = 0.1
)

// flows is the intermediate power-routing state threaded through the
// ordered post-processing stages. Each stage is total and side-effect-free
// so the full-battery clamp and grid-netting invariants stay independently
// testable.
type flows struct {
	// Set by the per-mode routing functions.
	gridActive    bool
	gridImportW   float64
	gridExportW   float64
	inverterDrawW float64 // DC drawn from the bus/battery by the inverter
	chargeDemandW float64 // charge power requested from the controller
	gridChargeW   float64 // grid-sourced DC charge (hybrid emergency)
	exportExcess  bool    // surplus DC becomes export instead of waste
	busIdle       bool    // on-grid: the DC bus carries nothing

	// Set by the allocation and clamp stages.
	controllerOutW float64
	wastedW        float64
	netFlowW       float64
}

// route dispatches to the per-mode routing policy. generationW is the raw
// array output, availableW the DC power the controller can deliver and
// demandW the inverter's DC demand.
func route(mode model.Mode, cfg model.SystemConfig, in model.Inputs, generationW, availableW, demandW, batteryPct float64) flows {
	switch mode {
	case model.ModeOnGrid:
		return routeOnGrid(cfg, in.ACLoadW, generationW)
	case model.ModeHybrid:
		return routeHybrid(cfg, in, availableW, demandW, batteryPct)
	default:
		return routeOffGrid(cfg, demandW)
	}
}

// routeOffGrid: no grid tie. The battery supplies the whole inverter demand
// regardless of its charge state; there is no low-battery protection.
func routeOffGrid(cfg model.SystemConfig, demandW float64) flows {
	return flows{
		inverterDrawW: demandW,
		chargeDemandW: cfg.MaxChargePower(),
	}
}

// routeOnGrid: the battery neither charges nor discharges. Solar is
// converted directly to AC and balanced against the load on the grid.
func routeOnGrid(cfg model.SystemConfig, acLoadW, generationW float64) flows {
	f := flows{gridActive: true, busIdle: true}
	solarAC := generationW * cfg.InverterEfficiency
	if solarAC >= acLoadW {
		f.gridExportW = solarAC - acLoadW
	} else {
		f.gridImportW = acLoadW - solarAC
	}
	return f
}

// routeHybrid: solar via the DC bus first, battery above the reserve next,
// grid as last resort.
func routeHybrid(cfg model.SystemConfig, in model.Inputs, availableW, demandW, batteryPct float64) flows {
	f := flows{
		gridActive:    true,
		chargeDemandW: cfg.MaxChargePower(),
		exportExcess:  true,
	}
	if availableW >= demandW || batteryPct > hybridReservePct {
		// Solar and/or battery cover the load; the grid is tied in but
		// idle.
		f.inverterDrawW = demandW
		return f
	}
	// Battery at or below the reserve with insufficient solar: the grid
	// carries the full load.
	f.gridImportW = in.ACLoadW
	if batteryPct < emergencyPct && in.SunIntensity < lowSunLevel {
		// Emergency recharge at the full C-rating limit. The import is
		// accounted on the AC side of the inverter.
		f.gridChargeW = cfg.MaxChargePower()
		f.gridImportW += cfg.MaxChargePower() / cfg.InverterEfficiency
	}
	return f
}

// allocateController resolves the controller's output against the total
// demand on it. Surplus DC is redirected to export in hybrid mode and
// recorded as waste off-grid; a shortfall simply undercharges.
func allocateController(f flows, availableW, inverterEff float64) flows {
	if f.busIdle {
		return f
	}
	demand := f.chargeDemandW + f.inverterDrawW
	if availableW > demand {
		excess := availableW - demand
		if f.exportExcess {
			f.controllerOutW = availableW
			f.inverterDrawW += excess
			f.gridExportW += excess * inverterEff
		} else {
			f.controllerOutW = demand
			f.wastedW += excess
		}
	} else {
		f.controllerOutW = availableW
	}
	f.netFlowW = f.controllerOutW + f.gridChargeW - f.inverterDrawW
	return f
}

// clampFullBattery stops charge delivery once the battery is full. Hybrid
// mode redirects the diverted power to export through the inverter; the
// other modes record it as waste. Net flow is forced to exactly zero.
func clampFullBattery(f flows, batteryFull bool, inverterEff float64) flows {
	if !batteryFull || f.netFlowW <= 0 {
		return f
	}
	excess := f.netFlowW
	if f.exportExcess {
		f.inverterDrawW += excess
		f.gridExportW += excess * inverterEff
	} else {
		f.controllerOutW -= excess
		f.wastedW += excess
	}
	f.netFlowW = 0
	return f
}

// netGrid reduces simultaneous import and export to a single direction.
// A single-phase tie cannot do both at once; the larger absorbs the
// smaller. This is the final stage before reporting.
func netGrid(f flows) flows {
	if f.gridImportW > 0 && f.gridExportW > 0 {
		if f.gridImportW >= f.gridExportW {
			f.gridImportW -= f.gridExportW
			f.gridExportW = 0
		} else {
			f.gridExportW -= f.gridImportW
			f.gridImportW = 0
		}
	}
	return f
}
