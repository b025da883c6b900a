package scenario

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/12dit152/solarsim/core/battery"
	"github.com/12dit152/solarsim/core/model"
	"github.com/12dit152/solarsim/core/sim"
)

// Result is the summary of one scenario run.
type Result struct {
	RunID string `json:"run_id"`
	Name  string `json:"name"`
	Steps int    `json:"steps"`

	MeanBatteryPercent float64 `json:"mean_battery_percent"`
	MinBatteryPercent  float64 `json:"min_battery_percent"`
	MaxBatteryPercent  float64 `json:"max_battery_percent"`
	StdBatteryPercent  float64 `json:"std_battery_percent"`
	FinalBatteryWh     float64 `json:"final_battery_wh"`

	GenerationKWh float64 `json:"generation_kwh"`
	ImportKWh     float64 `json:"import_kwh"`
	ExportKWh     float64 `json:"export_kwh"`
	WastedKWh     float64 `json:"wasted_kwh"`
	WireLossKWh   float64 `json:"wire_loss_kwh"`

	UnsafeSteps int `json:"unsafe_steps"`
}

// Run replays the scenario from midnight to midnight at its configured
// step, integrating battery energy between evaluations.
func Run(sc *Scenario) (Result, error) {
	if err := sc.Validate(); err != nil {
		return Result{}, err
	}
	mode, err := model.ParseMode(sc.Mode)
	if err != nil {
		return Result{}, err
	}

	bank := battery.NewBank(sc.Config, sc.InitialSoC, 1)
	step := time.Duration(sc.StepMinutes) * time.Minute
	stepHours := step.Hours()

	res := Result{
		RunID: uuid.NewString(),
		Name:  sc.Name,
	}
	var percents []float64

	for hour := 0.0; hour < 24; hour += stepHours {
		kf := sc.at(hour)
		snap := sim.Evaluate(model.Inputs{
			SunIntensity:    kf.SunIntensity,
			ACLoadW:         kf.ACLoadW,
			TimeOfDay:       hour,
			Mode:            mode,
			BatteryEnergyWh: bank.EnergyWh(),
		}, sc.Config)
		bank.Advance(step, snap.NetBatteryFlowW)

		percents = append(percents, snap.BatteryPercent)
		res.GenerationKWh += snap.GenerationW * stepHours / 1000
		res.ImportKWh += snap.GridImportW * stepHours / 1000
		res.ExportKWh += snap.GridExportW * stepHours / 1000
		res.WastedKWh += snap.WastedPowerW * stepHours / 1000
		loss := snap.SolarWire.PowerLossW + snap.BatteryWire.PowerLossW +
			snap.InverterWire.PowerLossW + snap.LoadWire.PowerLossW
		res.WireLossKWh += loss * stepHours / 1000
		if len(snap.UnsafeSegments()) > 0 {
			res.UnsafeSteps++
		}
		res.Steps++
	}

	res.FinalBatteryWh = bank.EnergyWh()
	res.MeanBatteryPercent = stat.Mean(percents, nil)
	res.StdBatteryPercent = stat.StdDev(percents, nil)
	res.MinBatteryPercent, res.MaxBatteryPercent = minMax(percents)
	return res, nil
}

func minMax(vs []float64) (lo, hi float64) {
	if len(vs) == 0 {
		return 0, 0
	}
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
