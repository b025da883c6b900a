package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/12dit152/solarsim/core/model"
	"github.com/12dit152/solarsim/core/sim"
	"github.com/12dit152/solarsim/core/sun"
)

var (
	simAngle     float64
	simIntensity float64
	simTime      float64
	simLoad      float64
	simMode      string
	simSoC       float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Evaluate one instant and print the system snapshot",
	RunE:  simulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&simAngle, "angle", 90, "sun slider angle in degrees (overrides intensity/time)")
	simulateCmd.Flags().Float64Var(&simIntensity, "intensity", 1, "sun intensity [0,1]")
	simulateCmd.Flags().Float64Var(&simTime, "time", 12, "time of day in hours [0,24)")
	simulateCmd.Flags().Float64Var(&simLoad, "load", 200, "AC load in watts")
	simulateCmd.Flags().StringVar(&simMode, "mode", "hybrid", "operating mode: off_grid, on_grid or hybrid")
	simulateCmd.Flags().Float64Var(&simSoC, "soc", 0.5, "battery state of charge [0,1]")
	rootCmd.AddCommand(simulateCmd)
}

func simulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := model.ParseMode(simMode)
	if err != nil {
		return err
	}
	if simLoad < 0 {
		return fmt.Errorf("load must be non-negative")
	}
	if simSoC < 0 || simSoC > 1 {
		return fmt.Errorf("soc must be in [0,1]")
	}

	intensity, timeOfDay := simIntensity, simTime
	if cmd.Flags().Changed("angle") {
		pos := sun.FromAngle(simAngle)
		intensity, timeOfDay = pos.Intensity, pos.TimeOfDay
	}

	snap := sim.Evaluate(model.Inputs{
		SunIntensity:    intensity,
		ACLoadW:         simLoad,
		TimeOfDay:       timeOfDay,
		Mode:            mode,
		BatteryEnergyWh: simSoC * cfg.System.MaxBatteryWh(),
	}, cfg.System)

	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
