package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/12dit152/solarsim/core/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario [file...]",
	Short: "Replay scripted days through the engine and print summaries",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScenarios,
}

func init() {
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		sc, err := scenario.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		res, err := scenario.Run(sc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return nil
}
