package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/12dit152/solarsim/core/sizing"
)

var sizeFile string

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Recommend inverter, battery and panel sizes for an appliance list",
	Long: `Reads a YAML file with an appliance list and optional sizing options:

  appliances:
    - name: fridge
      watts: 150
      quantity: 1
      hours_per_day: 8
  options:
    system_voltage: 24
`,
	RunE: runSize,
}

func init() {
	sizeCmd.Flags().StringVarP(&sizeFile, "file", "f", "appliances.yaml", "appliance list file")
	rootCmd.AddCommand(sizeCmd)
}

type sizeInput struct {
	Appliances []sizing.Appliance `yaml:"appliances"`
	Options    *sizing.Options    `yaml:"options"`
}

func runSize(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(sizeFile)
	if err != nil {
		return fmt.Errorf("read appliance list: %w", err)
	}
	var in sizeInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parse appliance list: %w", err)
	}
	opts := sizing.DefaultOptions()
	if in.Options != nil {
		opts = *in.Options
	}
	rec, err := sizing.Recommend(in.Appliances, opts)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
