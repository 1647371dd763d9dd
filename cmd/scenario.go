package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/macol-sim/macol-sim/sim/world"
)

var scenarioOut string // Output path ("" = stdout)

// scenarioCmd dumps the built-in highway scenario as YAML, as a starting
// point for custom layouts.
var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Print the built-in highway scenario as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := world.DefaultScenario().Dump()
		if err != nil {
			logrus.Fatalf("Unable to encode scenario: %v", err)
		}
		if scenarioOut == "" {
			fmt.Print(string(data))
			return
		}
		if err := os.WriteFile(scenarioOut, data, 0o644); err != nil {
			logrus.Fatalf("Unable to write scenario file: %v", err)
		}
	},
}

func init() {
	scenarioCmd.Flags().StringVar(&scenarioOut, "out", "", "Write the scenario to this file instead of stdout")
	rootCmd.AddCommand(scenarioCmd)
}
