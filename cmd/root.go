package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "robogrid",
	Short: "Energy-aware robot and microgrid planner",
	Long: "robogrid plans a mobile robot's charging around deadline-bound tasks,\n" +
		"simulates the microgrid serving that load, and compares a naive baseline\n" +
		"against a price- and PV-aware charging strategy.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
