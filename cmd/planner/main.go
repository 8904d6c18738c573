// planner computes collision-free paths for a circular agent on a 2D grid.
//
// Usage:
//
//	planner run <height> <width> <agent_radius> <scenario_id>  - Plan one scenario and write the outputs
//	planner sweep <height> <width> <agent_radius>               - Plan every scenario concurrently
//	planner scenarios                                           - List the canned obstacle layouts
//	planner serve                                               - Start the HTTP API
//	planner history                                             - Show recorded runs
//
// Global flags:
//
//	--config <path>     - YAML config file (default: planner.yaml)
//	--log-level <lvl>   - Override the configured log level
//	--db <path>         - Override the run history database path
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"grid-planner/internal/config"
	"grid-planner/internal/store"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagDBPath   string

	// Set up before any subcommand runs
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Grid motion planner for a circular agent",
	Long: `planner builds a configuration space from circular obstacles, inflated by
the agent radius, and runs A* over it to find a collision-free path.

Available commands:
  run        - Plan a canned scenario and write the outputs
  sweep      - Plan every scenario on the same grid
  scenarios  - List the canned scenarios
  serve      - Start the HTTP API
  history    - Show recorded runs

Examples:
  planner run 100 100 2 3
  planner run 80 120 1 maze --out ./results
  planner sweep 200 200 2
  planner serve --addr :9090
  planner history --limit 5`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "planner.yaml", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup loads the config and applies the global flag overrides
func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "planner",
		Level:           cfg.Level(),
	})
	return nil
}

// openStore opens the run history, or returns nil when recording is off
func openStore() (*store.Store, error) {
	if !cfg.RecordRuns {
		return nil, nil
	}
	path, err := config.ExpandHome(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}
