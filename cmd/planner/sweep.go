package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"grid-planner/internal/grid"
	"grid-planner/internal/planner"
	"grid-planner/internal/scenario"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <height> <width> <agent_radius>",
	Short: "Plan every scenario on the same grid",
	Long: `Run all canned scenarios concurrently on one grid size and print a
summary table. Nothing is written to the output directory.

Examples:
  planner sweep 200 200 2`,
	Args: cobra.ExactArgs(3),
	RunE: runSweep,
}

func runSweep(cmd *cobra.Command, args []string) error {
	height, width, radius, err := parseGrid(args)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		logger.Warn("run history unavailable", "err", err)
		st = nil
	}
	if st != nil {
		defer st.Close()
	}

	reports, err := planner.New(cfg, logger, st).Sweep(cmd.Context(),
		grid.Shape{Width: width, Height: height}, radius, scenario.All())
	if err != nil {
		return err
	}

	fmt.Printf("  %-10s  %-5s  %-6s  %-9s  %-8s  %s\n", "Scenario", "Found", "Cells", "Waypoints", "Expanded", "Time")
	fmt.Printf("  %-10s  %-5s  %-6s  %-9s  %-8s  %s\n", "--------", "-----", "-----", "---------", "--------", "----")
	for _, r := range reports {
		fmt.Printf("  %-10s  %-5t  %-6d  %-9d  %-8d  %v\n",
			r.Scenario, r.Found, len(r.Path), len(r.Waypoints), r.Expanded, r.Elapsed)
	}
	return nil
}
