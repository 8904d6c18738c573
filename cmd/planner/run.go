package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"grid-planner/internal/grid"
	"grid-planner/internal/obstacle"
	"grid-planner/internal/planner"
	"grid-planner/internal/scenario"
)

var (
	flagStart     string
	flagGoal      string
	flagOutDir    string
	flagObstacles string
)

var runCmd = &cobra.Command{
	Use:   "run <height> <width> <agent_radius> <scenario_id>",
	Short: "Plan a path through a canned scenario",
	Long: `Build the configuration space for a scenario, write it to disk, read it
back, search it and write the path and a GeoJSON overview.

Scenarios are given by number or name (see 'planner scenarios').
Start defaults to (R+1, R+1) and goal to (width-R-1, height-R-1).

Examples:
  planner run 100 100 2 3
  planner run 100 100 2 simple --start 5,5 --goal 90,60
  planner run 50 50 1 none --obstacles 'zones/*.geojson'`,
	Args: cobra.ExactArgs(4),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagStart, "start", "", "Start cell as x,y")
	runCmd.Flags().StringVar(&flagGoal, "goal", "", "Goal cell as x,y")
	runCmd.Flags().StringVar(&flagOutDir, "out", "", "Output directory (overrides config)")
	runCmd.Flags().StringVar(&flagObstacles, "obstacles", "", "Glob of GeoJSON files with extra obstacles")
}

func runRun(cmd *cobra.Command, args []string) error {
	height, width, radius, err := parseGrid(args[:3])
	if err != nil {
		return err
	}
	id, err := scenario.Parse(args[3])
	if err != nil {
		return err
	}

	req := planner.Request{
		Shape:    grid.Shape{Width: width, Height: height},
		Radius:   radius,
		Scenario: id,
	}
	if req.Start, err = parseOptionalCoord(flagStart); err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	if req.Goal, err = parseOptionalCoord(flagGoal); err != nil {
		return fmt.Errorf("--goal: %w", err)
	}
	if flagObstacles != "" {
		if req.Obstacles, err = obstacle.LoadGeoJSON(flagObstacles, logger); err != nil {
			return err
		}
	}
	if flagOutDir != "" {
		cfg.OutputDir = flagOutDir
	}

	st, err := openStore()
	if err != nil {
		logger.Warn("run history unavailable", "err", err)
		st = nil
	}
	if st != nil {
		defer st.Close()
	}

	report, err := planner.New(cfg, logger, st).Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	if report.Found {
		fmt.Printf("Goal found: %d cells, %d waypoints, %d nodes expanded in %v\n",
			len(report.Path), len(report.Waypoints), report.Expanded, report.Elapsed)
	} else {
		fmt.Printf("Goal not found: %d nodes expanded in %v\n", report.Expanded, report.Elapsed)
	}
	fmt.Printf("  Config space: %s\n", report.Files.ConfigSpace)
	fmt.Printf("  Path:         %s\n", report.Files.Path)
	fmt.Printf("  GeoJSON:      %s\n", report.Files.GeoJSON)
	return nil
}

// parseGrid reads the <height> <width> <agent_radius> positional arguments
func parseGrid(args []string) (height, width, radius int, err error) {
	names := []string{"height", "width", "agent_radius"}
	vals := make([]int, len(names))
	for i, name := range names {
		vals[i], err = strconv.Atoi(args[i])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid %s %q: not an integer", name, args[i])
		}
	}
	return vals[0], vals[1], vals[2], nil
}

// parseCoord reads a cell given as "x,y"
func parseCoord(s string) (grid.Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Coord{}, fmt.Errorf("invalid cell %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Coord{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Coord{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	return grid.Coord{X: x, Y: y}, nil
}

func parseOptionalCoord(s string) (*grid.Coord, error) {
	if s == "" {
		return nil, nil
	}
	c, err := parseCoord(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
