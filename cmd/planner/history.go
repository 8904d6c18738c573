package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded planning runs",
	Long: `Display the most recent runs and per-scenario totals from the run
history database.

Examples:
  planner history
  planner history --limit 50 --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if flagLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", flagLimit)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	if st == nil {
		return errors.New("run history is disabled (record_runs: false)")
	}
	defer st.Close()

	runs, err := st.RecentRuns(cmd.Context(), flagLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'planner run 100 100 2 simple' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-16s  %-10s  %-9s  %-5s  %-6s  %-8s  %s\n", "Date", "Scenario", "Grid", "Found", "Cells", "Expanded", "Run")
	fmt.Printf("  %-16s  %-10s  %-9s  %-5s  %-6s  %-8s  %s\n", "----", "--------", "----", "-----", "-----", "--------", "---")

	for _, r := range runs {
		fmt.Printf("  %-16s  %-10s  %-9s  %-5t  %-6d  %-8d  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Scenario,
			fmt.Sprintf("%dx%d/%d", r.Width, r.Height, r.AgentRadius),
			r.Found, r.PathLength, r.Expanded, r.ID[:min(8, len(r.ID))])
	}

	stats, err := st.ScenarioStats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	for _, s := range stats {
		fmt.Printf("  %-10s  %d/%d found, %.1f nodes expanded on average\n", s.Scenario, s.Found, s.Runs, s.AvgExpanded)
	}
	return nil
}
