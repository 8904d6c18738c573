package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"grid-planner/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the canned obstacle layouts",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("Available scenarios:")
		fmt.Println()
		for _, id := range scenario.All() {
			fmt.Printf("  %d  %-10s  %s\n", int(id), id, id.Description())
		}
	},
}
