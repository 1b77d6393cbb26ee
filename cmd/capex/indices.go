package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phygon975/API-project/internal/cli"
	"github.com/phygon975/API-project/internal/cost"
)

func indicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indices",
		Short: "List the published cost index series",
		Long: `Show the CEPCI values the estimate can escalate to. Correlation
costs are published at the reference index and scaled linearly to the
target year.`,
		RunE: runIndices,
	}
}

func runIndices(_ *cobra.Command, _ []string) error {
	fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-8s %s", "YEAR", "CEPCI")))

	for _, year := range cost.IndexYears() {
		index, _ := cost.IndexForYear(year)
		line := fmt.Sprintf("%-8d %.1f", year, index)
		if index == cost.ReferenceIndex {
			line += cli.SubtleStyle.Render("  (correlation reference)")
		}
		fmt.Println(line)
	}
	return nil
}
