package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phygon975/API-project/internal/cli"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List persisted estimation runs",
		RunE:  runRuns,
	}

	cmd.Flags().IntP("limit", "n", 20, "number of runs to show")

	return cmd
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println(cli.FormatInfo("No runs yet. Start one with: capex estimate -f <snapshot>"))
		return nil
	}

	header := fmt.Sprintf("%-6s %-20s %-24s %-8s %-8s %s",
		"ID", "STARTED", "SNAPSHOT", "UNITS", "CEPCI", "TOTAL (USD)")
	fmt.Println(cli.TableHeaderStyle.Render(header))

	for _, run := range runs {
		total := run.Total.StringFixed(2)
		if !run.Completed {
			total = cli.StyleWarning("(incomplete)")
		}
		fmt.Printf("%-6d %-20s %-24s %-8s %-8.1f %s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Snapshot,
			run.UnitSet,
			run.CostIndex,
			total)
	}
	return nil
}
