package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phygon975/API-project/internal/cli"
	"github.com/phygon975/API-project/internal/config"
	"github.com/phygon975/API-project/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [run-id]",
		Short: "Rebuild the report of a persisted run",
		Long: `Print the report of an earlier estimation run from the database.
Without a run id the most recent run is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReport,
	}

	cmd.Flags().Bool("json", false, "print the report as JSON instead of text")
	cmd.Flags().StringP("output", "o", "", "write the JSON report to this file")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	asJSON, _ := cmd.Flags().GetBool("json")
	outputPath, _ := cmd.Flags().GetString("output")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	var runID int64
	if len(args) == 1 {
		runID, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", args[0], err)
		}
	} else {
		runs, err := store.ListRuns(ctx, 1)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return fmt.Errorf("no runs yet; start one with: capex estimate -f <snapshot>")
		}
		runID = runs[0].ID
	}

	run, err := store.GetRun(ctx, runID)
	if err != nil {
		return err
	}

	classifications, err := store.GetClassifications(ctx, runID)
	if err != nil {
		return err
	}
	breakdowns, skips, err := store.GetCostResults(ctx, runID)
	if err != nil {
		return err
	}

	outcomes := make([]report.Outcome, 0, len(breakdowns)+len(skips))
	for i := range breakdowns {
		b := breakdowns[i]
		outcomes = append(outcomes, report.Outcome{
			Name:      b.DeviceName,
			Category:  b.Category,
			Breakdown: &b,
		})
	}
	for i := range skips {
		s := skips[i]
		outcomes = append(outcomes, report.Outcome{
			Name:     s.Name,
			Category: s.Category,
			Skip:     &s,
		})
	}

	rep := report.Aggregate(classifications, outcomes, run.CostIndex)

	if outputPath != "" {
		data, err := rep.ToJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(config.ExpandPath(outputPath), data, 0o600); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Println(cli.FormatSuccess("Report written to " + outputPath))
		return nil
	}

	if asJSON {
		data, err := rep.ToJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	title := fmt.Sprintf("Run %d (%s)", run.ID, run.StartedAt.Format("2006-01-02 15:04"))
	fmt.Println(cli.RenderBox(title, rep.FormatText()))
	return nil
}
