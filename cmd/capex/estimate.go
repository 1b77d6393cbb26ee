package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phygon975/API-project/internal/classifier"
	"github.com/phygon975/API-project/internal/cli"
	"github.com/phygon975/API-project/internal/config"
	"github.com/phygon975/API-project/internal/cost"
	"github.com/phygon975/API-project/internal/engine"
	"github.com/phygon975/API-project/internal/service"
	"github.com/phygon975/API-project/internal/sim"
	"github.com/phygon975/API-project/internal/tui"
)

func estimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Classify a model and estimate its capital cost",
		Long: `Run the full pipeline over a model snapshot: classify every block,
review the classifications, cost every costable device, and print the
aggregated report.

Examples:
  capex estimate -f plant.json                       # Review in the terminal
  capex estimate -f plant.json --review tui          # Full-screen review
  capex estimate -f plant.json --review none         # Unattended batch run
  capex estimate -f plant.json --index-year 2021     # Escalate to 2021 CEPCI
  capex estimate -f plant.json --review none \
      --set-subtype P-101=reciprocating --set-material P-101=SS`,
		RunE: runEstimate,
	}

	// Flags
	cmd.Flags().StringP("snapshot", "f", "", "model snapshot file (required)")
	cmd.Flags().String("review", "cli", "review mode (cli, tui, none)")
	cmd.Flags().IntP("index-year", "y", 0, "escalate costs to this year's published index")
	cmd.Flags().Float64("index", 0, "escalate costs to this explicit index value")
	cmd.Flags().String("material", "", "default material of construction")
	cmd.Flags().StringP("output", "o", "", "write the JSON report to this file")
	cmd.Flags().Bool("json", false, "print the report as JSON instead of text")
	cmd.Flags().StringArray("set-category", nil, "override a device's category (DEVICE=Category)")
	cmd.Flags().StringArray("set-subtype", nil, "override a device's subtype (DEVICE=subtype)")
	cmd.Flags().StringArray("set-material", nil, "override a device's material (DEVICE=CODE)")

	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	// A second layer over the root signal handler: prints a friendly
	// message and records that the run was cut short.
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx := interrupts.HandleInterrupts(cmd.Context(), true)

	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	reviewMode, _ := cmd.Flags().GetString("review")
	outputPath, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")
	setCategories, _ := cmd.Flags().GetStringArray("set-category")
	setSubtypes, _ := cmd.Flags().GetStringArray("set-subtype")
	setMaterials, _ := cmd.Flags().GetStringArray("set-material")

	// Flags beat the config file, but only when the user actually gave
	// them; a zero default must not shadow a configured value.
	if cmd.Flags().Changed("index-year") {
		year, _ := cmd.Flags().GetInt("index-year")
		viper.Set("cost.index_year", year)
	}
	if cmd.Flags().Changed("index") {
		index, _ := cmd.Flags().GetFloat64("index")
		viper.Set("cost.index", index)
	}
	if cmd.Flags().Changed("material") {
		material, _ := cmd.Flags().GetString("material")
		viper.Set("cost.default_material", material)
	}

	overrides, err := parseOverrideFlags(setCategories, setSubtypes, setMaterials)
	if err != nil {
		return err
	}

	source, err := sim.OpenSnapshot(config.ExpandPath(snapshotPath))
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	costCfg, err := config.LoadCostConfig()
	if err != nil {
		return err
	}
	costEngine, err := cost.New(costCfg)
	if err != nil {
		return err
	}

	pipelineCfg := engine.Config{
		SourceLabel: snapshotPath,
		Overrides:   overrides,
	}

	var prompter service.Prompter
	switch reviewMode {
	case "cli":
		pipelineCfg.Interactive = true
		prompter = cli.NewPrompter(os.Stdin, os.Stdout)
	case "tui":
		pipelineCfg.Interactive = true
		pipelineCfg.BulkReview = tui.Run
		prompter = cli.NewPrompter(os.Stdin, os.Stdout)
	case "none":
	default:
		return fmt.Errorf("unknown review mode %q (cli, tui, none)", reviewMode)
	}

	// Progress goes to stderr so piped report output stays clean.
	var bar *progressbar.ProgressBar
	pipelineCfg.OnDevice = func(name string, index, total int) {
		if bar == nil {
			bar = cli.NewCostProgressBar(total, os.Stderr)
		}
		bar.Describe(fmt.Sprintf("[cyan][bold]Costing %s...[reset]", name))
		if err := bar.Add(1); err != nil {
			slog.Debug("Failed to update progress bar", "error", err)
		}
	}

	pipeline, err := engine.New(source, store, classifier.New(), costEngine, prompter, pipelineCfg)
	if err != nil {
		return err
	}

	rep, err := pipeline.Run(ctx)
	if err != nil {
		if interrupts.WasInterrupted() && errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if outputPath != "" {
		data, err := rep.ToJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(config.ExpandPath(outputPath), data, 0o600); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Println(cli.FormatSuccess("Report written to " + outputPath))
	}

	if asJSON {
		data, err := rep.ToJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if prompter != nil {
		return prompter.ShowSummary(ctx, rep.FormatText())
	}
	fmt.Println(cli.RenderBox("Estimation Summary", rep.FormatText()))
	return nil
}
