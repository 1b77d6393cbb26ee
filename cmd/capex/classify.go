package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/phygon975/API-project/internal/classifier"
	"github.com/phygon975/API-project/internal/cli"
	"github.com/phygon975/API-project/internal/config"
	"github.com/phygon975/API-project/internal/model"
	"github.com/phygon975/API-project/internal/sim"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Preview equipment classifications without costing",
		Long: `Classify every block of a model snapshot and print the proposals.
Nothing is persisted; use this to sanity-check a model before a full
estimate.`,
		RunE: runClassify,
	}

	cmd.Flags().StringP("snapshot", "f", "", "model snapshot file (required)")
	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	snapshotPath, _ := cmd.Flags().GetString("snapshot")

	source, err := sim.OpenSnapshot(config.ExpandPath(snapshotPath))
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	blocks, err := source.ListBlocks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list blocks: %w", err)
	}
	sort.Strings(blocks)

	cls := classifier.New()
	header := fmt.Sprintf("%-16s %-20s %-18s %-8s %s",
		"BLOCK", "CATEGORY", "SUBTYPE", "TIER", "CONFIDENCE")
	fmt.Println(cli.TableHeaderStyle.Render(header))

	for _, name := range blocks {
		if err := ctx.Err(); err != nil {
			return err
		}
		tag, _, err := source.RecordType(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to read record type of %s: %w", name, err)
		}

		result := cls.Classify(ctx, model.Block{Name: name, RecordType: tag})
		subtype := result.Subtype
		if subtype == "" {
			subtype = "-"
		}
		line := fmt.Sprintf("%-16s %-20s %-18s %-8s %.0f%%",
			result.BlockName, result.Category, subtype, result.Tier, result.Confidence*100)
		if result.Category == model.CategoryUnknown {
			line = cli.StyleWarning(line)
		}
		fmt.Println(line)
	}
	return nil
}
