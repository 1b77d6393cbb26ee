package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phygon975/API-project/internal/cli"
	"github.com/phygon975/API-project/internal/cost"
	"github.com/phygon975/API-project/internal/model"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List equipment categories, subtypes and materials",
		Long: `Show the equipment taxonomy: every category, the cost-correlation
subtypes of the costable ones, and the material codes each subtype
accepts.`,
		RunE: runCategories,
	}
}

func runCategories(_ *cobra.Command, _ []string) error {
	for _, category := range model.AllCategories() {
		subtypes := cost.Subtypes(category)

		name := string(category)
		switch {
		case !category.Costable():
			name = cli.SubtleStyle.Render(name + " (not costed)")
		case len(subtypes) == 0:
			name = cli.SubtleStyle.Render(name + " (no correlation yet)")
		default:
			name = cli.StyleTitle(name)
		}
		fmt.Println(name)

		for _, subtype := range subtypes {
			materials := cost.MaterialCodes(category, subtype)
			fmt.Printf("  %-26s %s\n", subtype, strings.Join(materials, ", "))
		}
	}
	return nil
}
