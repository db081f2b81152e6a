package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/loopyfoods/internal/cards"
)

var flagType string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List every food and kid card",
	Long: `Shows the card catalog. Titles are what team files refer to.

Examples:
  loopyfoods catalog
  loopyfoods catalog --type sweet`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&flagType, "type", "t", "", "Only show one food type")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	types := cards.FoodTypes
	if flagType != "" {
		ft, err := cards.ParseFoodType(flagType)
		if err != nil {
			return err
		}
		types = []cards.FoodType{ft}
	}

	out := cmd.OutOrStdout()

	// Calculate column widths
	maxTitleLen := 5 // "Title" header
	for _, f := range cards.Foods {
		maxTitleLen = max(maxTitleLen, len(f.Title))
	}

	for _, ft := range types {
		fmt.Fprintf(out, "%s\n", ft)
		fmt.Fprintf(out, "  %-*s  %s\n", maxTitleLen, "Title", "Stars")
		fmt.Fprintf(out, "  %-*s  %s\n", maxTitleLen, "-----", "-----")
		for _, f := range cards.FoodsOfType(ft) {
			fmt.Fprintf(out, "  %-*s  %d\n", maxTitleLen, f.Title, f.BaseStarValue)
		}

		var eaters []string
		for _, k := range cards.Kids {
			if k.FoodType == ft {
				eaters = append(eaters, k.Title)
			}
		}
		if len(eaters) > 0 {
			fmt.Fprintf(out, "  eaten by: %v\n", eaters)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Use these titles in team files for 'loopyfoods battle'.")
	return nil
}
