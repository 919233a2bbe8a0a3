package main

import (
	"fmt"

	"github.com/matsen/axd/internal/listing"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the arXiv categories with their setup indices",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	cats, err := listing.NewClient().Catalog(cmd.Context())
	if err != nil {
		exitWithError(ExitDataError, "fetching category catalog: %v", err)
	}

	if humanOutput {
		fmt.Print(formatCatalog(cats))
		return nil
	}
	return outputJSON(cats)
}
