// internal/cli/search.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var searchPage int

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search the package index",
	Long: `Full-text search against the package index. An empty keyword lists
packages under a default category filter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "results page to fetch")
}

func runSearch(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	keyword := ""
	if len(args) > 0 {
		keyword = args[0]
	}

	result, err := engine.Registry().Search(context.Background(), keyword, searchPage)
	if err != nil {
		return err
	}

	for _, item := range result.Items {
		fmt.Printf("%-30s %-15s %s\n", item.Name, item.Version, item.Description)
	}
	fmt.Printf("\nPage %d of %d\n", searchPage, result.TotalPages)
	return nil
}
