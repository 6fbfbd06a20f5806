// internal/cli/outdated.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var outdatedCmd = &cobra.Command{
	Use:   "outdated",
	Short: "List packages pip reports as outdated",
	RunE:  runOutdated,
}

func runOutdated(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	packages, err := engine.Pip().ListOutdated(context.Background())
	if err != nil {
		return err
	}

	if len(packages) == 0 {
		fmt.Println("All packages are up to date.")
		return nil
	}

	for _, p := range packages {
		fmt.Printf("%-40s %-15s -> %s\n", p.Name, p.Version, p.Latest)
	}
	return nil
}
