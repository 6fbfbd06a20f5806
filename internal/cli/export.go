// internal/cli/export.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export installed packages to a requirements file",
	Long: `Write pip freeze output to a file. A .xz suffix selects xz
compression.

Examples:
  pipdeck export requirements.txt
  pipdeck export requirements.txt.xz`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	n, err := engine.Coordinator.Export(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d packages to %s\n", n, args[0])
	return nil
}
