// internal/cli/uninstall.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [package...]",
	Short: "Remove packages",
	Long: `Remove installed packages. pip's own bootstrap packages (pip,
setuptools, wheel) are protected and reported as not removed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	for _, name := range args {
		removed, err := engine.Pip().Uninstall(ctx, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to remove %s: %v\n", name, err)
			continue
		}
		if !removed {
			fmt.Printf("Did not remove %s (protected package)\n", name)
			continue
		}
		fmt.Printf("Removed %s\n", name)
	}

	return nil
}
