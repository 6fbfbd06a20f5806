// internal/cli/install.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pipdeck/pipdeck"
	"github.com/pipdeck/pipdeck/pkg/core"
)

var installRequirements string

var installCmd = &cobra.Command{
	Use:   "install [package...]",
	Short: "Install or upgrade packages",
	Long: `Install packages, optionally pinned to a version.

Examples:
  pipdeck install requests
  pipdeck install requests==2.31.0 flask
  pipdeck install -r requirements.txt`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installRequirements, "requirements", "r", "", "install from a requirements file or pyproject.toml")
}

func runInstall(cmd *cobra.Command, args []string) error {
	if installRequirements == "" && len(args) == 0 {
		return fmt.Errorf("nothing to install: pass packages or -r <file>")
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()

	if installRequirements != "" {
		fmt.Printf("Installing from %s...\n", installRequirements)
		if err := engine.Pip().InstallRequirements(ctx, installRequirements); err != nil {
			return err
		}
		fmt.Println("Done.")
	}

	for _, token := range args {
		spec, ok := core.ParseSpec(token)
		if !ok {
			fmt.Fprintf(os.Stderr, "Skipping %q: %v\n", token, pipdeck.ErrInvalidSpec)
			continue
		}

		fmt.Printf("Installing %s...\n", spec)
		if err := engine.Pip().Install(ctx, spec); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to install %s: %v\n", spec.Name, err)
			continue
		}
		fmt.Printf("Installed %s\n", spec)
	}

	return nil
}
