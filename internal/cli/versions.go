// internal/cli/versions.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions [package]",
	Short: "List released versions of a package, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersions,
}

func runVersions(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	versions := engine.Registry().Versions(context.Background(), args[0])
	if len(versions) == 0 {
		fmt.Printf("No released versions found for %s\n", args[0])
		return nil
	}

	for _, v := range versions {
		fmt.Println(v)
	}
	return nil
}
