// internal/cli/list.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipdeck/pipdeck/pkg/catalog"
	"github.com/pipdeck/pipdeck/pkg/view"
)

var listLatest bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages",
	Long: `List installed packages. With --latest the listing is enriched with the
latest known version of each package from the index, printed progressively
per settled batch.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listLatest, "latest", false, "enrich the listing with latest index versions")
}

func runList(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	if !listLatest {
		packages, err := engine.Pip().ListInstalled(context.Background())
		if err != nil {
			return err
		}
		for _, p := range packages {
			fmt.Printf("%-40s %s\n", p.Name, p.Version)
		}
		return nil
	}

	// Consume messages while the cycle runs so the coordinator never blocks
	// on a full channel, then print the settled snapshot.
	done := engine.Coordinator.Refresh()
	settled := false
	for !settled {
		select {
		case msg := <-engine.Views.Messages():
			if e, ok := msg.(view.ErrorMsg); ok {
				if e.NoInterpreter {
					return fmt.Errorf("%s (set python_path in the config or pass --python)", e.Message)
				}
				return fmt.Errorf("%s", e.Message)
			}
		case <-done:
			settled = true
		}
	}

	// An error published just before the cycle settled may still be buffered.
	for drained := false; !drained; {
		select {
		case msg := <-engine.Views.Messages():
			if e, ok := msg.(view.ErrorMsg); ok {
				if e.NoInterpreter {
					return fmt.Errorf("%s (set python_path in the config or pass --python)", e.Message)
				}
				return fmt.Errorf("%s", e.Message)
			}
		default:
			drained = true
		}
	}

	for _, p := range engine.Coordinator.Packages() {
		marker := " "
		if catalog.HasUpdate(p) {
			marker = "*"
		}
		fmt.Printf("%s %-38s %-15s %s\n", marker, p.Name, p.Version, p.Latest)
	}
	return nil
}
