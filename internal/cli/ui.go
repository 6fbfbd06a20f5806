// internal/cli/ui.go
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pipdeck/pipdeck/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Interactive package dashboard",
	Long: `Open the interactive dashboard: installed packages with progressive
latest-version enrichment, index search, and per-package actions.`,
	RunE: runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	program := tea.NewProgram(tui.New(engine), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
