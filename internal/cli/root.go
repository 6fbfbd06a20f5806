// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pipdeck/pipdeck"
	"github.com/pipdeck/pipdeck/pkg/core"
)

var (
	cfgFile    string
	pythonPath string
	indexURL   string
	debug      bool
	config     *core.Config
	logger     = logrus.New()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pipdeck",
	Short: "pip package dashboard engine",
	Long: `pipdeck - inspect, update, and remove pip-managed packages

Drives pip as a child process, enriches the installed listing with latest
versions from the package index, and searches the index for new packages.`,
	Version: "0.1.0",
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pipdeck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&pythonPath, "python", "", "python interpreter to run pip with")
	rootCmd.PersistentFlags().StringVar(&indexURL, "index-url", "", "package index/mirror URL for mutating commands")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(outdatedCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(uiCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if pythonPath != "" {
		config.PythonPath = pythonPath
	}
	if indexURL != "" {
		config.IndexURL = indexURL
	}
	if debug {
		config.Debug = true
	}

	logger.SetOutput(os.Stderr)
	if config.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
}

// newEngine builds an engine from the resolved configuration.
func newEngine() (*pipdeck.Engine, error) {
	return pipdeck.NewEngine(config, &pipdeck.Options{Logger: logger})
}
