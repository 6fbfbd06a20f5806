// pipdeck.go
package pipdeck

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pipdeck/pipdeck/pkg/coordinator"
	"github.com/pipdeck/pipdeck/pkg/core"
	"github.com/pipdeck/pipdeck/pkg/execute"
	"github.com/pipdeck/pipdeck/pkg/interp"
	"github.com/pipdeck/pipdeck/pkg/pip"
	"github.com/pipdeck/pipdeck/pkg/pypi"
	"github.com/pipdeck/pipdeck/pkg/view"
)

// Re-export core types for convenience
type (
	Config       = core.Config
	Package      = core.Package
	Spec         = core.Spec
	SearchItem   = core.SearchItem
	SearchResult = core.SearchResult
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Engine wires the synchronization core: configuration store, command
// executor, pip manager, registry client, coordinator, and the view channel
// a display surface consumes.
type Engine struct {
	Store       *core.Store
	Views       *view.Channel
	Coordinator *coordinator.Coordinator

	pip      *pip.Manager
	registry *pypi.Client
}

// Options tunes engine construction.
type Options struct {
	WorkDir string         // project directory; defaults to the cwd
	Logger  *logrus.Logger // diagnostic sink target; defaults to standard logger
}

// NewEngine creates an engine from cfg. A nil cfg loads the default config
// file; a missing interpreter path is filled by discovery when possible.
func NewEngine(cfg *core.Config, opts *Options) (*Engine, error) {
	if opts == nil {
		opts = &Options{}
	}

	if cfg == nil {
		loaded, err := core.LoadConfig("")
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	workDir := opts.WorkDir
	if workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			workDir = wd
		} else {
			workDir = "."
		}
	}

	if cfg.PythonPath == "" {
		cfg.PythonPath = interp.Default(workDir)
	}

	store := core.NewStore(cfg)
	executor := execute.NewLocal(execute.NewLogrusSink(opts.Logger))
	manager := pip.NewManager(executor, store)
	registry := pypi.NewClient()
	views := view.NewChannel(0)

	coord := coordinator.New(manager, registry, views, workDir)

	// A changed index or interpreter invalidates the displayed snapshot;
	// the next cycle re-reads the store, so a refresh is enough.
	store.Subscribe(func(core.Config) {
		coord.Refresh()
	})

	return &Engine{
		Store:       store,
		Views:       views,
		Coordinator: coord,
		pip:         manager,
		registry:    registry,
	}, nil
}

// Pip exposes the command layer for direct one-shot CLI use.
func (e *Engine) Pip() *pip.Manager {
	return e.pip
}

// Registry exposes the index client for direct one-shot CLI use.
func (e *Engine) Registry() *pypi.Client {
	return e.registry
}

// Close cancels any in-flight work, waits for it to stop publishing, and
// closes the view channel.
func (e *Engine) Close() {
	e.Coordinator.Cancel()
	e.Coordinator.Wait()
	e.Views.Close()
}
