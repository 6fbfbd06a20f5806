// pkg/pip/manager.go
package pip

import (
	"context"

	"github.com/pipdeck/pipdeck/pkg/core"
	"github.com/pipdeck/pipdeck/pkg/execute"
)

// NewManager creates a pip manager running commands through executor with
// configuration read from store.
func NewManager(executor execute.Executor, store *core.Store) *Manager {
	return &Manager{
		executor: executor,
		store:    store,
	}
}

// run executes "<python> -m pip <args>" with the interpreter from the
// current configuration.
func (m *Manager) run(ctx context.Context, args ...string) (string, error) {
	cfg := m.store.Config()
	if cfg.PythonPath == "" {
		return "", ErrNoInterpreter
	}

	full := append([]string{"-m", "pip"}, args...)
	return m.executor.Run(ctx, cfg.PythonPath, full...)
}

// runMutating appends the configured index flag before executing. The index
// URL is read per call so a configuration change never leaves a command
// holding a stale source.
func (m *Manager) runMutating(ctx context.Context, args ...string) (string, error) {
	if url := m.store.Config().IndexURL; url != "" {
		args = append(args, "-i", url)
	}
	return m.run(ctx, args...)
}

// ListInstalled returns all installed packages, latest versions unknown.
func (m *Manager) ListInstalled(ctx context.Context) ([]core.Package, error) {
	output, err := m.run(ctx, "list", "--format", "json")
	if err != nil {
		return nil, &core.Error{Op: "list", Err: err}
	}
	packages, err := ParseList(output)
	if err != nil {
		return nil, &core.Error{Op: "list", Err: err}
	}
	return packages, nil
}

// ListOutdated returns installed packages pip reports as outdated, with
// Latest populated from pip's own latest_version field.
func (m *Manager) ListOutdated(ctx context.Context) ([]core.Package, error) {
	output, err := m.run(ctx, "list", "--outdated", "--format", "json")
	if err != nil {
		return nil, &core.Error{Op: "list", Err: err}
	}
	packages, err := ParseList(output)
	if err != nil {
		return nil, &core.Error{Op: "list", Err: err}
	}
	return packages, nil
}

// Freeze returns pip's requirements-format listing.
func (m *Manager) Freeze(ctx context.Context) (string, error) {
	output, err := m.run(ctx, "freeze")
	if err != nil {
		return "", &core.Error{Op: "freeze", Err: err}
	}
	return output, nil
}

// Install installs or upgrades a package, honoring a pinned version.
func (m *Manager) Install(ctx context.Context, spec core.Spec) error {
	if _, err := m.runMutating(ctx, "install", "-U", spec.String()); err != nil {
		return &core.Error{Op: "install", Package: spec.Name, Err: err}
	}
	return nil
}

// InstallRequirements installs every entry of a requirements file.
func (m *Manager) InstallRequirements(ctx context.Context, path string) error {
	if _, err := m.runMutating(ctx, "install", "-U", "-r", path); err != nil {
		return &core.Error{Op: "install", Package: path, Err: err}
	}
	return nil
}

// Upgrade upgrades a single package to its latest version.
func (m *Manager) Upgrade(ctx context.Context, name string) error {
	if _, err := m.runMutating(ctx, "install", "-U", "--upgrade", name); err != nil {
		return &core.Error{Op: "upgrade", Package: name, Err: err}
	}
	return nil
}

// Uninstall removes a package. Protected bootstrap packages are never
// removed; the request reports removed=false with no error.
func (m *Manager) Uninstall(ctx context.Context, name string) (bool, error) {
	if IsProtected(name) {
		return false, nil
	}
	if _, err := m.run(ctx, "uninstall", name, "-y"); err != nil {
		return false, &core.Error{Op: "uninstall", Package: name, Err: err}
	}
	return true, nil
}
