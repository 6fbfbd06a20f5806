// pkg/coordinator/commands.go
package coordinator

import (
	"context"
	"path/filepath"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/pipdeck/pipdeck/pkg/core"
	"github.com/pipdeck/pipdeck/pkg/pip"
	"github.com/pipdeck/pipdeck/pkg/reqfile"
	"github.com/pipdeck/pipdeck/pkg/view"
)

// UpdateReport lists the outcome of a bulk update per package.
type UpdateReport struct {
	Updated []string
	Failed  []string
	Err     error // aggregated per-item failures, nil when all succeeded
}

// UpdatePackages upgrades the named packages sequentially. Upgrades run
// real installs that must not race each other, so there is no concurrency
// here. Cancelling ctx stops before the next item; per-item failures are
// collected, never fatal to the sequence. A full refresh is triggered
// afterward regardless of partial failure.
func (c *Coordinator) UpdatePackages(ctx context.Context, names []string) UpdateReport {
	var report UpdateReport
	var errs *multierror.Error

	total := len(names)
	for i, name := range names {
		if ctx.Err() != nil {
			break
		}
		c.publish(ctx, view.ProgressMsg{Current: i + 1, Total: total, Name: name})

		if err := c.manager.Upgrade(ctx, name); err != nil {
			if ctx.Err() != nil {
				break
			}
			report.Failed = append(report.Failed, name)
			errs = multierror.Append(errs, err)
			continue
		}
		report.Updated = append(report.Updated, name)
	}

	report.Err = errs.ErrorOrNil()
	c.publish(ctx, view.UpdateCompleteMsg{Updated: report.Updated, Failed: report.Failed})
	c.Refresh()
	return report
}

// UpdateSingle upgrades one package and refreshes.
func (c *Coordinator) UpdateSingle(ctx context.Context, name string) UpdateReport {
	return c.UpdatePackages(ctx, []string{name})
}

// Remove uninstalls a package. Protected bootstrap packages are reported
// as not removed without an error and without touching the catalog; an
// actual removal triggers a refresh so displayed state matches reality.
func (c *Coordinator) Remove(ctx context.Context, name string) (bool, error) {
	removed, err := c.manager.Uninstall(ctx, name)
	if err != nil {
		c.publish(ctx, view.ErrorMsg{Message: err.Error()})
		c.Refresh()
		return false, err
	}
	if removed {
		c.Refresh()
	}
	return removed, nil
}

// Install adds or upgrades one package, then refreshes.
func (c *Coordinator) Install(ctx context.Context, spec core.Spec) error {
	err := c.manager.Install(ctx, spec)
	if err != nil && ctx.Err() == nil {
		c.publish(ctx, view.ErrorMsg{Message: err.Error()})
	}
	c.Refresh()
	return err
}

// InstallFromFile installs every entry of a requirements-style file.
// pyproject.toml dependencies are extracted and installed individually;
// plain requirements files go through pip's own -r handling.
func (c *Coordinator) InstallFromFile(ctx context.Context, path string) error {
	var err error
	if filepath.Base(path) == "pyproject.toml" {
		var specs []core.Spec
		specs, err = reqfile.Read(path)
		if err == nil {
			for _, spec := range specs {
				if ctx.Err() != nil {
					break
				}
				if e := c.manager.Install(ctx, spec); e != nil && err == nil {
					err = e
				}
			}
		}
	} else {
		err = c.manager.InstallRequirements(ctx, path)
	}

	if err != nil && ctx.Err() == nil {
		c.publish(ctx, view.ErrorMsg{Message: err.Error()})
	}
	c.Refresh()
	return err
}

// Export writes the current freeze output to path (xz-compressed for a
// ".xz" suffix) and reports how many pinned entries it exported.
func (c *Coordinator) Export(ctx context.Context, path string) (int, error) {
	content, err := c.manager.Freeze(ctx)
	if err != nil {
		return 0, err
	}
	if err := reqfile.Write(path, content); err != nil {
		return 0, err
	}
	return len(pip.ParseFreeze(content)), nil
}

// Search queries the index asynchronously, superseding any search still in
// flight (a newer keystroke wins). The settled page is published as a
// SearchResultsMsg; a superseded search publishes nothing.
func (c *Coordinator) Search(keyword string, page int) {
	c.mu.Lock()
	if c.searchCancel != nil {
		c.searchCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.searchCancel = cancel
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		result, err := c.registry.Search(ctx, keyword, page)
		if ctx.Err() != nil {
			// Caller-initiated cancellation is a silent outcome.
			return
		}
		c.publish(ctx, view.SearchResultsMsg{
			Keyword: keyword,
			Page:    page,
			Result:  result,
			Err:     err,
		})
	}()
}

// PickVersion fetches the release list for a package and publishes it for
// a version picker. Best-effort: an unreachable index yields an empty list.
func (c *Coordinator) PickVersion(ctx context.Context, name, current string) []string {
	versions := c.registry.Versions(ctx, name)
	c.publish(ctx, view.VersionsMsg{Name: name, Current: current, Versions: versions})
	return versions
}
