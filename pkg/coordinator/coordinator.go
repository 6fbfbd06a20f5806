// pkg/coordinator/coordinator.go
package coordinator

import (
	"context"
	"errors"
	"sync"

	"github.com/pipdeck/pipdeck/pkg/catalog"
	"github.com/pipdeck/pipdeck/pkg/core"
	"github.com/pipdeck/pipdeck/pkg/pip"
	"github.com/pipdeck/pipdeck/pkg/reqfile"
	"github.com/pipdeck/pipdeck/pkg/view"
)

// Coordinator reconciles the package manager and the remote index into a
// single progressively-updated catalog snapshot pushed to the view channel.
// It is the sole writer of the catalog; snapshots leaving it are copies.
type Coordinator struct {
	manager  PackageManager
	registry Registry
	views    *view.Channel
	workDir  string

	// wg tracks every goroutine that may publish to views; the channel may
	// only be closed after Wait returns.
	wg sync.WaitGroup

	mu            sync.Mutex
	state         State
	packages      []core.Package
	refreshCancel context.CancelFunc
	searchCancel  context.CancelFunc
	refreshDone   chan struct{}
}

// New creates a coordinator publishing to views. workDir is scanned for a
// requirements-style file to set the hint on package snapshots.
func New(manager PackageManager, registry Registry, views *view.Channel, workDir string) *Coordinator {
	return &Coordinator{
		manager:  manager,
		registry: registry,
		views:    views,
		workDir:  workDir,
		state:    StateIdle,
	}
}

// State returns the current refresh phase.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Packages returns a copy of the current catalog snapshot.
func (c *Coordinator) Packages() []core.Package {
	c.mu.Lock()
	defer c.mu.Unlock()
	return catalog.Clone(c.packages)
}

// Refresh starts a new two-phase refresh cycle, superseding any cycle
// already in flight. It returns a channel closed when the cycle settles
// (completed or superseded).
func (c *Coordinator) Refresh() <-chan struct{} {
	c.mu.Lock()
	if c.refreshCancel != nil {
		c.refreshCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.refreshCancel = cancel
	c.state = StateListing
	done := make(chan struct{})
	c.refreshDone = done
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer close(done)
		c.runRefresh(ctx)
	}()
	return done
}

// Cancel stops any in-flight refresh or search cycle.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refreshCancel != nil {
		c.refreshCancel()
		c.refreshCancel = nil
	}
	if c.searchCancel != nil {
		c.searchCancel()
		c.searchCancel = nil
	}
	c.state = StateIdle
}

// Wait blocks until every cycle goroutine the coordinator started has
// settled. Cancelled cycles stop publishing before their goroutine exits,
// so after Cancel and Wait the view channel may safely be closed.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// runRefresh is one refresh cycle: fast local listing, then progressive
// remote enrichment in sequential batches of concurrent lookups.
func (c *Coordinator) runRefresh(ctx context.Context) {
	c.publish(ctx, view.LoadingMsg{Loading: true})

	installed, err := c.manager.ListInstalled(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		c.setState(ctx, StateError)
		c.publish(ctx, view.ErrorMsg{
			Message:       err.Error(),
			NoInterpreter: errors.Is(err, pip.ErrNoInterpreter),
		})
		c.publish(ctx, view.LoadingMsg{Loading: false})
		return
	}

	hasReqFile := reqfile.Detect(c.workDir) != ""

	if !c.replaceCatalog(ctx, installed) {
		return
	}
	c.publish(ctx, view.LoadingMsg{Loading: false})
	c.publish(ctx, view.PackagesMsg{
		Packages:            catalog.Clone(installed),
		HasRequirementsFile: hasReqFile,
	})

	c.setState(ctx, StateEnriching)
	c.publish(ctx, view.CheckingUpdatesMsg{Checking: true})

	for start := 0; start < len(installed); start += batchSize {
		end := start + batchSize
		if end > len(installed) {
			end = len(installed)
		}
		batch := installed[start:end]

		updates := c.settleBatch(ctx, batch)
		if ctx.Err() != nil {
			return
		}

		snapshot, ok := c.mergeCatalog(ctx, updates)
		if !ok {
			return
		}
		c.publish(ctx, view.PackagesMsg{
			Packages:            snapshot,
			HasRequirementsFile: hasReqFile,
		})
	}

	c.setState(ctx, StateIdle)
	c.publish(ctx, view.CheckingUpdatesMsg{Checking: false})
}

// settleBatch issues one concurrent lookup per batch member and waits for
// all of them. A slow or failing lookup never stalls or fails its
// batch-mates; failures simply contribute no update.
func (c *Coordinator) settleBatch(ctx context.Context, batch []core.Package) []catalog.Update {
	results := make([]catalog.Update, len(batch))
	var wg sync.WaitGroup
	wg.Add(len(batch))

	for i, p := range batch {
		go func(i int, name string) {
			defer wg.Done()
			if latest, ok := c.registry.LatestVersion(ctx, name); ok {
				results[i] = catalog.Update{Name: name, Latest: latest}
			}
		}(i, p.Name)
	}
	wg.Wait()

	updates := results[:0]
	for _, u := range results {
		if u.Name != "" {
			updates = append(updates, u)
		}
	}
	return updates
}

// replaceCatalog swaps in a freshly listed snapshot. It refuses to mutate
// on behalf of a superseded cycle.
func (c *Coordinator) replaceCatalog(ctx context.Context, packages []core.Package) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	c.packages = packages
	return true
}

// mergeCatalog applies one batch's updates and returns a snapshot copy.
// Mutation happens only here, in the sequential settlement step.
func (c *Coordinator) mergeCatalog(ctx context.Context, updates []catalog.Update) ([]core.Package, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		return nil, false
	}
	c.packages = catalog.MergeUpdates(c.packages, updates)
	return catalog.Clone(c.packages), true
}

func (c *Coordinator) setState(ctx context.Context, s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	c.state = s
}

// publish pushes a message unless the owning cycle has been superseded;
// a canceled cycle emits nothing further.
func (c *Coordinator) publish(ctx context.Context, msg view.Msg) {
	if ctx.Err() != nil {
		return
	}
	c.views.Publish(msg)
}
