// pkg/coordinator/coordinator_test.go
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipdeck/pipdeck/pkg/core"
	"github.com/pipdeck/pipdeck/pkg/pip"
	"github.com/pipdeck/pipdeck/pkg/reqfile"
	"github.com/pipdeck/pipdeck/pkg/view"
)

type fakeManager struct {
	mu         sync.Mutex
	packages   []core.Package
	freeze     string
	listErr    error
	listCalls  int
	upgraded   []string
	upgradeErr map[string]error
	onUpgrade  func(name string)
}

func (f *fakeManager) ListInstalled(ctx context.Context) ([]core.Package, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]core.Package, len(f.packages))
	copy(out, f.packages)
	return out, nil
}

func (f *fakeManager) Freeze(ctx context.Context) (string, error) { return f.freeze, nil }

func (f *fakeManager) Install(ctx context.Context, spec core.Spec) error { return nil }

func (f *fakeManager) InstallRequirements(ctx context.Context, path string) error { return nil }

func (f *fakeManager) Upgrade(ctx context.Context, name string) error {
	f.mu.Lock()
	f.upgraded = append(f.upgraded, name)
	err := f.upgradeErr[name]
	hook := f.onUpgrade
	f.mu.Unlock()
	if hook != nil {
		hook(name)
	}
	return err
}

func (f *fakeManager) Uninstall(ctx context.Context, name string) (bool, error) {
	if pip.IsProtected(name) {
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.packages[:0]
	for _, p := range f.packages {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	f.packages = kept
	return true, nil
}

func (f *fakeManager) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type fakeRegistry struct {
	mu      sync.Mutex
	latest  map[string]string
	lookups []string
	block   chan struct{} // when set, LatestVersion waits for it before answering
}

func (f *fakeRegistry) LatestVersion(ctx context.Context, name string) (string, bool) {
	f.mu.Lock()
	f.lookups = append(f.lookups, name)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	v, ok := f.latest[name]
	return v, ok
}

func (f *fakeRegistry) Versions(ctx context.Context, name string) []string { return nil }

func (f *fakeRegistry) Search(ctx context.Context, keyword string, page int) (*core.SearchResult, error) {
	if keyword == "blocked" {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &core.SearchResult{
		Items:      []core.SearchItem{{Name: keyword, Version: "1.0"}},
		TotalPages: 1,
	}, nil
}

func (f *fakeRegistry) lookupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lookups)
}

func makePackages(n int) []core.Package {
	packages := make([]core.Package, n)
	for i := range packages {
		packages[i] = core.Package{Name: fmt.Sprintf("pkg-%02d", i), Version: "1.0"}
	}
	return packages
}

// drain collects every message already published, stopping after the
// channel is quiet for a beat.
func drain(ch <-chan view.Msg) []view.Msg {
	var msgs []view.Msg
	for {
		select {
		case msg := <-ch:
			msgs = append(msgs, msg)
		case <-time.After(100 * time.Millisecond):
			return msgs
		}
	}
}

func packagesMessages(msgs []view.Msg) []view.PackagesMsg {
	var out []view.PackagesMsg
	for _, m := range msgs {
		if pm, ok := m.(view.PackagesMsg); ok {
			out = append(out, pm)
		}
	}
	return out
}

func TestRefreshProgressiveEnrichment(t *testing.T) {
	packages := makePackages(12)
	latest := map[string]string{}
	for _, p := range packages {
		latest[p.Name] = "2.0"
	}

	manager := &fakeManager{packages: packages}
	registry := &fakeRegistry{latest: latest}
	views := view.NewChannel(128)
	c := New(manager, registry, views, t.TempDir())

	select {
	case <-c.Refresh():
	case <-time.After(5 * time.Second):
		t.Fatal("refresh did not settle")
	}

	msgs := drain(views.Messages())
	snapshots := packagesMessages(msgs)

	// One immediate listing snapshot plus one per settled batch (5,5,2).
	require.Len(t, snapshots, 4)
	for _, p := range snapshots[0].Packages {
		assert.Empty(t, p.Latest, "listing snapshot precedes enrichment")
	}
	for _, p := range snapshots[3].Packages {
		assert.Equal(t, "2.0", p.Latest)
	}

	// Every package looked up exactly once.
	assert.Equal(t, 12, registry.lookupCount())

	// The cycle is bracketed by checking-updates signals.
	assert.Contains(t, msgs, view.Msg(view.CheckingUpdatesMsg{Checking: true}))
	assert.Equal(t, view.CheckingUpdatesMsg{Checking: false}, msgs[len(msgs)-1])

	assert.Equal(t, StateIdle, c.State())
}

func TestRefreshListingFailureIsTerminal(t *testing.T) {
	manager := &fakeManager{listErr: pip.ErrNoInterpreter}
	registry := &fakeRegistry{}
	views := view.NewChannel(16)
	c := New(manager, registry, views, t.TempDir())

	<-c.Refresh()

	msgs := drain(views.Messages())
	var errMsg *view.ErrorMsg
	for _, m := range msgs {
		if e, ok := m.(view.ErrorMsg); ok {
			errMsg = &e
		}
	}
	require.NotNil(t, errMsg)
	assert.True(t, errMsg.NoInterpreter)
	assert.Empty(t, packagesMessages(msgs), "no snapshot published on listing failure")
	assert.Zero(t, registry.lookupCount(), "no enrichment attempted")
	assert.Equal(t, StateError, c.State())
}

func TestCancelMidEnrichingPublishesNothingFurther(t *testing.T) {
	packages := makePackages(7)
	latest := map[string]string{}
	for _, p := range packages {
		latest[p.Name] = "9.9"
	}

	block := make(chan struct{})
	manager := &fakeManager{packages: packages}
	registry := &fakeRegistry{latest: latest, block: block}
	views := view.NewChannel(64)
	c := New(manager, registry, views, t.TempDir())

	done := c.Refresh()

	// Wait for the enrichment phase to start, then cancel while the first
	// batch is still in flight.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case msg := <-views.Messages():
			if cu, ok := msg.(view.CheckingUpdatesMsg); ok && cu.Checking {
				goto enriching
			}
		case <-deadline:
			t.Fatal("enrichment never started")
		}
	}
enriching:
	c.Cancel()
	close(block) // lookups now settle with real values, too late to count

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled refresh did not settle")
	}

	msgs := drain(views.Messages())
	assert.Empty(t, packagesMessages(msgs), "cancelled cycle must not publish snapshots")

	for _, p := range c.Packages() {
		assert.Empty(t, p.Latest, "cancelled lookups must not mutate the catalog")
	}
}

func TestChannelCloseSafeAfterCancelAndWait(t *testing.T) {
	packages := makePackages(6)
	block := make(chan struct{})
	manager := &fakeManager{packages: packages}
	registry := &fakeRegistry{latest: map[string]string{"pkg-00": "2.0"}, block: block}
	views := view.NewChannel(64)
	c := New(manager, registry, views, t.TempDir())

	done := c.Refresh()

	deadline := time.After(5 * time.Second)
	for enriching := false; !enriching; {
		select {
		case msg := <-views.Messages():
			if cu, ok := msg.(view.CheckingUpdatesMsg); ok && cu.Checking {
				enriching = true
			}
		case <-deadline:
			t.Fatal("enrichment never started")
		}
	}

	// The first batch is still parked in the registry when the cycle is
	// cancelled; its goroutine must stop publishing before Wait returns.
	c.Cancel()
	close(block)
	c.Wait()
	require.NotPanics(t, func() { views.Close() })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled refresh did not settle")
	}
}

func TestWaitCoversInFlightSearch(t *testing.T) {
	views := view.NewChannel(16)
	c := New(&fakeManager{}, &fakeRegistry{latest: map[string]string{}}, views, t.TempDir())

	c.Search("blocked", 1) // parks until cancelled
	c.Cancel()
	c.Wait()
	require.NotPanics(t, func() { views.Close() })
}

func TestRefreshSupersession(t *testing.T) {
	packages := makePackages(3)
	block := make(chan struct{})
	manager := &fakeManager{packages: packages}
	registry := &fakeRegistry{latest: map[string]string{}, block: block}
	views := view.NewChannel(64)
	c := New(manager, registry, views, t.TempDir())

	first := c.Refresh()
	second := c.Refresh() // supersedes while the first may still be listing
	close(block)

	select {
	case <-first:
	case <-time.After(5 * time.Second):
		t.Fatal("superseded cycle did not settle")
	}
	select {
	case <-second:
	case <-time.After(5 * time.Second):
		t.Fatal("second cycle did not settle")
	}

	assert.Equal(t, StateIdle, c.State())
}

func TestUpdatePackagesSequentialWithPartialFailure(t *testing.T) {
	manager := &fakeManager{
		packages:   makePackages(3),
		upgradeErr: map[string]error{"pkg-01": errors.New("resolver conflict")},
	}
	views := view.NewChannel(64)
	c := New(manager, &fakeRegistry{latest: map[string]string{}}, views, t.TempDir())

	names := []string{"pkg-00", "pkg-01", "pkg-02"}
	report := c.UpdatePackages(context.Background(), names)

	assert.Equal(t, []string{"pkg-00", "pkg-02"}, report.Updated)
	assert.Equal(t, []string{"pkg-01"}, report.Failed)
	require.Error(t, report.Err)

	// Strictly sequential, in input order.
	assert.Equal(t, names, manager.upgraded)

	// A trailing refresh runs regardless of partial failure.
	require.Eventually(t, func() bool {
		return manager.listCallCount() >= 1
	}, 5*time.Second, 10*time.Millisecond)

	msgs := drain(views.Messages())
	var complete *view.UpdateCompleteMsg
	var progress []view.ProgressMsg
	for _, m := range msgs {
		switch m := m.(type) {
		case view.UpdateCompleteMsg:
			complete = &m
		case view.ProgressMsg:
			progress = append(progress, m)
		}
	}
	require.NotNil(t, complete)
	assert.Equal(t, []string{"pkg-00", "pkg-02"}, complete.Updated)
	require.Len(t, progress, 3)
	assert.Equal(t, view.ProgressMsg{Current: 2, Total: 3, Name: "pkg-01"}, progress[1])
}

func TestUpdatePackagesCancellationStopsSequence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	manager := &fakeManager{packages: makePackages(3)}
	manager.onUpgrade = func(string) { cancel() }

	c := New(manager, &fakeRegistry{latest: map[string]string{}}, view.NewChannel(64), t.TempDir())
	report := c.UpdatePackages(ctx, []string{"pkg-00", "pkg-01", "pkg-02"})

	assert.Equal(t, []string{"pkg-00"}, manager.upgraded, "cancellation stops before the next item")
	assert.Equal(t, []string{"pkg-00"}, report.Updated)
}

func TestRemoveProtectedIsNoOp(t *testing.T) {
	manager := &fakeManager{packages: makePackages(2)}
	c := New(manager, &fakeRegistry{latest: map[string]string{}}, view.NewChannel(16), t.TempDir())

	removed, err := c.Remove(context.Background(), "pip")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Zero(t, manager.listCallCount(), "a no-op removal triggers no refresh")
}

func TestRemoveTriggersRefresh(t *testing.T) {
	manager := &fakeManager{packages: makePackages(2)}
	c := New(manager, &fakeRegistry{latest: map[string]string{}}, view.NewChannel(64), t.TempDir())

	removed, err := c.Remove(context.Background(), "pkg-00")
	require.NoError(t, err)
	assert.True(t, removed)

	require.Eventually(t, func() bool {
		return manager.listCallCount() >= 1
	}, 5*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		for _, p := range c.Packages() {
			if p.Name == "pkg-00" {
				return false
			}
		}
		return len(c.Packages()) == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestExportWritesFreezeAndCountsPins(t *testing.T) {
	manager := &fakeManager{
		freeze: "requests==2.31.0\n-e git+https://example/repo\nflask==3.0.0\n",
	}
	c := New(manager, &fakeRegistry{latest: map[string]string{}}, view.NewChannel(16), t.TempDir())

	path := filepath.Join(t.TempDir(), "requirements.txt")
	n, err := c.Export(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "editable installs carry no pin and are not counted")

	specs, err := reqfile.Read(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "requests==2.31.0", specs[0].String())
}

func TestSearchSupersession(t *testing.T) {
	views := view.NewChannel(16)
	c := New(&fakeManager{}, &fakeRegistry{latest: map[string]string{}}, views, t.TempDir())

	c.Search("blocked", 1) // parks until cancelled
	c.Search("requests", 1)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case msg := <-views.Messages():
			if sr, ok := msg.(view.SearchResultsMsg); ok {
				assert.Equal(t, "requests", sr.Keyword, "only the newest search may publish")
				require.NoError(t, sr.Err)
				// The superseded search stays silent.
				assert.Empty(t, drain(views.Messages()))
				return
			}
		case <-deadline:
			t.Fatal("search never settled")
		}
	}
}

func TestRefreshReportsRequirementsFileHint(t *testing.T) {
	dir := t.TempDir()
	manager := &fakeManager{packages: makePackages(1)}
	views := view.NewChannel(64)
	c := New(manager, &fakeRegistry{latest: map[string]string{}}, views, dir)

	<-c.Refresh()
	first := packagesMessages(drain(views.Messages()))
	require.NotEmpty(t, first)
	assert.False(t, first[0].HasRequirementsFile)
}
