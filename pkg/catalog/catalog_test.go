// pkg/catalog/catalog_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipdeck/pipdeck/pkg/core"
)

func installedFixture() []core.Package {
	return []core.Package{
		{Name: "requests", Version: "2.30.0"},
		{Name: "flask", Version: "3.0.0"},
		{Name: "black", Version: "24.1.0"},
	}
}

func TestMergeUpdatesEmptyIsNoOp(t *testing.T) {
	installed := installedFixture()
	merged := MergeUpdates(installed, nil)
	assert.Equal(t, installed, merged)

	merged = MergeUpdates(installed, []Update{})
	assert.Equal(t, installed, merged)
}

func TestMergeUpdates(t *testing.T) {
	updates := []Update{
		{Name: "requests", Latest: "2.31.0"},
		{Name: "black", Latest: "24.1.0"},
		{Name: "not-installed", Latest: "9.9.9"},
	}

	merged := MergeUpdates(installedFixture(), updates)

	assert.Equal(t, "2.31.0", merged[0].Latest)
	assert.Equal(t, "", merged[1].Latest, "flask has no update entry and passes through")
	assert.Equal(t, "24.1.0", merged[2].Latest)
	assert.Len(t, merged, 3)
}

func TestMergeUpdatesIdempotent(t *testing.T) {
	updates := []Update{{Name: "requests", Latest: "2.31.0"}}

	once := MergeUpdates(installedFixture(), updates)
	twice := MergeUpdates(once, updates)
	assert.Equal(t, once, twice)
}

func TestHasUpdate(t *testing.T) {
	assert.False(t, HasUpdate(core.Package{Name: "a", Version: "1.0"}), "latest pending")
	assert.False(t, HasUpdate(core.Package{Name: "a", Version: "1.0", Latest: "1.0"}))
	assert.True(t, HasUpdate(core.Package{Name: "a", Version: "1.0", Latest: "1.1"}))
	// Exact string comparison: formatting differences count as an update.
	assert.True(t, HasUpdate(core.Package{Name: "a", Version: "1.0", Latest: "1.0.0"}))
}

func TestCloneIsIndependent(t *testing.T) {
	original := installedFixture()
	cloned := Clone(original)
	cloned[0].Latest = "changed"
	assert.Equal(t, "", original[0].Latest)
}
