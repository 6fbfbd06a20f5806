// pkg/catalog/catalog.go
package catalog

import "github.com/pipdeck/pipdeck/pkg/core"

// Update pairs a package name with its latest known version.
type Update struct {
	Name   string
	Latest string
}

// MergeUpdates returns installed with Latest filled in wherever updates
// carries an entry for the package name. Entries without a matching update
// pass through unchanged; an empty updates slice returns the input as-is.
// Merging the same updates twice yields the same result as once.
func MergeUpdates(installed []core.Package, updates []Update) []core.Package {
	if len(updates) == 0 {
		return installed
	}

	latest := make(map[string]string, len(updates))
	for _, u := range updates {
		latest[u.Name] = u.Latest
	}

	merged := make([]core.Package, len(installed))
	for i, p := range installed {
		if v, ok := latest[p.Name]; ok {
			p.Latest = v
		}
		merged[i] = p
	}
	return merged
}

// HasUpdate reports whether a newer version is known for p. The comparison
// is exact string inequality: the enrichment pass already filled in
// authoritative values, so no semantic version comparison happens here.
func HasUpdate(p core.Package) bool {
	return p.Latest != "" && p.Latest != p.Version
}

// Clone returns an independent copy of a snapshot for handing to consumers.
func Clone(packages []core.Package) []core.Package {
	out := make([]core.Package, len(packages))
	copy(out, packages)
	return out
}
