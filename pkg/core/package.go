// pkg/core/package.go
package core

// Package represents one installed package in the catalog
type Package struct {
	Name    string // Package name as reported by pip
	Version string // Installed version
	Latest  string // Latest known version; empty until enrichment completes
}

// SearchItem is one entry from an index search results page
type SearchItem struct {
	Name        string
	Version     string
	Description string
}

// SearchResult is a single page of index search results
type SearchResult struct {
	Items      []SearchItem
	TotalPages int // always >= 1
}
