// pkg/pypi/constants.go
package pypi

import "time"

const (
	// DefaultBaseURL is the main Python package index
	DefaultBaseURL = "https://pypi.org"

	// defaultClassifier keeps empty-keyword searches non-empty; the index
	// returns no result block for a fully unconstrained query.
	defaultClassifier = "Programming Language :: Python :: 3"

	// latestVersionTimeout bounds a single best-effort metadata fetch
	latestVersionTimeout = 5 * time.Second

	// versionListTimeout bounds a full release-list fetch
	versionListTimeout = 10 * time.Second
)
