// pkg/pypi/types.go
package pypi

import "errors"

// ErrNoResults indicates the search response carried no result block
var ErrNoResults = errors.New("no search results")

// packageDocument is the per-package JSON metadata document
type packageDocument struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	Releases map[string][]releaseFile `json:"releases"`
}

// releaseFile is one distributable file of a release; releases with zero
// files are withdrawn and excluded from version lists.
type releaseFile struct {
	Filename string `json:"filename"`
}
