// pkg/pip/types.go
package pip

import (
	"errors"

	"github.com/pipdeck/pipdeck/pkg/core"
	"github.com/pipdeck/pipdeck/pkg/execute"
)

var (
	// ErrNoInterpreter indicates the config supplies no Python interpreter
	ErrNoInterpreter = errors.New("no python interpreter configured")

	// ErrParse indicates pip emitted a listing we could not parse
	ErrParse = errors.New("unparsable pip listing")
)

// ListEntry is one element of pip's `list --format json` output
type ListEntry struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	LatestVersion string `json:"latest_version,omitempty"`
}

// Manager drives the pip executable. All commands run as
// "<python> -m pip <args>"; mutating commands append "-i <index>" when a
// non-default index is configured. The configuration is re-read from the
// store on every call.
type Manager struct {
	executor execute.Executor
	store    *core.Store
}
