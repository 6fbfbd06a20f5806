// pkg/coordinator/types.go
package coordinator

import (
	"context"

	"github.com/pipdeck/pipdeck/pkg/core"
)

// State is the coordinator's refresh phase
type State int

const (
	// StateIdle means no refresh cycle is in flight
	StateIdle State = iota
	// StateListing means the local installed-package listing is running
	StateListing
	// StateEnriching means remote latest-version lookups are in progress
	StateEnriching
	// StateError means the last listing failed
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListing:
		return "listing"
	case StateEnriching:
		return "enriching"
	case StateError:
		return "error"
	}
	return "unknown"
}

// PackageManager is the command-layer surface the coordinator drives.
// *pip.Manager satisfies it.
type PackageManager interface {
	ListInstalled(ctx context.Context) ([]core.Package, error)
	Freeze(ctx context.Context) (string, error)
	Install(ctx context.Context, spec core.Spec) error
	InstallRequirements(ctx context.Context, path string) error
	Upgrade(ctx context.Context, name string) error
	Uninstall(ctx context.Context, name string) (bool, error)
}

// Registry is the remote index surface the coordinator enriches from.
// *pypi.Client satisfies it.
type Registry interface {
	LatestVersion(ctx context.Context, name string) (string, bool)
	Versions(ctx context.Context, name string) []string
	Search(ctx context.Context, keyword string, page int) (*core.SearchResult, error)
}

// batchSize bounds concurrent latest-version lookups per settlement round.
const batchSize = 5
