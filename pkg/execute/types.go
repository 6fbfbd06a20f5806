// pkg/execute/types.go
package execute

import (
	"context"
	"fmt"
)

// Executor runs an external executable and returns its accumulated
// standard output. Cancelling ctx forcibly terminates the process.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// SpawnError indicates the process could not be started at all
// (missing executable, not executable).
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// ExitError indicates the process ran but exited nonzero. Stderr holds the
// accumulated error output with warning lines filtered out.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited %d: %s", e.Command, e.Code, e.Stderr)
}
