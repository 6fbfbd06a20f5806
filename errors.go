// errors.go
package pipdeck

import (
	"errors"

	"github.com/pipdeck/pipdeck/pkg/core"
	"github.com/pipdeck/pipdeck/pkg/pip"
	"github.com/pipdeck/pipdeck/pkg/pypi"
)

var (
	// ErrNoInterpreter indicates no Python interpreter is configured
	ErrNoInterpreter = pip.ErrNoInterpreter

	// ErrParse indicates the package manager emitted output we could not parse
	ErrParse = pip.ErrParse

	// ErrNoResults indicates a search returned no result block
	ErrNoResults = pypi.ErrNoResults

	// ErrInvalidSpec indicates the package specification is invalid
	ErrInvalidSpec = errors.New("invalid package spec")
)

// Error wraps an error with the failed operation and package context.
// Manager operations return it around their underlying failures.
type Error = core.Error
