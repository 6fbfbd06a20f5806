// pkg/reqfile/pyproject.go
package reqfile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/pipdeck/pipdeck/pkg/core"
)

// pyproject models the subset of pyproject.toml the engine reads
type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// readPyproject extracts [project].dependencies as specs.
func readPyproject(path string) ([]core.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var specs []core.Spec
	for _, dep := range doc.Project.Dependencies {
		if spec, ok := core.ParseSpec(normalizeRequirement(dep)); ok {
			specs = append(specs, spec)
		}
	}
	return specs, nil
}
