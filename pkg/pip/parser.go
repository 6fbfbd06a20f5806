// pkg/pip/parser.go
package pip

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pipdeck/pipdeck/pkg/core"
)

// ParseList parses pip's `list --format json` output into catalog packages.
// Entries from an outdated listing carry latest_version through to Latest.
func ParseList(output string) ([]core.Package, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil, fmt.Errorf("%w: empty output", ErrParse)
	}

	var entries []ListEntry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	packages := make([]core.Package, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		packages = append(packages, core.Package{
			Name:    e.Name,
			Version: e.Version,
			Latest:  e.LatestVersion,
		})
	}
	return packages, nil
}

// ParseFreeze parses `pip freeze` output into specs, skipping blank lines,
// comments, and editable installs it cannot express as name==version.
func ParseFreeze(output string) []core.Spec {
	var specs []core.Spec
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if spec, ok := core.ParseSpec(line); ok {
			specs = append(specs, spec)
		}
	}
	return specs
}
