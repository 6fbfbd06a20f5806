// pkg/reqfile/reqfile.go
package reqfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/pipdeck/pipdeck/pkg/core"
)

// candidates are the project files checked for the requirements hint, in
// preference order.
var candidates = []string{"requirements.txt", "pyproject.toml"}

// Detect returns the path of the first requirements-style file found in
// dir, or "" when none exists.
func Detect(dir string) string {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Write stores requirements-format content at path. A ".xz" suffix selects
// xz compression for the payload.
func Write(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := writePayload(f, path, content); err != nil {
		f.Close()
		return err
	}
	// An xz stream flushes on Close; a close failure means a truncated file.
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func writePayload(w io.Writer, path, content string) error {
	if !strings.HasSuffix(path, ".xz") {
		if _, err := io.WriteString(w, content); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating xz writer: %w", err)
	}
	if _, err := io.WriteString(xw, content); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// Read parses a requirements file into specs. It handles plain and
// xz-compressed requirements files and pyproject.toml project dependencies.
func Read(path string) ([]core.Spec, error) {
	if filepath.Base(path) == "pyproject.toml" {
		return readPyproject(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating xz reader: %w", err)
		}
		r = xr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return parseRequirements(string(data)), nil
}

// parseRequirements extracts specs from requirements-format text, skipping
// comments, blank lines, and option lines.
func parseRequirements(content string) []core.Spec {
	var specs []core.Spec
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if spec, ok := core.ParseSpec(normalizeRequirement(line)); ok {
			specs = append(specs, spec)
		}
	}
	return specs
}

// normalizeRequirement reduces a PEP 508 requirement to the name==version
// form the engine works with. Range constraints and markers are dropped;
// only exact pins survive as versions.
func normalizeRequirement(req string) string {
	// Cut environment markers and extras.
	if i := strings.IndexAny(req, ";["); i >= 0 {
		req = req[:i]
	}

	if name, version, found := strings.Cut(req, "=="); found {
		version = strings.TrimSpace(strings.TrimRight(version, " \t"))
		// "==1.0,<2" style compound constraints are not an exact pin.
		if !strings.ContainsAny(version, "<>!~,") {
			return strings.TrimSpace(name) + "==" + version
		}
		req = name
	}

	if i := strings.IndexAny(req, "<>!~= "); i >= 0 {
		req = req[:i]
	}
	return strings.TrimSpace(req)
}
