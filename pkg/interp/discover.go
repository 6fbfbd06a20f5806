// pkg/interp/discover.go
package interp

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Discover returns candidate Python interpreters for a project directory,
// most specific first: the active virtualenv, a local venv directory, then
// interpreters on PATH. Used to remediate the "no interpreter configured"
// error with concrete suggestions.
func Discover(workDir string) []string {
	var found []string
	seen := map[string]struct{}{}

	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return
		}
		seen[path] = struct{}{}
		found = append(found, path)
	}

	if venv := os.Getenv("VIRTUAL_ENV"); venv != "" {
		add(venvPython(venv))
	}

	for _, dir := range []string{".venv", "venv"} {
		add(venvPython(filepath.Join(workDir, dir)))
	}

	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			add(path)
		}
	}

	return found
}

// Default returns the best available interpreter, or "" when none exists.
func Default(workDir string) string {
	if found := Discover(workDir); len(found) > 0 {
		return found[0]
	}
	return ""
}

func venvPython(venvDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvDir, "Scripts", "python.exe")
	}
	return filepath.Join(venvDir, "bin", "python")
}
