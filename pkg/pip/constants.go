// pkg/pip/constants.go
package pip

import "strings"

// protectedPackages are pip's own bootstrap packages; uninstalling them
// breaks the interpreter's package management, so removal requests for
// them are recognized no-ops.
var protectedPackages = map[string]struct{}{
	"pip":        {},
	"setuptools": {},
	"wheel":      {},
}

// IsProtected reports whether name may never be uninstalled. Package names
// compare case-insensitively, as pip itself treats them.
func IsProtected(name string) bool {
	_, ok := protectedPackages[strings.ToLower(name)]
	return ok
}
