// pkg/core/spec.go
package core

import "strings"

// Spec identifies a package by name with an optional pinned version.
// The canonical string form is "name" or "name==version".
type Spec struct {
	Name    string
	Version string
}

// ParseSpec parses a "name" or "name==version" token. A blank or unnamed
// token yields ok=false rather than an error.
func ParseSpec(token string) (Spec, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Spec{}, false
	}

	name, version, found := strings.Cut(token, "==")
	name = strings.TrimSpace(name)
	if name == "" {
		return Spec{}, false
	}
	if found {
		version = strings.TrimSpace(version)
	}

	return Spec{Name: name, Version: version}, true
}

// NewSpec builds a Spec from a structured pair, applying the same
// blank-name rule as ParseSpec.
func NewSpec(name, version string) (Spec, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Spec{}, false
	}
	return Spec{Name: name, Version: strings.TrimSpace(version)}, true
}

// String returns the canonical spec form.
func (s Spec) String() string {
	if s.Version == "" {
		return s.Name
	}
	return s.Name + "==" + s.Version
}
