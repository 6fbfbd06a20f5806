// pkg/pypi/versions.go
package pypi

import (
	"sort"
	"strconv"
	"strings"
)

// SortVersions orders versions newest-first by dotted-numeric comparison:
// each dot component is compared by its leading integer run, a missing
// component counts as 0, and non-numeric suffixes are ignored for ordering.
func SortVersions(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) > 0
	})
}

// CompareVersions returns 1 when a orders after b, -1 when before, 0 when
// they compare equal component-wise.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av = leadingInt(as[i])
		}
		if i < len(bs) {
			bv = leadingInt(bs[i])
		}
		if av != bv {
			if av > bv {
				return 1
			}
			return -1
		}
	}
	return 0
}

// leadingInt parses the leading integer run of a version component;
// "10b1" -> 10, "rc1" -> 0.
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}
