// pkg/pypi/versions_test.go
package pypi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortVersionsNumericNotLexical(t *testing.T) {
	versions := []string{"1.2.0", "1.10.0", "1.9.0"}
	SortVersions(versions)
	assert.Equal(t, []string{"1.10.0", "1.9.0", "1.2.0"}, versions)
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.0.0", 0}, // missing component counts as 0
		{"1.0.1", "1.0", 1},
		{"2.0", "10.0", -1},
		{"1.10b1", "1.9", 1}, // non-numeric suffix ignored for ordering
		{"1.rc1", "1.0", 0},  // "rc1" has no leading integer run
		{"0.9", "1.0", -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompareVersions(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
