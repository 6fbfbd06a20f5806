// pkg/core/config_test.go
package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{
		PythonPath: "/usr/bin/python3",
		IndexURL:   "https://mirror.example/simple",
		Debug:      true,
	}

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestStoreSubscription(t *testing.T) {
	store := NewStore(&Config{PythonPath: "python3"})

	var got []Config
	store.Subscribe(func(cfg Config) {
		got = append(got, cfg)
	})

	next := store.Config()
	next.IndexURL = "https://mirror.example/simple"
	store.Update(next)

	require.Len(t, got, 1)
	assert.Equal(t, "https://mirror.example/simple", got[0].IndexURL)
	assert.Equal(t, "https://mirror.example/simple", store.Config().IndexURL)
	// The interpreter carries over unchanged.
	assert.Equal(t, "python3", store.Config().PythonPath)
}
