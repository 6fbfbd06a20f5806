// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config holds pipdeck configuration
type Config struct {
	// PythonPath is the interpreter used to run pip ("python -m pip ...").
	PythonPath string `yaml:"python_path"`

	// IndexURL is the package index/mirror; empty means the default PyPI
	// index and suppresses the -i flag on mutating commands.
	IndexURL string `yaml:"index_url"`

	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PythonPath: "",
		IndexURL:   "",
		Debug:      false,
	}
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "pipdeck", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "pipdeck", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DiscoverIndexURL reads the user's pip.conf and returns the configured
// global index-url, or "" when none is set. Best-effort: a missing or
// malformed pip.conf is treated as "no override".
func DiscoverIndexURL() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	candidates := []string{
		filepath.Join(home, ".config", "pip", "pip.conf"),
		filepath.Join(home, ".pip", "pip.conf"),
	}

	for _, path := range candidates {
		cfg, err := ini.Load(path)
		if err != nil {
			continue
		}
		if url := cfg.Section("global").Key("index-url").String(); url != "" {
			return url
		}
	}

	return ""
}

// Store is a process-wide configuration holder with change notification.
// Commands read the current Config at call time rather than caching one.
type Store struct {
	mu   sync.RWMutex
	cfg  Config
	subs []func(Config)
}

// NewStore creates a Store seeded with cfg. A nil cfg uses defaults, with
// the index URL discovered from pip.conf when the config file leaves it
// unset.
func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.IndexURL == "" {
		cfg.IndexURL = DiscoverIndexURL()
	}
	return &Store{cfg: *cfg}
}

// Config returns a copy of the current configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update replaces the configuration and notifies subscribers.
func (s *Store) Update(cfg Config) {
	s.mu.Lock()
	s.cfg = cfg
	subs := make([]func(Config), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(cfg)
	}
}

// Subscribe registers fn to run on every configuration change.
func (s *Store) Subscribe(fn func(Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
