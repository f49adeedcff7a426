// Package config provides configuration loading and structs for the Ruigo server and CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Embeddings EmbeddingsConfig `yaml:"embeddings"`
	Query      QueryConfig      `yaml:"query"`
	Suggest    SuggestConfig    `yaml:"suggest"`
	Watch      WatchConfig      `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// EmbeddingsConfig holds the embeddings source settings.
type EmbeddingsConfig struct {
	// Path is the word2vec/GloVe text file to load.
	Path string `yaml:"path"`
	// ExpectedDimensions, when non-zero, rejects files whose vectors do not
	// have that many components. Zero takes the dimensionality from the file.
	ExpectedDimensions int `yaml:"expected_dimensions"`
}

// QueryConfig holds query defaults and limits.
type QueryConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// SuggestConfig holds vocabulary spelling-suggestion settings.
type SuggestConfig struct {
	Enabled        *bool `yaml:"enabled"`
	MaxDistance    int   `yaml:"max_distance"`
	MaxSuggestions int   `yaml:"max_suggestions"`
}

// EnabledOrDefault returns whether suggestions are enabled; defaults to true when unset.
func (s *SuggestConfig) EnabledOrDefault() bool {
	if s.Enabled != nil {
		return *s.Enabled
	}
	return true
}

// WatchConfig holds embeddings-file reload settings (server mode only).
type WatchConfig struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMS int  `yaml:"debounce_ms"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Embeddings.Path = expandPath(cfg.Embeddings.Path, configDir)

	return &cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if c.Embeddings.Path == "" {
		return fmt.Errorf("embeddings.path is required")
	}
	if c.Query.MaxLimit > 0 && c.Query.DefaultLimit > c.Query.MaxLimit {
		return fmt.Errorf("query.default_limit (%d) exceeds query.max_limit (%d)",
			c.Query.DefaultLimit, c.Query.MaxLimit)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
