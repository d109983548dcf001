// Package config reads the placeip YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel  = "info"
	DefaultCacheSize = 1024
	DefaultPrompt    = "> "
)

// Config is the top-level configuration.
type Config struct {
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogPath sends logs to a file instead of stderr when set.
	LogPath string `yaml:"log_path"`
	// CacheSize is the number of lookup results kept in memory, 0 disables the cache.
	CacheSize *int   `yaml:"cache_size"`
	Prompt    string `yaml:"prompt"`
	// HistoryFile keeps the interactive query history between runs when set.
	HistoryFile string `yaml:"history_file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration at path. An empty path yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data and fills missing values with defaults.
func Parse(data []byte) (Config, error) {
	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	if cfg.CacheSize != nil && *cfg.CacheSize < 0 {
		return Config{}, fmt.Errorf("cache_size must not be negative, got %d", *cfg.CacheSize)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Cache returns the configured cache size, the default one when unset.
func (c Config) Cache() int {
	c.applyDefaults()
	return *c.CacheSize
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.CacheSize == nil {
		size := DefaultCacheSize
		c.CacheSize = &size
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
}
