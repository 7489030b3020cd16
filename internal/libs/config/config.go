// Package config provides application configuration from an optional YAML
// file and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dsjohal14/fuzzr/internal/oracle"
	"github.com/dsjohal14/fuzzr/internal/scope/search"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	DatabaseURL string `yaml:"database_url"`
	DataDir     string `yaml:"data_dir"`
	LogLevel    string `yaml:"log_level"`

	Server ServerConfig `yaml:"server"`
	Search SearchConfig `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// SearchConfig holds defaults applied to every search.
type SearchConfig struct {
	// Oracle names the matching backend (see oracle.Names).
	Oracle string `yaml:"oracle"`

	// Surround, when set, must hold exactly a prefix and a suffix.
	Surround []string `yaml:"surround"`

	// Dedup is "first", "last" or "none".
	Dedup string `yaml:"dedup"`

	// MaxItems caps the candidates accepted per request.
	MaxItems int `yaml:"max_items"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:  "./data",
		LogLevel: "info",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Search: SearchConfig{
			Oracle:   oracle.Default,
			Dedup:    "first",
			MaxItems: 10000,
		},
	}
}

// Load reads configuration: defaults, then the YAML file named by
// FUZZR_CONFIG (if any), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("FUZZR_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Server.Host = getEnv("API_HOST", c.Server.Host)
	c.Server.Port = getEnv("API_PORT", c.Server.Port)
	c.Search.Oracle = getEnv("FUZZR_ORACLE", c.Search.Oracle)
	c.Search.Dedup = getEnv("FUZZR_DEDUP", c.Search.Dedup)

	if v := os.Getenv("FUZZR_MAX_ITEMS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FUZZR_MAX_ITEMS: %w", err)
		}
		c.Search.MaxItems = n
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := oracle.New(c.Search.Oracle); err != nil {
		return fmt.Errorf("search.oracle: %w", err)
	}
	if _, err := c.SearchOptions(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if c.Search.MaxItems < 0 {
		return fmt.Errorf("search.max_items must not be negative, got %d", c.Search.MaxItems)
	}
	return nil
}

// SearchOptions converts the configured defaults into engine options.
func (c *Config) SearchOptions() (search.Options, error) {
	raw := map[string]any{search.KeyDedup: c.Search.Dedup}
	if c.Search.Surround != nil {
		raw[search.KeySurroundMatchesWith] = c.Search.Surround
	}
	return search.ParseOptions(raw)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
