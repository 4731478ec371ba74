// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"crewcost/core/types"
	"crewcost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Rates are the fallback rate settings used when the settings store
	// has no current row
	Rates types.RateSettings `json:"rates"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Storage contains quote storage configuration
	Storage StorageConfig `json:"storage"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address is the listen address
	Address string `json:"address"`

	// ReadTimeoutSeconds bounds request reads
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds response writes
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`
}

// StorageConfig contains quote storage settings
type StorageConfig struct {
	// Backend selects the store (memory, sqlite)
	Backend string `json:"backend"`

	// Path is the SQLite database file
	Path string `json:"path"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".crewcost", "quotes.db")

	return &Config{
		Version: "1.0",
		Rates:   types.DefaultRateSettings(),
		Server: ServerConfig{
			Address:             ":8080",
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 60,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    dbPath,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
