/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kvalheim/rowscan/pkg/rowid"
)

// Config represents the RowScan configuration
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Scan    Scan    `yaml:"scan"`
	Logging Logging `yaml:"logging"`
}

// Scan contains scanner-related configuration
type Scan struct {
	ChunkSize   int   `yaml:"chunk_size"`
	BaseOrdinal int64 `yaml:"base_ordinal"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Scan: Scan{
			ChunkSize:   100 * rowid.RawSize,
			BaseOrdinal: 0,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate checks the configuration invariants
func (c *Config) Validate() error {
	if c.Scan.ChunkSize <= 0 || c.Scan.ChunkSize%rowid.RawSize != 0 {
		return fmt.Errorf("scan.chunk_size %d must be a positive multiple of %d", c.Scan.ChunkSize, rowid.RawSize)
	}
	if c.Scan.BaseOrdinal < 0 {
		return fmt.Errorf("scan.base_ordinal %d must not be negative", c.Scan.BaseOrdinal)
	}
	return nil
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig creates and saves a fresh configuration
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./rowscan.yaml"
	}

	// For Linux/macOS, use ~/.config/rowscan/config.yaml
	configDir := filepath.Join(homeDir, ".config", "rowscan")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
