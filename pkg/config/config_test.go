package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "./data", config.DataDir)
	assert.Equal(t, 1400, config.Scan.ChunkSize)
	assert.Equal(t, int64(0), config.Scan.BaseOrdinal)
	assert.Equal(t, "info", config.Logging.Level)

	assert.NoError(t, config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(c *Config) {}},
		{name: "aligned chunk size", mutate: func(c *Config) { c.Scan.ChunkSize = 28 }},
		{name: "misaligned chunk size", mutate: func(c *Config) { c.Scan.ChunkSize = 1000 }, wantErr: true},
		{name: "zero chunk size", mutate: func(c *Config) { c.Scan.ChunkSize = 0 }, wantErr: true},
		{name: "negative base ordinal", mutate: func(c *Config) { c.Scan.BaseOrdinal = -1 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)

			err := config.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		expectedConfig := &Config{
			DataDir: "/custom/data",
			Scan: Scan{
				ChunkSize:   28,
				BaseOrdinal: 500,
			},
			Logging: Logging{
				Level: "debug",
			},
		}

		err := SaveConfig(expectedConfig, configPath)
		require.NoError(t, err)

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, loadedConfig)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("load invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("not: [valid"), 0600))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
	})

	t.Run("load config violating invariants", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		bad := DefaultConfig()
		bad.Scan.ChunkSize = 1000
		require.NoError(t, SaveConfig(bad, configPath))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "chunk_size")
	})
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, SaveConfig(DefaultConfig(), configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestBootstrapConfig(t *testing.T) {
	t.Run("with data dir override", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")

		config, err := BootstrapConfig(configPath, "/blobs")
		require.NoError(t, err)
		assert.Equal(t, "/blobs", config.DataDir)
		assert.True(t, ConfigExists(configPath))
	})

	t.Run("without data dir override", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")

		config, err := BootstrapConfig(configPath, "")
		require.NoError(t, err)
		assert.Equal(t, "./data", config.DataDir)
	})
}

func TestConfigExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.False(t, ConfigExists(filepath.Join(tmpDir, "missing.yaml")))

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, SaveConfig(DefaultConfig(), configPath))
	assert.True(t, ConfigExists(configPath))
}
