package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "cfloat", cfg.Format.Kind)
	assert.Equal(t, 32, cfg.Format.Bits)
	assert.Equal(t, 8, cfg.Format.ExpBits)
	assert.False(t, cfg.Policy.Saturating)
	assert.True(t, cfg.Policy.Subnormals)
	assert.Equal(t, "hex", cfg.Explorer.NumberFormat)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	require.NotEmpty(t, path)
	assert.Equal(t, "config.toml", filepath.Base(path))
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Format.Bits = 64
	cfg.Format.ExpBits = 11
	cfg.Policy.Saturating = true
	cfg.Explorer.ColorOutput = false
	cfg.Server.Port = 9090

	require.NoError(t, cfg.SaveTo(configPath))

	_, err := os.Stat(configPath)
	require.NoError(t, err, "config file was not created")

	loaded, err := LoadFrom(configPath)
	require.NoError(t, err)

	assert.Equal(t, 64, loaded.Format.Bits)
	assert.Equal(t, 11, loaded.Format.ExpBits)
	assert.True(t, loaded.Policy.Saturating)
	assert.False(t, loaded.Explorer.ColorOutput)
	assert.Equal(t, 9090, loaded.Server.Port)
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	require.NoError(t, err, "LoadFrom should not error on non-existent file")
	assert.Equal(t, 32, cfg.Format.Bits, "expected default config when file doesn't exist")
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[format]
bits = "not a number"
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidTOML), 0644))

	_, err := LoadFrom(configPath)
	assert.Error(t, err, "expected error when loading invalid TOML")
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.SaveTo(configPath))

	_, err := os.Stat(configPath)
	assert.NoError(t, err, "config file was not created")
}
