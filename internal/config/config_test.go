package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "projection.yaml", cfg.CalibrationFile)
	assert.Equal(t, 1920, cfg.Surface.Width)
	assert.Equal(t, 1080, cfg.Surface.Height)
	assert.Equal(t, "localhost:8080", cfg.Server.Address())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"zero surface", func(c *Config) { c.Surface.Width = 0 }, "surface"},
		{"negative frame", func(c *Config) { c.Warp.FrameHeight = -1 }, "frame"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "port"},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSeconds = 0 }, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoader_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	loader := NewLoader()
	// Point the search away from any developer config on this machine
	loader.GetViper().SetConfigFile(writeConfig(t, ""))

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Surface, cfg.Surface)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
}

func TestLoader_LoadWithFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfig(t, `
calibration_file: cal/projector-left.yaml
surface:
  width: 1280
  height: 720
server:
  port: 9001
`)

	cfg, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cal/projector-left.yaml", cfg.CalibrationFile)
	assert.Equal(t, 1280, cfg.Surface.Width)
	assert.Equal(t, 720, cfg.Surface.Height)
	assert.Equal(t, 9001, cfg.Server.Port)
	// Unset keys fall back to defaults
	assert.Equal(t, DefaultConfig().Warp, cfg.Warp)
}

func TestLoader_LoadWithFile_Missing(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := NewLoader().LoadWithFile("/nonexistent/projection.yaml")
	require.Error(t, err)
}

func TestLoader_InvalidValuesRejected(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfig(t, "surface:\n  width: -5\n")

	_, err := NewLoader().LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "projection.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
