package config

import (
	"fmt"
	"strings"
)

// Config represents the complete configuration for the projection tool.
// It covers all commands (solve, map, warp, serve) and supports loading
// from configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	CalibrationFile string `mapstructure:"calibration_file" yaml:"calibration_file" json:"calibration_file"`
	LogLevel        string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose         bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Drawing surface dimensions used when no calibration file exists yet
	Surface SurfaceConfig `mapstructure:"surface" yaml:"surface" json:"surface"`

	// Warp output settings
	Warp WarpConfig `mapstructure:"warp" yaml:"warp" json:"warp"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// SurfaceConfig describes the drawing surface the calibration maps from.
type SurfaceConfig struct {
	Width  int `mapstructure:"width" yaml:"width" json:"width"`
	Height int `mapstructure:"height" yaml:"height" json:"height"`
}

// WarpConfig contains settings for the warp command's raster output.
type WarpConfig struct {
	FrameWidth  int `mapstructure:"frame_width" yaml:"frame_width" json:"frame_width"`
	FrameHeight int `mapstructure:"frame_height" yaml:"frame_height" json:"frame_height"`
}

// ServerConfig contains settings for the calibration server.
type ServerConfig struct {
	Host           string `mapstructure:"host" yaml:"host" json:"host"`
	Port           int    `mapstructure:"port" yaml:"port" json:"port"`
	TimeoutSeconds int    `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		CalibrationFile: "projection.yaml",
		LogLevel:        "info",
		Surface:         SurfaceConfig{Width: 1920, Height: 1080},
		Warp:            WarpConfig{FrameWidth: 1920, FrameHeight: 1080},
		Server:          ServerConfig{Host: "localhost", Port: 8080, TimeoutSeconds: 30},
	}
}

// Validate checks the configuration for values no command can work with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", c.Surface.Width, c.Surface.Height)
	}
	if c.Warp.FrameWidth <= 0 || c.Warp.FrameHeight <= 0 {
		return fmt.Errorf("invalid warp frame size %dx%d", c.Warp.FrameWidth, c.Warp.FrameHeight)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid server timeout %d", c.Server.TimeoutSeconds)
	}
	return nil
}

// Address returns the host:port the server should listen on.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
