// Package config handles configuration loading and validation for the
// cursor trajectory engine and its demo binary. It supports YAML
// configuration files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for cursorctl and the engine it wires up.
type Config struct {
	Motion   MotionConfig   `yaml:"motion"`
	Browser  BrowserConfig  `yaml:"browser"`
	Storage  StorageConfig  `yaml:"storage"`
	Recorder RecorderConfig `yaml:"recorder"`

	LogLevel string `yaml:"-"`
}

// MotionConfig tunes the default behavior of cursor.Cursor instances.
type MotionConfig struct {
	Steady             bool    `yaml:"steady"`
	DefaultTargetSize  float64 `yaml:"default_target_size"`
	IdleJitterEnabled  bool    `yaml:"idle_jitter_enabled"`
	IdleJitterInterval int     `yaml:"idle_jitter_interval_seconds"`
	IdleJitterIntensity float64 `yaml:"idle_jitter_intensity"`
}

// BrowserConfig holds browser bootstrap settings for the go-rod adapter.
type BrowserConfig struct {
	Headless       bool   `yaml:"headless"`
	UserDataDir    string `yaml:"user_data_dir"`
	ViewportWidth  int    `yaml:"viewport_width"`
	ViewportHeight int    `yaml:"viewport_height"`
}

// StorageConfig holds recording persistence settings.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// RecorderConfig controls whether and where movements are captured.
type RecorderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Persist bool   `yaml:"persist"`
	SessionID string `yaml:"session_id"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Motion: MotionConfig{
			Steady:              false,
			DefaultTargetSize:   12,
			IdleJitterEnabled:   true,
			IdleJitterInterval:  30,
			IdleJitterIntensity: 1.0,
		},
		Browser: BrowserConfig{
			Headless:       false,
			UserDataDir:    "./data/browser",
			ViewportWidth:  1920,
			ViewportHeight: 1080,
		},
		Storage: StorageConfig{
			DatabasePath: "./data/cursor.db",
		},
		Recorder: RecorderConfig{
			Enabled:   true,
			Persist:   false,
			SessionID: "default",
		},
		LogLevel: "info",
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// File doesn't exist, use defaults
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	cfg.loadEnvOverrides()

	return cfg, nil
}

// loadEnvOverrides applies environment variable overrides to config.
func (c *Config) loadEnvOverrides() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("HEADLESS"); v != "" {
		c.Browser.Headless = strings.ToLower(v) == "true"
	}

	if v := os.Getenv("VIEWPORT_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Browser.ViewportWidth = n
		}
	}

	if v := os.Getenv("VIEWPORT_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Browser.ViewportHeight = n
		}
	}

	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.Storage.DatabasePath = v
	}

	if v := os.Getenv("STEADY"); v != "" {
		c.Motion.Steady = strings.ToLower(v) == "true"
	}

	if v := os.Getenv("RECORDER_PERSIST"); v != "" {
		c.Recorder.Persist = strings.ToLower(v) == "true"
	}
}
