// Package config loads the optional client configuration file. Settings
// follow a strict precedence: caller-supplied options override the config
// file, which overrides the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultHost         = "127.0.0.1"
	DefaultPort         = 7878
	DefaultHistoryLimit = 200
)

// appDir is the directory name under the platform config dir.
const appDir = "rileyviewer"

// ServerConfig describes the viewer server a client should target, and the
// launch preferences used if it has to be started.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	HistoryLimit int    `yaml:"history_limit"`
	OpenBrowser  bool   `yaml:"open_browser"`
}

// Config represents the config.yaml file.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			HistoryLimit: DefaultHistoryLimit,
			OpenBrowser:  true,
		},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// DefaultPath returns the platform-conventional config file path.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appDir, "config.yaml")
}

// Load reads the config file from the default location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads and parses a config file. If the file doesn't exist,
// returns default config. Missing fields keep their defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that all config values are valid.
func Validate(cfg *Config) error {
	if cfg.Server.Host == "" {
		return ValidationError{Field: "server.host", Message: "must not be empty"}
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return ValidationError{Field: "server.port", Message: "must be between 0 and 65535"}
	}
	if cfg.Server.HistoryLimit <= 0 {
		return ValidationError{Field: "server.history_limit", Message: "must be positive"}
	}
	return nil
}
