// Package config handles XDG configuration directory, environment
// settings, and credential file paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	// AppName is the application directory name.
	AppName = "todoctl"

	// TokenFile is the stored credential filename.
	TokenFile = "token"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `env:"-"`

	// APIBaseURL is the base URL of the todo API.
	APIBaseURL string `env:"TODOCTL_API_URL" envDefault:"http://127.0.0.1:8012"`

	// Timeout bounds each API request.
	Timeout time.Duration `env:"TODOCTL_TIMEOUT" envDefault:"10s"`

	// Debug enables debug logging.
	Debug bool `env:"-"`

	// Quiet suppresses informational output.
	Quiet bool `env:"-"`
}

// New creates a Config with the default or specified config directory,
// then overlays settings from the environment.
// If configDir is empty, uses XDG_CONFIG_HOME/todoctl or $HOME/.config/todoctl.
func New(configDir string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Dir = configDir
	if cfg.Dir == "" {
		cfg.Dir = DefaultConfigDir()
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored credential file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if a credential file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
