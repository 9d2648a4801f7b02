// internal/client/cliconfig/cliconfig.go

// Package cliconfig loads and saves the oppsearch command's TOML settings.
package cliconfig

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Defaults.
const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 15 * time.Second
	DefaultLimit   = 20
)

// Config holds the client settings.
type Config struct {
	BaseURL string   `toml:"base_url"`
	Token   string   `toml:"token,omitempty"`
	Timeout Duration `toml:"timeout"`
	Limit   int      `toml:"limit"`
}

// Duration is a time.Duration written as text ("15s") in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Timeout: Duration{DefaultTimeout},
		Limit:   DefaultLimit,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/oppsearch/config.toml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "oppsearch", "config.toml"), nil
}

// Load reads path. A missing file yields the defaults; keys absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Timeout.Duration <= 0 {
		cfg.Timeout = Duration{DefaultTimeout}
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the base URL.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url %q must be an http or https URL", c.BaseURL)
	}
	return nil
}

// Save writes c to path, creating the directory. The file is private
// because it may hold a token.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
