// Package config loads contest-radar settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/contest-radar/internal/contest"
	"github.com/pfrederiksen/contest-radar/internal/scraper"
	"github.com/pfrederiksen/contest-radar/internal/timezone"
)

// DefaultPath is where the CLI looks for a config file when --config is not given
const DefaultPath = "~/.config/contest-radar/config.yaml"

// Config holds all contest-radar configuration.
type Config struct {
	// Timezone start times are converted into (IANA name)
	DisplayTimezone string `yaml:"display_timezone"`

	UserAgent string `yaml:"user_agent"`
	LogLevel  string `yaml:"log_level"` // debug, info, warn, error

	HTTP   HTTPConfig   `yaml:"http"`
	Server ServerConfig `yaml:"server"`

	// Selection maps a platform key to "first" or "earliest"
	Selection map[string]string `yaml:"selection"`

	// Endpoints maps a platform key to a base URL override
	Endpoints map[string]string `yaml:"endpoints"`
}

// HTTPConfig configures upstream requests.
type HTTPConfig struct {
	Timeout string `yaml:"timeout"` // Go duration, "0s" = no timeout
}

// ServerConfig configures the dashboard server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DisplayTimezone: timezone.DefaultZone,
		UserAgent:       scraper.UserAgent,
		LogLevel:        "info",
		HTTP: HTTPConfig{
			Timeout: "0s",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Selection: map[string]string{},
		Endpoints: map[string]string{},
	}
}

// ExpandPath expands a leading "~/" to the user's home directory
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return path, nil
}

// Load reads configuration from a YAML file on top of Default.
// A missing file or empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Validate checks every field that is parsed later, so a bad file fails at startup
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := c.Selectors(); err != nil {
		return err
	}
	if _, err := c.BaseURLs(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}

// Location resolves the display timezone
func (c *Config) Location() (*time.Location, error) {
	return timezone.LoadLocation(c.DisplayTimezone)
}

// Timeout parses http.timeout; empty means no timeout
func (c *Config) Timeout() (time.Duration, error) {
	if c.HTTP.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid http.timeout %q: %w", c.HTTP.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid http.timeout %q: must not be negative", c.HTTP.Timeout)
	}
	return d, nil
}

// Selectors resolves the per-platform selection strategies.
// Platforms not listed are left out and fall back to contest.First.
func (c *Config) Selectors() (map[contest.Platform]contest.Selector, error) {
	selectors := make(map[contest.Platform]contest.Selector, len(c.Selection))
	for key, name := range c.Selection {
		p, err := contest.ParsePlatform(key)
		if err != nil {
			return nil, fmt.Errorf("selection: %w", err)
		}
		s, err := contest.SelectorByName(name)
		if err != nil {
			return nil, fmt.Errorf("selection.%s: %w", key, err)
		}
		selectors[p] = s
	}
	return selectors, nil
}

// SelectionName returns the configured strategy name for p, "first" when unset
func (c *Config) SelectionName(p contest.Platform) string {
	for key, name := range c.Selection {
		if parsed, err := contest.ParsePlatform(key); err == nil && parsed == p && name != "" {
			return strings.ToLower(strings.TrimSpace(name))
		}
	}
	return contest.SelectFirst
}

// BaseURLs resolves the per-platform endpoint overrides
func (c *Config) BaseURLs() (map[contest.Platform]string, error) {
	urls := make(map[contest.Platform]string, len(c.Endpoints))
	for key, u := range c.Endpoints {
		p, err := contest.ParsePlatform(key)
		if err != nil {
			return nil, fmt.Errorf("endpoints: %w", err)
		}
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return nil, fmt.Errorf("endpoints.%s: %q is not an http(s) URL", key, u)
		}
		urls[p] = u
	}
	return urls, nil
}
