package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/contest-radar/internal/contest"
	"github.com/pfrederiksen/contest-radar/internal/scraper"
	"github.com/pfrederiksen/contest-radar/internal/timezone"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, timezone.DefaultZone, cfg.DisplayTimezone)
	assert.Equal(t, scraper.UserAgent, cfg.UserAgent)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	require.NoError(t, cfg.Validate())

	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
display_timezone: UTC
log_level: debug
http:
  timeout: 15s
server:
  addr: 127.0.0.1:9090
selection:
  atcoder: earliest
  gfg: first
endpoints:
  codeforces: http://localhost:8081/
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "UTC", cfg.DisplayTimezone)
	assert.Equal(t, scraper.UserAgent, cfg.UserAgent, "unset keys keep their default")
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)

	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	selectors, err := cfg.Selectors()
	require.NoError(t, err)
	assert.Len(t, selectors, 2)
	assert.Contains(t, selectors, contest.AtCoder)
	assert.Contains(t, selectors, contest.GeeksforGeeks)

	assert.Equal(t, contest.SelectEarliest, cfg.SelectionName(contest.AtCoder))
	assert.Equal(t, contest.SelectFirst, cfg.SelectionName(contest.GeeksforGeeks))
	assert.Equal(t, contest.SelectFirst, cfg.SelectionName(contest.LeetCode))

	urls, err := cfg.BaseURLs()
	require.NoError(t, err)
	assert.Equal(t, map[contest.Platform]string{contest.Codeforces: "http://localhost:8081/"}, urls)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "selection: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown timezone",
			mutate:  func(c *Config) { c.DisplayTimezone = "Mars/Olympus" },
			wantErr: "loading timezone",
		},
		{
			name:    "bad timeout",
			mutate:  func(c *Config) { c.HTTP.Timeout = "soon" },
			wantErr: "invalid http.timeout",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.HTTP.Timeout = "-1s" },
			wantErr: "must not be negative",
		},
		{
			name:    "unknown platform in selection",
			mutate:  func(c *Config) { c.Selection["topcoder"] = "first" },
			wantErr: "unknown platform",
		},
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.Selection["atcoder"] = "random" },
			wantErr: "unknown selection strategy",
		},
		{
			name:    "non-http endpoint",
			mutate:  func(c *Config) { c.Endpoints["leetcode"] = "ftp://leetcode.com" },
			wantErr: "not an http(s) URL",
		},
		{
			name:    "empty server addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: "server.addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/.config/contest-radar/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/contest-radar/config.yaml"), got)

	got, err = ExpandPath("/etc/contest-radar.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/contest-radar.yaml", got)
}
