// Package config handles loading and managing browsestate configuration.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values applied before the config file is decoded.
const (
	DefaultAPIPort        = 8080
	DefaultPageSize       = 25
	DefaultRateLimitRPS   = 10
	DefaultRateLimitBurst = 20
)

// DefaultPageSizes are the page sizes offered when none are configured.
var DefaultPageSizes = []int{10, 25, 50, 100}

// ServerConfig holds HTTP API server configuration.
type ServerConfig struct {
	BindAddr        string   `toml:"bind_addr"`        // Listen address (default: 127.0.0.1)
	APIPort         int      `toml:"api_port"`         // HTTP server port (default: 8080)
	APIKey          string   `toml:"api_key"`          // API authentication key
	CORSOrigins     []string `toml:"cors_origins"`     // Allowed origins; empty disables CORS
	CORSCredentials bool     `toml:"cors_credentials"` // Send Access-Control-Allow-Credentials
	CORSMaxAge      int      `toml:"cors_max_age"`     // Preflight cache seconds
	RateLimitRPS    float64  `toml:"rate_limit_rps"`   // Per-IP requests per second
	RateLimitBurst  int      `toml:"rate_limit_burst"` // Per-IP burst
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	bind := s.BindAddr
	if bind == "" {
		bind = "127.0.0.1"
	}
	return net.JoinHostPort(bind, strconv.Itoa(s.APIPort))
}

// IsLoopback reports whether the server only listens on a loopback address.
func (s ServerConfig) IsLoopback() bool {
	switch s.BindAddr {
	case "", "localhost":
		return true
	}
	ip := net.ParseIP(s.BindAddr)
	return ip != nil && ip.IsLoopback()
}

// ValidateSecure refuses to expose the API beyond loopback without a key.
func (s ServerConfig) ValidateSecure() error {
	if !s.IsLoopback() && s.APIKey == "" {
		return fmt.Errorf("refusing to bind %s without [server] api_key", s.BindAddr)
	}
	return nil
}

// DefaultsConfig holds values views inherit when they do not set their own.
type DefaultsConfig struct {
	PageSize  int   `toml:"page_size"`
	PageSizes []int `toml:"page_sizes"`
}

// ViewConfig declares one list view: where it lives, which columns sort and
// which filter controls it renders.
type ViewConfig struct {
	Name      string         `toml:"name"`
	Path      string         `toml:"path"`
	PageSize  int            `toml:"page_size"`
	PageSizes []int          `toml:"page_sizes"`
	Columns   []ColumnConfig `toml:"columns"`
	Filters   []FilterConfig `toml:"filters"`
}

// ColumnConfig declares a list column.
type ColumnConfig struct {
	Name     string `toml:"name"`
	Label    string `toml:"label"`
	Sortable bool   `toml:"sortable"`
}

// FilterConfig declares a filter control. Select filters list their options;
// range filters name a value type and which bounds they render.
type FilterConfig struct {
	Name    string   `toml:"name"`
	Label   string   `toml:"label"`
	Kind    string   `toml:"kind"`    // "select" or "range"
	Options []string `toml:"options"` // select only
	Type    string   `toml:"type"`    // range only: number, date, time, datetime, age
	Bounds  string   `toml:"bounds"`  // range only: [], [), (], ()
}

// Config represents the browsestate configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Defaults DefaultsConfig `toml:"defaults"`
	Views    []ViewConfig   `toml:"views"`

	// Computed paths (not from config file)
	HomeDir    string `toml:"-"`
	configPath string
}

// DefaultHome returns the default browsestate home directory.
// Respects BROWSESTATE_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("BROWSESTATE_HOME"); h != "" {
		return expandPath(h)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".browsestate"
	}
	return filepath.Join(home, ".browsestate")
}

// NewDefaultConfig returns a configuration with default values rooted at
// DefaultHome.
func NewDefaultConfig() *Config {
	return newConfig(DefaultHome())
}

func newConfig(homeDir string) *Config {
	return &Config{
		HomeDir: homeDir,
		Server: ServerConfig{
			APIPort:        DefaultAPIPort,
			RateLimitRPS:   DefaultRateLimitRPS,
			RateLimitBurst: DefaultRateLimitBurst,
		},
		Defaults: DefaultsConfig{
			PageSize:  DefaultPageSize,
			PageSizes: append([]int(nil), DefaultPageSizes...),
		},
		configPath: filepath.Join(homeDir, "config.toml"),
	}
}

// Load reads the configuration.
//
// An explicit path must exist, and its directory becomes the home unless
// homeDir is also given. Otherwise config.toml is read from homeDir (or
// DefaultHome) if present.
func Load(path, homeDir string) (*Config, error) {
	explicit := path != ""

	switch {
	case homeDir != "":
		homeDir = expandPath(homeDir)
	case explicit:
		homeDir = filepath.Dir(expandPath(path))
	default:
		homeDir = DefaultHome()
	}

	cfg := newConfig(homeDir)
	if explicit {
		cfg.configPath = expandPath(path)
	}

	if _, err := os.Stat(cfg.configPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if explicit {
				return nil, fmt.Errorf("config file not found: %s", cfg.configPath)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}

	if _, err := toml.DecodeFile(cfg.configPath, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w%s", cfg.configPath, err, backslashHint(err))
	}

	if cfg.Defaults.PageSize <= 0 {
		cfg.Defaults.PageSize = DefaultPageSize
	}
	if len(cfg.Defaults.PageSizes) == 0 {
		cfg.Defaults.PageSizes = append([]int(nil), DefaultPageSizes...)
	}
	return cfg, nil
}

// ConfigFilePath returns the path the configuration was (or would be) read
// from.
func (c *Config) ConfigFilePath() string {
	return c.configPath
}

// backslashHint explains the most common TOML mistake: Windows paths in
// basic strings, where backslashes start escape sequences.
func backslashHint(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "invalid escape") || strings.Contains(msg, "hexadecimal digits") {
		return "\nhint: backslashes in double-quoted strings are escapes; use forward slashes or single quotes"
	}
	return ""
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
