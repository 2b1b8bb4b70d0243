// ABOUTME: Configuration loading and parsing for pastify
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

// Package config loads the process-level configuration: file locations,
// capture timing, API address, and logging. Runtime preferences (history
// cap, hotkey, blacklist) live in the database instead and are managed
// through the settings package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete pastify configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Watcher  WatcherConfig  `yaml:"watcher"`
	Paste    PasteConfig    `yaml:"paste"`
	API      APIConfig      `yaml:"api"`
	Apps     AppsConfig     `yaml:"apps"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// WatcherConfig holds capture loop timing configuration
type WatcherConfig struct {
	PollInterval time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	PollIntervalRaw string `yaml:"poll_interval"`
}

// PasteConfig holds paste simulation timing configuration
type PasteConfig struct {
	SettleDelay time.Duration `yaml:"-"`

	SettleDelayRaw string `yaml:"settle_delay"`
}

// APIConfig holds the loopback API listener configuration
type APIConfig struct {
	Addr string `yaml:"addr"`
}

// AppsConfig holds source application display-name configuration
type AppsConfig struct {
	// NamesFile points to an optional TOML file overriding executable
	// to display-name mappings
	NamesFile string `yaml:"names_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Poll interval bounds. Faster than 200ms burns CPU on platforms without
// change notifications; slower than 500ms visibly lags the user.
const (
	MinPollInterval     = 200 * time.Millisecond
	MaxPollInterval     = 500 * time.Millisecond
	DefaultPollInterval = 250 * time.Millisecond
)

// DefaultAPIAddr keeps the API on the loopback interface. Clipboard
// history must never be reachable from the network.
const DefaultAPIAddr = "127.0.0.1:7856"

// Default returns a configuration with all defaults applied, rooted at
// dataDir.
func Default(dataDir string) *Config {
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(dataDir, "pastify.db")},
		Watcher:  WatcherConfig{PollInterval: DefaultPollInterval},
		Paste:    PasteConfig{SettleDelay: 150 * time.Millisecond},
		API:      APIConfig{Addr: DefaultAPIAddr},
		Apps:     AppsConfig{NamesFile: filepath.Join(dataDir, "app-names.toml")},
		Logging:  LoggingConfig{Level: "info", Format: "auto"},
	}
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values; missing fields
// fall back to the defaults for dataDir.
func Load(path, dataDir string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	cfg := Default(dataDir)
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and
// valid. Returns an error describing the first validation failure.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.API.Addr == "" {
		return fmt.Errorf("api.addr is required")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration
// values and clamps the poll interval to its supported range.
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Watcher.PollIntervalRaw != "" {
		cfg.Watcher.PollInterval, err = time.ParseDuration(cfg.Watcher.PollIntervalRaw)
		if err != nil {
			return fmt.Errorf("parsing poll_interval %q: %w", cfg.Watcher.PollIntervalRaw, err)
		}
	}
	if cfg.Watcher.PollInterval < MinPollInterval {
		cfg.Watcher.PollInterval = MinPollInterval
	}
	if cfg.Watcher.PollInterval > MaxPollInterval {
		cfg.Watcher.PollInterval = MaxPollInterval
	}

	if cfg.Paste.SettleDelayRaw != "" {
		cfg.Paste.SettleDelay, err = time.ParseDuration(cfg.Paste.SettleDelayRaw)
		if err != nil {
			return fmt.Errorf("parsing settle_delay %q: %w", cfg.Paste.SettleDelayRaw, err)
		}
	}

	return nil
}
