// Package config provides TOML configuration file loading for the planner.
// The configuration file lives at ~/.planner/config.toml by default, but can be
// overridden with the --config flag. CLI flags always take precedence over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config represents the planner configuration file structure.
// Field names use Go camelCase internally but map to snake_case in TOML files.
type Config struct {
	// LogLevel controls logging verbosity: debug, info, warn, error.
	// Default: warn
	LogLevel string `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	Store  StoreConfig  `toml:"store"`
	Backup BackupConfig `toml:"backup"`
	Seed   SeedConfig   `toml:"seed"`
}

// StoreConfig selects the key-value medium.
type StoreConfig struct {
	// Backend is one of sqlite, badger, memory.
	// Default: sqlite
	Backend string `toml:"backend" validate:"omitempty,oneof=sqlite badger memory"`

	// Path is the database file (sqlite) or directory (badger).
	// Default: ~/.planner/planner.db
	Path string `toml:"path"`

	// CapacityBytes is the storage ceiling, counted as key plus value length.
	// Zero means unlimited. Default: 5 MiB
	CapacityBytes int64 `toml:"capacity_bytes" validate:"gte=0"`
}

// BackupConfig controls the rotating auto-backups.
type BackupConfig struct {
	// Interval between periodic backups while the board runs, e.g. "5m".
	// "0" disables the periodic backup.
	Interval string `toml:"interval"`

	// Debounce after the last change before a backup is made, e.g. "1s".
	Debounce string `toml:"debounce"`

	// Retain is how many auto-backups survive rotation. Default: 5
	Retain int `toml:"retain" validate:"gte=0"`
}

// SeedConfig points at an optional YAML seed plan.
type SeedConfig struct {
	// Path replaces the built-in roadmap when set.
	Path string `toml:"path"`
}

var schema = validator.New()

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Store: StoreConfig{
			Backend:       DefaultBackend,
			CapacityBytes: DefaultCapacityBytes,
		},
		Backup: BackupConfig{
			Interval: DefaultBackupInterval,
			Debounce: DefaultBackupDebounce,
			Retain:   DefaultBackupRetain,
		},
	}
}

// DefaultConfigPath returns the default config file location: ~/.planner/config.toml.
// Returns an error only if the user's home directory cannot be determined.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".planner", "config.toml"), nil
}

// WriteDefault creates a commented config file at the given path.
//
// Behavior:
//   - If the file already exists, returns false without error (does not overwrite).
//   - Creates the parent directory if it doesn't exist.
//   - Returns an error if the file cannot be written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	content := fmt.Sprintf(`# Planner configuration
# Created by 'planner config init'

# debug, info, warn or error
log_level = %q

[store]
# sqlite, badger or memory
backend = %q
# path = "~/.planner/planner.db"
# Ceiling on stored data, counted as key plus value bytes. 0 is unlimited.
capacity_bytes = %d

[backup]
interval = %q
debounce = %q
retain = %d

[seed]
# YAML roadmap used instead of the built-in one.
# path = ""
`, DefaultLogLevel, DefaultBackend, DefaultCapacityBytes,
		DefaultBackupInterval, DefaultBackupDebounce, DefaultBackupRetain)

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// Load reads a TOML config file from the given path over the defaults.
//
// Behavior:
//   - If path is empty, attempts to load from the default location (~/.planner/config.toml).
//     Returns the defaults without error if the default file doesn't exist.
//   - If path is specified, returns an error if the file doesn't exist.
//   - Returns an error if the file exists but cannot be parsed or holds bad values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
			return cfg, nil
		}
		path = defaultPath
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Seed.Path = expandHome(cfg.Seed.Path)
	return cfg, nil
}

// Validate checks enumerations, ranges and durations.
func (c *Config) Validate() error {
	if err := schema.Struct(c); err != nil {
		return err
	}
	if _, err := c.BackupInterval(); err != nil {
		return err
	}
	if _, err := c.BackupDebounce(); err != nil {
		return err
	}
	return nil
}

// BackupInterval parses Backup.Interval. Empty means the default.
func (c *Config) BackupInterval() (time.Duration, error) {
	return parseDuration("backup.interval", c.Backup.Interval, DefaultBackupInterval)
}

// BackupDebounce parses Backup.Debounce. Empty means the default.
func (c *Config) BackupDebounce() (time.Duration, error) {
	return parseDuration("backup.debounce", c.Backup.Debounce, DefaultBackupDebounce)
}

func parseDuration(name, s, def string) (time.Duration, error) {
	if s == "" {
		s = def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d < 0 {
		return 0, errors.New(name + " must not be negative")
	}
	return d, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
