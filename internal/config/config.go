// Package config loads xpense settings from the TOML config file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/xpense/internal/log"
	"github.com/theirongolddev/xpense/internal/persist"
)

// Config holds all xpense configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects where expenses are persisted.
type StorageConfig struct {
	Path    string `toml:"path" env:"XPENSE_FILE"`
	Backend string `toml:"backend,omitempty" env:"XPENSE_BACKEND"`
}

// DisplayConfig holds output preferences.
type DisplayConfig struct {
	Currency string `toml:"currency" env:"XPENSE_CURRENCY"`
	Theme    string `toml:"theme" env:"XPENSE_THEME"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" env:"XPENSE_LOG_LEVEL"`
}

// EnvVars lists the environment variables that override the config file.
var EnvVars = []string{
	"XPENSE_FILE",
	"XPENSE_BACKEND",
	"XPENSE_CURRENCY",
	"XPENSE_THEME",
	"XPENSE_LOG_LEVEL",
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Path: "expenses.json",
		},
		Display: DisplayConfig{
			Currency: "$",
			Theme:    "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "xpense")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "xpense")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// LoadDotEnv exports variables from a .env file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load returns defaults overlaid with the config file (if any) and then with
// XPENSE_* environment variables.
func Load() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// LoadFile reads only the config file, returning defaults if it doesn't exist.
func LoadFile() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	if c.Storage.Path == "" {
		return errors.New("storage.path must not be empty")
	}
	if _, err := persist.ParseKind(c.Storage.Backend); err != nil {
		return fmt.Errorf("storage.backend: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
