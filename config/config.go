// Package config loads safehours settings from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"

	envPrefix = "SAFEHOURS"
	dirName   = ".safehours"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Config is the merged safehours configuration.
type Config struct {
	// Data file location. Empty means the backend's default file.
	DataPath string `yaml:"data_path" mapstructure:"data_path"`

	// Storage backend: "csv" or "sqlite".
	Backend string `yaml:"backend" mapstructure:"backend"`

	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendCSV,
		LogLevel: "info",
	}
}

// Load merges the global config, the project config, and SAFEHOURS_* environment
// variables, in that order of precedence (later wins).
func Load() (*Config, error) {
	return LoadFrom(GlobalConfigPath(), ProjectConfigPath())
}

// LoadFrom merges the given YAML files in order, then applies the environment.
// Missing files are ignored.
func LoadFrom(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func applyEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)

	// SAFEHOURS_PATH is the short form and wins over SAFEHOURS_DATA_PATH.
	if err := v.BindEnv("data_path", envPrefix+"_PATH", envPrefix+"_DATA_PATH"); err != nil {
		return err
	}
	if err := v.BindEnv("backend"); err != nil {
		return err
	}
	if err := v.BindEnv("log_level"); err != nil {
		return err
	}

	if v.IsSet("data_path") {
		cfg.DataPath = v.GetString("data_path")
	}
	if v.IsSet("backend") {
		cfg.Backend = v.GetString("backend")
	}
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	return nil
}

// Validate checks the backend name.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendCSV, BackendSQLite:
		return nil
	}
	return fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownBackend, c.Backend, BackendCSV, BackendSQLite)
}

// ResolvedDataPath returns DataPath with ~ expanded, or the backend's default
// file when DataPath is empty.
func (c *Config) ResolvedDataPath() string {
	if c.DataPath == "" {
		name := "activities.csv"
		if c.Backend == BackendSQLite {
			name = "safehours.db"
		}
		return filepath.Join(HomeDir(), name)
	}
	return expandHome(c.DataPath)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// HomeDir returns ~/.safehours.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(HomeDir(), "config.yaml")
}

// ProjectConfigPath returns the path to the config file in the working directory.
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, dirName, "config.yaml")
}

// WriteDefault writes a commented starter config to path.
func WriteDefault(path string) error {
	content := `# safehours configuration

# Storage backend: csv or sqlite
backend: csv

# Data file. Leave empty for ~/.safehours/activities.csv (csv)
# or ~/.safehours/safehours.db (sqlite).
# data_path: ~/.safehours/activities.csv

# debug, info, warn or error
log_level: info
`
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0644)
}
