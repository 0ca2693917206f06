package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/trtodo/internal/config/colors"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// StorageKind selects the persistence backend
type StorageKind string

const (
	KindJSON   StorageKind = "json"
	KindSQLite StorageKind = "sqlite"
)

// StorageKinds lists every supported backend
var StorageKinds = []StorageKind{KindJSON, KindSQLite}

// Config represents the application configuration
type Config struct {
	Storage StorageConfig      `yaml:"storage"`
	Log     LogConfig          `yaml:"log"`
	Theme   colors.ColorScheme `yaml:"theme"`
}

// StorageConfig picks the backend and where it keeps its data.
// The choice is fixed for the lifetime of a storage handle.
type StorageConfig struct {
	Type string `yaml:"type" env:"TRTODO_STORAGE_TYPE"`
	Path string `yaml:"path" env:"TRTODO_STORAGE_PATH"`
}

type LogConfig struct {
	Level      string `yaml:"level" env:"TRTODO_LOG_LEVEL"`
	File       string `yaml:"file" env:"TRTODO_LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty" env:"TRTODO_LOG_MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups,omitempty" env:"TRTODO_LOG_MAX_BACKUPS"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory, then applies
// environment overrides. Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		cfg := Default()
		if err := ParseEnv(cfg); err != nil {
			return nil, err
		}
		cfg.applyDefaults()
		return cfg, cfg.Validate()
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads config from an explicit file, then applies
// environment overrides
func LoadFromPath(configPath string) (*Config, error) {
	cfg, err := readFile(configPath)
	if err != nil {
		return nil, err
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	// Fill in any missing values with defaults
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads only what the file says, plus defaults. Used when the
// config is about to be written back, so env overrides never get persisted.
func LoadFile(configPath string) (*Config, error) {
	cfg, err := readFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func readFile(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults later
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}
	return &cfg, nil
}

// Save writes the config to path, creating the directory if needed
func (c *Config) Save(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Validate checks every field without touching the filesystem
func (c *Config) Validate() error {
	if _, err := ParseStorageKind(c.Storage.Type); err != nil {
		return err
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("%w: storage.path cannot be empty", ErrInvalidConfig)
	}
	if strings.ContainsRune(c.Storage.Path, 0) {
		return fmt.Errorf("%w: storage.path contains invalid characters", ErrInvalidConfig)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if _, err := colors.GetPreset(c.Theme.Preset); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// StorageKind returns the configured backend
func (c *Config) StorageKind() StorageKind {
	kind, err := ParseStorageKind(c.Storage.Type)
	if err != nil {
		return KindJSON
	}
	return kind
}

// ParseStorageKind accepts "json" or "sqlite", ignoring case
func ParseStorageKind(s string) (StorageKind, error) {
	switch StorageKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindJSON:
		return KindJSON, nil
	case KindSQLite:
		return KindSQLite, nil
	}
	return "", fmt.Errorf("%w: storage.type must be one of: json, sqlite (got %q)", ErrInvalidConfig, s)
}

// SlogLevel parses the configured level ("debug", "info", "warn", "error")
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, l.Level)
	}
	return level, nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Storage.Type == "" {
		c.Storage.Type = string(KindJSON)
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStoragePath(c.StorageKind())
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Theme.Preset == "" {
		c.Theme.Preset = "default"
	}
}
