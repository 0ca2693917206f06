package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const appName = "trtodo"

// ParseEnv loads overrides from environment variables into target.
// Variables that are not set leave the current value alone.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Path returns the config file location.
// TRTODO_CONFIG wins, then XDG_CONFIG_HOME, then ~/.config.
func Path() (string, error) {
	if p := os.Getenv("TRTODO_CONFIG"); p != "" {
		return ExpandPath(p)
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultStoragePath is where data lives when the config names no path
func DefaultStoragePath(kind StorageKind) string {
	file := "data.json"
	if kind == KindSQLite {
		file = "data.db"
	}
	dir, err := configDir()
	if err != nil {
		return file
	}
	return filepath.Join(dir, file)
}

func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// ExpandPath replaces a leading "~" with the home directory
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
