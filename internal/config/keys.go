package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned for a dotted key the config does not have
var ErrUnknownKey = errors.New("invalid key")

type keyAccessor struct {
	get func(c *Config) string
	set func(c *Config, v string)
}

var keys = map[string]keyAccessor{
	"storage.type": {
		get: func(c *Config) string { return c.Storage.Type },
		set: func(c *Config, v string) { c.Storage.Type = strings.ToLower(v) },
	},
	"storage.path": {
		get: func(c *Config) string { return c.Storage.Path },
		set: func(c *Config, v string) { c.Storage.Path = v },
	},
	"log.level": {
		get: func(c *Config) string { return c.Log.Level },
		set: func(c *Config, v string) { c.Log.Level = strings.ToLower(v) },
	},
	"log.file": {
		get: func(c *Config) string { return c.Log.File },
		set: func(c *Config, v string) { c.Log.File = v },
	},
	"theme": {
		get: func(c *Config) string { return c.Theme.Preset },
		set: func(c *Config, v string) { c.Theme.Preset = strings.ToLower(v) },
	},
}

// Keys lists every settable key in a stable order
func Keys() []string {
	return []string{"storage.type", "storage.path", "log.level", "log.file", "theme"}
}

func (c *Config) Get(key string) (string, error) {
	k, ok := keys[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return k.get(c), nil
}

// Set changes one key. The config is validated afterwards and left
// untouched if the new value is rejected.
func (c *Config) Set(key, value string) error {
	k, ok := keys[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	next := *c
	k.set(&next, value)
	if key == "storage.path" {
		expanded, err := ExpandPath(value)
		if err != nil {
			return err
		}
		next.Storage.Path = expanded
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Unset restores a key to its default
func (c *Config) Unset(key string) error {
	k, ok := keys[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	k.set(c, "")
	c.applyDefaults()
	return nil
}
