package config

import "github.com/thenoetrevino/trtodo/internal/config/colors"

// ColorScheme returns the configured theme with preset colors filled in
func (c *Config) ColorScheme() colors.ColorScheme {
	return c.Theme.Resolved()
}
