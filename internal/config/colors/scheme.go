package colors

import (
	"fmt"
	"slices"
	"strings"
)

// ColorScheme defines the colors used by terminal output.
// Empty fields fall back to the preset.
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset" env:"TRTODO_THEME"`

	// Primary accent color (card borders, labels)
	Accent string `yaml:"accent,omitempty"`

	// Text colors
	Title  string `yaml:"title,omitempty"`
	Subtle string `yaml:"subtle,omitempty"` // Muted text, completed tasks
	Normal string `yaml:"normal,omitempty"`

	// Priority colors
	High   string `yaml:"high,omitempty"`
	Medium string `yaml:"medium,omitempty"`
	Low    string `yaml:"low,omitempty"`

	// Status colors
	Success string `yaml:"success,omitempty"`
	Error   string `yaml:"error,omitempty"`
}

var presets = map[string]func() *ColorScheme{
	"default":    Default,
	"monochrome": Monochrome,
	"dragon":     Dragon,
	"lotus":      Lotus,
	"wave":       Wave,
}

// Presets lists the preset names in a stable order
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) (*ColorScheme, error) {
	if name == "" {
		return Default(), nil
	}
	build, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(Presets(), ", "))
	}
	return build(), nil
}

// Resolved returns the scheme with every empty color taken from its preset.
// The receiver is left untouched so only overrides are ever saved.
func (c ColorScheme) Resolved() ColorScheme {
	preset, err := GetPreset(c.Preset)
	if err != nil {
		preset = Default()
	}

	out := *preset
	fill := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	fill(&out.Accent, c.Accent)
	fill(&out.Title, c.Title)
	fill(&out.Subtle, c.Subtle)
	fill(&out.Normal, c.Normal)
	fill(&out.High, c.High)
	fill(&out.Medium, c.Medium)
	fill(&out.Low, c.Low)
	fill(&out.Success, c.Success)
	fill(&out.Error, c.Error)
	return out
}
