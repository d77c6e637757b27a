package ui

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive color in styles.yaml
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style in styles.yaml
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// StylesConfig is the complete styles file
type StylesConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

var (
	stylesOnce sync.Once
	registry   map[string]lipgloss.Style
)

// ParseStyles builds lipgloss styles from YAML
func ParseStyles(data []byte) (map[string]lipgloss.Style, error) {
	var cfg StylesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(map[string]lipgloss.Style, len(cfg.Styles))
	for name, def := range cfg.Styles {
		style := lipgloss.NewStyle().Bold(def.Bold).Italic(def.Italic)
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
		styles[name] = style
	}
	return styles, nil
}

// GetStyle returns the named style, or a plain style when unknown
func GetStyle(name string) lipgloss.Style {
	stylesOnce.Do(func() {
		styles, err := ParseStyles(embeddedStyles)
		if err != nil {
			styles = map[string]lipgloss.Style{}
		}
		registry = styles
	})
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Render applies the named style to s when styled is set
func Render(name, s string, styled bool) string {
	if !styled {
		return s
	}
	return GetStyle(name).Render(s)
}
