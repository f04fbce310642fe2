package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Skin declares the color overrides a theme file may set. Empty fields
// keep the built-in value.
type Skin struct {
	Name   string `yaml:"name"`
	Colors struct {
		Navy   string `yaml:"navy"`
		Blue   string `yaml:"blue"`
		Green  string `yaml:"green"`
		Orange string `yaml:"orange"`
		Red    string `yaml:"red"`
		Gold   string `yaml:"gold"`
		Gray   string `yaml:"gray"`
		White  string `yaml:"white"`
	} `yaml:"colors"`
}

// InitializeSkin loads <configDir>/skins/<name>.yaml and applies its color
// overrides to the shared palette. The "default" skin with no file on disk
// keeps the built-in palette and is not an error.
func InitializeSkin(name, configDir string) error {
	if name == "" {
		name = "default"
	}

	path := filepath.Join(configDir, "skins", name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && name == "default" {
			return nil
		}
		return fmt.Errorf("reading skin %q: %w", name, err)
	}

	var skin Skin
	if err := yaml.Unmarshal(data, &skin); err != nil {
		return fmt.Errorf("parsing skin %q: %w", name, err)
	}

	applySkin(skin)
	return nil
}

func applySkin(skin Skin) {
	set := func(dst *lipgloss.Color, val string) {
		if val != "" {
			*dst = lipgloss.Color(val)
		}
	}

	set(&ColorNavy, skin.Colors.Navy)
	set(&ColorBlue, skin.Colors.Blue)
	set(&ColorGreen, skin.Colors.Green)
	set(&ColorOrange, skin.Colors.Orange)
	set(&ColorRed, skin.Colors.Red)
	set(&ColorGold, skin.Colors.Gold)
	set(&ColorGray, skin.Colors.Gray)
	set(&ColorWhite, skin.Colors.White)

	rebuildStyles()
}
