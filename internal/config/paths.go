package config

import (
	"os"
	"path/filepath"
)

// ProjectPath is the project config file, relative to the working directory.
const ProjectPath = ".travel-manager/config"

// GlobalPath returns the per-user config file location:
// $XDG_CONFIG_HOME/travel-manager/config, falling back to
// ~/.config/travel-manager/config. Returns "" if no home directory is known.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "travel-manager", "config")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "travel-manager", "config")
}
