package config

import (
	"os"
	"path/filepath"
)

var (
	homeDir string
)

func init() {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		homeDir = "~"
	}
}

// RauDir returns the rau config directory path
// ~/.config/rau/
func RauDir() string {
	return filepath.Join(homeDir, ".config", "rau")
}

// ConfigPath returns the config.yaml file path
// ~/.config/rau/config.yaml
func ConfigPath() string {
	return filepath.Join(RauDir(), "config.yaml")
}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
