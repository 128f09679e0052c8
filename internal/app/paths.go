// Package app provides the application initialization and wiring.
package app

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultDataDir returns the default data directory path.
// Uses ~/.stevedore for user installations, /var/lib/stevedore as fallback.
func DefaultDataDir() string {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".stevedore")
	}
	return "/var/lib/stevedore"
}

// ConfigureViper sets up viper with standard config file search paths.
// Config file: stevedore.toml
// Search paths (in order): /etc/stevedore, ~/.config/stevedore, current directory
func ConfigureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("stevedore")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/stevedore")
		v.AddConfigPath("$HOME/.config/stevedore")
		v.AddConfigPath(".")
	}
}

// dotEnvFiles returns the .env files to load: one in the working directory
// and one next to the config file, when they exist.
func dotEnvFiles(configPath string) []string {
	candidates := []string{".env"}
	if configPath != "" {
		if dir := filepath.Dir(configPath); dir != "." {
			candidates = append(candidates, filepath.Join(dir, ".env"))
		}
	}

	var files []string
	for _, f := range candidates {
		if info, err := os.Stat(f); err == nil && !info.IsDir() {
			files = append(files, f)
		}
	}
	return files
}
