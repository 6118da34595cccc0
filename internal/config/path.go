package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	configPathEnvVar  = "MUXBOT_CONFIG_PATH"
	defaultConfigDir  = "muxbot"
	defaultConfigName = "config.yaml"
)

// DefaultEnvLookup reads from the process environment.
func DefaultEnvLookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// ResolveConfigPath returns the runtime configuration file path and a label
// describing where it came from. Priority order:
//  1. Explicit MUXBOT_CONFIG_PATH.
//  2. $XDG_CONFIG_HOME/muxbot/config.yaml.
//  3. $HOME/.config/muxbot/config.yaml.
//  4. ./config.yaml (legacy location, kept for pre-XDG installs).
func ResolveConfigPath(envLookup EnvLookup, homeDir func() (string, error)) (string, string) {
	if envLookup == nil {
		envLookup = DefaultEnvLookup
	}
	if value, ok := envLookup(configPathEnvVar); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed, configPathEnvVar
		}
	}

	if xdg, ok := envLookup("XDG_CONFIG_HOME"); ok {
		if trimmed := strings.TrimSpace(xdg); trimmed != "" {
			return filepath.Join(trimmed, defaultConfigDir, defaultConfigName), "XDG_CONFIG_HOME"
		}
	}

	home := ""
	if homeDir != nil {
		if resolved, err := homeDir(); err == nil {
			home = strings.TrimSpace(resolved)
		}
	}
	if home == "" {
		if resolved, err := os.UserHomeDir(); err == nil {
			home = strings.TrimSpace(resolved)
		}
	}
	if home != "" {
		return filepath.Join(home, ".config", defaultConfigDir, defaultConfigName), "default"
	}

	return defaultConfigName, "legacy"
}

// LegacyConfigPath returns the pre-XDG config location in the working directory.
func LegacyConfigPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(wd, defaultConfigName)
}
