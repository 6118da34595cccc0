package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveConfigPathExplicitEnvWins(t *testing.T) {
	lookup := envFromMap(map[string]string{
		"MUXBOT_CONFIG_PATH": "/etc/muxbot/config.yaml",
		"XDG_CONFIG_HOME":    "/xdg",
	})

	path, source := ResolveConfigPath(lookup, func() (string, error) { return "/home/u", nil })
	require.Equal(t, "/etc/muxbot/config.yaml", path)
	require.Equal(t, "MUXBOT_CONFIG_PATH", source)
}

func TestResolveConfigPathXDG(t *testing.T) {
	lookup := envFromMap(map[string]string{"XDG_CONFIG_HOME": "/xdg"})

	path, source := ResolveConfigPath(lookup, func() (string, error) { return "/home/u", nil })
	require.Equal(t, filepath.Join("/xdg", "muxbot", "config.yaml"), path)
	require.Equal(t, "XDG_CONFIG_HOME", source)
}

func TestResolveConfigPathHomeDefault(t *testing.T) {
	path, source := ResolveConfigPath(envFromMap(nil), func() (string, error) { return "/home/u", nil })
	require.Equal(t, filepath.Join("/home/u", ".config", "muxbot", "config.yaml"), path)
	require.Equal(t, "default", source)
}

func TestResolveConfigPathIgnoresBlankEnvValues(t *testing.T) {
	lookup := envFromMap(map[string]string{
		"MUXBOT_CONFIG_PATH": "   ",
		"XDG_CONFIG_HOME":    "",
	})

	path, source := ResolveConfigPath(lookup, func() (string, error) { return "/home/u", nil })
	require.Equal(t, filepath.Join("/home/u", ".config", "muxbot", "config.yaml"), path)
	require.Equal(t, "default", source)
}
