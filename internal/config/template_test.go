package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveTemplateWritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, SaveTemplate(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := Load(WithConfigPath(path), WithEnvLookup(envFromMap(map[string]string{
		"OPENAI_API_KEY": "sk-template",
	})))
	require.NoError(t, err)
	require.Contains(t, cfg.Profiles, "openai-gpt-4o")
	require.Equal(t, "sk-template", cfg.Profiles["openai-gpt-4o"].APIKey)
	require.Contains(t, cfg.Agents, "primary")
	require.Equal(t, []string{"openai-gpt-4o-mini"}, cfg.Agents["coder"].Fallbacks)

	report := Validate(cfg)
	require.False(t, report.HasErrors())
}

func TestSaveTemplateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0o600))

	err := SaveTemplate(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "existing\n", string(content))
}
