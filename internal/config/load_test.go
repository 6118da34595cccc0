package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func envFromMap(values map[string]string) EnvLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(
		WithConfigPath(filepath.Join(t.TempDir(), "does-not-exist.yaml")),
		WithEnvLookup(envFromMap(nil)),
	)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Empty(t, cfg.Profiles)
	require.Empty(t, cfg.Agents)
	require.Equal(t, DefaultMaxHistory, cfg.MaxHistory)
	require.Equal(t, DefaultConversationTimeout, cfg.ConversationTimeout)
}

func TestLoadParsesProfilesAndAgents(t *testing.T) {
	path := writeTempConfig(t, `
profiles:
  main:
    provider: openai
    model: gpt-4o
    api_key: sk-test
    settings:
      temperature: 0.3
agents:
  primary:
    profile: main
    instructions: "be helpful"
    fallbacks:
      - backup
max_history: 40
conversation_timeout: 120
`)

	cfg, err := Load(WithConfigPath(path), WithEnvLookup(envFromMap(nil)))
	require.NoError(t, err)

	require.Len(t, cfg.Profiles, 1)
	main := cfg.Profiles["main"]
	require.Equal(t, "openai", main.Provider)
	require.Equal(t, "gpt-4o", main.Model)
	require.Equal(t, "sk-test", main.APIKey)
	require.Equal(t, 0.3, main.Settings["temperature"])

	primary := cfg.Agents["primary"]
	require.Equal(t, "main", primary.Profile)
	require.Equal(t, "be helpful", primary.Instructions)
	require.Equal(t, []string{"backup"}, primary.Fallbacks)

	require.Equal(t, 40, cfg.MaxHistory)
	require.Equal(t, 120, cfg.ConversationTimeout)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeTempConfig(t, "profiles: [not: a: map")

	cfg, err := Load(WithConfigPath(path), WithEnvLookup(envFromMap(nil)))
	require.Error(t, err)
	require.Nil(t, cfg)
	require.Contains(t, err.Error(), "parse config file")
}

func TestLoadPropagatesReadErrors(t *testing.T) {
	boom := errors.New("permission denied")
	cfg, err := Load(
		WithConfigPath("/etc/muxbot/config.yaml"),
		WithEnvLookup(envFromMap(nil)),
		WithReadFile(func(string) ([]byte, error) { return nil, boom }),
	)
	require.ErrorIs(t, err, boom)
	require.Nil(t, cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, "max_history: 40\nconversation_timeout: 120\n")

	cfg, err := Load(WithConfigPath(path), WithEnvLookup(envFromMap(map[string]string{
		"MUXBOT_MAX_HISTORY":          "7",
		"MUXBOT_CONVERSATION_TIMEOUT": "90",
	})))
	require.NoError(t, err)
	require.Equal(t, 7, cfg.MaxHistory)
	require.Equal(t, 90, cfg.ConversationTimeout)
}

func TestLoadIgnoresInvalidEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, "max_history: 40\n")

	cfg, err := Load(WithConfigPath(path), WithEnvLookup(envFromMap(map[string]string{
		"MUXBOT_MAX_HISTORY":          "not-a-number",
		"MUXBOT_CONVERSATION_TIMEOUT": "-5",
	})))
	require.NoError(t, err)
	require.Equal(t, 40, cfg.MaxHistory)
	require.Equal(t, DefaultConversationTimeout, cfg.ConversationTimeout)
}

func TestLoadExpandsEnvReferences(t *testing.T) {
	path := writeTempConfig(t, `
profiles:
  main:
    provider: openai
    model: gpt-4o
    api_key: ${OPENAI_API_KEY}
    base_url: ${CUSTOM_BASE_URL}
`)

	cfg, err := Load(WithConfigPath(path), WithEnvLookup(envFromMap(map[string]string{
		"OPENAI_API_KEY": "sk-from-env",
	})))
	require.NoError(t, err)

	main := cfg.Profiles["main"]
	require.Equal(t, "sk-from-env", main.APIKey)
	// unset references expand to empty rather than leaking the placeholder
	require.Equal(t, "", main.BaseURL)
}

func TestLoadNonPositiveScalarsFallBackToDefaults(t *testing.T) {
	path := writeTempConfig(t, "max_history: 0\nconversation_timeout: -1\n")

	cfg, err := Load(WithConfigPath(path), WithEnvLookup(envFromMap(nil)))
	require.NoError(t, err)
	require.Equal(t, DefaultMaxHistory, cfg.MaxHistory)
	require.Equal(t, DefaultConversationTimeout, cfg.ConversationTimeout)
}
