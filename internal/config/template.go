package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const templateContent = `# muxbot profile-based configuration
# Profiles name a provider plus credentials; agents map a role to a primary
# profile and an ordered list of fallback profiles.
# Environment overrides: MUXBOT_MAX_HISTORY, MUXBOT_CONVERSATION_TIMEOUT.
# ${VAR} references inside string values are expanded from the environment.

profiles:
  openai-gpt-4o:
    provider: openai
    model: gpt-4o
    api_key: ${OPENAI_API_KEY}
  openai-gpt-4o-mini:
    provider: openai
    model: gpt-4o-mini
    api_key: ${OPENAI_API_KEY}

agents:
  primary:
    profile: openai-gpt-4o
    instructions: "You are muxbot's primary coordination agent."
  coder:
    profile: openai-gpt-4o
    instructions: "Focus on code quality and best practices."
    fallbacks:
      - openai-gpt-4o-mini

max_history: 100
conversation_timeout: 300
`

// SaveTemplate writes a starter config.yaml to path.
// It refuses to overwrite an existing file.
func SaveTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(templateContent), 0o600); err != nil {
		return fmt.Errorf("write config template: %w", err)
	}
	return nil
}
