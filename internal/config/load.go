package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	envMaxHistory          = "MUXBOT_MAX_HISTORY"
	envConversationTimeout = "MUXBOT_CONVERSATION_TIMEOUT"
)

type loadOptions struct {
	configPath string
	envLookup  EnvLookup
	readFile   func(string) ([]byte, error)
	homeDir    func() (string, error)
}

// Option customizes Load behavior; primarily used by tests to stay hermetic.
type Option func(*loadOptions)

// WithConfigPath forces a specific config file path.
func WithConfigPath(path string) Option {
	return func(o *loadOptions) { o.configPath = path }
}

// WithEnvLookup substitutes the environment lookup.
func WithEnvLookup(lookup EnvLookup) Option {
	return func(o *loadOptions) { o.envLookup = lookup }
}

// WithReadFile substitutes the file reader.
func WithReadFile(read func(string) ([]byte, error)) Option {
	return func(o *loadOptions) { o.readFile = read }
}

// WithHomeDir substitutes home directory resolution.
func WithHomeDir(homeDir func() (string, error)) Option {
	return func(o *loadOptions) { o.homeDir = homeDir }
}

// Load reads the YAML config file and applies environment overrides.
//
// A missing or empty file yields a config with defaults and empty profile and
// agent maps; a file that exists but fails to parse is an error. Environment
// variables take precedence over file values. `${VAR}` references inside
// string fields are expanded from the environment so secrets can stay out of
// the file.
func Load(opts ...Option) (*Config, error) {
	options := loadOptions{
		envLookup: DefaultEnvLookup,
		readFile:  os.ReadFile,
		homeDir:   os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(&options)
	}

	configPath := strings.TrimSpace(options.configPath)
	if configPath == "" {
		configPath, _ = ResolveConfigPath(options.envLookup, options.homeDir)
	}

	cfg := &Config{
		Profiles:            map[string]ProfileConfig{},
		Agents:              map[string]AgentConfig{},
		MaxHistory:          DefaultMaxHistory,
		ConversationTimeout: DefaultConversationTimeout,
	}

	if configPath != "" {
		data, err := options.readFile(configPath)
		switch {
		case err == nil:
			if len(bytes.TrimSpace(data)) > 0 {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
				}
			}
		case errors.Is(err, os.ErrNotExist):
			// fall through to defaults
		default:
			return nil, fmt.Errorf("read config file %s: %w", configPath, err)
		}
	}

	if cfg.Profiles == nil {
		cfg.Profiles = map[string]ProfileConfig{}
	}
	if cfg.Agents == nil {
		cfg.Agents = map[string]AgentConfig{}
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = DefaultMaxHistory
	}
	if cfg.ConversationTimeout <= 0 {
		cfg.ConversationTimeout = DefaultConversationTimeout
	}

	expandProfilesEnv(options.envLookup, cfg)
	applyEnvOverrides(options.envLookup, cfg)

	return cfg, nil
}

// applyEnvOverrides applies MUXBOT_* scalar overrides. Invalid or
// non-positive values are ignored, matching file-value handling.
func applyEnvOverrides(lookup EnvLookup, cfg *Config) {
	if lookup == nil {
		lookup = DefaultEnvLookup
	}
	if raw, ok := lookup(envMaxHistory); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && v > 0 {
			cfg.MaxHistory = v
		}
	}
	if raw, ok := lookup(envConversationTimeout); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && v > 0 {
			cfg.ConversationTimeout = v
		}
	}
}

// expandProfilesEnv expands ${VAR} references in profile string fields.
func expandProfilesEnv(lookup EnvLookup, cfg *Config) {
	if lookup == nil {
		lookup = DefaultEnvLookup
	}
	for name, profile := range cfg.Profiles {
		profile.APIKey = expandEnvValue(lookup, profile.APIKey)
		profile.BaseURL = expandEnvValue(lookup, profile.BaseURL)
		cfg.Profiles[name] = profile
	}
}

func expandEnvValue(lookup EnvLookup, value string) string {
	if !strings.Contains(value, "${") {
		return value
	}
	return os.Expand(value, func(key string) string {
		if v, ok := lookup(key); ok {
			return v
		}
		return ""
	})
}
