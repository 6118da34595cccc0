package config

// Defaults applied when the config file or environment omit a value.
const (
	DefaultMaxHistory          = 100
	DefaultConversationTimeout = 300 // seconds
)

// ProfileConfig identifies one provider configuration.
//
// Profiles are constructed once at load time and never mutated afterwards;
// the resolver only reads them.
type ProfileConfig struct {
	Provider string         `json:"provider" yaml:"provider"`
	APIKey   string         `json:"api_key" yaml:"api_key"`
	Model    string         `json:"model" yaml:"model"`
	BaseURL  string         `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// AgentConfig identifies one logical agent role.
//
// Profile and every entry of Fallbacks are references by name into
// Config.Profiles. A dangling reference is a runtime condition handled during
// resolution, not a structural error here.
type AgentConfig struct {
	Profile      string   `json:"profile" yaml:"profile"`
	Instructions string   `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Fallbacks    []string `json:"fallbacks,omitempty" yaml:"fallbacks,omitempty"`
}

// Config holds the full muxbot configuration.
type Config struct {
	Profiles            map[string]ProfileConfig `json:"profiles" yaml:"profiles"`
	Agents              map[string]AgentConfig   `json:"agents" yaml:"agents"`
	MaxHistory          int                      `json:"max_history" yaml:"max_history"`
	ConversationTimeout int                      `json:"conversation_timeout" yaml:"conversation_timeout"`
}

// EnvLookup abstracts os.LookupEnv so loading stays testable.
type EnvLookup func(key string) (string, bool)
