package config

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	ID      string
	Message string
	Hint    string
}

// ValidationReport summarizes configuration validation findings.
// Warnings never block startup; errors indicate the config cannot work.
type ValidationReport struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether the validation report contains blocking errors.
func (r ValidationReport) HasErrors() bool {
	return len(r.Errors) > 0
}

// ProviderRequiresAPIKey reports whether the provider needs API key authentication.
func ProviderRequiresAPIKey(provider string) bool {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "mock", "ollama":
		return false
	default:
		return true
	}
}

// Validate checks profile and agent records for misconfiguration.
//
// Dangling fallback references are warnings: resolution skips them at
// runtime. A dangling primary reference is an error because the agent can
// only ever work through fallbacks then.
func Validate(cfg *Config) ValidationReport {
	var report ValidationReport
	if cfg == nil {
		report.Errors = append(report.Errors, ValidationIssue{
			ID:      "config",
			Message: "configuration is missing",
		})
		return report
	}

	for _, name := range sortedKeys(cfg.Profiles) {
		profile := cfg.Profiles[name]
		if strings.TrimSpace(profile.Provider) == "" {
			report.Errors = append(report.Errors, ValidationIssue{
				ID:      "profile-provider",
				Message: fmt.Sprintf("profile %q has no provider", name),
				Hint:    "Set profiles.<name>.provider in config.yaml.",
			})
		}
		if strings.TrimSpace(profile.Model) == "" {
			report.Errors = append(report.Errors, ValidationIssue{
				ID:      "profile-model",
				Message: fmt.Sprintf("profile %q has no model", name),
				Hint:    "Set profiles.<name>.model to a valid model name.",
			})
		}
		if ProviderRequiresAPIKey(profile.Provider) && strings.TrimSpace(profile.APIKey) == "" {
			report.Warnings = append(report.Warnings, ValidationIssue{
				ID:      "profile-api-key",
				Message: fmt.Sprintf("profile %q has no API key for provider %q", name, profile.Provider),
				Hint:    "Set profiles.<name>.api_key or use a ${VAR} reference.",
			})
		}
	}

	for _, name := range sortedKeys(cfg.Agents) {
		agent := cfg.Agents[name]
		if _, ok := cfg.Profiles[agent.Profile]; !ok {
			report.Errors = append(report.Errors, ValidationIssue{
				ID:      "agent-profile",
				Message: fmt.Sprintf("agent %q references unknown profile %q", name, agent.Profile),
			})
		}
		for _, fb := range agent.Fallbacks {
			if _, ok := cfg.Profiles[fb]; !ok {
				report.Warnings = append(report.Warnings, ValidationIssue{
					ID:      "agent-fallback",
					Message: fmt.Sprintf("agent %q references unknown fallback profile %q", name, fb),
				})
			}
		}
	}

	return report
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
