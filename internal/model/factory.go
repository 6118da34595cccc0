// Package model resolves logical agent names to usable provider models.
//
// Resolution walks an agent's profile candidates in declared order (primary
// first, then fallbacks), delegates construction to the provider registry,
// and stops at the first success. All per-candidate failures are caught and
// logged here; callers see either a model or a definitive typed error.
package model

import (
	"fmt"
	"sort"

	"muxbot/internal/config"
	"muxbot/internal/logging"
	"muxbot/internal/provider"
)

// Factory creates provider models for configured agents with ordered
// fallback across profiles.
//
// A Factory is stateless across calls beyond its immutable configuration and
// registry references, so CreateModel is safe for concurrent use as long as
// the registered provider capabilities are.
type Factory struct {
	cfg      *config.Config
	registry *provider.Registry
	logger   logging.Logger
}

// Option customizes a Factory.
type Option func(*Factory)

// WithLogger substitutes the factory logger.
func WithLogger(logger logging.Logger) Option {
	return func(f *Factory) { f.logger = logger }
}

// NewFactory builds a Factory over cfg and registry.
//
// As a side effect it checks every agent's fallback references and logs a
// warning for each one that names a missing profile. The check never fails
// construction and never mutates cfg; it only surfaces misconfiguration
// early, before the first resolution hits it.
func NewFactory(cfg *config.Config, registry *provider.Registry, opts ...Option) *Factory {
	f := &Factory{
		cfg:      cfg,
		registry: registry,
		logger:   logging.NewComponentLogger("model-factory"),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.OrNop(f.logger)

	f.validateFallbacks()
	return f
}

func (f *Factory) validateFallbacks() {
	if f.cfg == nil {
		return
	}
	names := make([]string, 0, len(f.cfg.Agents))
	for name := range f.cfg.Agents {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, fb := range f.cfg.Agents[name].Fallbacks {
			if _, ok := f.cfg.Profiles[fb]; !ok {
				f.logger.Warn("agent %q references unknown fallback profile %q", name, fb)
			}
		}
	}
}

// CreateModel resolves a model for the named agent.
//
// Candidates are tried strictly in declared order: the agent's primary
// profile, then each fallback. Duplicates are retried as listed. The first
// successful construction wins; a fallback success is logged as a warning
// naming both the failed primary and the profile that served. When every
// candidate fails, the returned *ExhaustedError carries the most recent
// per-candidate error for diagnostics.
//
// No error from a provider capability escapes this method unwrapped: the
// caller contract is binary, a usable model or a typed absence error.
func (f *Factory) CreateModel(agentType string) (provider.Model, error) {
	agent, ok := f.cfg.Agents[agentType]
	if !ok {
		f.logger.Error("agent configuration not found: %q", agentType)
		return nil, &AgentNotFoundError{Agent: agentType}
	}

	candidates := make([]string, 0, 1+len(agent.Fallbacks))
	candidates = append(candidates, agent.Profile)
	candidates = append(candidates, agent.Fallbacks...)

	var lastErr error
	for i, profileName := range candidates {
		model, err := f.tryCandidate(profileName)
		if err != nil {
			lastErr = err
			f.logger.Warn("profile %q failed for agent %q: %v", profileName, agentType, err)
			continue
		}

		if i == 0 {
			f.logger.Debug("using primary profile %q for agent %q", profileName, agentType)
		} else {
			f.logger.Warn("agent %q: primary profile %q unavailable, using fallback profile %q",
				agentType, agent.Profile, profileName)
		}
		return model, nil
	}

	if lastErr != nil {
		f.logger.Error("no usable model for agent %q, all %d candidate profile(s) failed, last error: %v",
			agentType, len(candidates), lastErr)
	} else {
		f.logger.Error("no usable model for agent %q, all %d candidate profile(s) failed",
			agentType, len(candidates))
	}
	return nil, &ExhaustedError{Agent: agentType, LastErr: lastErr}
}

// tryCandidate attempts a single candidate profile.
func (f *Factory) tryCandidate(profileName string) (provider.Model, error) {
	profile, ok := f.cfg.Profiles[profileName]
	if !ok {
		return nil, &ProfileNotFoundError{Profile: profileName}
	}

	factory, err := f.registry.Lookup(profile.Provider)
	if err != nil {
		// *provider.UnsupportedProviderError: a registry miss, kept distinct
		// from a construction failure.
		return nil, err
	}

	model, err := factory.CreateModel(profile)
	if err != nil {
		return nil, &CreationError{Profile: profileName, Provider: profile.Provider, Err: err}
	}
	if model == nil {
		return nil, &CreationError{
			Profile:  profileName,
			Provider: profile.Provider,
			Err:      fmt.Errorf("provider returned no model"),
		}
	}
	return model, nil
}
