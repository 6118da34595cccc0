package model

import "fmt"

// AgentNotFoundError reports a resolve call for an agent with no
// configuration entry. Terminal for the call.
type AgentNotFoundError struct {
	Agent string
}

func (e *AgentNotFoundError) Error() string {
	return fmt.Sprintf("agent configuration not found: %q", e.Agent)
}

// ProfileNotFoundError reports a candidate profile name (primary or fallback)
// that does not exist in the configuration. Non-terminal per candidate; it is
// logged distinctly from provider failures so configuration drift can be told
// apart from provider outages.
type ProfileNotFoundError struct {
	Profile string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("profile not found: %q", e.Profile)
}

// CreationError reports a provider capability that failed to construct a
// model. The original cause is preserved for logging.
type CreationError struct {
	Profile  string
	Provider string
	Err      error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("provider %q failed to create model for profile %q: %v", e.Provider, e.Profile, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// ExhaustedError reports that every candidate profile for an agent failed.
// LastErr holds the most recent per-candidate error, or nil when no candidate
// produced one.
type ExhaustedError struct {
	Agent   string
	LastErr error
}

func (e *ExhaustedError) Error() string {
	if e.LastErr != nil {
		return fmt.Sprintf("no usable model for agent %q: %v", e.Agent, e.LastErr)
	}
	return fmt.Sprintf("no usable model for agent %q", e.Agent)
}

func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}
