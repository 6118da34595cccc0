// Package provider defines the provider capability contract and the registry
// that resolves provider identifiers to registered capabilities.
//
// A provider capability turns a profile into a usable model handle. Providers
// register themselves explicitly at process startup; there is no reflective
// module loading, so "unsupported provider" is a plain registry miss.
package provider

import (
	"context"

	"muxbot/internal/config"
)

// Role values for chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message exchanged with a model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the input for a single model completion.
type CompletionRequest struct {
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Usage captures token accounting for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse is the result of a completion.
type CompletionResponse struct {
	Content string
	Usage   Usage
}

// Model is the opaque handle produced by a successful construction.
// Construction performs no network I/O; Complete does.
type Model interface {
	Provider() string
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// Factory constructs a model from a profile, or fails.
// Implementations must be safe for concurrent use.
type Factory interface {
	CreateModel(profile config.ProfileConfig) (Model, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(profile config.ProfileConfig) (Model, error)

// CreateModel implements Factory.
func (f FactoryFunc) CreateModel(profile config.ProfileConfig) (Model, error) {
	return f(profile)
}
