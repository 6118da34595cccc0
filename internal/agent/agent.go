// Package agent turns a configured agent role into a conversational agent
// backed by a resolved provider model.
package agent

import (
	"context"
	"fmt"

	"muxbot/internal/config"
	"muxbot/internal/conversation"
	"muxbot/internal/model"
	"muxbot/internal/provider"
)

// PrimaryAgent is the default coordination role name.
const PrimaryAgent = "primary"

// defaultInstructions are used for built-in roles when the configuration
// does not supply instructions of its own.
var defaultInstructions = map[string]string{
	"primary": "You are muxbot's primary coordination agent, a conversational AI assistant " +
		"for terminal environments. You help with coding, system administration, and general " +
		"technical tasks. Always provide clear, helpful responses and ask for clarification when needed.",
	"coder": "You are muxbot's coding agent. Focus on code quality, correctness, and best " +
		"practices. Prefer small, reviewable changes and explain tradeoffs briefly.",
	"devops": "You are muxbot's DevOps agent. You help with deployment, CI/CD, containers, " +
		"and infrastructure questions, favoring reproducible and automated solutions.",
	"sysadmin": "You are muxbot's system administration agent. You help with Unix tooling, " +
		"processes, permissions, and troubleshooting, and you flag destructive commands clearly.",
}

// Agent pairs a resolved model with role instructions.
type Agent struct {
	Name         string
	Instructions string

	model provider.Model
}

// Option customizes agent construction.
type Option func(*Agent)

// WithModelWrapper applies wrap to the resolved model, e.g. to add rate
// limiting around completions.
func WithModelWrapper(wrap func(provider.Model) provider.Model) Option {
	return func(a *Agent) {
		if wrap != nil && a.model != nil {
			a.model = wrap(a.model)
		}
	}
}

// New resolves a model for the named agent role through the factory.
// Instructions come from the agent's configuration, falling back to the
// built-in defaults for known roles.
func New(cfg *config.Config, factory *model.Factory, name string, opts ...Option) (*Agent, error) {
	resolved, err := factory.CreateModel(name)
	if err != nil {
		return nil, fmt.Errorf("create agent %q: %w", name, err)
	}

	instructions := cfg.Agents[name].Instructions
	if instructions == "" {
		instructions = defaultInstructions[name]
	}

	a := &Agent{
		Name:         name,
		Instructions: instructions,
		model:        resolved,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Model returns the resolved model handle.
func (a *Agent) Model() provider.Model {
	return a.model
}

// Respond sends the conversation history plus the user input to the model
// and records both sides of the exchange in the conversation context.
func (a *Agent) Respond(ctx context.Context, conv *conversation.Context, input string) (string, error) {
	messages := make([]provider.Message, 0, conv.Len()+2)
	if a.Instructions != "" {
		messages = append(messages, provider.Message{Role: provider.RoleSystem, Content: a.Instructions})
	}
	messages = append(messages, conv.History()...)
	messages = append(messages, provider.Message{Role: provider.RoleUser, Content: input})

	resp, err := a.model.Complete(ctx, provider.CompletionRequest{Messages: messages})
	if err != nil {
		return "", err
	}

	conv.Append(provider.RoleUser, input)
	conv.Append(provider.RoleAssistant, resp.Content)
	return resp.Content, nil
}
