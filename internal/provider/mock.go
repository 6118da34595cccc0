package provider

import (
	"context"
	"fmt"
	"strings"

	"muxbot/internal/config"
)

// mockFactory builds models that answer without talking to any backend.
// Useful for tests and for trying the CLI without credentials.
type mockFactory struct{}

// NewMockFactory returns the mock provider capability.
func NewMockFactory() Factory {
	return mockFactory{}
}

func (mockFactory) CreateModel(profile config.ProfileConfig) (Model, error) {
	if strings.TrimSpace(profile.Model) == "" {
		return nil, fmt.Errorf("mock: model name is required")
	}
	return &MockModel{ProviderID: profile.Provider, ModelName: profile.Model}, nil
}

// MockModel echoes a canned response. Exported so tests outside this package
// can assert on the concrete type.
type MockModel struct {
	ProviderID string
	ModelName  string
	Response   string
}

func (m *MockModel) Provider() string { return m.ProviderID }
func (m *MockModel) Name() string     { return m.ModelName }

func (m *MockModel) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("request contained no messages")
	}
	content := m.Response
	if content == "" {
		content = "This is a mock response. No backend was called."
	}
	return &CompletionResponse{
		Content: content,
		Usage:   Usage{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2},
	}, nil
}
