package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"muxbot/internal/config"
	"muxbot/internal/logging"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion        = "2023-06-01"

	// Anthropic requires max_tokens; applied when neither the request nor the
	// profile settings provide one.
	anthropicDefaultMaxTokens = 4096
)

type anthropicFactory struct {
	logger logging.Logger
}

// NewAnthropicFactory returns the Anthropic provider capability.
func NewAnthropicFactory() Factory {
	return &anthropicFactory{logger: logging.NewComponentLogger("anthropic")}
}

func (f *anthropicFactory) CreateModel(profile config.ProfileConfig) (Model, error) {
	if strings.TrimSpace(profile.APIKey) == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if strings.TrimSpace(profile.Model) == "" {
		return nil, fmt.Errorf("anthropic: model name is required")
	}

	baseURL := strings.TrimRight(profile.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}

	return &anthropicModel{
		provider:   profile.Provider,
		model:      profile.Model,
		apiKey:     profile.APIKey,
		baseURL:    baseURL,
		settings:   profile.Settings,
		httpClient: &http.Client{Timeout: requestTimeout(profile.Settings)},
		logger:     f.logger,
	}, nil
}

type anthropicModel struct {
	provider   string
	model      string
	apiKey     string
	baseURL    string
	settings   map[string]any
	httpClient *http.Client
	logger     logging.Logger
}

func (m *anthropicModel) Provider() string { return m.provider }
func (m *anthropicModel) Name() string     { return m.model }

type anthropicRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (m *anthropicModel) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	req = applyRequestSettings(req, m.settings)
	if req.MaxTokens <= 0 {
		req.MaxTokens = anthropicDefaultMaxTokens
	}

	// Anthropic takes the system prompt as a top-level field.
	messages, system := splitSystemMessages(req.Messages)

	payload, err := json.Marshal(anthropicRequest{
		Model:       m.model,
		System:      system,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("encode messages request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build messages request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", m.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("messages request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		m.logger.Warn("messages request to %s failed with status %d", m.baseURL, resp.StatusCode)
		return nil, fmt.Errorf("messages request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode messages response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("messages error: %s", parsed.Error.Message)
	}

	var builder strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}

	return &CompletionResponse{
		Content: builder.String(),
		Usage: Usage{
			PromptTokens:     parsed.Usage.InputTokens,
			CompletionTokens: parsed.Usage.OutputTokens,
			TotalTokens:      parsed.Usage.InputTokens + parsed.Usage.OutputTokens,
		},
	}, nil
}

func splitSystemMessages(in []Message) ([]Message, string) {
	var system strings.Builder
	messages := make([]Message, 0, len(in))
	for _, msg := range in {
		if msg.Role == RoleSystem {
			if system.Len() > 0 {
				system.WriteString("\n")
			}
			system.WriteString(msg.Content)
			continue
		}
		messages = append(messages, msg)
	}
	return messages, system.String()
}
