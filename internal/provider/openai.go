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

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// openAIFactory builds models against OpenAI-compatible chat completion APIs
// (OpenAI, OpenRouter, DeepSeek, and similar).
type openAIFactory struct {
	logger logging.Logger
}

// NewOpenAIFactory returns the OpenAI-compatible provider capability.
func NewOpenAIFactory() Factory {
	return &openAIFactory{logger: logging.NewComponentLogger("openai")}
}

func (f *openAIFactory) CreateModel(profile config.ProfileConfig) (Model, error) {
	if strings.TrimSpace(profile.APIKey) == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if strings.TrimSpace(profile.Model) == "" {
		return nil, fmt.Errorf("openai: model name is required")
	}

	baseURL := strings.TrimRight(profile.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	return &openAIModel{
		provider:   profile.Provider,
		model:      profile.Model,
		apiKey:     profile.APIKey,
		baseURL:    baseURL,
		settings:   profile.Settings,
		httpClient: &http.Client{Timeout: requestTimeout(profile.Settings)},
		logger:     f.logger,
	}, nil
}

type openAIModel struct {
	provider   string
	model      string
	apiKey     string
	baseURL    string
	settings   map[string]any
	httpClient *http.Client
	logger     logging.Logger
}

func (m *openAIModel) Provider() string { return m.provider }
func (m *openAIModel) Name() string     { return m.model }

type openAIChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (m *openAIModel) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	req = applyRequestSettings(req, m.settings)

	payload, err := json.Marshal(openAIChatRequest{
		Model:       m.model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		m.logger.Warn("chat request to %s failed with status %d", m.baseURL, resp.StatusCode)
		return nil, fmt.Errorf("chat request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("chat error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat response contained no choices")
	}

	return &CompletionResponse{
		Content: parsed.Choices[0].Message.Content,
		Usage:   parsed.Usage,
	}, nil
}
