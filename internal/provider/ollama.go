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

const defaultOllamaBaseURL = "http://localhost:11434/api"

// ollamaFactory builds models against a local Ollama server. No API key.
type ollamaFactory struct {
	logger logging.Logger
}

// NewOllamaFactory returns the Ollama provider capability.
func NewOllamaFactory() Factory {
	return &ollamaFactory{logger: logging.NewComponentLogger("ollama")}
}

func (f *ollamaFactory) CreateModel(profile config.ProfileConfig) (Model, error) {
	if strings.TrimSpace(profile.Model) == "" {
		return nil, fmt.Errorf("ollama: model name is required")
	}

	baseURL := strings.TrimRight(profile.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	if !strings.HasSuffix(baseURL, "/api") {
		baseURL += "/api"
	}

	return &ollamaModel{
		provider:   profile.Provider,
		model:      profile.Model,
		baseURL:    baseURL,
		settings:   profile.Settings,
		httpClient: &http.Client{Timeout: requestTimeout(profile.Settings)},
		logger:     f.logger,
	}, nil
}

type ollamaModel struct {
	provider   string
	model      string
	baseURL    string
	settings   map[string]any
	httpClient *http.Client
	logger     logging.Logger
}

func (m *ollamaModel) Provider() string { return m.provider }
func (m *ollamaModel) Name() string     { return m.model }

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message         Message `json:"message"`
	Done            bool    `json:"done"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
	Error           string  `json:"error"`
}

func (m *ollamaModel) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	req = applyRequestSettings(req, m.settings)

	options := map[string]any{}
	if req.Temperature != 0 {
		options["temperature"] = req.Temperature
	}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}

	payload, err := json.Marshal(ollamaChatRequest{
		Model:    m.model,
		Messages: req.Messages,
		Stream:   false,
		Options:  options,
	})
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

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
		return nil, fmt.Errorf("ollama request failed: %s", strings.TrimSpace(string(body)))
	}

	var parsed ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode ollama response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("ollama error: %s", parsed.Error)
	}

	return &CompletionResponse{
		Content: parsed.Message.Content,
		Usage: Usage{
			PromptTokens:     parsed.PromptEvalCount,
			CompletionTokens: parsed.EvalCount,
			TotalTokens:      parsed.PromptEvalCount + parsed.EvalCount,
		},
	}, nil
}
