package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"benchfuse/internal/config"
	"benchfuse/internal/logging"
	"benchfuse/ports"
)

// client.go
//
// Chat-completions client for OpenAI-compatible endpoints. This is the only
// place the module talks to a model provider; everything else sees the
// ports.LLMClient contract.

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements ports.LLMClient against the OpenAI chat completions API.
type Client struct {
	apiKey      string
	baseURL     string
	temperature float64
	httpClient  *http.Client
	log         *logging.Logger
}

// NewClient builds a client from the AI configuration section.
func NewClient(cfg config.AIConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:      cfg.OpenAIKey,
		baseURL:     baseURL,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: timeout},
		log:         logging.NewDefaultLogger("OpenAIClient"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model               string          `json:"model"`
	Messages            []chatMessage   `json:"messages"`
	Temperature         float64         `json:"temperature,omitempty"`
	MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
	ResponseFormat      *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Model string `json:"model"`
}

// ChatCompletion implements ports.LLMClient.
func (c *Client) ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error) {
	resp, err := c.ChatCompletionWithUsage(ctx, model, prompt, maxTokens)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// ChatCompletionWithUsage implements ports.LLMClient.
func (c *Client) ChatCompletionWithUsage(ctx context.Context, model string, prompt string, maxTokens int) (*ports.LLMResponse, error) {
	reqBody := chatRequest{
		Model:               model,
		Messages:            []chatMessage{{Role: "user", Content: prompt}},
		Temperature:         c.temperature,
		MaxCompletionTokens: maxTokens,
		ResponseFormat:      &responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("chat completion request: model=%s promptLen=%d", model, len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("provider returned no choices")
	}

	return &ports.LLMResponse{
		Content: parsed.Choices[0].Message.Content,
		Usage: &ports.UsageData{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
			Model:            parsed.Model,
			Provider:         "openai",
		},
	}, nil
}
