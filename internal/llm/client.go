// Package llm implements the extraction client: a completion-endpoint
// HTTP transport, response cleaning, line-item parsing, and the retry
// machinery that wraps them.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"finstmt/internal/config"
)

// Client speaks the Ollama-style completion protocol: one POST per
// prompt, non-streaming, free-form text back in the "response" field.
type Client struct {
	endpoint    string
	model       string
	temperature float64
	client      *http.Client
}

// NewClient creates a Client from LLM configuration.
func NewClient(cfg config.LLMConfig) *Client {
	return newClient(cfg, cfg.URL)
}

// NewClientWithEndpoint creates a Client pointing at a custom endpoint
// (for testing).
func NewClientWithEndpoint(cfg config.LLMConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg config.LLMConfig, endpoint string) *Client {
	return &Client{
		endpoint:    endpoint,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: cfg.Timeout()},
	}
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate performs a single completion call. Every failure mode here
// (connection error, timeout, non-2xx, undecodable body) is transient
// from the caller's point of view and subject to retry upstream.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	bodyBytes, err := json.Marshal(generateRequest{
		Model:       c.model,
		Prompt:      prompt,
		Stream:      false,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling llm endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("llm endpoint status %d: %s", resp.StatusCode, truncate(string(respBody), 300))
	}

	var decoded generateResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("decoding endpoint response: %w", err)
	}
	return decoded.Response, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
