// Package ollama is a minimal client for an Ollama-compatible completion API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client dispatches prompts to the forecasting service.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
}

// NewClient creates a new client for the given base URL and model.
func NewClient(baseURL, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		// Local models can be slow to answer; the state machine has no
		// mid-flight cancellation, so the timeout is generous.
		http: &http.Client{Timeout: 5 * time.Minute},
	}
}

type completionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// completionResponse accepts both known answer shapes: the generate API's
// top-level response field and the chat API's message content.
type completionResponse struct {
	Response string `json:"response"`
	Message  struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Complete sends the prompt and extracts the textual answer. A body matching
// neither known shape is returned verbatim as opaque text; the system only
// records and relays whatever the model said.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("forecasting service returned http %d", resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return string(body), nil
	}
	if parsed.Response != "" {
		return parsed.Response, nil
	}
	if parsed.Message.Content != "" {
		return parsed.Message.Content, nil
	}
	return string(body), nil
}
