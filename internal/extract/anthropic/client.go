package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tripstack/internal/config"
	"tripstack/internal/extract"
	"tripstack/internal/port"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Client implements port.Extractor using the Anthropic Messages API with a
// single forced tool.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates an Anthropic-based extractor from a provider config.
func NewClient(cfg *config.ExtractorProviderConfig) *Client {
	return newClient(cfg, apiURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ExtractorProviderConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ExtractorProviderConfig, endpoint string) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	var messages []map[string]any
	for _, m := range input.Messages {
		messages = append(messages, buildMessage(m))
	}

	reqBody := map[string]any{
		"model":      c.model,
		"max_tokens": 4096,
		"system":     input.System,
		"messages":   messages,
		"tools": []map[string]any{
			{
				"name":         input.Tool.Name,
				"description":  input.Tool.Description,
				"input_schema": input.Tool.Parameters,
			},
		},
		"tool_choice": map[string]any{"type": "tool", "name": input.Tool.Name},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &extract.UpstreamError{Provider: "anthropic", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &extract.UpstreamError{Provider: "anthropic", Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("%s", truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := extract.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, extract.NewRateLimitError("anthropic", baseErr, retryAfter)
		}
		return nil, &extract.UpstreamError{Provider: "anthropic", Status: resp.StatusCode, Err: baseErr}
	}

	return parseResponse(respBody, c.model, input.Tool.Name)
}

func buildMessage(m port.Message) map[string]any {
	if m.Role == "assistant" {
		var texts []string
		for _, p := range m.Parts {
			if p.Type == "text" {
				texts = append(texts, p.Text)
			}
		}
		return map[string]any{"role": "assistant", "content": strings.Join(texts, "\n")}
	}

	var blocks []map[string]any
	for _, p := range m.Parts {
		switch p.Type {
		case "text":
			blocks = append(blocks, map[string]any{"type": "text", "text": p.Text})
		case "image":
			mediaType := p.MediaType
			if mediaType == "" {
				mediaType = "image/jpeg"
			}
			blocks = append(blocks, map[string]any{
				"type": "image",
				"source": map[string]any{
					"type":       "base64",
					"media_type": mediaType,
					"data":       p.ImageData,
				},
			})
		}
	}
	return map[string]any{"role": m.Role, "content": blocks}
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type  string          `json:"type"`
		Name  string          `json:"name"`
		Input json.RawMessage `json:"input"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte, model, toolName string) (*port.ExtractOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &extract.ExtractionError{Msg: "unmarshaling response", Err: err}
	}

	for _, block := range resp.Content {
		if block.Type != "tool_use" || block.Name != toolName {
			continue
		}
		return &port.ExtractOutput{
			Arguments: block.Input,
			ModelUsed: model,
		}, nil
	}

	return nil, &extract.ExtractionError{Msg: "no structured result"}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
