package openai

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

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements port.Extractor using the OpenAI Chat Completions API
// with a single forced tool call.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates an OpenAI-based extractor from a provider config.
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
		model = "gpt-4o"
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
	messages := []map[string]any{
		{"role": "system", "content": input.System},
	}
	for _, m := range input.Messages {
		messages = append(messages, buildMessage(m))
	}

	reqBody := map[string]any{
		"model":                 c.model,
		"max_completion_tokens": 4096,
		"messages":              messages,
		"tools": []map[string]any{
			{
				"type": "function",
				"function": map[string]any{
					"name":        input.Tool.Name,
					"description": input.Tool.Description,
					"parameters":  input.Tool.Parameters,
				},
			},
		},
		"tool_choice": map[string]any{
			"type":     "function",
			"function": map[string]any{"name": input.Tool.Name},
		},
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
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &extract.UpstreamError{Provider: "openai", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &extract.UpstreamError{Provider: "openai", Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("%s", truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := extract.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, extract.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, &extract.UpstreamError{Provider: "openai", Status: resp.StatusCode, Err: baseErr}
	}

	return parseResponse(respBody, c.model, input.Tool.Name)
}

// buildMessage converts a provider-neutral message to chat-completions form.
// Assistant turns are flattened to plain text; user turns keep typed blocks.
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
			dataURI := fmt.Sprintf("data:%s;base64,%s", mediaType, p.ImageData)
			blocks = append(blocks, map[string]any{
				"type":      "image_url",
				"image_url": map[string]any{"url": dataURI},
			})
		}
	}
	return map[string]any{"role": m.Role, "content": blocks}
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Model string `json:"model"`
}

func parseResponse(body []byte, model, toolName string) (*port.ExtractOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &extract.ExtractionError{Msg: "unmarshaling response", Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &extract.ExtractionError{Msg: "empty response from API: no choices"}
	}

	for _, tc := range resp.Choices[0].Message.ToolCalls {
		if tc.Function.Name != toolName {
			continue
		}
		if !json.Valid([]byte(tc.Function.Arguments)) {
			return nil, &extract.ExtractionError{Msg: "tool call arguments are not valid JSON"}
		}
		return &port.ExtractOutput{
			Arguments: json.RawMessage(tc.Function.Arguments),
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
