package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripstack/internal/config"
	"tripstack/internal/extract"
	"tripstack/internal/extract/anthropic"
	"tripstack/internal/port"
)

func newTestClient(serverURL string) *anthropic.Client {
	cfg := &config.ExtractorProviderConfig{
		Provider:     "anthropic",
		APIKey:       "test-anthropic-key",
		DefaultModel: "claude-sonnet-4-20250514",
		TimeoutSecs:  30,
	}
	return anthropic.NewClientWithEndpoint(cfg, serverURL)
}

func testInput() port.ExtractInput {
	tool, _ := extract.ToolSchemaFor(extract.KindExpense)
	return port.ExtractInput{
		System: "extract expense fields",
		Messages: []port.Message{
			{Role: "user", Parts: []port.MessagePart{{Type: "text", Text: "Dinner was 42.50 EUR at Bistro Nove"}}},
		},
		Tool: tool,
	}
}

func toolUseResponse(toolName string, input map[string]any) map[string]any {
	return map[string]any{
		"content": []map[string]any{
			{"type": "tool_use", "name": toolName, "input": input},
		},
		"stop_reason": "tool_use",
	}
}

func TestClient_Extract_ForcedToolUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-anthropic-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var reqBody map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-sonnet-4-20250514", reqBody["model"])
		assert.Equal(t, "extract expense fields", reqBody["system"])

		choice := reqBody["tool_choice"].(map[string]any)
		assert.Equal(t, "tool", choice["type"])
		assert.Equal(t, "record_expense_fields", choice["name"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(toolUseResponse("record_expense_fields", map[string]any{
			"merchant": "Bistro Nove",
			"amount":   42.5,
			"currency": "EUR",
		}))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	out, err := c.Extract(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", out.ModelUsed)

	var args map[string]any
	require.NoError(t, json.Unmarshal(out.Arguments, &args))
	assert.Equal(t, "Bistro Nove", args["merchant"])
	assert.Equal(t, 42.5, args["amount"])
}

func TestClient_Extract_ImagePartBecomesBase64Source(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		messages := reqBody["messages"].([]any)
		user := messages[0].(map[string]any)
		blocks := user["content"].([]any)
		require.Len(t, blocks, 1)
		img := blocks[0].(map[string]any)
		assert.Equal(t, "image", img["type"])
		source := img["source"].(map[string]any)
		assert.Equal(t, "base64", source["type"])
		assert.Equal(t, "image/jpeg", source["media_type"])
		assert.Equal(t, "aGVsbG8=", source["data"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(toolUseResponse("record_expense_fields", map[string]any{}))
	}))
	defer server.Close()

	input := testInput()
	input.Messages = []port.Message{
		{Role: "user", Parts: []port.MessagePart{{Type: "image", ImageData: "aGVsbG8="}}},
	}

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), input)
	require.NoError(t, err)
}

func TestClient_Extract_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), testInput())

	var rlErr *extract.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "anthropic", rlErr.Provider)
	// Missing Retry-After falls back to the 60s default
	assert.Equal(t, float64(60), rlErr.RetryAfter.Seconds())
}

func TestClient_Extract_NoToolUseBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]any{{"type": "text", "text": "Sure, here is what I found."}},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), testInput())

	var eerr *extract.ExtractionError
	require.ErrorAs(t, err, &eerr)
}

func TestClient_Extract_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), testInput())

	var uerr *extract.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, http.StatusBadGateway, uerr.Status)
}
