package openai_test

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
	"tripstack/internal/extract/openai"
	"tripstack/internal/port"
)

func newTestClient(serverURL string) *openai.Client {
	cfg := &config.ExtractorProviderConfig{
		Provider:     "openai",
		APIKey:       "test-openai-key",
		DefaultModel: "gpt-4o",
		TimeoutSecs:  30,
	}
	return openai.NewClientWithEndpoint(cfg, serverURL)
}

func testInput() port.ExtractInput {
	tool, _ := extract.ToolSchemaFor(extract.KindTrip)
	return port.ExtractInput{
		System: "extract trip fields",
		Messages: []port.Message{
			{Role: "user", Parts: []port.MessagePart{{Type: "text", Text: "Flying to Lisbon on March 1st"}}},
		},
		Tool: tool,
	}
}

func toolCallResponse(toolName, argsJSON string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{
				"message": map[string]any{
					"tool_calls": []map[string]any{
						{
							"function": map[string]any{
								"name":      toolName,
								"arguments": argsJSON,
							},
						},
					},
				},
				"finish_reason": "tool_calls",
			},
		},
	}
}

func TestClient_Extract_ForcedToolCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-openai-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "gpt-4o", reqBody["model"])

		// The tool call must be forced, not optional
		choice := reqBody["tool_choice"].(map[string]any)
		assert.Equal(t, "function", choice["type"])
		fn := choice["function"].(map[string]any)
		assert.Equal(t, "record_trip_fields", fn["name"])

		// System instruction travels as the first message
		messages := reqBody["messages"].([]any)
		require.NotEmpty(t, messages)
		first := messages[0].(map[string]any)
		assert.Equal(t, "system", first["role"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(toolCallResponse("record_trip_fields", `{"destination":"Lisbon"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	out, err := c.Extract(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", out.ModelUsed)
	assert.JSONEq(t, `{"destination":"Lisbon"}`, string(out.Arguments))
}

func TestClient_Extract_ImagePartBecomesDataURI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		messages := reqBody["messages"].([]any)
		user := messages[1].(map[string]any)
		blocks := user["content"].([]any)
		require.Len(t, blocks, 1)
		img := blocks[0].(map[string]any)
		assert.Equal(t, "image_url", img["type"])
		url := img["image_url"].(map[string]any)["url"].(string)
		assert.Equal(t, "data:image/png;base64,aGVsbG8=", url)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(toolCallResponse("record_trip_fields", `{}`))
	}))
	defer server.Close()

	input := testInput()
	input.Messages = []port.Message{
		{Role: "user", Parts: []port.MessagePart{{Type: "image", ImageData: "aGVsbG8=", MediaType: "image/png"}}},
	}

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), input)
	require.NoError(t, err)
}

func TestClient_Extract_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), testInput())

	var rlErr *extract.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "openai", rlErr.Provider)
	assert.Equal(t, float64(30), rlErr.RetryAfter.Seconds())
}

func TestClient_Extract_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), testInput())

	var uerr *extract.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, http.StatusInternalServerError, uerr.Status)
}

func TestClient_Extract_NoToolCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{
					"message":       map[string]any{"content": "I cannot help with that."},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), testInput())

	var eerr *extract.ExtractionError
	require.ErrorAs(t, err, &eerr)
}

func TestClient_Extract_InvalidToolArguments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(toolCallResponse("record_trip_fields", `{not valid json`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Extract(context.Background(), testInput())

	var eerr *extract.ExtractionError
	require.ErrorAs(t, err, &eerr)
}
