package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tripstack/internal/port"
)

// Request caps. Oversized requests are rejected before any upstream call.
const (
	MaxTextLength = 10000
	MaxImages     = 10
	MaxDocuments  = 10
)

// Image is one pasted image in an extraction request.
type Image struct {
	Data      string `json:"data"` // base64 payload
	MediaType string `json:"media_type,omitempty"`
}

// Request is one extraction-merge invocation: new input plus the running
// state and conversation history the caller threads through every call.
type Request struct {
	Kind      Kind
	Text      string
	Images    []Image
	Documents []Document
	History   []Turn
	State     State
}

// Result is the outcome of a successful extraction: the merged state, plus
// a human-readable note when part of the input could not be used.
type Result struct {
	Success bool   `json:"success"`
	Data    State  `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Model   string `json:"model,omitempty"`
}

// Engine turns unstructured input plus running state into an updated
// structured state with one model call per invocation. It holds no state
// between calls.
type Engine struct {
	extractor port.Extractor
}

// NewEngine creates an Engine backed by the given extractor.
func NewEngine(extractor port.Extractor) *Engine {
	return &Engine{extractor: extractor}
}

// Extract validates the request, assembles the conversation (including
// extracted document text), issues one model call, and merges the structured
// result into the current state. The merge is a pure overwrite-by-key.
func (e *Engine) Extract(ctx context.Context, req Request) (*Result, error) {
	text := strings.TrimSpace(req.Text)
	if len(text) > MaxTextLength {
		return nil, NewValidationError("text exceeds maximum length of %d characters", MaxTextLength)
	}
	if len(req.Images) > MaxImages {
		return nil, NewValidationError("at most %d images allowed", MaxImages)
	}
	if len(req.Documents) > MaxDocuments {
		return nil, NewValidationError("at most %d documents allowed", MaxDocuments)
	}
	if text == "" && len(req.Images) == 0 && len(req.Documents) == 0 && len(req.History) == 0 {
		return nil, NewValidationError("no input provided")
	}

	turns := make([]Turn, len(req.History))
	copy(turns, req.History)

	if text != "" || len(req.Images) > 0 {
		turns = append(turns, buildCurrentTurn(text, req.Images))
	}

	// Per-document failures become inline placeholder notes; they never
	// fail the request.
	docText, unreadable := extractDocumentsText(req.Documents)
	if docText != "" {
		turns = appendToLatestUserTurn(turns, docText)
	}

	system, err := BuildSystemPrompt(req.Kind, req.State)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	tool, err := ToolSchemaFor(req.Kind)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}

	messages := toMessages(turns)
	if len(messages) == 0 {
		return nil, NewValidationError("no input provided")
	}

	out, err := e.extractor.Extract(ctx, port.ExtractInput{
		System:   system,
		Messages: messages,
		Tool:     tool,
	})
	if err != nil {
		return nil, err
	}

	var update State
	if err := json.Unmarshal(out.Arguments, &update); err != nil {
		return nil, &ExtractionError{Msg: "malformed structured result", Err: err}
	}

	res := &Result{
		Success: true,
		Data:    Merge(req.State, update),
		Model:   out.ModelUsed,
	}
	if unreadable > 0 {
		res.Message = fmt.Sprintf("%d of %d documents could not be read", unreadable, len(req.Documents))
	}
	return res, nil
}

func buildCurrentTurn(text string, images []Image) Turn {
	if len(images) == 0 {
		return Turn{Role: RoleUser, Content: TextContent(text)}
	}
	var parts []Part
	if text != "" {
		parts = append(parts, Part{Type: "text", Text: text})
	}
	for _, img := range images {
		parts = append(parts, Part{Type: "image", Data: img.Data, MediaType: img.MediaType})
	}
	return Turn{Role: RoleUser, Content: PartsContent(parts)}
}

// appendToLatestUserTurn attaches document text to the most recent user
// turn, or opens a new user turn when the conversation is empty or ends
// with an assistant turn.
func appendToLatestUserTurn(turns []Turn, docText string) []Turn {
	if len(turns) > 0 && turns[len(turns)-1].Role == RoleUser {
		turns[len(turns)-1].Content.AppendText(docText)
		return turns
	}
	return append(turns, Turn{Role: RoleUser, Content: TextContent(docText)})
}
