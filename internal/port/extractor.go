package port

import (
	"context"
	"encoding/json"
)

// MessagePart is one typed block of a message sent to the model.
type MessagePart struct {
	Type      string // "text" or "image"
	Text      string
	ImageData string // base64-encoded payload for image parts
	MediaType string // MIME type for image parts, e.g. "image/jpeg"
}

// Message is a single conversation turn in provider-neutral form.
type Message struct {
	Role  string // "user" or "assistant"
	Parts []MessagePart
}

// ToolSchema declares the single structured-output tool the model must call.
type ToolSchema struct {
	Name        string
	Description string
	Parameters  json.RawMessage // JSON Schema of the tool arguments
}

// ExtractInput carries a fully assembled model request: system instruction,
// conversation, and the forced tool.
type ExtractInput struct {
	System   string
	Messages []Message
	Tool     ToolSchema
}

// ExtractOutput holds the arguments of the structured tool call returned by
// the model.
type ExtractOutput struct {
	Arguments json.RawMessage
	ModelUsed string
}

// Extractor abstracts a structured-output model provider. Implementations
// must force the declared tool; a response without a tool call is an error.
type Extractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
