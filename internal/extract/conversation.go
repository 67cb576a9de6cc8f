package extract

import (
	"encoding/json"
	"fmt"

	"tripstack/internal/port"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Part is one typed block of a turn's content.
type Part struct {
	Type      string `json:"type"` // "text" or "image"
	Text      string `json:"text,omitempty"`
	Data      string `json:"data,omitempty"`       // base64 payload for image parts
	MediaType string `json:"media_type,omitempty"` // MIME type for image parts
}

// TurnContent is either a plain string or an ordered list of typed parts.
// It marshals back to whichever form it holds.
type TurnContent struct {
	Text    string
	Parts   []Part
	isParts bool
}

// TextContent wraps a plain string as turn content.
func TextContent(text string) TurnContent {
	return TurnContent{Text: text}
}

// PartsContent wraps a part list as turn content.
func PartsContent(parts []Part) TurnContent {
	return TurnContent{Parts: parts, isParts: true}
}

// IsParts reports whether the content is a typed part list.
func (c *TurnContent) IsParts() bool {
	return c.isParts
}

// AppendText appends text to the content. String content is promoted to a
// part list holding the original string as its first text part. Existing
// part lists are copied first, so an append never writes into a backing
// array shared with the caller's history.
func (c *TurnContent) AppendText(text string) {
	if !c.isParts {
		original := c.Text
		c.Parts = nil
		c.isParts = true
		c.Text = ""
		if original != "" {
			c.Parts = append(c.Parts, Part{Type: "text", Text: original})
		}
	} else {
		parts := make([]Part, len(c.Parts), len(c.Parts)+1)
		copy(parts, c.Parts)
		c.Parts = parts
	}
	c.Parts = append(c.Parts, Part{Type: "text", Text: text})
}

func (c TurnContent) MarshalJSON() ([]byte, error) {
	if c.isParts {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

func (c *TurnContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = TurnContent{Text: s}
		return nil
	}
	var parts []Part
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("turn content must be a string or a list of typed parts: %w", err)
	}
	*c = TurnContent{Parts: parts, isParts: true}
	return nil
}

// Turn is one immutable entry of the conversation history.
type Turn struct {
	Role    string      `json:"role"`
	Content TurnContent `json:"content"`
}

// toMessages converts turns into the provider-neutral message form. Turns
// with unknown roles or empty content are skipped.
func toMessages(turns []Turn) []port.Message {
	msgs := make([]port.Message, 0, len(turns))
	for _, t := range turns {
		if t.Role != RoleUser && t.Role != RoleAssistant {
			continue
		}
		var parts []port.MessagePart
		if t.Content.IsParts() {
			for _, p := range t.Content.Parts {
				switch p.Type {
				case "text":
					if p.Text != "" {
						parts = append(parts, port.MessagePart{Type: "text", Text: p.Text})
					}
				case "image":
					if p.Data != "" {
						parts = append(parts, port.MessagePart{Type: "image", ImageData: p.Data, MediaType: p.MediaType})
					}
				}
			}
		} else if t.Content.Text != "" {
			parts = append(parts, port.MessagePart{Type: "text", Text: t.Content.Text})
		}
		if len(parts) == 0 {
			continue
		}
		msgs = append(msgs, port.Message{Role: t.Role, Parts: parts})
	}
	return msgs
}
