package extract_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripstack/internal/extract"
)

func TestTurnContent_UnmarshalString(t *testing.T) {
	var turn extract.Turn
	err := json.Unmarshal([]byte(`{"role":"user","content":"hello"}`), &turn)

	require.NoError(t, err)
	assert.Equal(t, "user", turn.Role)
	assert.False(t, turn.Content.IsParts())
	assert.Equal(t, "hello", turn.Content.Text)
}

func TestTurnContent_UnmarshalParts(t *testing.T) {
	raw := `{"role":"user","content":[{"type":"text","text":"look at this"},{"type":"image","data":"aGk=","media_type":"image/png"}]}`

	var turn extract.Turn
	err := json.Unmarshal([]byte(raw), &turn)

	require.NoError(t, err)
	assert.True(t, turn.Content.IsParts())
	require.Len(t, turn.Content.Parts, 2)
	assert.Equal(t, "text", turn.Content.Parts[0].Type)
	assert.Equal(t, "image", turn.Content.Parts[1].Type)
	assert.Equal(t, "image/png", turn.Content.Parts[1].MediaType)
}

func TestTurnContent_UnmarshalRejectsObjects(t *testing.T) {
	var turn extract.Turn
	err := json.Unmarshal([]byte(`{"role":"user","content":{"bad":"shape"}}`), &turn)

	assert.Error(t, err)
}

func TestTurnContent_MarshalRoundTrip(t *testing.T) {
	turn := extract.Turn{
		Role:    extract.RoleAssistant,
		Content: extract.TextContent("Which airline?"),
	}

	data, err := json.Marshal(turn)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"assistant","content":"Which airline?"}`, string(data))
}

func TestTurnContent_AppendTextPromotesString(t *testing.T) {
	c := extract.TextContent("original")
	c.AppendText("appended")

	require.True(t, c.IsParts())
	require.Len(t, c.Parts, 2)
	assert.Equal(t, "original", c.Parts[0].Text)
	assert.Equal(t, "appended", c.Parts[1].Text)
}

func TestTurnContent_AppendTextToEmptyString(t *testing.T) {
	c := extract.TextContent("")
	c.AppendText("only")

	require.True(t, c.IsParts())
	require.Len(t, c.Parts, 1)
	assert.Equal(t, "only", c.Parts[0].Text)
}

func TestTurnContent_AppendTextCopiesSharedParts(t *testing.T) {
	backing := make([]extract.Part, 1, 4)
	backing[0] = extract.Part{Type: "text", Text: "hello"}

	c := extract.PartsContent(backing[:1])
	c.AppendText("appended")

	require.Len(t, c.Parts, 2)
	assert.Equal(t, "appended", c.Parts[1].Text)
	// The shared backing array must stay untouched past its length.
	assert.Empty(t, backing[:2][1].Text)
}
