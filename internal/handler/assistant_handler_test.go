package handler_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tripstack/internal/extract"
	"tripstack/internal/handler"
	"tripstack/internal/logger"
	"tripstack/internal/port"
	"tripstack/internal/service"
	"tripstack/mocks"
)

func newAssistantHandler(ext *mocks.MockExtractor) *handler.AssistantHandler {
	svc := service.NewAssistantService(extract.NewEngine(ext), logger.NewNop())
	return handler.NewAssistantHandler(svc)
}

func TestAssistantHandler_Trip_BindsClientPayload(t *testing.T) {
	ext := new(mocks.MockExtractor)
	ext.On("Extract", mock.Anything, mock.MatchedBy(func(input port.ExtractInput) bool {
		raw, _ := json.Marshal(input.Messages)
		return strings.Contains(input.System, `"trip_name":"Spring offsite"`) &&
			strings.Contains(string(raw), "planning a trip") &&
			strings.Contains(string(raw), "Trip to Lisbon in March")
	})).Return(&port.ExtractOutput{
		Arguments: json.RawMessage(`{"destination":"Lisbon"}`),
		ModelUsed: "gpt-4o",
	}, nil).Once()

	h := newAssistantHandler(ext)
	w := postJSON(t, h.AssistTrip, `{
		"message": "Trip to Lisbon in March",
		"conversationHistory": [{"role":"user","content":"planning a trip"}],
		"currentData": {"trip_name":"Spring offsite"}
	}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var result extract.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Spring offsite", result.Data["trip_name"])
	assert.Equal(t, "Lisbon", result.Data["destination"])
	ext.AssertExpectations(t)
}

func TestAssistantHandler_Trip_UnreadableDocumentNote(t *testing.T) {
	ext := new(mocks.MockExtractor)
	ext.On("Extract", mock.Anything, mock.Anything).Return(&port.ExtractOutput{
		Arguments: json.RawMessage(`{}`),
		ModelUsed: "gpt-4o",
	}, nil).Once()

	broken := base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00})
	h := newAssistantHandler(ext)
	w := postJSON(t, h.AssistTrip, fmt.Sprintf(`{
		"message": "here is my booking",
		"documents": [{"filename":"booking.pdf","data":%q}]
	}`, broken))

	assert.Equal(t, http.StatusOK, w.Code)

	var result extract.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "1 of 1 documents could not be read", result.Message)
}

func TestAssistantHandler_Expense_BindsTextKey(t *testing.T) {
	ext := new(mocks.MockExtractor)
	ext.On("Extract", mock.Anything, mock.MatchedBy(func(input port.ExtractInput) bool {
		raw, _ := json.Marshal(input.Messages)
		return strings.Contains(string(raw), "Coffee at Cafe Delta 4.50")
	})).Return(&port.ExtractOutput{
		Arguments: json.RawMessage(`{"merchant":"Cafe Delta","amount":"4.50"}`),
		ModelUsed: "gpt-4o",
	}, nil).Once()

	h := newAssistantHandler(ext)
	w := postJSON(t, h.AssistExpense, `{"text":"Coffee at Cafe Delta 4.50"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var result extract.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Cafe Delta", result.Data["merchant"])
	ext.AssertExpectations(t)
}

func TestAssistantHandler_Trip_NoInput(t *testing.T) {
	ext := new(mocks.MockExtractor)

	h := newAssistantHandler(ext)
	w := postJSON(t, h.AssistTrip, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	ext.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}
