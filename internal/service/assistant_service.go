package service

import (
	"context"
	"encoding/base64"

	"go.uber.org/zap"

	"tripstack/internal/extract"
)

// AssistDocument is one uploaded document in an assistant request, with its
// content base64-encoded.
type AssistDocument struct {
	Filename string `json:"filename"`
	Data     string `json:"data" binding:"required"`
}

// TripAssistInput is the DTO for trip assistant requests. The history and
// accumulated data are round-tripped by the client between calls; the server
// keeps no conversation state.
type TripAssistInput struct {
	Message   string           `json:"message"`
	Images    []extract.Image  `json:"images"`
	Documents []AssistDocument `json:"documents"`
	History   []extract.Turn   `json:"conversationHistory"`
	State     extract.State    `json:"currentData"`
}

// ExpenseAssistInput is the DTO for expense assistant requests.
type ExpenseAssistInput struct {
	Text   string          `json:"text"`
	Images []extract.Image `json:"images"`
}

// AssistantService runs extraction-merge requests for trips and expenses.
type AssistantService interface {
	AssistTrip(ctx context.Context, input TripAssistInput) (*extract.Result, error)
	AssistExpense(ctx context.Context, input ExpenseAssistInput) (*extract.Result, error)
}

type assistantService struct {
	engine *extract.Engine
	log    *zap.SugaredLogger
}

// NewAssistantService creates a new AssistantService implementation.
func NewAssistantService(engine *extract.Engine, log *zap.SugaredLogger) AssistantService {
	return &assistantService{
		engine: engine,
		log:    log,
	}
}

func (s *assistantService) AssistTrip(ctx context.Context, input TripAssistInput) (*extract.Result, error) {
	docs := make([]extract.Document, 0, len(input.Documents))
	for _, d := range input.Documents {
		// A document that fails to decode still reaches the engine; the
		// engine records it as unreadable instead of failing the request.
		data, err := base64.StdEncoding.DecodeString(d.Data)
		if err != nil {
			data = nil
		}
		docs = append(docs, extract.Document{Filename: d.Filename, Data: data})
	}

	return s.assist(ctx, extract.Request{
		Kind:      extract.KindTrip,
		Text:      input.Message,
		Images:    input.Images,
		Documents: docs,
		History:   input.History,
		State:     input.State,
	})
}

func (s *assistantService) AssistExpense(ctx context.Context, input ExpenseAssistInput) (*extract.Result, error) {
	return s.assist(ctx, extract.Request{
		Kind:   extract.KindExpense,
		Text:   input.Text,
		Images: input.Images,
	})
}

func (s *assistantService) assist(ctx context.Context, req extract.Request) (*extract.Result, error) {
	result, err := s.engine.Extract(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Infow("assistant extraction completed",
		"kind", req.Kind,
		"model", result.Model,
		"fields", len(result.Data),
	)
	return result, nil
}
