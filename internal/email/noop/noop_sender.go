package noop

import (
	"context"

	"go.uber.org/zap"

	"tripstack/internal/port"
)

type noopSender struct {
	log *zap.SugaredLogger
}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
// Used in development and tests.
func NewNoopSender(log *zap.SugaredLogger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendTripReport(_ context.Context, toEmail, toName, tripName string, reportPDF []byte) error {
	s.log.Infow("noop email: trip report",
		"to", toEmail,
		"name", toName,
		"trip", tripName,
		"pdf_bytes", len(reportPDF),
	)
	return nil
}
