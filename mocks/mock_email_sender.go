package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendTripReport(ctx context.Context, toEmail, toName, tripName string, reportPDF []byte) error {
	args := m.Called(ctx, toEmail, toName, tripName, reportPDF)
	return args.Error(0)
}
