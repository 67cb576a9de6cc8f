package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripstack/internal/domain"
)

// MockScanService is a mock implementation of service.ScanService.
type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) ScanReceipt(ctx context.Context, receipt *domain.ReceiptFile, maxRetries int) {
	m.Called(ctx, receipt, maxRetries)
}
