package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tripstack/internal/domain"
)

// MockReceiptFileRepo is a mock implementation of port.ReceiptFileRepository.
type MockReceiptFileRepo struct {
	mock.Mock
}

func (m *MockReceiptFileRepo) Create(ctx context.Context, f *domain.ReceiptFile) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockReceiptFileRepo) GetByID(ctx context.Context, userID, fileID uuid.UUID) (*domain.ReceiptFile, error) {
	args := m.Called(ctx, userID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceiptFile), args.Error(1)
}

func (m *MockReceiptFileRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ReceiptFile, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReceiptFile), args.Int(1), args.Error(2)
}

func (m *MockReceiptFileRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ReceiptFile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptFile), args.Error(1)
}

func (m *MockReceiptFileRepo) MarkCompleted(ctx context.Context, fileID uuid.UUID, suggested []byte, model string) error {
	args := m.Called(ctx, fileID, suggested, model)
	return args.Error(0)
}

func (m *MockReceiptFileRepo) MarkFailed(ctx context.Context, fileID uuid.UUID, scanErr string, requeue bool) error {
	args := m.Called(ctx, fileID, scanErr, requeue)
	return args.Error(0)
}

func (m *MockReceiptFileRepo) Delete(ctx context.Context, userID, fileID uuid.UUID) error {
	args := m.Called(ctx, userID, fileID)
	return args.Error(0)
}
