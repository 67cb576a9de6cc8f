package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tripstack/internal/domain"
)

// MockTripRepo is a mock implementation of port.TripRepository.
type MockTripRepo struct {
	mock.Mock
}

func (m *MockTripRepo) Create(ctx context.Context, t *domain.Trip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTripRepo) GetByID(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error) {
	args := m.Called(ctx, userID, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Trip, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Trip), args.Int(1), args.Error(2)
}

func (m *MockTripRepo) Update(ctx context.Context, t *domain.Trip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTripRepo) SetCalendarEventID(ctx context.Context, userID, tripID uuid.UUID, eventID string) error {
	args := m.Called(ctx, userID, tripID, eventID)
	return args.Error(0)
}

func (m *MockTripRepo) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	args := m.Called(ctx, userID, tripID)
	return args.Error(0)
}
