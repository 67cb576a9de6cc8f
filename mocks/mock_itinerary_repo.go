package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tripstack/internal/domain"
)

// MockItineraryRepo is a mock implementation of port.ItineraryRepository.
type MockItineraryRepo struct {
	mock.Mock
}

func (m *MockItineraryRepo) Create(ctx context.Context, item *domain.ItineraryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItineraryRepo) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.ItineraryItem, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItineraryItem), args.Error(1)
}

func (m *MockItineraryRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	args := m.Called(ctx, userID, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItineraryItem), args.Error(1)
}

func (m *MockItineraryRepo) Update(ctx context.Context, item *domain.ItineraryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItineraryRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}
