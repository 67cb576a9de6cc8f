package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tripstack/internal/service"
)

// MockCalendarService is a mock implementation of service.CalendarService.
type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) Sync(ctx context.Context, userID uuid.UUID, input service.CalendarSyncInput) (*service.CalendarSyncResult, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CalendarSyncResult), args.Error(1)
}
