package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripstack/internal/port"
)

// MockCalendarProvider is a mock implementation of port.CalendarProvider.
type MockCalendarProvider struct {
	mock.Mock
}

func (m *MockCalendarProvider) RefreshAccessToken(ctx context.Context, refreshToken string) (*port.OAuthToken, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.OAuthToken), args.Error(1)
}

func (m *MockCalendarProvider) InsertEvent(ctx context.Context, accessToken string, ev port.CalendarEvent) (string, error) {
	args := m.Called(ctx, accessToken, ev)
	return args.String(0), args.Error(1)
}

func (m *MockCalendarProvider) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	args := m.Called(ctx, accessToken, eventID)
	return args.Error(0)
}
