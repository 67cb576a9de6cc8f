package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripstack/internal/domain"
)

// MockFlightData is a mock implementation of port.FlightData.
type MockFlightData struct {
	mock.Mock
}

func (m *MockFlightData) Lookup(ctx context.Context, flightNumber, flightDate string) (*domain.FlightStatus, error) {
	args := m.Called(ctx, flightNumber, flightDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightStatus), args.Error(1)
}
