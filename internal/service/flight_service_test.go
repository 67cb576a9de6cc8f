package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tripstack/internal/domain"
	"tripstack/internal/extract"
	"tripstack/internal/service"
	"tripstack/mocks"
)

func TestFlightService_Status_NormalizesFlightNumber(t *testing.T) {
	flightData := new(mocks.MockFlightData)
	svc := service.NewFlightService(flightData)

	status := &domain.FlightStatus{FlightNumber: "UA123", Status: "scheduled"}
	flightData.On("Lookup", mock.Anything, "UA123", "2026-03-01").Return(status, nil)

	got, err := svc.Status(context.Background(), " ua 123 ", "2026-03-01")

	require.NoError(t, err)
	assert.Equal(t, "UA123", got.FlightNumber)
	flightData.AssertExpectations(t)
}

func TestFlightService_Status_EmptyDateDefaultsToToday(t *testing.T) {
	flightData := new(mocks.MockFlightData)
	svc := service.NewFlightService(flightData)

	today := time.Now().UTC().Format("2006-01-02")
	flightData.On("Lookup", mock.Anything, "BA42", today).
		Return(&domain.FlightStatus{FlightNumber: "BA42"}, nil)

	_, err := svc.Status(context.Background(), "BA42", "")

	require.NoError(t, err)
	flightData.AssertExpectations(t)
}

func TestFlightService_Status_InvalidFlightNumber(t *testing.T) {
	flightData := new(mocks.MockFlightData)
	svc := service.NewFlightService(flightData)

	for _, bad := range []string{"", "A", "UA", "UA12345", "north face 900"} {
		_, err := svc.Status(context.Background(), bad, "2026-03-01")

		var verr *extract.ValidationError
		assert.ErrorAs(t, err, &verr, "input %q", bad)
	}
	flightData.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_Status_InvalidDate(t *testing.T) {
	flightData := new(mocks.MockFlightData)
	svc := service.NewFlightService(flightData)

	_, err := svc.Status(context.Background(), "UA123", "03/01/2026")

	var verr *extract.ValidationError
	require.ErrorAs(t, err, &verr)
	flightData.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_Status_NotFoundPassesThrough(t *testing.T) {
	flightData := new(mocks.MockFlightData)
	svc := service.NewFlightService(flightData)

	flightData.On("Lookup", mock.Anything, "ZZ999", "2026-03-01").Return(nil, domain.ErrNotFound)

	_, err := svc.Status(context.Background(), "ZZ999", "2026-03-01")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
