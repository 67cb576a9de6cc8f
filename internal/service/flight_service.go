package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"tripstack/internal/domain"
	"tripstack/internal/extract"
	"tripstack/internal/port"
)

// flightNumberRe matches an IATA flight designator: a 2-char airline code
// followed by 1-4 digits.
var flightNumberRe = regexp.MustCompile(`^[A-Z0-9]{2}\d{1,4}$`)

// FlightService defines the flight-status lookup contract.
type FlightService interface {
	Status(ctx context.Context, flightNumber, flightDate string) (*domain.FlightStatus, error)
}

type flightService struct {
	flightData port.FlightData
}

// NewFlightService creates a new FlightService implementation.
func NewFlightService(flightData port.FlightData) FlightService {
	return &flightService{flightData: flightData}
}

// Status validates and normalizes the query, then looks the flight up. An
// empty date defaults to today.
func (s *flightService) Status(ctx context.Context, flightNumber, flightDate string) (*domain.FlightStatus, error) {
	flightNumber = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(flightNumber), " ", ""))
	if !flightNumberRe.MatchString(flightNumber) {
		return nil, extract.NewValidationError("invalid flight number %q", flightNumber)
	}

	flightDate = strings.TrimSpace(flightDate)
	if flightDate == "" {
		flightDate = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", flightDate); err != nil {
		return nil, extract.NewValidationError("invalid flight date %q, expected YYYY-MM-DD", flightDate)
	}

	return s.flightData.Lookup(ctx, flightNumber, flightDate)
}
