package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tripstack/internal/domain"
	"tripstack/internal/port"
)

// TripInput is the DTO for trip create and update requests.
type TripInput struct {
	Name          string     `json:"name" binding:"required"`
	Destination   string     `json:"destination"`
	BeginningDate *time.Time `json:"beginning_date"`
	EndingDate    *time.Time `json:"ending_date"`
	Purpose       string     `json:"purpose"`
	Notes         string     `json:"notes"`
}

// TripService defines the trip management contract.
type TripService interface {
	Create(ctx context.Context, userID uuid.UUID, input TripInput) (*domain.Trip, error)
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Trip, int, error)
	Update(ctx context.Context, userID, tripID uuid.UUID, input TripInput) (*domain.Trip, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

type tripService struct {
	tripRepo port.TripRepository
}

// NewTripService creates a new TripService implementation.
func NewTripService(tripRepo port.TripRepository) TripService {
	return &tripService{tripRepo: tripRepo}
}

func (s *tripService) Create(ctx context.Context, userID uuid.UUID, input TripInput) (*domain.Trip, error) {
	trip := &domain.Trip{
		UserID:        userID,
		Name:          input.Name,
		Destination:   input.Destination,
		BeginningDate: input.BeginningDate,
		EndingDate:    input.EndingDate,
		Purpose:       input.Purpose,
		Notes:         input.Notes,
	}
	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) GetByID(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error) {
	return s.tripRepo.GetByID(ctx, userID, tripID)
}

func (s *tripService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Trip, int, error) {
	return s.tripRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *tripService) Update(ctx context.Context, userID, tripID uuid.UUID, input TripInput) (*domain.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	trip.Name = input.Name
	trip.Destination = input.Destination
	trip.BeginningDate = input.BeginningDate
	trip.EndingDate = input.EndingDate
	trip.Purpose = input.Purpose
	trip.Notes = input.Notes

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return s.tripRepo.Delete(ctx, userID, tripID)
}
