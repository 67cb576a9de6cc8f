package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tripstack/internal/domain"
	"tripstack/internal/port"
)

// ItineraryItemInput is the DTO for itinerary item create and update requests.
type ItineraryItemInput struct {
	Type             domain.ItineraryItemType `json:"type" binding:"required"`
	Title            string                   `json:"title" binding:"required"`
	Airline          string                   `json:"airline"`
	FlightNumber     string                   `json:"flight_number"`
	ConfirmationCode string                   `json:"confirmation_code"`
	Location         string                   `json:"location"`
	StartTime        *time.Time               `json:"start_time"`
	EndTime          *time.Time               `json:"end_time"`
	Notes            string                   `json:"notes"`
}

// ItineraryService defines the itinerary management contract.
type ItineraryService interface {
	Create(ctx context.Context, userID, tripID uuid.UUID, input ItineraryItemInput) (*domain.ItineraryItem, error)
	GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.ItineraryItem, error)
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ItineraryItem, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, input ItineraryItemInput) (*domain.ItineraryItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

type itineraryService struct {
	itineraryRepo port.ItineraryRepository
	tripRepo      port.TripRepository
}

// NewItineraryService creates a new ItineraryService implementation.
func NewItineraryService(itineraryRepo port.ItineraryRepository, tripRepo port.TripRepository) ItineraryService {
	return &itineraryService{
		itineraryRepo: itineraryRepo,
		tripRepo:      tripRepo,
	}
}

func (s *itineraryService) Create(ctx context.Context, userID, tripID uuid.UUID, input ItineraryItemInput) (*domain.ItineraryItem, error) {
	if !domain.ValidItineraryItemTypes[input.Type] {
		return nil, domain.ErrInvalidItemType
	}
	if _, err := s.tripRepo.GetByID(ctx, userID, tripID); err != nil {
		return nil, err
	}

	item := &domain.ItineraryItem{
		TripID:           tripID,
		UserID:           userID,
		Type:             input.Type,
		Title:            input.Title,
		Airline:          input.Airline,
		FlightNumber:     input.FlightNumber,
		ConfirmationCode: input.ConfirmationCode,
		Location:         input.Location,
		StartTime:        input.StartTime,
		EndTime:          input.EndTime,
		Notes:            input.Notes,
	}
	if err := s.itineraryRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itineraryService) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.ItineraryItem, error) {
	return s.itineraryRepo.GetByID(ctx, userID, itemID)
}

func (s *itineraryService) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	if _, err := s.tripRepo.GetByID(ctx, userID, tripID); err != nil {
		return nil, err
	}
	return s.itineraryRepo.ListByTrip(ctx, userID, tripID)
}

func (s *itineraryService) Update(ctx context.Context, userID, itemID uuid.UUID, input ItineraryItemInput) (*domain.ItineraryItem, error) {
	if !domain.ValidItineraryItemTypes[input.Type] {
		return nil, domain.ErrInvalidItemType
	}

	item, err := s.itineraryRepo.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Type = input.Type
	item.Title = input.Title
	item.Airline = input.Airline
	item.FlightNumber = input.FlightNumber
	item.ConfirmationCode = input.ConfirmationCode
	item.Location = input.Location
	item.StartTime = input.StartTime
	item.EndTime = input.EndTime
	item.Notes = input.Notes

	if err := s.itineraryRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itineraryService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	return s.itineraryRepo.Delete(ctx, userID, itemID)
}
