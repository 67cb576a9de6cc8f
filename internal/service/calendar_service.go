package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripstack/internal/domain"
	"tripstack/internal/port"
)

// Calendar sync actions.
const (
	CalendarActionSync   = "sync"
	CalendarActionRemove = "remove"
)

// expiryMargin treats tokens about to expire as already expired, so a
// request never goes out with a token that dies mid-flight.
const expiryMargin = time.Minute

// CalendarSyncInput is the DTO for calendar sync requests.
type CalendarSyncInput struct {
	TripID uuid.UUID `json:"tripId" binding:"required"`
	Action string    `json:"action" binding:"required,oneof=sync remove"`
}

// CalendarSyncResult reports what the sync did.
type CalendarSyncResult struct {
	TripID  uuid.UUID `json:"tripId"`
	Action  string    `json:"action"`
	EventID string    `json:"eventId,omitempty"`
}

// CalendarService keeps trip calendar events in sync with Google Calendar.
type CalendarService interface {
	Sync(ctx context.Context, userID uuid.UUID, input CalendarSyncInput) (*CalendarSyncResult, error)
}

type calendarService struct {
	userRepo port.UserRepository
	tripRepo port.TripRepository
	provider port.CalendarProvider
	log      *zap.SugaredLogger
}

// NewCalendarService creates a new CalendarService implementation.
func NewCalendarService(
	userRepo port.UserRepository,
	tripRepo port.TripRepository,
	provider port.CalendarProvider,
	log *zap.SugaredLogger,
) CalendarService {
	return &calendarService{
		userRepo: userRepo,
		tripRepo: tripRepo,
		provider: provider,
		log:      log,
	}
}

func (s *calendarService) Sync(ctx context.Context, userID uuid.UUID, input CalendarSyncInput) (*CalendarSyncResult, error) {
	trip, err := s.tripRepo.GetByID(ctx, userID, input.TripID)
	if err != nil {
		return nil, err
	}

	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.GoogleRefreshToken == "" {
		return nil, domain.ErrCalendarNotLinked
	}

	accessToken, err := s.accessToken(ctx, profile)
	if err != nil {
		return nil, err
	}

	switch input.Action {
	case CalendarActionSync:
		return s.syncEvent(ctx, profile, trip, accessToken)
	case CalendarActionRemove:
		return s.removeEvent(ctx, trip, accessToken)
	default:
		return nil, fmt.Errorf("unknown calendar action %q: %w", input.Action, domain.ErrNotFound)
	}
}

// accessToken returns a usable access token for the profile, refreshing
// and persisting it when the stored one is missing or about to expire.
func (s *calendarService) accessToken(ctx context.Context, profile *domain.Profile) (string, error) {
	if profile.GoogleAccessToken != "" && profile.GoogleTokenExpiry != nil &&
		time.Until(*profile.GoogleTokenExpiry) > expiryMargin {
		return profile.GoogleAccessToken, nil
	}

	token, err := s.provider.RefreshAccessToken(ctx, profile.GoogleRefreshToken)
	if err != nil {
		return "", err
	}

	expiry := token.Expiry
	if err := s.userRepo.UpdateGoogleTokens(ctx, profile.ID, token.AccessToken, profile.GoogleRefreshToken, &expiry); err != nil {
		s.log.Warnw("persisting refreshed google token", "user_id", profile.ID, "error", err)
	}
	return token.AccessToken, nil
}

func (s *calendarService) syncEvent(ctx context.Context, profile *domain.Profile, trip *domain.Trip, accessToken string) (*CalendarSyncResult, error) {
	if trip.BeginningDate == nil || trip.EndingDate == nil {
		return nil, domain.ErrTripDatesMissing
	}

	// Re-syncing replaces the previous event instead of accumulating
	// duplicates. A failed delete of the old event is not fatal.
	if trip.CalendarEventID != "" {
		if err := s.provider.DeleteEvent(ctx, accessToken, trip.CalendarEventID); err != nil {
			s.log.Warnw("removing stale calendar event", "trip_id", trip.ID, "event_id", trip.CalendarEventID, "error", err)
		}
	}

	summary := trip.Name
	if trip.Destination != "" {
		summary = fmt.Sprintf("%s (%s)", trip.Name, trip.Destination)
	}
	eventID, err := s.provider.InsertEvent(ctx, accessToken, port.CalendarEvent{
		Summary:     summary,
		Description: trip.Purpose,
		Location:    trip.Destination,
		StartDate:   *trip.BeginningDate,
		EndDate:     *trip.EndingDate,
	})
	if err != nil {
		return nil, fmt.Errorf("inserting calendar event: %w", err)
	}

	if err := s.tripRepo.SetCalendarEventID(ctx, trip.UserID, trip.ID, eventID); err != nil {
		return nil, err
	}

	s.log.Infow("calendar event synced", "user_id", profile.ID, "trip_id", trip.ID, "event_id", eventID)
	return &CalendarSyncResult{TripID: trip.ID, Action: CalendarActionSync, EventID: eventID}, nil
}

func (s *calendarService) removeEvent(ctx context.Context, trip *domain.Trip, accessToken string) (*CalendarSyncResult, error) {
	if trip.CalendarEventID != "" {
		if err := s.provider.DeleteEvent(ctx, accessToken, trip.CalendarEventID); err != nil {
			return nil, fmt.Errorf("deleting calendar event: %w", err)
		}
		if err := s.tripRepo.SetCalendarEventID(ctx, trip.UserID, trip.ID, ""); err != nil {
			return nil, err
		}
	}
	return &CalendarSyncResult{TripID: trip.ID, Action: CalendarActionRemove}, nil
}
