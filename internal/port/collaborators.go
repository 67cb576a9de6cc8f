package port

import (
	"context"
	"time"

	"tripstack/internal/domain"
)

// FlightData abstracts the external flight-status API.
type FlightData interface {
	// Lookup returns the status for a flight on a given date, or
	// domain.ErrNotFound when the upstream has no matching flight.
	Lookup(ctx context.Context, flightNumber, flightDate string) (*domain.FlightStatus, error)
}

// SubscriptionInfo is the reshaped subscription record from the payment
// provider.
type SubscriptionInfo struct {
	Active           bool
	Tier             domain.SubscriptionTier
	CurrentPeriodEnd *time.Time
}

// BillingProvider abstracts the payment provider.
type BillingProvider interface {
	SubscriptionByEmail(ctx context.Context, email string) (*SubscriptionInfo, error)
	CreateCheckoutSession(ctx context.Context, customerEmail, priceID string) (string, error)
}

// OAuthToken is an access token with its expiry.
type OAuthToken struct {
	AccessToken string
	Expiry      time.Time
}

// CalendarEvent is the provider-neutral shape of a calendar event.
type CalendarEvent struct {
	Summary     string
	Description string
	Location    string
	StartDate   time.Time
	EndDate     time.Time
}

// CalendarProvider abstracts the external calendar API.
type CalendarProvider interface {
	RefreshAccessToken(ctx context.Context, refreshToken string) (*OAuthToken, error)
	InsertEvent(ctx context.Context, accessToken string, ev CalendarEvent) (string, error)
	DeleteEvent(ctx context.Context, accessToken, eventID string) error
}
