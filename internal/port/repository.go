package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tripstack/internal/domain"
)

// UserRepository manages profile rows.
type UserRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	UpdateGoogleTokens(ctx context.Context, id uuid.UUID, access, refresh string, expiry *time.Time) error
	UpdateSubscription(ctx context.Context, id uuid.UUID, tier domain.SubscriptionTier, customerID string) error
}

// TripRepository manages trip rows.
type TripRepository interface {
	Create(ctx context.Context, t *domain.Trip) error
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Trip, int, error)
	Update(ctx context.Context, t *domain.Trip) error
	SetCalendarEventID(ctx context.Context, userID, tripID uuid.UUID, eventID string) error
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

// ExpenseRepository manages expense rows.
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*domain.Expense, error)
	ListByUser(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID, offset, limit int) ([]domain.Expense, int, error)
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

// ItineraryRepository manages itinerary item rows.
type ItineraryRepository interface {
	Create(ctx context.Context, item *domain.ItineraryItem) error
	GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.ItineraryItem, error)
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ItineraryItem, error)
	Update(ctx context.Context, item *domain.ItineraryItem) error
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

// ReceiptFileRepository manages uploaded receipt files and the scan queue.
type ReceiptFileRepository interface {
	Create(ctx context.Context, f *domain.ReceiptFile) error
	GetByID(ctx context.Context, userID, fileID uuid.UUID) (*domain.ReceiptFile, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ReceiptFile, int, error)
	// ClaimQueued atomically marks up to limit queued receipts as processing
	// and returns them, so concurrent workers never scan the same receipt.
	ClaimQueued(ctx context.Context, limit int) ([]domain.ReceiptFile, error)
	MarkCompleted(ctx context.Context, fileID uuid.UUID, suggested []byte, model string) error
	MarkFailed(ctx context.Context, fileID uuid.UUID, scanErr string, requeue bool) error
	Delete(ctx context.Context, userID, fileID uuid.UUID) error
}
