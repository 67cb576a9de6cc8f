package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profile represents a registered user account.
type Profile struct {
	ID                 uuid.UUID        `db:"id" json:"id"`
	Email              string           `db:"email" json:"email"`
	PasswordHash       string           `db:"password_hash" json:"-"`
	FullName           string           `db:"full_name" json:"full_name"`
	IsAdmin            bool             `db:"is_admin" json:"is_admin"`
	SubscriptionTier   SubscriptionTier `db:"subscription_tier" json:"subscription_tier"`
	StripeCustomerID   string           `db:"stripe_customer_id" json:"-"`
	GoogleAccessToken  string           `db:"google_access_token" json:"-"`
	GoogleRefreshToken string           `db:"google_refresh_token" json:"-"`
	GoogleTokenExpiry  *time.Time       `db:"google_token_expiry" json:"-"`
	CreatedAt          time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at" json:"updated_at"`
}

// Trip represents a single trip record owned by a profile.
type Trip struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	UserID          uuid.UUID  `db:"user_id" json:"user_id"`
	Name            string     `db:"name" json:"name"`
	Destination     string     `db:"destination" json:"destination"`
	BeginningDate   *time.Time `db:"beginning_date" json:"beginning_date"`
	EndingDate      *time.Time `db:"ending_date" json:"ending_date"`
	Purpose         string     `db:"purpose" json:"purpose"`
	Notes           string     `db:"notes" json:"notes"`
	CalendarEventID string     `db:"calendar_event_id" json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// ItineraryItem represents one leg or booking within a trip.
type ItineraryItem struct {
	ID               uuid.UUID         `db:"id" json:"id"`
	TripID           uuid.UUID         `db:"trip_id" json:"trip_id"`
	UserID           uuid.UUID         `db:"user_id" json:"user_id"`
	Type             ItineraryItemType `db:"type" json:"type"`
	Title            string            `db:"title" json:"title"`
	Airline          string            `db:"airline" json:"airline,omitempty"`
	FlightNumber     string            `db:"flight_number" json:"flight_number,omitempty"`
	ConfirmationCode string            `db:"confirmation_code" json:"confirmation_code,omitempty"`
	Location         string            `db:"location" json:"location,omitempty"`
	StartTime        *time.Time        `db:"start_time" json:"start_time"`
	EndTime          *time.Time        `db:"end_time" json:"end_time"`
	Notes            string            `db:"notes" json:"notes"`
	CreatedAt        time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updated_at"`
}

// Expense represents a single expense, optionally attached to a trip.
type Expense struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	TripID        *uuid.UUID      `db:"trip_id" json:"trip_id,omitempty"`
	Merchant      string          `db:"merchant" json:"merchant"`
	Description   string          `db:"description" json:"description"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Currency      string          `db:"currency" json:"currency"`
	Category      ExpenseCategory `db:"category" json:"category"`
	ExpenseDate   *time.Time      `db:"expense_date" json:"expense_date"`
	PaymentMethod string          `db:"payment_method" json:"payment_method,omitempty"`
	ReceiptFileID *uuid.UUID      `db:"receipt_file_id" json:"receipt_file_id,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// ReceiptFile stores metadata for an uploaded receipt image or PDF. Uploaded
// receipts are queued for asynchronous scanning; the scan result is a partial
// set of suggested expense fields.
type ReceiptFile struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	UserID         uuid.UUID       `db:"user_id" json:"user_id"`
	OriginalName   string          `db:"original_name" json:"original_name"`
	ContentType    string          `db:"content_type" json:"content_type"`
	FileSize       int64           `db:"file_size" json:"file_size"`
	S3Bucket       string          `db:"s3_bucket" json:"-"`
	S3Key          string          `db:"s3_key" json:"-"`
	ScanStatus     ScanStatus      `db:"scan_status" json:"scan_status"`
	ScanError      string          `db:"scan_error" json:"scan_error,omitempty"`
	ScanAttempts   int             `db:"scan_attempts" json:"scan_attempts"`
	SuggestedData  json.RawMessage `db:"suggested_data" json:"suggested_data,omitempty"`
	ExtractorModel string          `db:"extractor_model" json:"extractor_model,omitempty"`
	ScannedAt      *time.Time      `db:"scanned_at" json:"scanned_at"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// FlightStatus is the reshaped record returned by the flight-status lookup.
type FlightStatus struct {
	FlightNumber string    `json:"flight_number"`
	Airline      string    `json:"airline"`
	Status       string    `json:"status"`
	Departure    FlightLeg `json:"departure"`
	Arrival      FlightLeg `json:"arrival"`
}

// FlightLeg describes one end of a flight. Times are already-local strings
// with any timezone offset suffix removed, not converted.
type FlightLeg struct {
	Airport      string `json:"airport"`
	IATA         string `json:"iata"`
	Terminal     string `json:"terminal,omitempty"`
	Gate         string `json:"gate,omitempty"`
	Scheduled    string `json:"scheduled,omitempty"`
	Estimated    string `json:"estimated,omitempty"`
	Actual       string `json:"actual,omitempty"`
	DelayMinutes int    `json:"delay_minutes"`
}

// SubscriptionStatus is the result of a billing subscription check.
type SubscriptionStatus struct {
	Subscribed      bool             `json:"subscribed"`
	Tier            SubscriptionTier `json:"tier"`
	IsAdmin         bool             `json:"is_admin"`
	SubscriptionEnd *time.Time       `json:"subscription_end"`
}
