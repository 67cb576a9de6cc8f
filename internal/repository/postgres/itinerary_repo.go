package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tripstack/internal/domain"
	"tripstack/internal/port"
)

type itineraryRepo struct {
	db *sqlx.DB
}

// NewItineraryRepo creates a new PostgreSQL-backed ItineraryRepository.
func NewItineraryRepo(db *sqlx.DB) port.ItineraryRepository {
	return &itineraryRepo{db: db}
}

func (r *itineraryRepo) Create(ctx context.Context, item *domain.ItineraryItem) error {
	item.ID = uuid.New()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `INSERT INTO itinerary_items (id, trip_id, user_id, type, title, airline,
		flight_number, confirmation_code, location, start_time, end_time, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.TripID, item.UserID, item.Type, item.Title, item.Airline,
		item.FlightNumber, item.ConfirmationCode, item.Location, item.StartTime,
		item.EndTime, item.Notes, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("itineraryRepo.Create: %w", err)
	}
	return nil
}

func (r *itineraryRepo) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.ItineraryItem, error) {
	var item domain.ItineraryItem
	err := r.db.GetContext(ctx, &item,
		"SELECT * FROM itinerary_items WHERE id = $1 AND user_id = $2", itemID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItineraryNotFound
		}
		return nil, fmt.Errorf("itineraryRepo.GetByID: %w", err)
	}
	return &item, nil
}

func (r *itineraryRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	var items []domain.ItineraryItem
	err := r.db.SelectContext(ctx, &items,
		`SELECT * FROM itinerary_items WHERE user_id = $1 AND trip_id = $2
		 ORDER BY start_time ASC NULLS LAST, created_at ASC`,
		userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("itineraryRepo.ListByTrip: %w", err)
	}
	return items, nil
}

func (r *itineraryRepo) Update(ctx context.Context, item *domain.ItineraryItem) error {
	item.UpdatedAt = time.Now().UTC()
	query := `UPDATE itinerary_items SET type = $1, title = $2, airline = $3, flight_number = $4,
		confirmation_code = $5, location = $6, start_time = $7, end_time = $8, notes = $9, updated_at = $10
		WHERE id = $11 AND user_id = $12`
	result, err := r.db.ExecContext(ctx, query,
		item.Type, item.Title, item.Airline, item.FlightNumber,
		item.ConfirmationCode, item.Location, item.StartTime, item.EndTime,
		item.Notes, item.UpdatedAt, item.ID, item.UserID)
	if err != nil {
		return fmt.Errorf("itineraryRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrItineraryNotFound
	}
	return nil
}

func (r *itineraryRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM itinerary_items WHERE id = $1 AND user_id = $2", itemID, userID)
	if err != nil {
		return fmt.Errorf("itineraryRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrItineraryNotFound
	}
	return nil
}
