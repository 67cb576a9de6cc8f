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

type tripRepo struct {
	db *sqlx.DB
}

// NewTripRepo creates a new PostgreSQL-backed TripRepository.
func NewTripRepo(db *sqlx.DB) port.TripRepository {
	return &tripRepo{db: db}
}

func (r *tripRepo) Create(ctx context.Context, t *domain.Trip) error {
	t.ID = uuid.New()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `INSERT INTO trips (id, user_id, name, destination, beginning_date, ending_date,
		purpose, notes, calendar_event_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Name, t.Destination, t.BeginningDate, t.EndingDate,
		t.Purpose, t.Notes, t.CalendarEventID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("tripRepo.Create: %w", err)
	}
	return nil
}

func (r *tripRepo) GetByID(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error) {
	var t domain.Trip
	err := r.db.GetContext(ctx, &t,
		"SELECT * FROM trips WHERE id = $1 AND user_id = $2", tripID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("tripRepo.GetByID: %w", err)
	}
	return &t, nil
}

func (r *tripRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Trip, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM trips WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("tripRepo.ListByUser count: %w", err)
	}

	var trips []domain.Trip
	err = r.db.SelectContext(ctx, &trips,
		`SELECT * FROM trips WHERE user_id = $1
		 ORDER BY beginning_date DESC NULLS LAST, created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("tripRepo.ListByUser: %w", err)
	}
	return trips, total, nil
}

func (r *tripRepo) Update(ctx context.Context, t *domain.Trip) error {
	t.UpdatedAt = time.Now().UTC()
	query := `UPDATE trips SET name = $1, destination = $2, beginning_date = $3, ending_date = $4,
		purpose = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9`
	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.Destination, t.BeginningDate, t.EndingDate,
		t.Purpose, t.Notes, t.UpdatedAt, t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("tripRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

func (r *tripRepo) SetCalendarEventID(ctx context.Context, userID, tripID uuid.UUID, eventID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE trips SET calendar_event_id = $1, updated_at = NOW()
		 WHERE id = $2 AND user_id = $3`,
		eventID, tripID, userID)
	if err != nil {
		return fmt.Errorf("tripRepo.SetCalendarEventID: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

func (r *tripRepo) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM trips WHERE id = $1 AND user_id = $2", tripID, userID)
	if err != nil {
		return fmt.Errorf("tripRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}
