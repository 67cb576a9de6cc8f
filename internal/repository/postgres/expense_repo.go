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

type expenseRepo struct {
	db *sqlx.DB
}

// NewExpenseRepo creates a new PostgreSQL-backed ExpenseRepository.
func NewExpenseRepo(db *sqlx.DB) port.ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	e.ID = uuid.New()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `INSERT INTO expenses (id, user_id, trip_id, merchant, description, amount,
		currency, category, expense_date, payment_method, receipt_file_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.TripID, e.Merchant, e.Description, e.Amount,
		e.Currency, e.Category, e.ExpenseDate, e.PaymentMethod, e.ReceiptFileID,
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("expenseRepo.Create: %w", err)
	}
	return nil
}

func (r *expenseRepo) GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*domain.Expense, error) {
	var e domain.Expense
	err := r.db.GetContext(ctx, &e,
		"SELECT * FROM expenses WHERE id = $1 AND user_id = $2", expenseID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("expenseRepo.GetByID: %w", err)
	}
	return &e, nil
}

func (r *expenseRepo) ListByUser(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID, offset, limit int) ([]domain.Expense, int, error) {
	countQuery := "SELECT COUNT(*) FROM expenses WHERE user_id = $1"
	listQuery := `SELECT * FROM expenses WHERE user_id = $1
		ORDER BY expense_date DESC NULLS LAST, created_at DESC LIMIT $2 OFFSET $3`
	countArgs := []any{userID}
	listArgs := []any{userID, limit, offset}

	if tripID != nil {
		countQuery = "SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND trip_id = $2"
		listQuery = `SELECT * FROM expenses WHERE user_id = $1 AND trip_id = $2
			ORDER BY expense_date DESC NULLS LAST, created_at DESC LIMIT $3 OFFSET $4`
		countArgs = []any{userID, *tripID}
		listArgs = []any{userID, *tripID, limit, offset}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("expenseRepo.ListByUser count: %w", err)
	}

	var expenses []domain.Expense
	if err := r.db.SelectContext(ctx, &expenses, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("expenseRepo.ListByUser: %w", err)
	}
	return expenses, total, nil
}

func (r *expenseRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error) {
	var expenses []domain.Expense
	err := r.db.SelectContext(ctx, &expenses,
		`SELECT * FROM expenses WHERE user_id = $1 AND trip_id = $2
		 ORDER BY expense_date ASC NULLS LAST, created_at ASC`,
		userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("expenseRepo.ListByTrip: %w", err)
	}
	return expenses, nil
}

func (r *expenseRepo) Update(ctx context.Context, e *domain.Expense) error {
	e.UpdatedAt = time.Now().UTC()
	query := `UPDATE expenses SET trip_id = $1, merchant = $2, description = $3, amount = $4,
		currency = $5, category = $6, expense_date = $7, payment_method = $8,
		receipt_file_id = $9, updated_at = $10
		WHERE id = $11 AND user_id = $12`
	result, err := r.db.ExecContext(ctx, query,
		e.TripID, e.Merchant, e.Description, e.Amount,
		e.Currency, e.Category, e.ExpenseDate, e.PaymentMethod,
		e.ReceiptFileID, e.UpdatedAt, e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("expenseRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *expenseRepo) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = $1 AND user_id = $2", expenseID, userID)
	if err != nil {
		return fmt.Errorf("expenseRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}
