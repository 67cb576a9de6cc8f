package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tripstack/internal/domain"
	"tripstack/internal/port"
)

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, p *domain.Profile) error {
	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.SubscriptionTier == "" {
		p.SubscriptionTier = domain.TierFree
	}

	query := `INSERT INTO profiles (id, email, password_hash, full_name, is_admin,
		subscription_tier, stripe_customer_id, google_access_token, google_refresh_token,
		google_token_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Email, p.PasswordHash, p.FullName, p.IsAdmin,
		p.SubscriptionTier, p.StripeCustomerID, p.GoogleAccessToken, p.GoogleRefreshToken,
		p.GoogleTokenExpiry, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("userRepo.Create: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.GetContext(ctx, &p, "SELECT * FROM profiles WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.GetContext(ctx, &p, "SELECT * FROM profiles WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}
	return &p, nil
}

func (r *userRepo) Update(ctx context.Context, p *domain.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	query := `UPDATE profiles SET email = $1, full_name = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, p.Email, p.FullName, p.UpdatedAt, p.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdateGoogleTokens(ctx context.Context, id uuid.UUID, access, refresh string, expiry *time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET google_access_token = $1, google_refresh_token = $2,
		 google_token_expiry = $3, updated_at = NOW() WHERE id = $4`,
		access, refresh, expiry, id)
	if err != nil {
		return fmt.Errorf("userRepo.UpdateGoogleTokens: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdateSubscription(ctx context.Context, id uuid.UUID, tier domain.SubscriptionTier, customerID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET subscription_tier = $1, stripe_customer_id = $2, updated_at = NOW()
		 WHERE id = $3`,
		tier, customerID, id)
	if err != nil {
		return fmt.Errorf("userRepo.UpdateSubscription: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
