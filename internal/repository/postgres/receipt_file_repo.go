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

type receiptFileRepo struct {
	db *sqlx.DB
}

// NewReceiptFileRepo creates a new PostgreSQL-backed ReceiptFileRepository.
func NewReceiptFileRepo(db *sqlx.DB) port.ReceiptFileRepository {
	return &receiptFileRepo{db: db}
}

func (r *receiptFileRepo) Create(ctx context.Context, f *domain.ReceiptFile) error {
	f.ID = uuid.New()
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	if f.ScanStatus == "" {
		f.ScanStatus = domain.ScanStatusQueued
	}

	query := `INSERT INTO receipt_files (id, user_id, original_name, content_type, file_size,
		s3_bucket, s3_key, scan_status, scan_error, scan_attempts, suggested_data,
		extractor_model, scanned_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.UserID, f.OriginalName, f.ContentType, f.FileSize,
		f.S3Bucket, f.S3Key, f.ScanStatus, f.ScanError, f.ScanAttempts,
		f.SuggestedData, f.ExtractorModel, f.ScannedAt, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("receiptFileRepo.Create: %w", err)
	}
	return nil
}

func (r *receiptFileRepo) GetByID(ctx context.Context, userID, fileID uuid.UUID) (*domain.ReceiptFile, error) {
	var f domain.ReceiptFile
	err := r.db.GetContext(ctx, &f,
		"SELECT * FROM receipt_files WHERE id = $1 AND user_id = $2", fileID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("receiptFileRepo.GetByID: %w", err)
	}
	return &f, nil
}

func (r *receiptFileRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ReceiptFile, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM receipt_files WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("receiptFileRepo.ListByUser count: %w", err)
	}

	var files []domain.ReceiptFile
	err = r.db.SelectContext(ctx, &files,
		"SELECT * FROM receipt_files WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("receiptFileRepo.ListByUser: %w", err)
	}
	return files, total, nil
}

// ClaimQueued marks up to limit queued receipts as processing and returns
// them. SKIP LOCKED keeps concurrent workers from claiming the same row.
func (r *receiptFileRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ReceiptFile, error) {
	var files []domain.ReceiptFile
	err := r.db.SelectContext(ctx, &files, `
		UPDATE receipt_files
		SET scan_status = $1, scan_attempts = scan_attempts + 1, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM receipt_files
			WHERE scan_status = $2
			ORDER BY created_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		domain.ScanStatusProcessing, domain.ScanStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("receiptFileRepo.ClaimQueued: %w", err)
	}
	return files, nil
}

func (r *receiptFileRepo) MarkCompleted(ctx context.Context, fileID uuid.UUID, suggested []byte, model string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE receipt_files SET scan_status = $1, scan_error = '', suggested_data = $2,
		 extractor_model = $3, scanned_at = NOW(), updated_at = NOW() WHERE id = $4`,
		domain.ScanStatusCompleted, suggested, model, fileID)
	if err != nil {
		return fmt.Errorf("receiptFileRepo.MarkCompleted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReceiptNotFound
	}
	return nil
}

// MarkFailed records a scan failure. With requeue the receipt goes back to
// queued for another attempt; otherwise it is failed terminally.
func (r *receiptFileRepo) MarkFailed(ctx context.Context, fileID uuid.UUID, scanErr string, requeue bool) error {
	status := domain.ScanStatusFailed
	if requeue {
		status = domain.ScanStatusQueued
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE receipt_files SET scan_status = $1, scan_error = $2, updated_at = NOW() WHERE id = $3`,
		status, scanErr, fileID)
	if err != nil {
		return fmt.Errorf("receiptFileRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReceiptNotFound
	}
	return nil
}

func (r *receiptFileRepo) Delete(ctx context.Context, userID, fileID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM receipt_files WHERE id = $1 AND user_id = $2", fileID, userID)
	if err != nil {
		return fmt.Errorf("receiptFileRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReceiptNotFound
	}
	return nil
}
