package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripstack/internal/config"
	"tripstack/internal/domain"
	"tripstack/internal/port"
)

// ReceiptUploadInput is the DTO for receipt upload requests.
type ReceiptUploadInput struct {
	UserID uuid.UUID
	File   multipart.File
	Header *multipart.FileHeader
}

// FileService manages receipt uploads and downloads.
type FileService interface {
	// Upload validates and stores a receipt, queuing it for scanning.
	Upload(ctx context.Context, input ReceiptUploadInput) (*domain.ReceiptFile, error)
	GetByID(ctx context.Context, userID, fileID uuid.UUID) (*domain.ReceiptFile, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ReceiptFile, int, error)
	GetDownloadURL(ctx context.Context, userID, fileID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID, fileID uuid.UUID) error
}

type fileService struct {
	receiptRepo port.ReceiptFileRepository
	storage     port.ObjectStorage
	cfg         *config.S3Config
	log         *zap.SugaredLogger
}

// NewFileService creates a new FileService implementation.
func NewFileService(
	receiptRepo port.ReceiptFileRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
	log *zap.SugaredLogger,
) FileService {
	return &fileService{
		receiptRepo: receiptRepo,
		storage:     storage,
		cfg:         cfg,
		log:         log,
	}
}

func (s *fileService) Upload(ctx context.Context, input ReceiptUploadInput) (*domain.ReceiptFile, error) {
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Sniff the real content type from magic bytes; the client-supplied
	// header is not trusted.
	mtype, err := mimetype.DetectReader(input.File)
	if err != nil {
		return nil, fmt.Errorf("detecting content type: %w", err)
	}
	ext, ok := domain.ReceiptContentTypes[mtype.String()]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	fileID := uuid.New()
	s3Key := fmt.Sprintf("users/%s/receipts/%s.%s", input.UserID, fileID, ext)

	receipt := &domain.ReceiptFile{
		ID:           fileID,
		UserID:       input.UserID,
		OriginalName: input.Header.Filename,
		ContentType:  mtype.String(),
		FileSize:     input.Header.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        s3Key,
		ScanStatus:   domain.ScanStatusQueued,
	}

	s.log.Infow("uploading receipt",
		"file", input.Header.Filename,
		"content_type", mtype.String(),
		"size", input.Header.Size,
		"user_id", input.UserID,
	)

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, fmt.Errorf("creating receipt record: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: mtype.String(),
	})
	if err != nil {
		s.log.Errorw("receipt upload to storage failed", "file_id", receipt.ID, "error", err)
		_ = s.receiptRepo.MarkFailed(ctx, receipt.ID, "upload to storage failed", false)
		return nil, domain.ErrUploadFailed
	}

	return receipt, nil
}

func (s *fileService) GetByID(ctx context.Context, userID, fileID uuid.UUID) (*domain.ReceiptFile, error) {
	return s.receiptRepo.GetByID(ctx, userID, fileID)
}

func (s *fileService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ReceiptFile, int, error) {
	return s.receiptRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *fileService) GetDownloadURL(ctx context.Context, userID, fileID uuid.UUID) (string, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, userID, fileID)
	if err != nil {
		return "", err
	}
	return s.storage.PresignGet(ctx, receipt.S3Bucket, receipt.S3Key, s.cfg.PresignExpiry)
}

func (s *fileService) Delete(ctx context.Context, userID, fileID uuid.UUID) error {
	receipt, err := s.receiptRepo.GetByID(ctx, userID, fileID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, receipt.S3Bucket, receipt.S3Key); err != nil {
		s.log.Errorw("deleting receipt from storage", "file_id", fileID, "error", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}
	return s.receiptRepo.Delete(ctx, userID, fileID)
}
