package service

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"go.uber.org/zap"

	"tripstack/internal/domain"
	"tripstack/internal/extract"
	"tripstack/internal/port"
)

// ScanService runs a single receipt through the extraction engine and
// records the suggested expense fields.
type ScanService interface {
	// ScanReceipt downloads the receipt, extracts expense fields, and marks
	// the receipt completed or failed. Failures below maxRetries attempts
	// requeue the receipt.
	ScanReceipt(ctx context.Context, receipt *domain.ReceiptFile, maxRetries int)
}

type scanService struct {
	receiptRepo port.ReceiptFileRepository
	storage     port.ObjectStorage
	engine      *extract.Engine
	log         *zap.SugaredLogger
}

// NewScanService creates a new ScanService implementation.
func NewScanService(
	receiptRepo port.ReceiptFileRepository,
	storage port.ObjectStorage,
	engine *extract.Engine,
	log *zap.SugaredLogger,
) ScanService {
	return &scanService{
		receiptRepo: receiptRepo,
		storage:     storage,
		engine:      engine,
		log:         log,
	}
}

func (s *scanService) ScanReceipt(ctx context.Context, receipt *domain.ReceiptFile, maxRetries int) {
	data, err := s.storage.Download(ctx, receipt.S3Bucket, receipt.S3Key)
	if err != nil {
		s.fail(ctx, receipt, maxRetries, "downloading receipt: "+err.Error())
		return
	}

	req := extract.Request{Kind: extract.KindExpense}
	if receipt.ContentType == "application/pdf" {
		req.Documents = []extract.Document{{Filename: receipt.OriginalName, Data: data}}
	} else {
		req.Images = []extract.Image{{
			Data:      base64.StdEncoding.EncodeToString(data),
			MediaType: receipt.ContentType,
		}}
	}

	result, err := s.engine.Extract(ctx, req)
	if err != nil {
		s.fail(ctx, receipt, maxRetries, err.Error())
		return
	}

	suggested, err := json.Marshal(result.Data)
	if err != nil {
		s.fail(ctx, receipt, maxRetries, "encoding suggested fields: "+err.Error())
		return
	}

	if err := s.receiptRepo.MarkCompleted(ctx, receipt.ID, suggested, result.Model); err != nil {
		s.log.Errorw("marking receipt completed", "file_id", receipt.ID, "error", err)
		return
	}
	s.log.Infow("receipt scanned", "file_id", receipt.ID, "model", result.Model, "fields", len(result.Data))
}

func (s *scanService) fail(ctx context.Context, receipt *domain.ReceiptFile, maxRetries int, reason string) {
	requeue := receipt.ScanAttempts < maxRetries
	s.log.Warnw("receipt scan failed",
		"file_id", receipt.ID,
		"attempt", receipt.ScanAttempts,
		"requeue", requeue,
		"reason", reason,
	)
	if err := s.receiptRepo.MarkFailed(ctx, receipt.ID, reason, requeue); err != nil {
		s.log.Errorw("marking receipt failed", "file_id", receipt.ID, "error", err)
	}
}
