package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tripstack/internal/port"
)

// ScanQueueConfig holds settings for the receipt scan worker.
type ScanQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// ScanQueueWorker polls for queued receipts and dispatches them for scanning.
type ScanQueueWorker struct {
	receiptRepo port.ReceiptFileRepository
	scanService ScanService
	cfg         ScanQueueConfig
	log         *zap.SugaredLogger
	wg          sync.WaitGroup
}

// NewScanQueueWorker creates a new ScanQueueWorker.
func NewScanQueueWorker(
	receiptRepo port.ReceiptFileRepository,
	scanService ScanService,
	cfg ScanQueueConfig,
	log *zap.SugaredLogger,
) *ScanQueueWorker {
	return &ScanQueueWorker{
		receiptRepo: receiptRepo,
		scanService: scanService,
		cfg:         cfg,
		log:         log,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight scan goroutines have finished.
func (w *ScanQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	w.log.Infow("scan queue worker started",
		"poll", w.cfg.PollInterval,
		"concurrency", w.cfg.Concurrency,
		"max_retries", w.cfg.MaxRetries,
	)

	for {
		select {
		case <-ctx.Done():
			w.log.Infow("scan queue worker shutting down, waiting for in-flight scans")
			w.wg.Wait()
			w.log.Infow("scan queue worker shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			receipts, err := w.receiptRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				w.log.Errorw("claiming queued receipts", "error", err)
				continue
			}

			for i := range receipts {
				receipt := receipts[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight scans complete even during shutdown.
					scanCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					w.log.Infow("dispatching receipt scan", "file_id", receipt.ID, "attempt", receipt.ScanAttempts)
					w.scanService.ScanReceipt(scanCtx, &receipt, w.cfg.MaxRetries)
				}()
			}
		}
	}
}
