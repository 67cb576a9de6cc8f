package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tripstack/internal/domain"
	"tripstack/internal/logger"
	"tripstack/internal/service"
	"tripstack/mocks"
)

func TestScanQueueWorker_PollsAndDispatchesScans(t *testing.T) {
	receiptRepo := new(mocks.MockReceiptFileRepo)
	scanSvc := new(mocks.MockScanService)

	receipt := domain.ReceiptFile{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		OriginalName: "receipt.jpg",
		ContentType:  "image/jpeg",
		ScanStatus:   domain.ScanStatusProcessing,
		ScanAttempts: 1,
	}

	// First poll returns one receipt, subsequent polls return empty
	receiptRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ReceiptFile{receipt}, nil).Once()
	receiptRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ReceiptFile{}, nil).Maybe()

	scanSvc.On("ScanReceipt", mock.Anything, mock.AnythingOfType("*domain.ReceiptFile"), 3).
		Return().Maybe()

	cfg := service.ScanQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  2,
	}
	worker := service.NewScanQueueWorker(receiptRepo, scanSvc, cfg, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Wait for at least one poll cycle
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	receiptRepo.AssertCalled(t, "ClaimQueued", mock.Anything, mock.AnythingOfType("int"))
	scanSvc.AssertCalled(t, "ScanReceipt", mock.Anything, mock.AnythingOfType("*domain.ReceiptFile"), 3)
}

func TestScanQueueWorker_RespectsConcurrencyCap(t *testing.T) {
	receiptRepo := new(mocks.MockReceiptFileRepo)
	scanSvc := new(mocks.MockScanService)

	cfg := service.ScanQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  2,
	}

	receiptRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ReceiptFile{}, nil).Maybe()

	worker := service.NewScanQueueWorker(receiptRepo, scanSvc, cfg, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()
	<-done

	// Claim size never exceeds the free concurrency slots
	for _, call := range receiptRepo.Calls {
		if call.Method == "ClaimQueued" {
			limit := call.Arguments.Get(1).(int)
			assert.LessOrEqual(t, limit, cfg.Concurrency)
		}
	}
}

func TestScanQueueWorker_CleanShutdown(t *testing.T) {
	receiptRepo := new(mocks.MockReceiptFileRepo)
	scanSvc := new(mocks.MockScanService)

	receiptRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ReceiptFile{}, nil).Maybe()

	cfg := service.ScanQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  5,
	}
	worker := service.NewScanQueueWorker(receiptRepo, scanSvc, cfg, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}

func TestScanQueueWorker_EmptyQueueDoesNothing(t *testing.T) {
	receiptRepo := new(mocks.MockReceiptFileRepo)
	scanSvc := new(mocks.MockScanService)

	receiptRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ReceiptFile{}, nil).Maybe()

	cfg := service.ScanQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  5,
	}
	worker := service.NewScanQueueWorker(receiptRepo, scanSvc, cfg, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	scanSvc.AssertNotCalled(t, "ScanReceipt", mock.Anything, mock.Anything, mock.Anything)
}

func TestScanQueueWorker_ClaimError(t *testing.T) {
	receiptRepo := new(mocks.MockReceiptFileRepo)
	scanSvc := new(mocks.MockScanService)

	receiptRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return(nil, errors.New("db connection error")).Maybe()

	cfg := service.ScanQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  5,
	}
	worker := service.NewScanQueueWorker(receiptRepo, scanSvc, cfg, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Let a few poll cycles fail
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}

	scanSvc.AssertNotCalled(t, "ScanReceipt", mock.Anything, mock.Anything, mock.Anything)
}
