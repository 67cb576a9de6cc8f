package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tripstack/internal/billing"
	"tripstack/internal/calendar"
	"tripstack/internal/config"
	"tripstack/internal/email/noop"
	"tripstack/internal/email/ses"
	"tripstack/internal/extract"
	"tripstack/internal/extract/anthropic"
	"tripstack/internal/extract/openai"
	"tripstack/internal/flights"
	"tripstack/internal/handler"
	"tripstack/internal/logger"
	"tripstack/internal/port"
	"tripstack/internal/repository/postgres"
	"tripstack/internal/router"
	"tripstack/internal/service"
	s3storage "tripstack/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logg.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	tripRepo := postgres.NewTripRepo(db)
	expenseRepo := postgres.NewExpenseRepo(db)
	itineraryRepo := postgres.NewItineraryRepo(db)
	receiptRepo := postgres.NewReceiptFileRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize the extraction engine
	extract.RegisterProvider("openai", func(pc *config.ExtractorProviderConfig) (port.Extractor, error) {
		return openai.NewClient(pc), nil
	})
	extract.RegisterProvider("anthropic", func(pc *config.ExtractorProviderConfig) (port.Extractor, error) {
		return anthropic.NewClient(pc), nil
	})

	primary, err := extract.NewExtractor(&cfg.Extractor.Primary)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}
	extractors := []port.Extractor{primary}
	names := []string{cfg.Extractor.Primary.Provider}
	if sec := cfg.Extractor.SecondaryConfig(); sec != nil {
		secondary, err := extract.NewExtractor(sec)
		if err != nil {
			return fmt.Errorf("failed to initialize fallback extractor: %w", err)
		}
		extractors = append(extractors, secondary)
		names = append(names, sec.Provider)
	}
	engine := extract.NewEngine(extract.NewFallbackExtractor(extractors, names, logg.Infof))

	// Initialize external API clients
	flightClient := flights.NewClient(&cfg.Flights)
	billingClient := billing.NewClient(&cfg.Billing)
	calendarClient := calendar.NewClient(&cfg.Calendar)

	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender(logg)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	tripSvc := service.NewTripService(tripRepo)
	expenseSvc := service.NewExpenseService(expenseRepo, tripRepo)
	itinerarySvc := service.NewItineraryService(itineraryRepo, tripRepo)
	assistantSvc := service.NewAssistantService(engine, logg)
	flightSvc := service.NewFlightService(flightClient)
	billingSvc := service.NewBillingService(userRepo, billingClient, &cfg.Billing, logg)
	calendarSvc := service.NewCalendarService(userRepo, tripRepo, calendarClient, logg)
	reportSvc := service.NewReportService(userRepo, tripRepo, expenseRepo, itineraryRepo, emailSender, logg)
	fileSvc := service.NewFileService(receiptRepo, s3Client, &cfg.S3, logg)
	scanSvc := service.NewScanService(receiptRepo, s3Client, engine, logg)

	// Initialize handlers
	h := router.Handlers{
		Health:    handler.NewHealthHandler(db),
		Auth:      handler.NewAuthHandler(authSvc),
		Assistant: handler.NewAssistantHandler(assistantSvc),
		Flight:    handler.NewFlightHandler(flightSvc),
		Billing:   handler.NewBillingHandler(billingSvc),
		Calendar:  handler.NewCalendarHandler(calendarSvc),
		Trip:      handler.NewTripHandler(tripSvc),
		Expense:   handler.NewExpenseHandler(expenseSvc),
		Itinerary: handler.NewItineraryHandler(itinerarySvc),
		File:      handler.NewFileHandler(fileSvc),
		Report:    handler.NewReportHandler(reportSvc),
	}

	r := router.Setup(cfg, logg, authSvc, h)

	// Start the receipt scan worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker := service.NewScanQueueWorker(receiptRepo, scanSvc, service.ScanQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	}, logg)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(workerCtx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Infow("server starting", "addr", cfg.Server.Port, "env", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		stopWorker()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logg.Infow("shutting down", "signal", sig.String())
	}

	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	<-workerDone
	return nil
}
