package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripstack/internal/export"
	"tripstack/internal/port"
)

// ReportService renders expense and trip data into downloadable reports.
type ReportService interface {
	// ExpensesCSV renders the user's expenses (optionally scoped to a trip)
	// as a BOM-prefixed CSV for Excel compatibility.
	ExpensesCSV(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) ([]byte, error)
	ExpensesXLSX(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) ([]byte, error)
	// TripReportPDF renders a full trip report: summary, itinerary, expenses.
	TripReportPDF(ctx context.Context, userID, tripID uuid.UUID) ([]byte, string, error)
	// EmailTripReport renders the trip report and mails it to the owner.
	EmailTripReport(ctx context.Context, userID, tripID uuid.UUID) error
}

type reportService struct {
	userRepo      port.UserRepository
	tripRepo      port.TripRepository
	expenseRepo   port.ExpenseRepository
	itineraryRepo port.ItineraryRepository
	email         port.EmailSender
	log           *zap.SugaredLogger
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	userRepo port.UserRepository,
	tripRepo port.TripRepository,
	expenseRepo port.ExpenseRepository,
	itineraryRepo port.ItineraryRepository,
	email port.EmailSender,
	log *zap.SugaredLogger,
) ReportService {
	return &reportService{
		userRepo:      userRepo,
		tripRepo:      tripRepo,
		expenseRepo:   expenseRepo,
		itineraryRepo: itineraryRepo,
		email:         email,
		log:           log,
	}
}

// exportBatchSize bounds how many expenses a single export fetches.
const exportBatchSize = 10000

func (s *reportService) ExpensesCSV(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) ([]byte, error) {
	expenses, _, err := s.expenseRepo.ListByUser(ctx, userID, tripID, 0, exportBatchSize)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(export.BOM)
	w := export.NewCSVWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	if err := w.WriteExpenses(expenses); err != nil {
		return nil, fmt.Errorf("writing csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *reportService) ExpensesXLSX(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) ([]byte, error) {
	expenses, _, err := s.expenseRepo.ListByUser(ctx, userID, tripID, 0, exportBatchSize)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteExpensesXLSX(&buf, expenses); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reportService) TripReportPDF(ctx context.Context, userID, tripID uuid.UUID) ([]byte, string, error) {
	trip, err := s.tripRepo.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, "", err
	}
	itinerary, err := s.itineraryRepo.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return nil, "", err
	}
	expenses, err := s.expenseRepo.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	err = export.WriteTripReportPDF(&buf, &export.TripReport{
		Trip:      trip,
		Itinerary: itinerary,
		Expenses:  expenses,
	})
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), export.BuildFilename(trip.Name, "pdf"), nil
}

func (s *reportService) EmailTripReport(ctx context.Context, userID, tripID uuid.UUID) error {
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	trip, err := s.tripRepo.GetByID(ctx, userID, tripID)
	if err != nil {
		return err
	}

	pdf, _, err := s.TripReportPDF(ctx, userID, tripID)
	if err != nil {
		return err
	}

	if err := s.email.SendTripReport(ctx, profile.Email, profile.FullName, trip.Name, pdf); err != nil {
		return fmt.Errorf("sending trip report: %w", err)
	}
	s.log.Infow("trip report emailed", "user_id", userID, "trip_id", tripID, "to", profile.Email)
	return nil
}
