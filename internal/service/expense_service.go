package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tripstack/internal/domain"
	"tripstack/internal/port"
)

// ExpenseInput is the DTO for expense create and update requests.
type ExpenseInput struct {
	TripID        *uuid.UUID             `json:"trip_id"`
	Merchant      string                 `json:"merchant" binding:"required"`
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	Currency      string                 `json:"currency" binding:"required,len=3"`
	Category      domain.ExpenseCategory `json:"category"`
	ExpenseDate   *time.Time             `json:"expense_date"`
	PaymentMethod string                 `json:"payment_method"`
	ReceiptFileID *uuid.UUID             `json:"receipt_file_id"`
}

// ExpenseService defines the expense management contract.
type ExpenseService interface {
	Create(ctx context.Context, userID uuid.UUID, input ExpenseInput) (*domain.Expense, error)
	GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID, offset, limit int) ([]domain.Expense, int, error)
	Update(ctx context.Context, userID, expenseID uuid.UUID, input ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

type expenseService struct {
	expenseRepo port.ExpenseRepository
	tripRepo    port.TripRepository
}

// NewExpenseService creates a new ExpenseService implementation.
func NewExpenseService(expenseRepo port.ExpenseRepository, tripRepo port.TripRepository) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		tripRepo:    tripRepo,
	}
}

func (s *expenseService) Create(ctx context.Context, userID uuid.UUID, input ExpenseInput) (*domain.Expense, error) {
	if input.Category == "" {
		input.Category = domain.CategoryOther
	}
	if !domain.ValidExpenseCategories[input.Category] {
		return nil, domain.ErrInvalidCategory
	}

	// A trip reference must resolve to one of the caller's own trips.
	if input.TripID != nil {
		if _, err := s.tripRepo.GetByID(ctx, userID, *input.TripID); err != nil {
			return nil, err
		}
	}

	expense := &domain.Expense{
		UserID:        userID,
		TripID:        input.TripID,
		Merchant:      input.Merchant,
		Description:   input.Description,
		Amount:        input.Amount,
		Currency:      input.Currency,
		Category:      input.Category,
		ExpenseDate:   input.ExpenseDate,
		PaymentMethod: input.PaymentMethod,
		ReceiptFileID: input.ReceiptFileID,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) GetByID(ctx context.Context, userID, expenseID uuid.UUID) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(ctx, userID, expenseID)
}

func (s *expenseService) List(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID, offset, limit int) ([]domain.Expense, int, error) {
	return s.expenseRepo.ListByUser(ctx, userID, tripID, offset, limit)
}

func (s *expenseService) Update(ctx context.Context, userID, expenseID uuid.UUID, input ExpenseInput) (*domain.Expense, error) {
	if input.Category == "" {
		input.Category = domain.CategoryOther
	}
	if !domain.ValidExpenseCategories[input.Category] {
		return nil, domain.ErrInvalidCategory
	}

	expense, err := s.expenseRepo.GetByID(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	if input.TripID != nil {
		if _, err := s.tripRepo.GetByID(ctx, userID, *input.TripID); err != nil {
			return nil, err
		}
	}

	expense.TripID = input.TripID
	expense.Merchant = input.Merchant
	expense.Description = input.Description
	expense.Amount = input.Amount
	expense.Currency = input.Currency
	expense.Category = input.Category
	expense.ExpenseDate = input.ExpenseDate
	expense.PaymentMethod = input.PaymentMethod
	expense.ReceiptFileID = input.ReceiptFileID

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, userID, expenseID)
}
