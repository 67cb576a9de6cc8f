package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tripstack/internal/domain"
	"tripstack/internal/service"
	"tripstack/mocks"
)

func TestExpenseService_Create(t *testing.T) {
	expenseRepo := new(mocks.MockExpenseRepo)
	tripRepo := new(mocks.MockTripRepo)
	svc := service.NewExpenseService(expenseRepo, tripRepo)

	userID := uuid.New()
	expenseRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Expense")).
		Run(func(args mock.Arguments) {
			e := args.Get(1).(*domain.Expense)
			assert.Equal(t, userID, e.UserID)
			assert.Equal(t, domain.CategoryMeals, e.Category)
		}).
		Return(nil)

	expense, err := svc.Create(context.Background(), userID, service.ExpenseInput{
		Merchant: "Cafe Delta",
		Amount:   decimal.NewFromFloat(42.5),
		Currency: "EUR",
		Category: domain.CategoryMeals,
	})

	require.NoError(t, err)
	assert.Equal(t, "Cafe Delta", expense.Merchant)
	expenseRepo.AssertExpectations(t)
}

func TestExpenseService_Create_EmptyCategoryDefaultsToOther(t *testing.T) {
	expenseRepo := new(mocks.MockExpenseRepo)
	tripRepo := new(mocks.MockTripRepo)
	svc := service.NewExpenseService(expenseRepo, tripRepo)

	expenseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	expense, err := svc.Create(context.Background(), uuid.New(), service.ExpenseInput{
		Merchant: "Somewhere",
		Amount:   decimal.NewFromInt(10),
		Currency: "USD",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryOther, expense.Category)
}

func TestExpenseService_Create_InvalidCategory(t *testing.T) {
	expenseRepo := new(mocks.MockExpenseRepo)
	tripRepo := new(mocks.MockTripRepo)
	svc := service.NewExpenseService(expenseRepo, tripRepo)

	_, err := svc.Create(context.Background(), uuid.New(), service.ExpenseInput{
		Merchant: "Somewhere",
		Amount:   decimal.NewFromInt(10),
		Currency: "USD",
		Category: "bribes",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	expenseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExpenseService_Create_TripMustBelongToUser(t *testing.T) {
	expenseRepo := new(mocks.MockExpenseRepo)
	tripRepo := new(mocks.MockTripRepo)
	svc := service.NewExpenseService(expenseRepo, tripRepo)

	userID := uuid.New()
	tripID := uuid.New()
	tripRepo.On("GetByID", mock.Anything, userID, tripID).Return(nil, domain.ErrTripNotFound)

	_, err := svc.Create(context.Background(), userID, service.ExpenseInput{
		TripID:   &tripID,
		Merchant: "Cafe Delta",
		Amount:   decimal.NewFromInt(10),
		Currency: "EUR",
	})

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
	expenseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExpenseService_Update(t *testing.T) {
	expenseRepo := new(mocks.MockExpenseRepo)
	tripRepo := new(mocks.MockTripRepo)
	svc := service.NewExpenseService(expenseRepo, tripRepo)

	userID := uuid.New()
	expenseID := uuid.New()
	existing := &domain.Expense{
		ID:       expenseID,
		UserID:   userID,
		Merchant: "Old Name",
		Amount:   decimal.NewFromInt(5),
		Currency: "USD",
		Category: domain.CategoryOther,
	}
	expenseRepo.On("GetByID", mock.Anything, userID, expenseID).Return(existing, nil)
	expenseRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Expense")).Return(nil)

	updated, err := svc.Update(context.Background(), userID, expenseID, service.ExpenseInput{
		Merchant: "New Name",
		Amount:   decimal.NewFromFloat(7.25),
		Currency: "USD",
		Category: domain.CategoryTransport,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Merchant)
	assert.Equal(t, domain.CategoryTransport, updated.Category)
	assert.True(t, updated.Amount.Equal(decimal.NewFromFloat(7.25)))
}

func TestExpenseService_Update_NotFound(t *testing.T) {
	expenseRepo := new(mocks.MockExpenseRepo)
	tripRepo := new(mocks.MockTripRepo)
	svc := service.NewExpenseService(expenseRepo, tripRepo)

	userID := uuid.New()
	expenseID := uuid.New()
	expenseRepo.On("GetByID", mock.Anything, userID, expenseID).Return(nil, domain.ErrExpenseNotFound)

	_, err := svc.Update(context.Background(), userID, expenseID, service.ExpenseInput{
		Merchant: "New Name",
		Amount:   decimal.NewFromInt(1),
		Currency: "USD",
	})

	assert.ErrorIs(t, err, domain.ErrExpenseNotFound)
}
