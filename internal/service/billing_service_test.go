package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tripstack/internal/config"
	"tripstack/internal/domain"
	"tripstack/internal/logger"
	"tripstack/internal/port"
	"tripstack/internal/service"
	"tripstack/mocks"
)

func testBillingConfig() *config.BillingConfig {
	return &config.BillingConfig{
		ProPriceID:  "price_pro",
		TeamPriceID: "price_team",
	}
}

func TestBillingService_SubscriptionStatus_AdminAlwaysSubscribed(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	provider := new(mocks.MockBillingProvider)
	svc := service.NewBillingService(userRepo, provider, testBillingConfig(), logger.NewNop())

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.Profile{
		ID:               userID,
		Email:            "admin@example.com",
		IsAdmin:          true,
		SubscriptionTier: domain.TierTeam,
	}, nil)

	status, err := svc.SubscriptionStatus(context.Background(), userID)

	require.NoError(t, err)
	assert.True(t, status.Subscribed)
	assert.True(t, status.IsAdmin)
	assert.Equal(t, domain.TierTeam, status.Tier)
	// Admins never hit the payment provider
	provider.AssertNotCalled(t, "SubscriptionByEmail", mock.Anything, mock.Anything)
}

func TestBillingService_SubscriptionStatus_ActiveSubscriber(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	provider := new(mocks.MockBillingProvider)
	svc := service.NewBillingService(userRepo, provider, testBillingConfig(), logger.NewNop())

	userID := uuid.New()
	periodEnd := time.Now().Add(30 * 24 * time.Hour)
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.Profile{
		ID:               userID,
		Email:            "pro@example.com",
		SubscriptionTier: domain.TierFree,
	}, nil)
	provider.On("SubscriptionByEmail", mock.Anything, "pro@example.com").Return(&port.SubscriptionInfo{
		Active:           true,
		Tier:             domain.TierPro,
		CurrentPeriodEnd: &periodEnd,
	}, nil)
	// The stale cached tier gets synced
	userRepo.On("UpdateSubscription", mock.Anything, userID, domain.TierPro, "").Return(nil)

	status, err := svc.SubscriptionStatus(context.Background(), userID)

	require.NoError(t, err)
	assert.True(t, status.Subscribed)
	assert.Equal(t, domain.TierPro, status.Tier)
	assert.Equal(t, &periodEnd, status.SubscriptionEnd)
	userRepo.AssertExpectations(t)
}

func TestBillingService_SubscriptionStatus_NotSubscribed(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	provider := new(mocks.MockBillingProvider)
	svc := service.NewBillingService(userRepo, provider, testBillingConfig(), logger.NewNop())

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.Profile{
		ID:               userID,
		Email:            "free@example.com",
		SubscriptionTier: domain.TierFree,
	}, nil)
	provider.On("SubscriptionByEmail", mock.Anything, "free@example.com").Return(&port.SubscriptionInfo{
		Active: false,
		Tier:   domain.TierFree,
	}, nil)

	status, err := svc.SubscriptionStatus(context.Background(), userID)

	require.NoError(t, err)
	assert.False(t, status.Subscribed)
	assert.Nil(t, status.SubscriptionEnd)
	userRepo.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBillingService_CreateCheckout(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	provider := new(mocks.MockBillingProvider)
	svc := service.NewBillingService(userRepo, provider, testBillingConfig(), logger.NewNop())

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.Profile{
		ID:    userID,
		Email: "buyer@example.com",
	}, nil)
	provider.On("CreateCheckoutSession", mock.Anything, "buyer@example.com", "price_pro").
		Return("https://checkout.stripe.com/c/pay/cs_123", nil)

	url, err := svc.CreateCheckout(context.Background(), userID, service.CheckoutInput{PriceID: "price_pro"})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_123", url)
}

func TestBillingService_CreateCheckout_UnknownPrice(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	provider := new(mocks.MockBillingProvider)
	svc := service.NewBillingService(userRepo, provider, testBillingConfig(), logger.NewNop())

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.Profile{ID: userID}, nil)

	_, err := svc.CreateCheckout(context.Background(), userID, service.CheckoutInput{PriceID: "price_evil"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything, mock.Anything)
}
