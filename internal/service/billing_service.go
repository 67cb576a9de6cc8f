package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripstack/internal/config"
	"tripstack/internal/domain"
	"tripstack/internal/port"
)

// CheckoutInput is the DTO for checkout session requests.
type CheckoutInput struct {
	PriceID string `json:"priceId" binding:"required"`
}

// BillingService defines the subscription billing contract.
type BillingService interface {
	// SubscriptionStatus resolves the caller's current entitlement. Admin
	// accounts are always treated as subscribed.
	SubscriptionStatus(ctx context.Context, userID uuid.UUID) (*domain.SubscriptionStatus, error)
	CreateCheckout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (string, error)
}

type billingService struct {
	userRepo port.UserRepository
	provider port.BillingProvider
	cfg      *config.BillingConfig
	log      *zap.SugaredLogger
}

// NewBillingService creates a new BillingService implementation.
func NewBillingService(
	userRepo port.UserRepository,
	provider port.BillingProvider,
	cfg *config.BillingConfig,
	log *zap.SugaredLogger,
) BillingService {
	return &billingService{
		userRepo: userRepo,
		provider: provider,
		cfg:      cfg,
		log:      log,
	}
}

func (s *billingService) SubscriptionStatus(ctx context.Context, userID uuid.UUID) (*domain.SubscriptionStatus, error) {
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.IsAdmin {
		return &domain.SubscriptionStatus{
			Subscribed: true,
			Tier:       profile.SubscriptionTier,
			IsAdmin:    true,
		}, nil
	}

	info, err := s.provider.SubscriptionByEmail(ctx, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("checking subscription: %w", err)
	}

	// Keep the cached tier on the profile in sync with the provider.
	if info.Active && info.Tier != profile.SubscriptionTier {
		if err := s.userRepo.UpdateSubscription(ctx, userID, info.Tier, profile.StripeCustomerID); err != nil {
			s.log.Warnw("updating cached subscription tier", "user_id", userID, "error", err)
		}
	}

	return &domain.SubscriptionStatus{
		Subscribed:      info.Active,
		Tier:            info.Tier,
		IsAdmin:         false,
		SubscriptionEnd: info.CurrentPeriodEnd,
	}, nil
}

func (s *billingService) CreateCheckout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (string, error) {
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	// Only the configured subscription prices can be checked out.
	if input.PriceID != s.cfg.ProPriceID && input.PriceID != s.cfg.TeamPriceID {
		return "", fmt.Errorf("unknown price %q: %w", input.PriceID, domain.ErrNotFound)
	}

	url, err := s.provider.CreateCheckoutSession(ctx, profile.Email, input.PriceID)
	if err != nil {
		return "", fmt.Errorf("creating checkout: %w", err)
	}
	return url, nil
}
