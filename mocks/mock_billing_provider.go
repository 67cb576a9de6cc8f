package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripstack/internal/port"
)

// MockBillingProvider is a mock implementation of port.BillingProvider.
type MockBillingProvider struct {
	mock.Mock
}

func (m *MockBillingProvider) SubscriptionByEmail(ctx context.Context, email string) (*port.SubscriptionInfo, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.SubscriptionInfo), args.Error(1)
}

func (m *MockBillingProvider) CreateCheckoutSession(ctx context.Context, customerEmail, priceID string) (string, error) {
	args := m.Called(ctx, customerEmail, priceID)
	return args.String(0), args.Error(1)
}
