// Package billing talks to the Stripe API for subscription checks and
// checkout session creation.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripstack/internal/config"
	"tripstack/internal/domain"
	"tripstack/internal/port"
)

const stripeAPIURL = "https://api.stripe.com/v1"

// Client implements port.BillingProvider against the Stripe REST API.
type Client struct {
	secretKey   string
	proPriceID  string
	teamPriceID string
	successURL  string
	cancelURL   string
	endpoint    string
	client      *http.Client
}

// NewClient creates a Stripe client from config. An empty endpoint uses the
// public Stripe API URL.
func NewClient(cfg *config.BillingConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = stripeAPIURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		secretKey:   cfg.StripeSecretKey,
		proPriceID:  cfg.ProPriceID,
		teamPriceID: cfg.TeamPriceID,
		successURL:  cfg.SuccessURL,
		cancelURL:   cfg.CancelURL,
		endpoint:    endpoint,
		client:      &http.Client{Timeout: timeout},
	}
}

var _ port.BillingProvider = (*Client)(nil)

type customerList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type subscriptionList struct {
	Data []struct {
		Status           string `json:"status"`
		CurrentPeriodEnd int64  `json:"current_period_end"`
		Items            struct {
			Data []struct {
				Price struct {
					ID string `json:"id"`
				} `json:"price"`
			} `json:"data"`
		} `json:"items"`
	} `json:"data"`
}

type checkoutSession struct {
	URL string `json:"url"`
}

// SubscriptionByEmail resolves the customer by email and returns their
// active subscription, if any. A customer with no active subscription
// returns an inactive SubscriptionInfo, not an error.
func (c *Client) SubscriptionByEmail(ctx context.Context, email string) (*port.SubscriptionInfo, error) {
	var customers customerList
	q := url.Values{}
	q.Set("email", email)
	q.Set("limit", "1")
	if err := c.get(ctx, "/customers?"+q.Encode(), &customers); err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	if len(customers.Data) == 0 {
		return &port.SubscriptionInfo{Active: false, Tier: domain.TierFree}, nil
	}

	var subs subscriptionList
	q = url.Values{}
	q.Set("customer", customers.Data[0].ID)
	q.Set("status", "active")
	q.Set("limit", "1")
	if err := c.get(ctx, "/subscriptions?"+q.Encode(), &subs); err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	if len(subs.Data) == 0 {
		return &port.SubscriptionInfo{Active: false, Tier: domain.TierFree}, nil
	}

	sub := subs.Data[0]
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	tier := domain.TierFree
	for _, item := range sub.Items.Data {
		switch item.Price.ID {
		case c.proPriceID:
			tier = domain.TierPro
		case c.teamPriceID:
			tier = domain.TierTeam
		}
	}
	return &port.SubscriptionInfo{
		Active:           true,
		Tier:             tier,
		CurrentPeriodEnd: &periodEnd,
	}, nil
}

// CreateCheckoutSession creates a hosted checkout session for a
// subscription price and returns its redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, customerEmail, priceID string) (string, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("customer_email", customerEmail)
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)

	var session checkoutSession
	if err := c.post(ctx, "/checkout/sessions", form, &session); err != nil {
		return "", fmt.Errorf("creating checkout session: %w", err)
	}
	return session.URL, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling billing API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("billing API error (status %d): %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	return nil
}
