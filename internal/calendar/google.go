// Package calendar integrates with the Google Calendar API: OAuth token
// refresh plus all-day event insert and delete on the user's primary
// calendar.
package calendar

import (
	"bytes"
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

const (
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleCalendarURL = "https://www.googleapis.com/calendar/v3"
)

// Client implements port.CalendarProvider against Google Calendar.
type Client struct {
	clientID      string
	clientSecret  string
	tokenEndpoint string
	apiEndpoint   string
	client        *http.Client
}

// NewClient creates a Google Calendar client from config. Empty endpoints
// use the public Google URLs.
func NewClient(cfg *config.CalendarConfig) *Client {
	tokenEndpoint := cfg.TokenEndpoint
	if tokenEndpoint == "" {
		tokenEndpoint = googleTokenURL
	}
	apiEndpoint := cfg.APIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = googleCalendarURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		clientID:      cfg.ClientID,
		clientSecret:  cfg.ClientSecret,
		tokenEndpoint: tokenEndpoint,
		apiEndpoint:   apiEndpoint,
		client:        &http.Client{Timeout: timeout},
	}
}

var _ port.CalendarProvider = (*Client)(nil)

// RefreshAccessToken exchanges a stored refresh token for a fresh access
// token. A rejected refresh token maps to domain.ErrCalendarNotLinked so
// the caller can tell the user to relink their account.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*port.OAuthToken, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", refreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrCalendarNotLinked
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint error (status %d): %s", resp.StatusCode, body)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling token response: %w", err)
	}
	return &port.OAuthToken{
		AccessToken: parsed.AccessToken,
		Expiry:      time.Now().Add(time.Duration(parsed.ExpiresIn) * time.Second),
	}, nil
}

// googleEvent is the wire shape of an all-day Calendar event. All-day
// events use date-only start/end, and the end date is exclusive.
type googleEvent struct {
	Summary     string     `json:"summary"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Start       googleDate `json:"start"`
	End         googleDate `json:"end"`
}

type googleDate struct {
	Date string `json:"date"`
}

// InsertEvent creates an all-day event on the user's primary calendar and
// returns the provider event ID.
func (c *Client) InsertEvent(ctx context.Context, accessToken string, ev port.CalendarEvent) (string, error) {
	payload := googleEvent{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       googleDate{Date: ev.StartDate.Format("2006-01-02")},
		End:         googleDate{Date: ev.EndDate.AddDate(0, 0, 1).Format("2006-01-02")},
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiEndpoint+"/calendars/primary/events", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("inserting event: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("calendar API error (status %d): %s", resp.StatusCode, body)
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling event response: %w", err)
	}
	return parsed.ID, nil
}

// DeleteEvent removes an event from the user's primary calendar. An
// already-deleted event is not an error.
func (c *Client) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.apiEndpoint+"/calendars/primary/events/"+url.PathEscape(eventID), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK, http.StatusNotFound, http.StatusGone:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("calendar API error (status %d): %s", resp.StatusCode, body)
	}
}
