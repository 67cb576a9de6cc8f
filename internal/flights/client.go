// Package flights looks up live flight status from the AviationStack API and
// reshapes it into the application's flight record.
package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"tripstack/internal/config"
	"tripstack/internal/domain"
	"tripstack/internal/port"
)

const apiURL = "https://api.aviationstack.com/v1/flights"

// offsetSuffixRe matches a trailing timezone offset or Z designator.
// Upstream timestamps are already airport-local; the suffix is stripped
// textually, never converted.
var offsetSuffixRe = regexp.MustCompile(`([+-]\d{2}:\d{2}|Z)$`)

// Client implements port.FlightData against AviationStack.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates a flight-status client from config. An empty endpoint
// uses the public API URL.
func NewClient(cfg *config.FlightsConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

var _ port.FlightData = (*Client)(nil)

// apiResponse models the AviationStack flights response.
type apiResponse struct {
	Data []struct {
		FlightStatus string `json:"flight_status"`
		Departure    apiLeg `json:"departure"`
		Arrival      apiLeg `json:"arrival"`
		Airline      struct {
			Name string `json:"name"`
		} `json:"airline"`
		Flight struct {
			IATA string `json:"iata"`
		} `json:"flight"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type apiLeg struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	Terminal  string `json:"terminal"`
	Gate      string `json:"gate"`
	Delay     int    `json:"delay"`
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated"`
	Actual    string `json:"actual"`
}

// Lookup fetches the status of a flight on a date. A missing flight or an
// upstream logical error returns domain.ErrNotFound so the handler can map
// it to a friendly payload instead of an HTTP error.
func (c *Client) Lookup(ctx context.Context, flightNumber, flightDate string) (*domain.FlightStatus, error) {
	q := url.Values{}
	q.Set("access_key", c.apiKey)
	q.Set("flight_iata", flightNumber)
	q.Set("flight_date", flightDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling flight API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight API error (status %d): %s", resp.StatusCode, body)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if parsed.Error != nil || len(parsed.Data) == 0 {
		return nil, domain.ErrNotFound
	}

	f := parsed.Data[0]
	return &domain.FlightStatus{
		FlightNumber: f.Flight.IATA,
		Airline:      f.Airline.Name,
		Status:       f.FlightStatus,
		Departure:    reshapeLeg(f.Departure),
		Arrival:      reshapeLeg(f.Arrival),
	}, nil
}

func reshapeLeg(leg apiLeg) domain.FlightLeg {
	return domain.FlightLeg{
		Airport:      leg.Airport,
		IATA:         leg.IATA,
		Terminal:     leg.Terminal,
		Gate:         leg.Gate,
		Scheduled:    stripOffset(leg.Scheduled),
		Estimated:    stripOffset(leg.Estimated),
		Actual:       stripOffset(leg.Actual),
		DelayMinutes: leg.Delay,
	}
}

func stripOffset(ts string) string {
	return offsetSuffixRe.ReplaceAllString(ts, "")
}
