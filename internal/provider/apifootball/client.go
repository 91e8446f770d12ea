// Package apifootball provides the HTTP client for the API-Football v3 API.
//
// API-Football uses header auth (x-rapidapi-key) and wraps every payload in
// an envelope carrying a result count and an errors marker. A 200 response
// with a populated errors marker still means the call failed (typically an
// entitlement or rate-limit problem on the free tier).
package apifootball

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL           string
	APIKey            string
	LeagueID          int
	Season            int
	RequestsPerMinute int
	HTTPClient        *http.Client // optional override, used by tests
}

// Client is the HTTP client for API-Football endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	leagueID   int
	season     int
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an API-Football client with rate limiting. Per-call
// deadlines are set by each operation, not on the underlying http.Client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		leagueID:   cfg.LeagueID,
		season:     cfg.Season,
		limiter:    rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		logger:     logger,
	}
}

// apiResponse is the common API-Football response envelope.
type apiResponse struct {
	Results  int             `json:"results"`
	Errors   json.RawMessage `json:"errors"`
	Response json.RawMessage `json:"response"`
}

// hasErrors reports whether the provider flagged an error inside a 200
// response. The errors field is [] or {} when clean.
func (r *apiResponse) hasErrors() bool {
	trimmed := bytes.TrimSpace(r.Errors)
	switch string(trimmed) {
	case "", "null", "[]", "{}":
		return false
	}
	return true
}

// get performs a rate-limited GET request to an API-Football endpoint with
// the given per-call timeout.
func (c *Client) get(ctx context.Context, path string, params url.Values, timeout time.Duration) (*apiResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	if parsed, err := url.Parse(c.baseURL); err == nil {
		req.Header.Set("x-rapidapi-host", parsed.Host)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API-Football %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	var result apiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

// truncate returns a truncated string for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
