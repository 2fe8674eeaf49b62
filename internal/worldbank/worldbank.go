// Package worldbank queries the World Bank open data API for annual
// inflation series. It is the concrete inflation.Source used in production.
package worldbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"

	"github.com/Parsa-ux360/PriceForecastApp/internal/inflation"
	"github.com/Parsa-ux360/PriceForecastApp/internal/ratelimit"
)

const (
	// DefaultBaseURL is the production World Bank API endpoint.
	DefaultBaseURL = "https://api.worldbank.org/v2"

	// inflationIndicator is the World Bank series for annual CPI inflation (%).
	inflationIndicator = "FP.CPI.TOTL.ZG"

	// perPage keeps the full indicator history in a single page.
	perPage = "100"

	requestTimeout = 10 * time.Second

	// Retry configuration
	defaultRetryCount       = 3
	defaultRetryWaitTime    = 1 * time.Second
	defaultRetryMaxWaitTime = 10 * time.Second
)

// Client fetches inflation indicator series from the World Bank API.
type Client struct {
	client *resty.Client
	logger *zap.Logger
}

// NewClient creates a World Bank API client with retry logic and
// exponential backoff. A nil logger is replaced with a no-op logger.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{logger: logger}
	c.client = resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(requestTimeout).
		SetRetryCount(defaultRetryCount).
		SetRetryWaitTime(defaultRetryWaitTime).
		SetRetryMaxWaitTime(defaultRetryMaxWaitTime).
		AddRetryConditions(retryCondition).
		AddRetryHooks(c.retryHook)

	return c
}

// observation is the wire shape of one entry in the indicator series.
// Value is null for years without data.
type observation struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// Series returns the annual inflation series for a country, most recent
// year first, as published by the World Bank. The payload is a two-element
// JSON array of metadata followed by observations; anything shorter is
// malformed.
func (c *Client) Series(ctx context.Context, countryCode string) ([]inflation.Observation, error) {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIWorldBank); err != nil {
		return nil, NewTimeoutError(err)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format":   "json",
			"per_page": perPage,
		}).
		Get(fmt.Sprintf("/country/%s/indicator/%s", url.PathEscape(countryCode), inflationIndicator))

	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewNetworkError(err)
	}

	if !resp.IsSuccess() {
		return nil, ClassifyHTTPError(resp.StatusCode())
	}

	var payload []json.RawMessage
	if err := json.Unmarshal(resp.Bytes(), &payload); err != nil {
		return nil, NewValidationError(fmt.Sprintf("malformed response for %s: %v", countryCode, err))
	}
	if len(payload) < 2 {
		return nil, NewValidationError(fmt.Sprintf("response for %s has %d top-level elements, want 2", countryCode, len(payload)))
	}

	var entries []observation
	if err := json.Unmarshal(payload[1], &entries); err != nil {
		return nil, NewValidationError(fmt.Sprintf("malformed series for %s: %v", countryCode, err))
	}

	series := make([]inflation.Observation, 0, len(entries))
	for _, entry := range entries {
		series = append(series, inflation.Observation{
			Year:  entry.Date,
			Value: entry.Value,
		})
	}
	return series, nil
}

// retryCondition determines whether a request should be retried based on the response and error
func retryCondition(r *resty.Response, err error) bool {
	// Retry on network errors
	if err != nil {
		return true
	}

	// Retry on server errors (5xx), rate limiting (429), and request timeout (408)
	switch {
	case r.StatusCode() >= 500:
		return true
	case r.StatusCode() == 429:
		return true
	case r.StatusCode() == 408:
		return true
	}

	return false
}

// retryHook logs retry attempts for observability
func (c *Client) retryHook(r *resty.Response, err error) {
	if err != nil {
		c.logger.Debug("retrying request due to error",
			zap.String("url", r.Request.URL),
			zap.Int("attempt", r.Request.Attempt),
			zap.Error(err),
		)
		return
	}

	c.logger.Debug("retrying request due to status code",
		zap.String("url", r.Request.URL),
		zap.Int("attempt", r.Request.Attempt),
		zap.Int("status_code", r.StatusCode()),
	)
}
