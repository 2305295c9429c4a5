package nba

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	errs "nbafetch/pkg/errors"
	"nbafetch/pkg/logger"
	"nbafetch/pkg/retry"
)

// BaseURL is the stats service root.
const BaseURL = "https://stats.nba.com/stats"

// Client talks to the stats service. Every endpoint method performs its HTTP
// call under bounded exponential-backoff retry and increments the call
// counter once per attempt.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	counter    *Counter
	retryCfg   retryConfig
	logger     logger.Logger
}

type retryConfig struct {
	maxAttempts int
	baseDelay   time.Duration
	multiplier  float64
}

// Options configures a Client.
type Options struct {
	// Timeout is the per-request HTTP timeout
	Timeout time.Duration
	// Retries is the attempt ceiling per call
	Retries int
	// BaseDelay is the backoff after the first failed attempt
	BaseDelay time.Duration
	// BackoffMultiplier grows the backoff each attempt
	BackoffMultiplier float64
	// BaseURL overrides the service root (tests)
	BaseURL string
	// Counter receives one increment per attempted call
	Counter *Counter
	// Logger for request logging
	Logger logger.Logger
}

// NewClient creates a stats service client. The service rejects requests
// without browser-looking headers, so they are always set.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	if opts.Retries < 1 {
		opts.Retries = 5
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 3 * time.Second
	}
	if opts.BackoffMultiplier < 1 {
		opts.BackoffMultiplier = 2.0
	}
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.Counter == nil {
		opts.Counter = NewCounter()
	}
	if opts.Logger == nil {
		opts.Logger = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		headers: map[string]string{
			"Accept":          "application/json",
			"Referer":         "https://www.nba.com/",
			"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Accept-Language": "en-US,en;q=0.9",
		},
		baseURL: opts.BaseURL,
		counter: opts.Counter,
		retryCfg: retryConfig{
			maxAttempts: opts.Retries,
			baseDelay:   opts.BaseDelay,
			multiplier:  opts.BackoffMultiplier,
		},
		logger: opts.Logger,
	}
}

// Counter returns the client's call counter.
func (c *Client) Counter() *Counter {
	return c.counter
}

// SetHeader sets a custom header for all subsequent requests.
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// get fetches one endpoint under retry and decodes the result sets.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]ResultTable, error) {
	return c.getWithRetries(ctx, endpoint, params, c.retryCfg.maxAttempts, c.retryCfg.baseDelay)
}

func (c *Client) getWithRetries(ctx context.Context, endpoint string, params url.Values, attempts int, baseDelay time.Duration) ([]ResultTable, error) {
	cfg := &retry.Config{
		MaxAttempts: attempts,
		Backoff: &retry.ExponentialBackoff{
			BaseDelay:  baseDelay,
			MaxDelay:   60 * time.Second,
			Multiplier: c.retryCfg.multiplier,
		},
		RetryIf:   retry.DefaultRetryIf,
		OnAttempt: func(int) { c.counter.Increment() },
		Context:   ctx,
		Logger:    c.logger,
	}

	tables, err := retry.DoWithResult(func() ([]ResultTable, error) {
		return c.doOnce(ctx, endpoint, params)
	}, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	return tables, nil
}

// doOnce performs a single request attempt. Transport failures, bad statuses
// and undecodable bodies are all reported as typed errors; the retry layer
// treats them uniformly.
func (c *Client) doOnce(ctx context.Context, endpoint string, params url.Values) ([]ResultTable, error) {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnWithFields("request failed", map[string]interface{}{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &errs.Error{
			Type:    errs.TypeForStatusCode(resp.StatusCode),
			Message: fmt.Sprintf("unexpected status %s", resp.Status),
			Code:    resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
		}
	}

	var env envelope
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to decode response: %v", err),
		}
	}

	sets := env.sets()
	if len(sets) == 0 {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeEmpty,
			Message: "response contained no result sets",
		}
	}

	tables := make([]ResultTable, 0, len(sets))
	for _, rs := range sets {
		t, err := rs.toTable()
		if err != nil {
			return nil, &errs.Error{
				Type:    errs.ErrorTypeParsing,
				Message: err.Error(),
			}
		}
		tables = append(tables, ResultTable{Name: rs.Name, Table: t})
	}

	c.logger.DebugWithFields("request completed", map[string]interface{}{
		"endpoint":    endpoint,
		"result_sets": len(tables),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return tables, nil
}
