// Package gateways implements the HTTP adapters for upstream release indexes
// and target header detection.
package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/ochairo/stackcheck/internal/domain/entities"
	"github.com/ochairo/stackcheck/internal/domain/interfaces"
)

const (
	// Initial backoff duration between retries
	initialBackoff = 1 * time.Second
	// Max backoff duration
	maxBackoff = 32 * time.Second
	// Upper bound on any response body we read
	maxBodySize = 16 << 20
)

// HTTPFetcher issues the GET requests shared by every gateway
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	retries   int
	backoff   time.Duration
	logger    interfaces.Logger
}

// NewHTTPFetcher creates a fetcher bounded by cfg.Timeout. Redirects are
// followed with the net/http defaults.
func NewHTTPFetcher(cfg entities.HTTPConfig, logger interfaces.Logger) *HTTPFetcher {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = entities.DefaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = entities.DefaultUserAgent
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		retries:   cfg.Retries,
		backoff:   initialBackoff,
		logger:    logger,
	}
}

// isRetryableError checks if an HTTP status code is retryable
func isRetryableError(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests, // 429
		http.StatusInternalServerError, // 500
		http.StatusBadGateway,          // 502
		http.StatusServiceUnavailable,  // 503
		http.StatusGatewayTimeout:      // 504
		return true
	default:
		return false
	}
}

// calculateBackoff returns the backoff duration for a retry attempt
func calculateBackoff(base time.Duration, attempt int) time.Duration {
	backoff := float64(base) * math.Pow(2, float64(attempt))
	if backoff > float64(maxBackoff) {
		backoff = float64(maxBackoff)
	}
	return time.Duration(backoff)
}

// Get performs a GET and returns the response whatever its status.
// The caller must close the body.
func (f *HTTPFetcher) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	return f.doWithRetry(ctx, req)
}

// doWithRetry executes a request, retrying network errors and retryable
// statuses up to f.retries extra times. With zero retries it is a single attempt.
func (f *HTTPFetcher) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			wait := calculateBackoff(f.backoff, attempt-1)
			f.logger.Debug("retrying request",
				interfaces.F("url", req.URL.String()),
				interfaces.F("attempt", attempt),
				interfaces.F("backoff", wait))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		resp, err = f.client.Do(req)
		if err != nil {
			if attempt < f.retries {
				continue
			}
			return nil, err
		}

		if !isRetryableError(resp.StatusCode) || attempt == f.retries {
			f.logger.Debug("fetched",
				interfaces.F("url", req.URL.String()),
				interfaces.F("status", resp.StatusCode))
			return resp, nil
		}

		//nolint:errcheck,gosec // G104: Best effort close before retry
		resp.Body.Close()
	}

	return resp, err
}

// GetBody fetches url and returns its body. Non-2xx statuses are not errors.
func (f *HTTPFetcher) GetBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// GetJSON fetches url and decodes its body into v
func (f *HTTPFetcher) GetJSON(ctx context.Context, url string, v interface{}) error {
	body, err := f.GetBody(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON from %s: %w", url, err)
	}

	return nil
}
