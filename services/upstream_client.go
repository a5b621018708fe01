package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Modeva-Ecommerce/ops-dashboard-backend/config"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
)

const (
	defaultRetryBaseDelay = 500 * time.Millisecond
	defaultRetryMaxDelay  = 5 * time.Second
)

// UpstreamClient calls the third-party order API, which answers with CSV embedded in JSON.
type UpstreamClient struct {
	ordersURL   string
	apiKey      string
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	client      *http.Client
}

func NewUpstreamClient(cfg config.UpstreamConfig) *UpstreamClient {
	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &UpstreamClient{
		ordersURL:   cfg.OrdersURL,
		apiKey:      cfg.APIKey,
		maxAttempts: attempts,
		baseDelay:   defaultRetryBaseDelay,
		maxDelay:    defaultRetryMaxDelay,
		client:      &http.Client{Timeout: timeout},
	}
}

type upstreamResponse struct {
	Results json.RawMessage `json:"results"`
}

// retryableError marks failures worth another attempt (transport errors, 429, 5xx).
type retryableError struct{ err error }

func (e retryableError) Error() string { return e.err.Error() }
func (e retryableError) Unwrap() error { return e.err }

// FetchOrdersCSV returns the CSV text for the range. Transient failures are retried with
// exponential backoff; the last error is returned as *models.UpstreamError.
func (u *UpstreamClient) FetchOrdersCSV(ctx context.Context, r models.DateRange) (string, error) {
	if u.ordersURL == "" {
		return "", models.ErrUpstreamNotSet
	}

	var (
		lastErr    error
		lastStatus int
		attempts   int
	)
	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		attempts = attempt
		csvText, status, err := u.fetchOnce(ctx, r)
		if err == nil {
			if attempt > 1 {
				log.Printf("[upstream.orders] succeeded on attempt=%d range=%s", attempt, r)
			}
			return csvText, nil
		}
		lastErr, lastStatus = err, status

		var retry retryableError
		if !errors.As(err, &retry) || attempt == u.maxAttempts {
			break
		}

		delay := BackoffDelay(attempt-1, u.baseDelay, u.maxDelay)
		log.Printf("[upstream.orders] WARN attempt=%d/%d status=%d err=%v -> retry in %s",
			attempt, u.maxAttempts, status, err, delay)

		select {
		case <-ctx.Done():
			return "", &models.UpstreamError{Status: lastStatus, Attempts: attempt, Err: ctx.Err()}
		case <-time.After(delay):
		}
	}

	log.Printf("[upstream.orders] ERROR giving up range=%s status=%d err=%v", r, lastStatus, lastErr)
	return "", &models.UpstreamError{Status: lastStatus, Attempts: attempts, Err: lastErr}
}

func (u *UpstreamClient) fetchOnce(ctx context.Context, r models.DateRange) (string, int, error) {
	q := url.Values{}
	q.Set("startDate", r.StartDate)
	q.Set("endDate", r.EndDate)

	sep := "?"
	if strings.Contains(u.ordersURL, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.ordersURL+sep+q.Encode(), nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", 0, err
		}
		return "", 0, retryableError{fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, retryableError{fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("order API returned %d: %s", resp.StatusCode, truncate(string(body), 200))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return "", resp.StatusCode, retryableError{err}
		}
		return "", resp.StatusCode, err
	}

	var parsed upstreamResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", resp.StatusCode, fmt.Errorf("failed to parse order API response: %w", err)
	}

	return resultsText(parsed.Results), resp.StatusCode, nil
}

// resultsText accepts either a CSV string or an array of CSV lines.
func resultsText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "\n")
	}
	return ""
}

// BackoffDelay doubles base for every previous attempt and caps the result at max.
func BackoffDelay(attempt int, base, max time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= max {
			return max
		}
	}
	if d > max {
		return max
	}
	return d
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
