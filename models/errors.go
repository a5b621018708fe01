package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrFutureDate        = errors.New("future dates are not allowed")
	ErrInsufficientData  = errors.New("insufficient CSV data")
	ErrUpstreamNotSet    = errors.New("upstream orders URL is not configured")
	ErrParserUnavailable = errors.New("prompt parser is not configured")
	ErrEmptyPrompt       = errors.New("prompt cannot be empty")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSchedulerStopped  = errors.New("auto-refresh is not running")
)

// UpstreamError carries the status of the last failed call to the order API.
// Status is 0 for transport failures.
type UpstreamError struct {
	Status   int
	Attempts int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream request failed after %d attempt(s): %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("upstream returned %d after %d attempt(s): %v", e.Status, e.Attempts, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
