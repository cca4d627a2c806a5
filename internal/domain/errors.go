package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error categories surfaced to the web layer. Every failure out of the
// aggregation path wraps exactly one of these, so callers can classify
// with errors.Is and pick a user-facing message.
var (
	// ErrInvalidURL means the submitted profile URL or handle could not be
	// parsed into a valid GitHub username.
	ErrInvalidURL = errors.New("invalid profile URL")

	// ErrProfileNotFound means the username does not exist on GitHub.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrRateLimited means the GitHub API quota is exhausted. The wrapping
	// RateLimitedError carries the retry-after hint when one was provided.
	ErrRateLimited = errors.New("rate limited by GitHub")

	// ErrAuth means GitHub rejected the configured API token.
	ErrAuth = errors.New("github authentication failed")

	// ErrUpstream covers any other upstream failure, including network errors.
	ErrUpstream = errors.New("github request failed")
)

// RateLimitedError is returned when the GitHub API reports quota exhaustion.
// RetryAfter is zero when the upstream response carried no usable hint.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited by GitHub, retry after %s", e.RetryAfter.Round(time.Second))
	}
	return "rate limited by GitHub"
}

// Unwrap lets errors.Is(err, ErrRateLimited) match while errors.As still
// extracts the hint.
func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}
