package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
)

// Config configures exponential backoff.
type Config struct {
	// MaxAttempts includes the first try.
	MaxAttempts       int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	// Retryable decides whether an error is worth another attempt. Defaults to IsTransient.
	Retryable func(error) bool
}

// DefaultConfig returns 3 attempts starting at 100ms, capped at 5s.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       3,
		InitialDelay:      100 * time.Millisecond,
		MaxDelay:          5 * time.Second,
		BackoffMultiplier: 2.0,
		Retryable:         IsTransient,
	}
}

// IsTransient reports whether err is marked as apperrors.ErrTransient.
// Context cancellation is never transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, apperrors.ErrTransient)
}

// Result describes what happened across attempts.
type Result struct {
	Attempts  int
	LastError error
}

func (r Result) String() string {
	if r.LastError == nil {
		if r.Attempts == 1 {
			return "succeeded on first attempt"
		}
		return fmt.Sprintf("succeeded after %d attempts", r.Attempts)
	}
	return fmt.Sprintf("failed after %d attempts: %v", r.Attempts, r.LastError)
}

// Do runs fn until it succeeds, returns a non-retryable error, attempts run out or ctx ends.
// The returned error is the last one seen.
func Do(ctx context.Context, cfg Config, fn func(ctx context.Context) error) (Result, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = 100 * time.Millisecond
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 5 * time.Second
	}
	if cfg.BackoffMultiplier <= 0 {
		cfg.BackoffMultiplier = 2.0
	}
	if cfg.Retryable == nil {
		cfg.Retryable = IsTransient
	}

	var result Result
	delay := cfg.InitialDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result.Attempts = attempt
		if err := ctx.Err(); err != nil {
			result.LastError = err
			return result, err
		}

		err := fn(ctx)
		result.LastError = err
		if err == nil {
			return result, nil
		}
		if !cfg.Retryable(err) || attempt == cfg.MaxAttempts {
			return result, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			result.LastError = ctx.Err()
			return result, ctx.Err()
		case <-timer.C:
		}
		delay = time.Duration(float64(delay) * cfg.BackoffMultiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return result, result.LastError
}
