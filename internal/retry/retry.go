// Package retry wraps fallible fetch operations in exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout reports that the caller's context expired before the operation
// succeeded. It is distinct from the operation's own last error.
var ErrTimeout = errors.New("retry: operation timed out")

// Config controls the retry schedule.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultConfig matches the fetch policy used across the dashboard: three
// attempts, delays of 1s then 2s between them.
func DefaultConfig() Config {
	return Config{MaxAttempts: 3, BaseDelay: time.Second}
}

// Do runs op until it succeeds or cfg.MaxAttempts consecutive failures have
// occurred, sleeping cfg.BaseDelay × 2^(attempt−1) between attempts. The
// operation is treated as atomic; on exhaustion the last error is returned.
// Context cancellation mid-backoff abandons the remaining attempts and
// returns ErrTimeout wrapping the context error.
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	var zero T

	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	var lastErr error

	delay := cfg.BaseDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("%w: %w", ErrTimeout, err)
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		case <-timer.C:
		}

		delay *= 2
	}

	return zero, lastErr
}
