package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisordesk/advisordesk/internal/retry"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0

	got, err := retry.Do(context.Background(), retry.DefaultConfig(), func(context.Context) (int, error) {
		calls++
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 1, calls)
}

func TestDo_RecoversAfterFailures(t *testing.T) {
	cfg := retry.Config{MaxAttempts: 3, BaseDelay: time.Millisecond}
	calls := 0

	got, err := retry.Do(context.Background(), cfg, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}

		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	cfg := retry.Config{MaxAttempts: 3, BaseDelay: time.Millisecond}
	lastErr := errors.New("still broken")
	calls := 0

	_, err := retry.Do(context.Background(), cfg, func(context.Context) (int, error) {
		calls++
		return 0, lastErr
	})

	require.ErrorIs(t, err, lastErr)
	assert.NotErrorIs(t, err, retry.ErrTimeout)
	assert.Equal(t, 3, calls)
}

func TestDo_BackoffDoubles(t *testing.T) {
	cfg := retry.Config{MaxAttempts: 3, BaseDelay: 20 * time.Millisecond}

	start := time.Now()

	_, err := retry.Do(context.Background(), cfg, func(context.Context) (int, error) {
		return 0, errors.New("nope")
	})

	elapsed := time.Since(start)

	require.Error(t, err)
	// Two backoff sleeps: 20ms then 40ms.
	assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	cfg := retry.Config{MaxAttempts: 5, BaseDelay: time.Minute}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	calls := 0

	_, err := retry.Do(ctx, cfg, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("transient")
	})

	require.ErrorIs(t, err, retry.ErrTimeout)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, calls, "no further attempts after the context expires")
}

func TestDo_ContextAlreadyExpired(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0

	_, err := retry.Do(ctx, retry.DefaultConfig(), func(context.Context) (int, error) {
		calls++
		return 0, nil
	})

	require.ErrorIs(t, err, retry.ErrTimeout)
	assert.Zero(t, calls)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0

	_, err := retry.Do(context.Background(), retry.Config{}, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("nope")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
