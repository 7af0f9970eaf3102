// Package retry provides a reusable attempt loop with configurable backoff,
// shared by the batch translator and the artifact store.
package retry

import (
	"context"
	"fmt"
	"time"
)

// BackoffFunc returns how long to wait after the given 1-based failed attempt.
type BackoffFunc func(attempt int) time.Duration

// Linear grows the wait by step per attempt: step, 2*step, 3*step, ...
func Linear(step time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * step
	}
}

// Do runs fn up to maxAttempts times, sleeping backoff(attempt) between
// failures. It returns the first successful result, or the last error once
// all attempts are exhausted. A cancelled context aborts the wait.
func Do[T any](ctx context.Context, maxAttempts int, backoff BackoffFunc, fn func() (T, error)) (T, error) {
	var zero T
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}
	}

	return zero, fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}
