package confluence

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"
)

// RetryPolicy describes how the client handles transient HTTP failures.
// It is plain data so tests can shrink the delays and callers can tune
// the schedule without touching the loop.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, the first call included.
	MaxAttempts int
	// Delays holds the backoff schedule indexed by retry number. Retries
	// past the end of the slice reuse the last entry.
	Delays []time.Duration
	// RetryableStatus lists the HTTP statuses worth retrying. Everything
	// else fails immediately.
	RetryableStatus map[int]bool
}

// DefaultRetryPolicy retries rate limiting and transient unavailability
// up to three times with a 1s, 2s, 4s backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		Delays:      []time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		RetryableStatus: map[int]bool{
			429: true, // Too Many Requests
			503: true, // Service Unavailable
		},
	}
}

// backoff returns the delay before the given retry (zero-based). A
// Retry-After header carrying a positive whole number of seconds
// overrides the schedule; anything else falls back to it.
func (p RetryPolicy) backoff(retry int, retryAfter string) time.Duration {
	if retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	if len(p.Delays) == 0 {
		return 0
	}
	if retry >= len(p.Delays) {
		retry = len(p.Delays) - 1
	}
	return p.Delays[retry]
}

// withRetry runs op until it succeeds, fails with a non-retryable error,
// or exhausts the policy. Only status failures listed in the policy are
// retried; transport errors and everything else propagate immediately.
// No delay is spent after the final attempt.
func withRetry[T any](ctx context.Context, policy RetryPolicy, logger *slog.Logger, op func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		var se *statusError
		if !errors.As(err, &se) || !policy.RetryableStatus[se.status] {
			return zero, err
		}
		if attempt == policy.MaxAttempts-1 {
			break
		}

		delay := policy.backoff(attempt, se.retryAfter)
		logger.Warn("transient error from api, retrying",
			"status", se.status,
			"delay", delay,
			"attempt", attempt+1,
			"max_attempts", policy.MaxAttempts)
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
	return zero, lastErr
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
