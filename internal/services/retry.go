package services

import (
	"context"
	"log/slog"
	"time"

	"roomcalendar/internal/domain"
)

// Retry defaults and limits. MaxAttemptsLimit keeps BaseDelay * 2^(n-1) far from overflow.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
	MaxAttemptsLimit   = 10
	MaxBaseDelay       = time.Minute
)

// Retrier bounds how a remote operation is repeated. The delay before attempt n+1 is
// BaseDelay * 2^(n-1).
type Retrier struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Logger      *slog.Logger
	// Sleep waits for d or until ctx is done. Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewRetrier returns a Retrier, falling back to the defaults for non-positive values and
// clamping values above the limits.
func NewRetrier(maxAttempts int, baseDelay time.Duration, logger *slog.Logger) Retrier {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	maxAttempts = min(maxAttempts, MaxAttemptsLimit)
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	baseDelay = min(baseDelay, MaxBaseDelay)
	return Retrier{MaxAttempts: maxAttempts, BaseDelay: baseDelay, Logger: logger}
}

// Backoff returns the wait after the given 1-indexed failed attempt.
func (r Retrier) Backoff(attempt int) time.Duration {
	return r.BaseDelay * time.Duration(1<<(attempt-1))
}

func (r Retrier) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		return r.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// withRetry runs fn until it succeeds, fails with a non-retryable error, or the attempt budget
// is spent. The returned error is always classified.
func withRetry[T any](ctx context.Context, r Retrier, source domain.Source, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for attempt := 1; ; attempt++ {
		logger.DebugContext(ctx, "remote call", "op", op, "attempt", attempt, "max_attempts", attempts)
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		classified := Classify(err, source)
		if !classified.Retryable() || attempt >= attempts {
			logger.WarnContext(ctx, "remote call failed", "op", op, "attempts", attempt, "kind", classified.Kind, "err", err)
			return zero, classified
		}
		delay := r.Backoff(attempt)
		logger.WarnContext(ctx, "remote call failed, retrying", "op", op, "attempt", attempt, "delay_ms", delay.Milliseconds(), "kind", classified.Kind, "err", err)
		if err := r.sleep(ctx, delay); err != nil {
			return zero, classified
		}
	}
}

// withRetryErr is withRetry for operations without a result.
func withRetryErr(ctx context.Context, r Retrier, source domain.Source, op string, fn func(context.Context) error) error {
	_, err := withRetry(ctx, r, source, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
