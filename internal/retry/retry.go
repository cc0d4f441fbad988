package retry

import (
	"context"
	"errors"
	"time"
)

type Operation func(ctx context.Context) error
type IsRetryableError func(error) bool

type Config struct {
	MaxRetries    int
	Delays        []time.Duration
	IsRetryableFn IsRetryableError
}

// DefaultDelays are used when Config.Delays is nil.
var DefaultDelays = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as worth another attempt for IsRetryable.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// Do runs op until it succeeds, returns a non-retryable error, or the
// attempts are exhausted. The delay before attempt i+1 is Delays[i]; when
// there are more retries than delays the last delay is reused.
func Do(ctx context.Context, cfg Config, op Operation) error {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Delays == nil {
		cfg.Delays = DefaultDelays
	}
	if cfg.IsRetryableFn == nil {
		cfg.IsRetryableFn = IsRetryable
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay(cfg.Delays, attempt-1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		if !cfg.IsRetryableFn(err) {
			return err
		}
		lastErr = err
	}

	return lastErr
}

func delay(delays []time.Duration, i int) time.Duration {
	if len(delays) == 0 {
		return 0
	}
	if i >= len(delays) {
		return delays[len(delays)-1]
	}
	return delays[i]
}
