package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork is wrapped by NewRedisCache when the server does not
	// answer PING after every retry.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss marks a lookup of a key that is absent or expired.
	// Get reports misses as ok == false; stores layered on a Cache, such
	// as the download blob store, wrap ErrCacheMiss in their own errors.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks a failure worth another attempt, such as a
// refused connection while dialing redis.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryDelay is the first backoff delay; it doubles after each attempt.
var retryDelay = time.Second

// RetryWithBackoff calls fn up to 3 times, sleeping 1s then 2s between
// attempts. NewRedisCache wraps its startup PING in it.
// Errors not wrapped with Retryable end the loop at once, as does ctx.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := retryDelay
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
