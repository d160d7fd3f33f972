package storage

import (
	"context"
	"time"
)

// Timeout budgets and messages for device storage and AI requests
const (
	StorageTimeout = 4 * time.Second
	AITimeout      = 20 * time.Second

	LoadTimeoutMessage = "Timed out while reading local storage."
	SaveTimeoutMessage = "Timed out while saving locally."
	AITimeoutMessage   = "AI request timed out. Please try again."
)

// WithTimeout runs op and returns its outcome if it settles within d.
// Otherwise it returns a *TimeoutError carrying message. op runs on a context
// detached from ctx's cancellation, so it keeps running after expiry or after
// the caller goes away; its late result is discarded.
func WithTimeout[T any](ctx context.Context, d time.Duration, message string, op func(context.Context) (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}

	opCtx := context.WithoutCancel(ctx)
	done := make(chan result, 1)
	go func() {
		v, err := op(opCtx)
		done <- result{value: v, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	var zero T
	select {
	case r := <-done:
		return r.value, r.err
	case <-timer.C:
		return zero, &TimeoutError{Message: message}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
