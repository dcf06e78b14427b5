package uow

import (
	"errors"

	"adaptive-lending/internal/domain/loan"
)

// DefaultConflictRetries bounds the engine's only internal retry: a
// store-conflict on a single-record atomic update is retried with fresh
// reads; anything that persists past the budget surfaces to the caller.
const DefaultConflictRetries = 3

// RetryConflict runs fn, retrying with fresh reads on ErrStoreConflict up
// to attempts times. Every other error returns immediately.
func RetryConflict(attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !errors.Is(err, loan.ErrStoreConflict) {
			return err
		}
	}
	return err
}
