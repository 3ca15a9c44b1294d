package store

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers branch on these with errors.Is to pick a status
// code; the wrapped detail stays server-side.
var (
	// ErrValidation marks malformed input rejected before any write.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a single-row lookup whose absence the caller treats
	// as meaningful. Query failures are never mapped onto it.
	ErrNotFound = errors.New("not found")
	// ErrStorage marks a connection, pool or query failure.
	ErrStorage = errors.New("storage failure")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
