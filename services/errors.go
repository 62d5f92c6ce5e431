// services/errors.go - Error taxonomy for the event log
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest means the submission failed local validation.
	// The store is never touched.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrAlreadyLogged means the idempotency guard tripped: the visit
	// is already on record and nothing was written.
	ErrAlreadyLogged = errors.New("already logged")
)

// StorageError wraps a failure of the underlying store, including
// transaction conflicts. Handlers report it generically; the cause
// stays attached for server-side logs.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
