package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("employee not found")
	ErrConstraintViolation = errors.New("email already registered")
)

// PersistenceError reports a failure of the underlying database.
// The operation that produced it has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a PersistenceError for op. It returns nil for a nil err.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
