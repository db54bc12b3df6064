package tasks

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks failures of the underlying database.
// Callers must not swallow it: a lost write would break carryover accounting.
var ErrStoreUnavailable = errors.New("task store unavailable")

// ValidationError is returned for malformed input to a mutating call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
