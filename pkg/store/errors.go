package store

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all storage drivers. Callers match these with
// errors.Is; the HTTP layer maps them to status codes.
var (
	// ErrNotFound signals that a requested record does not exist.
	// Absence on a lookup is expected, not exceptional.
	ErrNotFound = errors.New("record not found")

	// ErrUnsupported signals a capability gap in the active driver.
	// The operation was never attempted and will not succeed on retry.
	ErrUnsupported = errors.New("operation not supported by backend")

	// ErrTransient signals a backend or network failure that may succeed
	// on retry.
	ErrTransient = errors.New("transient storage failure")
)

// NotFound wraps ErrNotFound with the record kind and id.
func NotFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}

// Unsupported wraps ErrUnsupported with the backend and operation name.
func Unsupported(backend, op string) error {
	return fmt.Errorf("%w: %s does not implement %s", ErrUnsupported, backend, op)
}

// Transient wraps a backend error in ErrTransient, keeping the cause in
// the chain.
func Transient(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTransient, op, err)
}
