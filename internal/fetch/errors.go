package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrSuspended signals that a resource is still being fetched. It is
	// control flow for boundaries, not a failure.
	ErrSuspended = errors.New("fetch: suspended")
	// ErrNoClient is returned by Use when the context carries no Client.
	ErrNoClient = errors.New("fetch: no client in context")
	// ErrDecode wraps JSON decoding failures of cached bodies.
	ErrDecode = errors.New("fetch: decode failed")
)

// SuspendedError carries the key a render suspended on.
type SuspendedError struct {
	Key string
}

func (e *SuspendedError) Error() string {
	return fmt.Sprintf("fetch: suspended on %q", e.Key)
}

func (e *SuspendedError) Unwrap() error {
	return ErrSuspended
}

// IsSuspended checks if err is a suspension.
func IsSuspended(err error) bool {
	return errors.Is(err, ErrSuspended)
}
