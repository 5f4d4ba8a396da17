package swfilms

import (
	"errors"

	"github.com/pthm/swfilms/internal/swapi"
)

// Sentinel errors for component operations.
var (
	ErrNotFound         = errors.New("swfilms: resource not found")
	ErrDecryptFailed    = errors.New("swfilms: parameter decryption failed")
	ErrSignatureInvalid = errors.New("swfilms: signature verification failed")
	ErrInvalidFormat    = errors.New("swfilms: invalid parameter format")
	ErrHydrationFailed  = errors.New("swfilms: hydration failed")
)

// IsNotFound checks if err is a not-found error, locally or upstream.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, swapi.ErrNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}
