package swapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDecode indicates the upstream body was not the JSON we expected.
	ErrDecode = errors.New("swapi: invalid response body")
	// ErrNotFound indicates the resource does not exist upstream.
	ErrNotFound = errors.New("swapi: resource not found")
)

// APIError represents a non-2xx response from the upstream API.
type APIError struct {
	StatusCode int
	Key        string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("swapi: GET %s: status %d", e.Key, e.StatusCode)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.IsNotFound()
}
