package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is the uniform failure of a Gateway call. Status is 0 when no
// HTTP response was received.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api error: network: %s", e.Message)
	}
	return fmt.Sprintf("api error: %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Status == 0
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 0
}
