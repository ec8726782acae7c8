package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when the server cannot be reached or the
	// request timed out.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is returned on any 401 response. The client fires
	// its unauthorized hook before returning it, except for AcceptFile.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidPassword is returned when the server rejects a share
	// password on accept. Distinct from ErrUnauthorized: it is a business
	// error, not a session error.
	ErrInvalidPassword = errors.New("invalid share password")
)

// APIError carries the message field of an error response body so the UI can
// show server-provided text instead of a generic fallback.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match any 401 response.
func (e *APIError) Unwrap() error {
	if e.Status == 401 {
		return ErrUnauthorized
	}
	return nil
}

// Message extracts a user-facing message from err: the server-provided text
// for API errors, fallback otherwise.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
