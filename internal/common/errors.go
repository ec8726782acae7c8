// Package common defines shared constants and sentinel errors used across
// the Aerofy client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrValidation marks input problems caught before any network call
	// (missing fields, password mismatch, malformed email).
	ErrValidation = errors.New("validation error")

	// ErrInternal covers unexpected internal failures.
	ErrInternal = errors.New("internal error")
)
