// Package common defines shared constants and sentinel errors used across
// the application layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Authorization errors, mapped from backend status codes.
	ErrUnauthorized = errors.New("unauthorized")
	ErrAdminRequired = errors.New("admin privileges required")

	// Record-level errors.
	ErrNotFound = errors.New("not found")

	// Token errors (malformed or undecodable bearer token).
	ErrInvalidToken = errors.New("invalid token")

	// Login flow errors.
	ErrLoginAborted = errors.New("login aborted")
)
