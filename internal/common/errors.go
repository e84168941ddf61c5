// Package common defines shared sentinel errors used across the service
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrorAlreadyExists     = errors.New("already exists")
	ErrorDuplicateEmail    = errors.New("email already taken")
	ErrorDuplicateUserName = errors.New("username already taken")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
