// Package apperr holds the sentinel errors shared across the service layer.
// Handlers translate them to HTTP status codes with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound marks lookups for users, vehicles or alerts that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument marks rejected caller input such as bad pagination
	// values, unknown sort fields or duplicate unique keys.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthorized marks failed token resolution: unknown, expired or
	// revoked tokens and inactive accounts.
	ErrUnauthorized = errors.New("unauthorized")
)
