package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Authentication Errors.

	// ErrMissingCredentials indicates no usable username/password was found.
	ErrMissingCredentials = errors.New("missing credentials: set them in config.ini or as environment variables")

	// ErrAuthRequired indicates an operation needs an authenticated session.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the credentials were rejected or the
	// tokenizer response carried no token or api key.
	ErrAuthInvalid = errors.New("authentication invalid")

	// API Errors.

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
