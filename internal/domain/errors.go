package domain

import "errors"

// Sentinel errors shared by services, repositories and controllers.
// Callers wrap them with context (entity, key) and match with errors.Is.
var (
	// ErrUnauthenticated is returned when no caller identity can be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidInput is returned for malformed requests, illegal filters and missing required fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden is returned when the caller does not own the record being modified.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a mutation is incompatible with the current state
	// (duplicate registration, no seats left, duplicate wishlist entry).
	ErrConflict = errors.New("conflict")
	// ErrRetryable is returned when a transaction kept failing on concurrent write conflicts.
	ErrRetryable = errors.New("transient contention, retry")
)
