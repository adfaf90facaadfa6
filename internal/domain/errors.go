package domain

import "errors"

// ErrNotFound is returned by store and service functions when the requested
// record does not exist in its collection.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. a final save with required fields missing).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned by the store when a save would leave two
// in-progress logs for the same ship at once.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")
