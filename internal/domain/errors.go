package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// entity does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidArgument is returned when input is malformed or out of range:
// nil required reference, party size below 1, payment amount mismatch,
// missing payment method. It is always raised before any mutation, so a
// rejected call never leaves partial effects.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidState is returned when an operation is attempted from a
// reservation status that forbids it, e.g. confirming a reservation that is
// not pending or cancelling one that is already completed. Also raised
// before mutation.
// Handlers should map this to HTTP 409 Conflict.
var ErrInvalidState = errors.New("invalid state")
