package domain

import "errors"

// ErrNotFound is returned when a booking lookup by id/email found nothing.
// Handlers surface it as a user-visible "booking not found".
var ErrNotFound = errors.New("booking not found")

// ErrForbidden is returned on an owner identity mismatch for modify/cancel.
// Handlers surface it identically to ErrNotFound so an unauthorized caller
// cannot confirm that a record exists.
var ErrForbidden = errors.New("forbidden")

// ErrValidation is returned when input fails business rule validation
// (missing traveler fields, travel date in the past, bad quantity).
var ErrValidation = errors.New("validation error")

// ErrCancelled is returned when modifying a cancelled booking. Cancelled is
// terminal; there is no resurrection.
var ErrCancelled = errors.New("booking is cancelled")

// ErrDuplicateID is returned when booking reference generation kept colliding
// with existing ledger entries. It indicates a generator defect, not user
// error, and is logged as such.
var ErrDuplicateID = errors.New("duplicate booking id")

// ErrDenied is returned when authentication fails. Both auth modes are
// deliberately weak (lookup friction, not a security boundary) and share one
// opaque failure.
var ErrDenied = errors.New("authentication denied")
