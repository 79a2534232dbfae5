// Package store owns the canonical Hotel, Room and Reservation records and
// enforces the referential integrity rules between them.  The sentinel
// errors defined here are shared with the booking and query layers so that
// handlers can translate failures into HTTP statuses with errors.Is.
package store

import "errors"

// ErrNotFound is returned when a referenced entity ID does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("entity not found")

// ErrForeignKeyViolation is returned when a child record references a
// missing parent, e.g. creating a room under an unknown hotel.
var ErrForeignKeyViolation = errors.New("foreign key violation")

// ErrConflict is returned when a delete cannot proceed because dependent
// live data exists, such as removing a room that still has confirmed
// reservations.  Handlers should translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidArgument is returned for malformed entity attributes (empty
// hotel name, zero beds, unknown room class, non-positive rate).
var ErrInvalidArgument = errors.New("invalid argument")
