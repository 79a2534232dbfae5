package model

import "time"

// ReservationStatus is the lifecycle state of a reservation.  Only two
// terminal states exist; nothing tentative is ever persisted.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation records a guest's claim on a room for a half-open interval.
// Reservations transition CONFIRMED → CANCELLED exactly once and are never
// deleted: cancelled rows stay behind as the audit history even when the
// room itself goes away.
//
// The core safety invariant lives here: for any room, the intervals of its
// CONFIRMED reservations are pairwise non-overlapping.  Cancelled
// reservations do not participate in overlap checks.
//
// Fields:
//  ID        – store-generated identifier.
//  RoomID    – booked room.
//  GuestRef  – opaque guest reference issued by the identity layer.
//  Interval  – [check-in, check-out) in UTC.
//  Status    – CONFIRMED or CANCELLED.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp (set on cancellation).
type Reservation struct {
	ID        uint64            `json:"id"`
	RoomID    uint64            `json:"room_id"`
	GuestRef  string            `json:"guest_ref"`
	Interval  Interval          `json:"interval"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
