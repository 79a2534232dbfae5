// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published to the reservation.events queue.
const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published after a booking or cancellation commits.
// It carries enough information for downstream consumers to log, notify or
// feed analytics without querying the service.
type ReservationEvent struct {
	Type          string `json:"type"`
	ReservationID uint64 `json:"reservation_id"`
	RoomID        uint64 `json:"room_id"`
	HotelID       uint64 `json:"hotel_id"`
	GuestRef      string `json:"guest_ref"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	OccurredAt    string `json:"occurred_at"`
}
