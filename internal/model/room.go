package model

import "time"

// RoomClass enumerates the kinds of room a hotel offers.  The set is open
// for extension; ParseRoomClass is the single place new classes are added.
type RoomClass string

const (
	RoomSingle    RoomClass = "SINGLE"
	RoomMulti     RoomClass = "MULTI"
	RoomPenthouse RoomClass = "PENTHOUSE"
)

// ParseRoomClass maps a wire value onto a known RoomClass.  The second
// return value is false for unknown classes.
func ParseRoomClass(s string) (RoomClass, bool) {
	switch RoomClass(s) {
	case RoomSingle, RoomMulti, RoomPenthouse:
		return RoomClass(s), true
	}
	return "", false
}

// Room is an individual bookable room.  Room IDs are globally unique across
// hotels, which keeps cross-hotel queries simple.  A room belongs to exactly
// one hotel for its whole life; HotelID is immutable after creation.
//
// A room carries no "occupied" flag.  Occupancy is time-relative and is
// derived from the availability index: a room is occupied only for the
// intervals of its confirmed reservations.
//
// Fields:
//  ID        – store-generated identifier, globally unique.
//  HotelID   – owning hotel, immutable.
//  Class     – room class (SINGLE, MULTI, PENTHOUSE).
//  Beds      – number of beds, at least one.
//  RateCents – nightly rate in cents.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Room struct {
	ID        uint64    `json:"id"`
	HotelID   uint64    `json:"hotel_id"`
	Class     RoomClass `json:"class"`
	Beds      uint32    `json:"beds"`
	RateCents uint32    `json:"rate_cents"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
