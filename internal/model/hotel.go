package model

import "time"

// Hotel represents a property that owns zero or more rooms.  A hotel's ID is
// assigned by the entity store and never changes; name and address may be
// updated in place.
//
// Fields:
//  ID        – store-generated identifier, immutable once assigned.
//  Name      – display name of the hotel.
//  Address   – postal address.
//  CreatedAt – timestamp when the hotel was created.
//  UpdatedAt – timestamp of last update.
type Hotel struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
