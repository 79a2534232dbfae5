// Package query is the read-only façade over the entity store and the
// availability index.  It never mutates state.  Occupancy predicates are
// answered exclusively through the index, whose per-room sequences are
// updated atomically by the booking coordinator, so a reader sees a booking
// either fully applied or not at all, never half-committed.
package query

import (
	"context"

	"github.com/iliyamo/hotel-reservation/internal/availability"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

// RoomFilter narrows a room listing.  Every predicate is independently
// optional; a nil field applies no constraint.  OccupiedDuring and
// AvailableDuring are logical negations of each other over the same
// overlap test and may not be combined in one filter.
type RoomFilter struct {
	Class           *model.RoomClass
	MinBeds         *uint32
	OccupiedDuring  *model.Interval
	AvailableDuring *model.Interval
}

// Service composes the store and the index for filtered listings.
type Service struct {
	store *store.EntityStore
	index *availability.Index
}

// New constructs a query Service.
func New(st *store.EntityStore, ix *availability.Index) *Service {
	return &Service{store: st, index: ix}
}

// ListHotels returns all hotels ordered by ID.
func (s *Service) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	return s.store.ListHotels(ctx)
}

// GetHotel returns a single hotel.
func (s *Service) GetHotel(ctx context.Context, id uint64) (*model.Hotel, error) {
	return s.store.GetHotel(ctx, id)
}

// GetRoom returns a single room.
func (s *Service) GetRoom(ctx context.Context, id uint64) (*model.Room, error) {
	return s.store.GetRoom(ctx, id)
}

// GetReservation returns a single reservation, confirmed or cancelled.
func (s *Service) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.store.GetReservation(ctx, id)
}

// ListReservationsByRoom returns a room's full reservation history ordered
// by reservation ID.
func (s *Service) ListReservationsByRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error) {
	return s.store.ListReservationsByRoom(ctx, roomID)
}

// ListRooms returns the hotel's rooms matching the filter, ordered by room
// ID for reproducible pagination.  ErrNotFound when the hotel is unknown,
// ErrInvalidArgument when the filter combines mutually exclusive occupancy
// predicates or carries a malformed interval.
func (s *Service) ListRooms(ctx context.Context, hotelID uint64, f RoomFilter) ([]model.Room, error) {
	if f.OccupiedDuring != nil && f.AvailableDuring != nil {
		return nil, store.ErrInvalidArgument
	}
	if f.OccupiedDuring != nil && !f.OccupiedDuring.Valid() {
		return nil, store.ErrInvalidArgument
	}
	if f.AvailableDuring != nil && !f.AvailableDuring.Valid() {
		return nil, store.ErrInvalidArgument
	}
	rooms, err := s.store.ListRoomsByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if f.Class != nil && r.Class != *f.Class {
			continue
		}
		if f.MinBeds != nil && r.Beds < *f.MinBeds {
			continue
		}
		if f.OccupiedDuring != nil && !s.index.AnyOverlap(r.ID, *f.OccupiedDuring) {
			continue
		}
		if f.AvailableDuring != nil && s.index.AnyOverlap(r.ID, *f.AvailableDuring) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// FreeIntervals lists the room's maximal free gaps inside the window.
func (s *Service) FreeIntervals(ctx context.Context, roomID uint64, window model.Interval) ([]model.Interval, error) {
	if !window.Valid() {
		return nil, store.ErrInvalidArgument
	}
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.index.FreeWithin(roomID, window), nil
}
