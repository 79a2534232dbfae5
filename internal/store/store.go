package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomAttrs carries the caller-supplied attributes for creating or updating
// a room.  The owning hotel and the room ID are never part of the attrs:
// identity fields are immutable and IDs are store-generated.
type RoomAttrs struct {
	Class     model.RoomClass
	Beds      uint32
	RateCents uint32
}

func (a RoomAttrs) validate() error {
	if _, ok := model.ParseRoomClass(string(a.Class)); !ok {
		return ErrInvalidArgument
	}
	if a.Beds == 0 || a.RateCents == 0 {
		return ErrInvalidArgument
	}
	return nil
}

// EntityStore is the in-memory system of record for hotels, rooms and
// reservations.  A single RWMutex guards the entity graph; every exported
// method is safe for concurrent use.  IDs come from one store-wide
// monotonic sequence, so room IDs are globally unique across hotels.
//
// The store enforces referential integrity only.  Interval bookkeeping
// belongs to the availability index and serialization of bookings to the
// coordinator; the store never inspects intervals.
type EntityStore struct {
	mu           sync.RWMutex
	nextID       uint64
	hotels       map[uint64]*model.Hotel
	rooms        map[uint64]*model.Room
	reservations map[uint64]*model.Reservation
	roomsByHotel map[uint64]map[uint64]struct{}
	resByRoom    map[uint64]map[uint64]struct{}
}

// New returns an empty EntityStore.
func New() *EntityStore {
	return &EntityStore{
		hotels:       make(map[uint64]*model.Hotel),
		rooms:        make(map[uint64]*model.Room),
		reservations: make(map[uint64]*model.Reservation),
		roomsByHotel: make(map[uint64]map[uint64]struct{}),
		resByRoom:    make(map[uint64]map[uint64]struct{}),
	}
}

// genID hands out the next identifier.  Callers must hold mu.
func (s *EntityStore) genID() uint64 {
	s.nextID++
	return s.nextID
}

// CreateHotel inserts a new hotel and returns a copy of the stored record.
func (s *EntityStore) CreateHotel(ctx context.Context, name, address string) (*model.Hotel, error) {
	if name == "" {
		return nil, ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	h := &model.Hotel{
		ID:        s.genID(),
		Name:      name,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.hotels[h.ID] = h
	s.roomsByHotel[h.ID] = make(map[uint64]struct{})
	cp := *h
	return &cp, nil
}

// GetHotel returns a copy of the hotel or ErrNotFound.
func (s *EntityStore) GetHotel(ctx context.Context, id uint64) (*model.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hotels[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *h
	return &cp, nil
}

// ListHotels returns all hotels ordered by ID.
func (s *EntityStore) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Hotel, 0, len(s.hotels))
	for _, h := range s.hotels {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateHotel replaces the mutable fields (name, address) of a hotel.
func (s *EntityStore) UpdateHotel(ctx context.Context, id uint64, name, address string) (*model.Hotel, error) {
	if name == "" {
		return nil, ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hotels[id]
	if !ok {
		return nil, ErrNotFound
	}
	h.Name = name
	h.Address = address
	h.UpdatedAt = time.Now().UTC()
	cp := *h
	return &cp, nil
}

// DeleteHotel removes a hotel together with all of its rooms.  The delete
// is refused with ErrConflict while any room of the hotel still carries a
// confirmed reservation; booking data is never destroyed implicitly.
// Cancelled reservations survive the delete for audit purposes.  The IDs of
// the removed rooms are returned so the caller can retire derived state.
func (s *EntityStore) DeleteHotel(ctx context.Context, id uint64) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hotels[id]; !ok {
		return nil, ErrNotFound
	}
	roomIDs := make([]uint64, 0, len(s.roomsByHotel[id]))
	for rid := range s.roomsByHotel[id] {
		if s.hasConfirmedLocked(rid) {
			return nil, ErrConflict
		}
		roomIDs = append(roomIDs, rid)
	}
	for _, rid := range roomIDs {
		delete(s.rooms, rid)
	}
	delete(s.roomsByHotel, id)
	delete(s.hotels, id)
	sort.Slice(roomIDs, func(i, j int) bool { return roomIDs[i] < roomIDs[j] })
	return roomIDs, nil
}

// CreateRoom inserts a room under an existing hotel.  A missing hotel is a
// foreign key violation, not a not-found: the room is the entity being
// created and its parent reference is what is broken.
func (s *EntityStore) CreateRoom(ctx context.Context, hotelID uint64, attrs RoomAttrs) (*model.Room, error) {
	if err := attrs.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hotels[hotelID]; !ok {
		return nil, ErrForeignKeyViolation
	}
	now := time.Now().UTC()
	r := &model.Room{
		ID:        s.genID(),
		HotelID:   hotelID,
		Class:     attrs.Class,
		Beds:      attrs.Beds,
		RateCents: attrs.RateCents,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.rooms[r.ID] = r
	s.roomsByHotel[hotelID][r.ID] = struct{}{}
	s.resByRoom[r.ID] = make(map[uint64]struct{})
	cp := *r
	return &cp, nil
}

// GetRoom returns a copy of the room or ErrNotFound.
func (s *EntityStore) GetRoom(ctx context.Context, id uint64) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// ListRoomsByHotel returns the hotel's rooms ordered by room ID.
func (s *EntityStore) ListRoomsByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, ok := s.roomsByHotel[hotelID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.Room, 0, len(ids))
	for rid := range ids {
		out = append(out, *s.rooms[rid])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateRoom replaces the mutable attributes of a room.  HotelID and ID are
// identity fields and cannot change; re-parenting a room is disallowed.
func (s *EntityStore) UpdateRoom(ctx context.Context, id uint64, attrs RoomAttrs) (*model.Room, error) {
	if err := attrs.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.Class = attrs.Class
	r.Beds = attrs.Beds
	r.RateCents = attrs.RateCents
	r.UpdatedAt = time.Now().UTC()
	cp := *r
	return &cp, nil
}

// DeleteRoom removes a room.  It fails with ErrConflict while any confirmed
// reservation references the room; the caller must cancel those first.
// Cancelled reservations referencing the room are kept.
func (s *EntityStore) DeleteRoom(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return ErrNotFound
	}
	if s.hasConfirmedLocked(id) {
		return ErrConflict
	}
	delete(s.rooms, id)
	delete(s.roomsByHotel[r.HotelID], id)
	return nil
}

// CreateReservation inserts a confirmed reservation for a room.  The caller
// (the booking coordinator) is responsible for interval validation and for
// serializing writers per room; the store only checks the room reference.
func (s *EntityStore) CreateReservation(ctx context.Context, roomID uint64, guestRef string, iv model.Interval) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[roomID]; !ok {
		return nil, ErrForeignKeyViolation
	}
	now := time.Now().UTC()
	res := &model.Reservation{
		ID:        s.genID(),
		RoomID:    roomID,
		GuestRef:  guestRef,
		Interval:  iv,
		Status:    model.StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.reservations[res.ID] = res
	s.resByRoom[roomID][res.ID] = struct{}{}
	cp := *res
	return &cp, nil
}

// GetReservation returns a copy of the reservation or ErrNotFound.
func (s *EntityStore) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *res
	return &cp, nil
}

// ListReservationsByRoom returns every reservation for a room, confirmed
// and cancelled alike, ordered by reservation ID.
func (s *EntityStore) ListReservationsByRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, ok := s.resByRoom[roomID]
	if !ok {
		if _, stillRoom := s.rooms[roomID]; !stillRoom {
			return nil, ErrNotFound
		}
		return []model.Reservation{}, nil
	}
	out := make([]model.Reservation, 0, len(ids))
	for rid := range ids {
		out = append(out, *s.reservations[rid])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SetReservationStatus flips a reservation's status.  It is used by the
// coordinator for cancellation and for reverting a failed cancellation.
func (s *EntityStore) SetReservationStatus(ctx context.Context, id uint64, status model.ReservationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return ErrNotFound
	}
	res.Status = status
	res.UpdatedAt = time.Now().UTC()
	return nil
}

// DiscardReservation hard-deletes a reservation record.  This exists solely
// as the rollback half of the coordinator's atomic book operation; regular
// cancellation is a soft delete via SetReservationStatus.
func (s *EntityStore) DiscardReservation(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.reservations, id)
	if byRoom, ok := s.resByRoom[res.RoomID]; ok {
		delete(byRoom, id)
	}
	return nil
}

// hasConfirmedLocked reports whether any confirmed reservation references
// the room.  Callers must hold mu.
func (s *EntityStore) hasConfirmedLocked(roomID uint64) bool {
	for rid := range s.resByRoom[roomID] {
		if s.reservations[rid].Status == model.StatusConfirmed {
			return true
		}
	}
	return false
}
