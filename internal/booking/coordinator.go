// Package booking is the transactional boundary of the reservation system.
// The Coordinator serializes all booking-state mutations per room: the
// availability check, the reservation write and the index update happen
// inside one exclusive section, so two racing bookings for overlapping
// intervals on the same room resolve with exactly one winner.  Rooms are
// independent, so bookings on different rooms never contend.
package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/availability"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

// ErrInvalidInterval is returned for malformed date ranges: check-in must
// be strictly before check-out.  Handlers should translate this into 422.
var ErrInvalidInterval = errors.New("invalid interval")

// ErrDoubleBooking is returned when the requested interval intersects an
// existing confirmed reservation.  The coordinator never retries on behalf
// of the caller; retrying the same interval is guaranteed to fail again.
var ErrDoubleBooking = errors.New("double booking conflict")

// ErrBusy is returned when the room's exclusive section could not be
// acquired within the configured wait bound.
var ErrBusy = errors.New("room busy")

// AuditLog receives a record of every committed mutation.  Recording is
// best effort and happens outside the atomic unit; failures are logged and
// never surfaced to the booking caller.
type AuditLog interface {
	ReservationBooked(ctx context.Context, res model.Reservation) error
	ReservationCancelled(ctx context.Context, res model.Reservation) error
}

// DefaultLockWait bounds how long a mutation waits for a room's exclusive
// section before giving up with ErrBusy.
const DefaultLockWait = 3 * time.Second

// Coordinator owns the only write path into the entity store and the
// availability index for booking state.
type Coordinator struct {
	store    *store.EntityStore
	index    *availability.Index
	locks    *lockTable
	lockWait time.Duration
	audit    AuditLog
}

// Options tunes optional coordinator behaviour.  The zero value is valid.
type Options struct {
	LockWait time.Duration // wait bound for the per-room section; DefaultLockWait when zero
	Audit    AuditLog      // optional audit trail, nil disables recording
}

// New constructs a Coordinator over the given store and index.
func New(st *store.EntityStore, ix *availability.Index, opts Options) *Coordinator {
	wait := opts.LockWait
	if wait <= 0 {
		wait = DefaultLockWait
	}
	return &Coordinator{
		store:    st,
		index:    ix,
		locks:    newLockTable(),
		lockWait: wait,
		audit:    opts.Audit,
	}
}

// Book reserves the room for the half-open interval on behalf of guestRef.
// On success the new confirmed reservation is returned.  Failure modes:
// ErrInvalidInterval for a malformed range, store.ErrNotFound for an
// unknown room, ErrDoubleBooking when the interval is taken, ErrBusy when
// the room's section could not be acquired in time.
func (c *Coordinator) Book(ctx context.Context, roomID uint64, guestRef string, iv model.Interval) (*model.Reservation, error) {
	if !iv.Valid() {
		return nil, ErrInvalidInterval
	}
	iv = model.NewInterval(iv.Start, iv.End)

	res, err := c.bookInSection(ctx, roomID, guestRef, iv)
	if err != nil {
		return nil, err
	}
	// Recording happens after the section is released: a slow audit store
	// must never hold the room and starve other mutations into ErrBusy.
	c.record(func(actx context.Context) error { return c.audit.ReservationBooked(actx, *res) })
	return res, nil
}

// bookInSection performs the atomic half of Book under the room's exclusive
// section.
func (c *Coordinator) bookInSection(ctx context.Context, roomID uint64, guestRef string, iv model.Interval) (*model.Reservation, error) {
	release, err := c.locks.acquire(ctx, roomID, c.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := c.store.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	if !c.index.IsFree(roomID, iv) {
		return nil, ErrDoubleBooking
	}

	// Index insert and store write form one atomic unit under the room's
	// section: a failure on either side leaves no trace of the other.
	c.index.Insert(roomID, iv)
	res, err := c.store.CreateReservation(ctx, roomID, guestRef, iv)
	if err != nil {
		c.index.Remove(roomID, iv)
		if errors.Is(err, store.ErrForeignKeyViolation) {
			// The room went away between the existence check and the
			// write; to the caller that is a missing room.
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// Cancel flips a confirmed reservation to cancelled and frees its interval.
// A second cancel of the same reservation reports store.ErrNotFound rather
// than succeeding silently, so callers can detect double-cancel bugs.  The
// record itself is retained for audit.
func (c *Coordinator) Cancel(ctx context.Context, reservationID uint64) error {
	res, err := c.cancelInSection(ctx, reservationID)
	if err != nil {
		return err
	}
	c.record(func(actx context.Context) error { return c.audit.ReservationCancelled(actx, *res) })
	return nil
}

// cancelInSection performs the atomic half of Cancel and returns the
// cancelled record for audit.
func (c *Coordinator) cancelInSection(ctx context.Context, reservationID uint64) (*model.Reservation, error) {
	res, err := c.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	release, err := c.locks.acquire(ctx, res.RoomID, c.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	// Re-read under the section: the status may have flipped while we
	// were waiting to enter.
	res, err = c.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != model.StatusConfirmed {
		return nil, store.ErrNotFound
	}

	if err := c.store.SetReservationStatus(ctx, reservationID, model.StatusCancelled); err != nil {
		return nil, err
	}
	// A missing index entry means the room's derived state was already
	// retired; nothing is left to free in that case.
	c.index.Remove(res.RoomID, res.Interval)

	res.Status = model.StatusCancelled
	return res, nil
}

// record runs an audit callback with its own timeout so a slow audit store
// cannot stall or fail a committed mutation.  It is always called after the
// room's section has been released.
func (c *Coordinator) record(fn func(context.Context) error) {
	if c.audit == nil {
		return
	}
	actx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := fn(actx); err != nil {
		log.Printf("booking: audit record failed: %v", err)
	}
}
