// Package availability maintains the derived per-room view of booked time.
// Each room maps to a sequence of committed half-open intervals kept ordered
// by start instant.  The ordering lets lookups binary-search the insertion
// point and check only the immediate neighbours for overlap, so a query
// costs O(log n) in the number of that room's reservations rather than a
// scan of every reservation in the system.
package availability

import (
	"sort"
	"sync"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Index answers "is this interval free?" and "which gaps exist inside this
// window?" per room.  It holds committed intervals only: the booking
// coordinator inserts after a successful IsFree check under the room's
// exclusive section, and the index trusts that serialization instead of
// re-validating on Insert.
type Index struct {
	mu     sync.RWMutex
	byRoom map[uint64][]model.Interval
}

// New returns an empty Index.
func New() *Index {
	return &Index{byRoom: make(map[uint64][]model.Interval)}
}

// searchStart returns the position of the first interval whose start is not
// before iv.Start, i.e. the insertion point that keeps the slice ordered.
func searchStart(seq []model.Interval, iv model.Interval) int {
	return sort.Search(len(seq), func(i int) bool {
		return !seq[i].Start.Before(iv.Start)
	})
}

// freeLocked reports whether iv intersects no committed interval of the
// room.  Because committed intervals are pairwise disjoint and ordered,
// only the predecessor and the successor of the insertion point can
// possibly overlap.
func (ix *Index) freeLocked(roomID uint64, iv model.Interval) bool {
	seq := ix.byRoom[roomID]
	pos := searchStart(seq, iv)
	if pos > 0 && seq[pos-1].Overlaps(iv) {
		return false
	}
	if pos < len(seq) && seq[pos].Overlaps(iv) {
		return false
	}
	return true
}

// IsFree reports whether the interval does not intersect any committed
// interval for the room.  Rooms with no committed intervals are free for
// every valid interval.
func (ix *Index) IsFree(roomID uint64, iv model.Interval) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.freeLocked(roomID, iv)
}

// AnyOverlap is the occupancy test used by read paths: true when at least
// one committed interval intersects the window.
func (ix *Index) AnyOverlap(roomID uint64, window model.Interval) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return !ix.freeLocked(roomID, window)
}

// Insert adds a committed interval to the room's sequence at its ordered
// position.  The caller must have established via IsFree, under the room's
// exclusive section, that the interval fits; Insert does not re-check.
func (ix *Index) Insert(roomID uint64, iv model.Interval) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	seq := ix.byRoom[roomID]
	pos := searchStart(seq, iv)
	seq = append(seq, model.Interval{})
	copy(seq[pos+1:], seq[pos:])
	seq[pos] = iv
	ix.byRoom[roomID] = seq
}

// Remove deletes the exact interval from the room's sequence.  It returns
// false when no matching interval exists, which happens only if the room's
// derived state was already retired; callers treat that as success.
func (ix *Index) Remove(roomID uint64, iv model.Interval) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	seq := ix.byRoom[roomID]
	pos := searchStart(seq, iv)
	if pos >= len(seq) || !seq[pos].Equal(iv) {
		return false
	}
	seq = append(seq[:pos], seq[pos+1:]...)
	if len(seq) == 0 {
		delete(ix.byRoom, roomID)
		return true
	}
	ix.byRoom[roomID] = seq
	return true
}

// FreeWithin lists the maximal free intervals of the room inside the given
// window, ordered by start.  A fully free window comes back as a single
// interval equal to the window itself.
func (ix *Index) FreeWithin(roomID uint64, window model.Interval) []model.Interval {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	free := make([]model.Interval, 0, 4)
	if !window.Valid() {
		return free
	}
	cursor := window.Start
	for _, booked := range ix.byRoom[roomID] {
		if !booked.Overlaps(window) {
			if !booked.Start.Before(window.End) {
				break
			}
			continue
		}
		if cursor.Before(booked.Start) {
			free = append(free, model.Interval{Start: cursor, End: booked.Start})
		}
		if booked.End.After(cursor) {
			cursor = booked.End
		}
	}
	if cursor.Before(window.End) {
		free = append(free, model.Interval{Start: cursor, End: window.End})
	}
	return free
}

// Drop retires all derived state for a room.  Called after a room is
// deleted; by then the room can have no committed intervals left.
func (ix *Index) Drop(roomID uint64) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.byRoom, roomID)
}
