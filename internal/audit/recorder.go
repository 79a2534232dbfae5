// Package audit persists a durable trail of reservation mutations.  The
// canonical booking state lives in memory; the audit table is the record
// that survives restarts and is what makes "cancelled reservations are
// retained" durable.  Recording is best effort; the booking coordinator
// logs and continues when a write fails.
package audit

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Recorder writes reservation audit rows.  All timestamps are stored in
// UTC.
type Recorder struct {
	db *sql.DB
}

// NewRecorder returns a Recorder bound to the given database.
func NewRecorder(db *sql.DB) *Recorder { return &Recorder{db: db} }

// EnsureSchema creates the audit table when it does not exist yet.
func (r *Recorder) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS reservation_audit (
	               id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	               reservation_id BIGINT UNSIGNED NOT NULL,
	               room_id BIGINT UNSIGNED NOT NULL,
	               guest_ref VARCHAR(64) NOT NULL,
	               check_in DATETIME NOT NULL,
	               check_out DATETIME NOT NULL,
	               action VARCHAR(16) NOT NULL,
	               recorded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	               INDEX idx_reservation (reservation_id),
	               INDEX idx_room (room_id)
	           ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// ReservationBooked appends a BOOKED row for a freshly confirmed
// reservation.
func (r *Recorder) ReservationBooked(ctx context.Context, res model.Reservation) error {
	return r.insert(ctx, res, "BOOKED")
}

// ReservationCancelled appends a CANCELLED row.
func (r *Recorder) ReservationCancelled(ctx context.Context, res model.Reservation) error {
	return r.insert(ctx, res, "CANCELLED")
}

func (r *Recorder) insert(ctx context.Context, res model.Reservation, action string) error {
	const q = `INSERT INTO reservation_audit
	               (reservation_id, room_id, guest_ref, check_in, check_out, action)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		res.ID, res.RoomID, res.GuestRef,
		res.Interval.Start.UTC().Format("2006-01-02 15:04:05"),
		res.Interval.End.UTC().Format("2006-01-02 15:04:05"),
		action,
	)
	return err
}

// HistoryByRoom returns the audit rows for a room, newest first.  Exposed
// for operational tooling; the serving path never reads the trail.
func (r *Recorder) HistoryByRoom(ctx context.Context, roomID uint64) ([]Entry, error) {
	const q = `SELECT id, reservation_id, room_id, guest_ref, check_in, check_out, action, recorded_at
	           FROM reservation_audit
	           WHERE room_id = ?
	           ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ReservationID, &e.RoomID, &e.GuestRef,
			&e.CheckIn, &e.CheckOut, &e.Action, &e.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Entry mirrors one reservation_audit row.
type Entry struct {
	ID            uint64
	ReservationID uint64
	RoomID        uint64
	GuestRef      string
	CheckIn       string
	CheckOut      string
	Action        string
	RecordedAt    string
}
