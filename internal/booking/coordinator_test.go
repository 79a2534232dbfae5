package booking

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/availability"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/store"
)

func stay(fromDay, toDay int) model.Interval {
	return model.NewInterval(
		time.Date(2024, time.June, fromDay, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, toDay, 0, 0, 0, 0, time.UTC),
	)
}

// newFixture builds a coordinator over a store holding one hotel with one room.
func newFixture(t *testing.T) (*Coordinator, *store.EntityStore, *availability.Index, uint64) {
	t.Helper()
	st := store.New()
	ix := availability.New()
	ctx := context.Background()

	h, err := st.CreateHotel(ctx, "Grand", "1 Main St")
	if err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	r, err := st.CreateRoom(ctx, h.ID, store.RoomAttrs{Class: model.RoomSingle, Beds: 1, RateCents: 9900})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	return New(st, ix, Options{}), st, ix, r.ID
}

func TestBookAndCancelRoundTrip(t *testing.T) {
	c, st, ix, roomID := newFixture(t)
	ctx := context.Background()

	res, err := c.Book(ctx, roomID, "guest-1", stay(1, 3))
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if res.Status != model.StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", res.Status)
	}
	if ix.IsFree(roomID, stay(1, 3)) {
		t.Fatal("booked interval must not be free")
	}

	if err := c.Cancel(ctx, res.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !ix.IsFree(roomID, stay(1, 3)) {
		t.Fatal("cancelled interval must be free again")
	}
	got, err := st.GetReservation(ctx, res.ID)
	if err != nil {
		t.Fatalf("get reservation: %v", err)
	}
	if got.Status != model.StatusCancelled {
		t.Fatalf("expected CANCELLED record to remain, got %s", got.Status)
	}
}

func TestBookRejectsInvalidInterval(t *testing.T) {
	c, _, _, roomID := newFixture(t)
	ctx := context.Background()

	if _, err := c.Book(ctx, roomID, "guest-1", stay(3, 3)); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("empty interval: expected ErrInvalidInterval, got %v", err)
	}
	if _, err := c.Book(ctx, roomID, "guest-1", stay(5, 3)); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("reversed interval: expected ErrInvalidInterval, got %v", err)
	}
}

func TestBookUnknownRoom(t *testing.T) {
	c, _, _, _ := newFixture(t)
	if _, err := c.Book(context.Background(), 999, "guest-1", stay(1, 3)); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDoubleBookingConflict(t *testing.T) {
	c, _, _, roomID := newFixture(t)
	ctx := context.Background()

	if _, err := c.Book(ctx, roomID, "guest-1", stay(1, 5)); err != nil {
		t.Fatalf("first book: %v", err)
	}
	if _, err := c.Book(ctx, roomID, "guest-2", stay(3, 7)); !errors.Is(err, ErrDoubleBooking) {
		t.Fatalf("overlap: expected ErrDoubleBooking, got %v", err)
	}
	// Back-to-back stays share a boundary and do not conflict.
	if _, err := c.Book(ctx, roomID, "guest-2", stay(5, 7)); err != nil {
		t.Fatalf("adjacent book: %v", err)
	}
}

func TestCancelTwice(t *testing.T) {
	c, _, _, roomID := newFixture(t)
	ctx := context.Background()

	res, err := c.Book(ctx, roomID, "guest-1", stay(1, 3))
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := c.Cancel(ctx, res.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := c.Cancel(ctx, res.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second cancel: expected ErrNotFound, got %v", err)
	}
}

func TestCancelThenRebookSameInterval(t *testing.T) {
	c, _, _, roomID := newFixture(t)
	ctx := context.Background()

	first, err := c.Book(ctx, roomID, "guest-1", stay(1, 3))
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := c.Cancel(ctx, first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	second, err := c.Book(ctx, roomID, "guest-2", stay(1, 3))
	if err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("rebooking must create a fresh reservation")
	}
}

func TestConcurrentOverlappingBooksOneWinner(t *testing.T) {
	c, st, _, roomID := newFixture(t)
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Book(ctx, roomID, "guest-1", stay(10, 12))
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrDoubleBooking):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != n-1 {
		t.Fatalf("expected exactly 1 winner and %d conflicts, got %d/%d", n-1, wins, conflicts)
	}

	items, err := st.ListReservationsByRoom(ctx, roomID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected a single stored reservation, got %d", len(items))
	}
}

func TestConcurrentDisjointBooksAllSucceed(t *testing.T) {
	c, _, _, roomID := newFixture(t)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Book(ctx, roomID, "guest-1", stay(2*i+1, 2*i+2))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("disjoint booking %d failed: %v", i, err)
		}
	}
}

func TestBusyWhenSectionHeld(t *testing.T) {
	st := store.New()
	ix := availability.New()
	ctx := context.Background()

	h, _ := st.CreateHotel(ctx, "Grand", "")
	r, _ := st.CreateRoom(ctx, h.ID, store.RoomAttrs{Class: model.RoomSingle, Beds: 1, RateCents: 9900})
	c := New(st, ix, Options{LockWait: 20 * time.Millisecond})

	// Occupy the room's section directly so Book has to wait.
	release, err := c.locks.acquire(ctx, r.ID, time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	if _, err := c.Book(ctx, r.ID, "guest-1", stay(1, 3)); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestBookHonorsContextCancellation(t *testing.T) {
	st := store.New()
	ix := availability.New()
	bg := context.Background()

	h, _ := st.CreateHotel(bg, "Grand", "")
	r, _ := st.CreateRoom(bg, h.ID, store.RoomAttrs{Class: model.RoomSingle, Beds: 1, RateCents: 9900})
	c := New(st, ix, Options{LockWait: time.Minute})

	release, err := c.locks.acquire(bg, r.ID, time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(bg, 20*time.Millisecond)
	defer cancel()
	if _, err := c.Book(ctx, r.ID, "guest-1", stay(1, 3)); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestRandomizedConcurrentBookingsKeepIntervalsDisjoint(t *testing.T) {
	c, st, ix, roomID := newFixture(t)
	ctx := context.Background()

	// Pre-generate a mix of partially overlapping and disjoint stays so the
	// goroutines below never share the rng.
	rng := rand.New(rand.NewSource(42))
	const n = 64
	intervals := make([]model.Interval, n)
	for i := range intervals {
		start := rng.Intn(25) + 1
		intervals[i] = stay(start, start+rng.Intn(4)+1)
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			res, err := c.Book(ctx, roomID, "guest-1", intervals[i])
			if err != nil {
				if !errors.Is(err, ErrDoubleBooking) {
					t.Errorf("booking %d: unexpected error: %v", i, err)
				}
				return
			}
			// Cancel roughly a third of the wins so frees interleave with
			// the racing bookings.
			if i%3 == 0 {
				if err := c.Cancel(ctx, res.ID); err != nil {
					t.Errorf("cancel %d: %v", i, err)
				}
			}
		}(i)
	}
	wg.Wait()

	all, err := st.ListReservationsByRoom(ctx, roomID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	confirmed := make([]model.Reservation, 0, len(all))
	for _, r := range all {
		if r.Status == model.StatusConfirmed {
			confirmed = append(confirmed, r)
		}
	}
	if len(confirmed) == 0 {
		t.Fatal("expected at least one surviving confirmed reservation")
	}
	for i := range confirmed {
		for j := i + 1; j < len(confirmed); j++ {
			if confirmed[i].Interval.Overlaps(confirmed[j].Interval) {
				t.Fatalf("confirmed reservations %d and %d overlap: %v vs %v",
					confirmed[i].ID, confirmed[j].ID, confirmed[i].Interval, confirmed[j].Interval)
			}
		}
	}
	// The index must agree with the surviving reservations.
	for _, r := range confirmed {
		if ix.IsFree(roomID, r.Interval) {
			t.Errorf("index lost the interval of confirmed reservation %d", r.ID)
		}
	}
}

// auditSpy counts committed mutations.
type auditSpy struct {
	mu        sync.Mutex
	booked    int
	cancelled int
}

func (a *auditSpy) ReservationBooked(ctx context.Context, res model.Reservation) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.booked++
	return nil
}

func (a *auditSpy) ReservationCancelled(ctx context.Context, res model.Reservation) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelled++
	return nil
}

func TestAuditReceivesCommittedMutations(t *testing.T) {
	st := store.New()
	ix := availability.New()
	ctx := context.Background()

	h, _ := st.CreateHotel(ctx, "Grand", "")
	r, _ := st.CreateRoom(ctx, h.ID, store.RoomAttrs{Class: model.RoomSingle, Beds: 1, RateCents: 9900})

	spy := &auditSpy{}
	c := New(st, ix, Options{Audit: spy})

	res, err := c.Book(ctx, r.ID, "guest-1", stay(1, 3))
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := c.Book(ctx, r.ID, "guest-2", stay(2, 4)); !errors.Is(err, ErrDoubleBooking) {
		t.Fatalf("expected ErrDoubleBooking, got %v", err)
	}
	if err := c.Cancel(ctx, res.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	spy.mu.Lock()
	defer spy.mu.Unlock()
	if spy.booked != 1 || spy.cancelled != 1 {
		t.Fatalf("audit counts booked=%d cancelled=%d, want 1/1; failed mutations must not be recorded", spy.booked, spy.cancelled)
	}
}

// stallingAudit blocks the booked callback for one designated guest until
// released, letting the test observe state while the write is in flight.
type stallingAudit struct {
	slowGuest string
	entered   chan struct{}
	proceed   chan struct{}
}

func (a *stallingAudit) ReservationBooked(ctx context.Context, res model.Reservation) error {
	if res.GuestRef != a.slowGuest {
		return nil
	}
	a.entered <- struct{}{}
	<-a.proceed
	return nil
}

func (a *stallingAudit) ReservationCancelled(ctx context.Context, res model.Reservation) error {
	return nil
}

func TestSlowAuditDoesNotHoldRoomSection(t *testing.T) {
	st := store.New()
	ix := availability.New()
	ctx := context.Background()

	h, _ := st.CreateHotel(ctx, "Grand", "")
	r, _ := st.CreateRoom(ctx, h.ID, store.RoomAttrs{Class: model.RoomSingle, Beds: 1, RateCents: 9900})

	aud := &stallingAudit{
		slowGuest: "slow-guest",
		entered:   make(chan struct{}),
		proceed:   make(chan struct{}),
	}
	c := New(st, ix, Options{LockWait: 200 * time.Millisecond, Audit: aud})

	done := make(chan error, 1)
	go func() {
		_, err := c.Book(ctx, r.ID, "slow-guest", stay(1, 3))
		done <- err
	}()

	// Wait until the first booking has committed and is stuck in its audit
	// write.  The room's section must already be free at this point.
	select {
	case <-aud.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("audit callback was never entered")
	}

	if _, err := c.Book(ctx, r.ID, "guest-2", stay(5, 7)); err != nil {
		t.Fatalf("disjoint booking while audit write is in flight: %v", err)
	}

	close(aud.proceed)
	if err := <-done; err != nil {
		t.Fatalf("stalled booking: %v", err)
	}
}
