package booking

import (
	"context"
	"sync"
	"time"
)

// lockTable hands out one exclusive section per room ID.  Each section is a
// buffered channel used as a binary semaphore; acquisition waits with a
// bound instead of blocking forever.  There is never more than one key held
// per operation, so circular waits cannot form.
type lockTable struct {
	mu    sync.Mutex
	locks map[uint64]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[uint64]chan struct{})}
}

// section returns the semaphore for a key, creating it on first use.
// Entries are kept for the life of the process; the key space is bounded by
// the number of rooms.
func (lt *lockTable) section(key uint64) chan struct{} {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	ch, ok := lt.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		lt.locks[key] = ch
	}
	return ch
}

// acquire takes the exclusive section for key, waiting at most wait.  On
// success it returns the release function.  It returns ErrBusy when the
// wait bound elapses and the context error when the caller goes away, so an
// abandoned request never holds a room hostage.
func (lt *lockTable) acquire(ctx context.Context, key uint64, wait time.Duration) (func(), error) {
	ch := lt.section(key)
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-timer.C:
		return nil, ErrBusy
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
