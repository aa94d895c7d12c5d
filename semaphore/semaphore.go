package semaphore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/notorious-go/blocking/internal/waiters"
	"github.com/notorious-go/blocking/waitable"
)

// ErrNoPermit is returned by Release when no permit is currently held, that
// is, when releases would outnumber successful acquisitions.
var ErrNoPermit = errors.New("semaphore: release without a held permit")

// Semaphore is a counting semaphore with a fixed capacity, FIFO-fair
// wakeup, and explicit destruction.
//
// Up to capacity permits may be held at once. Acquire blocks when all
// permits are held, queueing the caller; Release hands a freed permit
// directly to the oldest queued acquirer, so blocked callers are granted
// permits strictly in arrival order and can never be overtaken by a
// concurrent TryAcquire.
//
// All methods are safe for concurrent use. A Semaphore must be created
// with New; the zero value has no capacity and is not usable.
type Semaphore struct {
	mu        sync.Mutex
	capacity  int
	acquired  int
	acquirers waiters.Queue[*waiters.Slot[struct{}]]
	destroyed bool
}

// Semaphore blocks via Acquire and probes via IsFree, so it can stand in
// anywhere a generic blockable resource is expected.
var _ waitable.Waitable = (*Semaphore)(nil)

// New creates a semaphore with the given number of permits. It panics if
// capacity is not positive: a permit pool that can never grant anything is
// a programming error, not a runtime condition.
func New(capacity int) *Semaphore {
	if capacity < 1 {
		panic(fmt.Sprintf("semaphore: capacity must be positive, got %d", capacity))
	}
	return &Semaphore{capacity: capacity}
}

// String returns a human-readable "Semaphore(acquired/capacity)" form,
// which makes semaphores pleasant to print in logs and test failures.
func (s *Semaphore) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("Semaphore(%v/%v)", s.acquired, s.capacity)
}

// Acquire obtains a permit, blocking until one is available. It returns
// nil once the permit is held, or [waitable.ErrDestroyed] if the semaphore
// was destroyed before or while the caller was waiting.
//
// Blocked acquirers are granted permits in the order they called Acquire.
//
// Typical usage:
//
//	if err := sem.Acquire(); err != nil {
//		return err
//	}
//	defer sem.Release()
func (s *Semaphore) Acquire() error {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return waitable.ErrDestroyed
	}
	if s.acquired < s.capacity {
		s.acquired++
		s.mu.Unlock()
		return nil
	}
	// At capacity: park on a reply slot until a Release hands us a permit
	// or Destroy fails the wait.
	slot := waiters.NewSlot[struct{}]()
	s.acquirers.Push(slot)
	s.mu.Unlock()

	_, err := slot.Await()
	return err
}

// TryAcquire obtains a permit only if one is available right now, without
// blocking. It returns false when the semaphore is full, destroyed, or
// when any caller is still blocked in Acquire: a freed permit always goes
// to the oldest waiter first, so TryAcquire never jumps the queue.
func (s *Semaphore) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed || s.acquired == s.capacity || s.acquirers.Len() > 0 {
		return false
	}
	s.acquired++
	return true
}

// Release returns a held permit and reports the number of free permits
// after the operation. It returns [ErrNoPermit] when no permit is held and
// [waitable.ErrDestroyed] after destruction.
//
// If acquirers are blocked, the permit is handed directly to the oldest
// one: the waiter is woken holding the permit and the acquired count does
// not change. The handoff is what preserves FIFO fairness; decrementing
// the counter first would open a window for a concurrent TryAcquire to
// steal the permit from a caller that has been waiting longer.
func (s *Semaphore) Release() (free int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return 0, waitable.ErrDestroyed
	}
	if s.acquired == 0 {
		return 0, ErrNoPermit
	}
	if slot, ok := s.acquirers.Pop(); ok {
		// Waiters only queue at capacity, so the handoff leaves the
		// semaphore full.
		slot.Resolve(struct{}{}, nil)
	} else {
		s.acquired--
	}
	return s.capacity - s.acquired, nil
}

// IsFull reports whether all permits are currently held.
func (s *Semaphore) IsFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquired == s.capacity
}

// Destroy tears the semaphore down. Every caller blocked in Acquire is
// resumed exactly once with [waitable.ErrDestroyed], and all later
// operations fail immediately with the same error instead of hanging.
// Destroy is idempotent.
func (s *Semaphore) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	s.destroyed = true
	for _, slot := range s.acquirers.PopAll() {
		slot.Resolve(struct{}{}, waitable.ErrDestroyed)
	}
}

// Wait blocks until a permit is held, implementing [waitable.Waitable].
// It is Acquire under the capability's name.
func (s *Semaphore) Wait() error {
	return s.Acquire()
}

// IsFree reports whether an immediate Wait would not block, implementing
// [waitable.Waitable].
func (s *Semaphore) IsFree() bool {
	return !s.IsFull()
}
