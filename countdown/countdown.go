package countdown

import (
	"errors"
	"fmt"
	"sync"

	"github.com/notorious-go/blocking/internal/waiters"
	"github.com/notorious-go/blocking/waitable"
)

// ErrAlreadyZero is returned by Signal when the count is already zero,
// meaning the latch is open and there is nothing left to count down.
var ErrAlreadyZero = errors.New("countdown: signal on a latch already at zero")

// CountDown is a countdown latch: a counter that callers can block on
// until it reaches zero.
//
// Wait blocks while the count is positive and returns as soon as it hits
// zero; every waiter queued at the zero transition is released together.
// Unlike sync.WaitGroup, the latch can be re-armed: Increase raises the
// count at any time and Reset replaces it outright, so a latch can gate
// repeated rounds of work.
//
// All methods are safe for concurrent use. Create instances with New; the
// zero value is an open latch but, like an open door, mostly useless.
type CountDown struct {
	mu      sync.Mutex
	count   int
	waiters waiters.Queue[*waiters.Slot[struct{}]]

	destroyed bool
}

var _ waitable.Waitable = (*CountDown)(nil)

// New creates a latch with the given starting count. A count of zero
// creates an already-open latch, which is occasionally useful as a
// neutral element when composing waitables. New panics on a negative
// count.
func New(count int) *CountDown {
	if count < 0 {
		panic(fmt.Sprintf("countdown: count must be non-negative, got %d", count))
	}
	return &CountDown{count: count}
}

// String returns a human-readable "CountDown(count)" form.
func (c *CountDown) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("CountDown(%v)", c.count)
}

// Wait blocks until the count reaches zero. It returns nil immediately if
// the latch is already open, and [waitable.ErrDestroyed] if the latch is
// destroyed before or while the caller is waiting.
func (c *CountDown) Wait() error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return waitable.ErrDestroyed
	}
	if c.count == 0 {
		c.mu.Unlock()
		return nil
	}
	slot := waiters.NewSlot[struct{}]()
	c.waiters.Push(slot)
	c.mu.Unlock()

	_, err := slot.Await()
	return err
}

// Signal counts down by one. It reports true exactly when this call takes
// the count from one to zero, opening the latch and releasing every queued
// waiter; earlier signals report false. Signalling an already-open latch
// returns [ErrAlreadyZero], and a destroyed one [waitable.ErrDestroyed].
func (c *CountDown) Signal() (opened bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return false, waitable.ErrDestroyed
	}
	if c.count == 0 {
		return false, ErrAlreadyZero
	}
	c.count--
	if c.count > 0 {
		return false, nil
	}
	c.flushLocked(nil)
	return true, nil
}

// Increase raises the count by one. It always succeeds on a live latch,
// even one that is currently open: the latch closes again and subsequent
// Wait calls block until the count is signalled back down to zero.
func (c *CountDown) Increase() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return waitable.ErrDestroyed
	}
	c.count++
	return nil
}

// Reset replaces the count unconditionally. Resetting to zero opens the
// latch and releases every queued waiter; resetting to a positive value
// keeps them queued, now waiting for the new count to reach zero. Reset
// panics on a negative count and returns [waitable.ErrDestroyed] after
// destruction.
func (c *CountDown) Reset(newCount int) error {
	if newCount < 0 {
		panic(fmt.Sprintf("countdown: count must be non-negative, got %d", newCount))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return waitable.ErrDestroyed
	}
	c.count = newCount
	if c.count == 0 {
		c.flushLocked(nil)
	}
	return nil
}

// Count returns the current count. After destruction it keeps reporting
// the last value the counter held.
func (c *CountDown) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Destroy tears the latch down, resuming every blocked Wait exactly once
// with [waitable.ErrDestroyed]. Later operations fail immediately with the
// same error. Destroy is idempotent.
func (c *CountDown) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.flushLocked(waitable.ErrDestroyed)
}

// IsFree reports whether the latch is open, that is, whether an immediate
// Wait would not block. Together with Wait it implements
// [waitable.Waitable].
func (c *CountDown) IsFree() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count == 0
}

// flushLocked resolves every queued waiter with the given outcome. The
// waiter queue is non-empty only while the count is positive, so flushing
// restores the invariant that an open latch holds no waiters.
func (c *CountDown) flushLocked(err error) {
	for _, slot := range c.waiters.PopAll() {
		slot.Resolve(struct{}{}, err)
	}
}
