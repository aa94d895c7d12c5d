package blockingqueue

import (
	"errors"
	"fmt"
	"sync"

	"github.com/notorious-go/blocking/internal/waiters"
	"github.com/notorious-go/blocking/waitable"
)

// Unlimited selects a queue with no capacity bound. Any negative capacity
// passed to New means the same thing; the constant just names the intent.
const Unlimited = -1

var (
	// ErrClosed is returned by Add when the queue has been completed and
	// accepts no new items.
	ErrClosed = errors.New("blockingqueue: add on a completed queue")

	// ErrCompleted is the terminal outcome of Take and TryTake: the queue
	// was completed and every buffered item has been consumed. Like io.EOF,
	// it marks normal exhaustion rather than a failure.
	ErrCompleted = errors.New("blockingqueue: completed and drained")

	// ErrEmpty is returned by TryTake when the queue holds no items but has
	// not been completed, that is, where Take would have blocked.
	ErrEmpty = errors.New("blockingqueue: empty")
)

// Queue is a FIFO queue of items with blocking semantics on both sides:
// Take blocks while the queue is empty, and, for bounded queues, Add
// blocks while it is full. Producers and consumers each wait in their own
// FIFO line, and items reach consumers in the exact order they were
// admitted, whether through the buffer or by direct handoff.
//
// Complete half-closes the queue: no new items are accepted, but buffered
// ones (and items from producers that were already blocked) are still
// served until the queue drains, after which Take reports [ErrCompleted].
// Destroy tears the queue down, failing every blocked producer and
// consumer with [waitable.ErrDestroyed].
//
// All methods are safe for concurrent use. Create instances with New; the
// zero value has zero capacity and is not usable.
type Queue[T any] struct {
	mu       sync.Mutex
	capacity int // Unlimited when negative
	items    waiters.Queue[T]

	// takers is non-empty only while the queue is empty and not completed;
	// adders only while a bounded queue is full. The two are never
	// simultaneously non-empty.
	takers waiters.Queue[*waiters.Slot[T]]
	adders waiters.Queue[pendingAdd[T]]

	completed bool
	destroyed bool
}

// pendingAdd is a blocked producer: the item it wants admitted and the
// slot it is suspended on.
type pendingAdd[T any] struct {
	item T
	slot *waiters.Slot[struct{}]
}

// New creates a queue holding at most capacity buffered items. A negative
// capacity (see [Unlimited]) removes the bound, so Add never blocks. New
// panics on a zero capacity: a bufferless rendezvous is a different
// primitive, better served by an unbuffered channel.
func New[T any](capacity int) *Queue[T] {
	if capacity == 0 {
		panic("blockingqueue: capacity must be positive or Unlimited")
	}
	if capacity < 0 {
		capacity = Unlimited
	}
	return &Queue[T]{capacity: capacity}
}

// String returns a human-readable "BlockingQueue(count/capacity)" form,
// with "unlimited" standing in for the missing bound.
func (q *Queue[T]) String() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.capacity == Unlimited {
		return fmt.Sprintf("BlockingQueue(%v/unlimited)", q.items.Len())
	}
	return fmt.Sprintf("BlockingQueue(%v/%v)", q.items.Len(), q.capacity)
}

// Add appends an item, blocking while a bounded queue is full. It returns
// nil once the item has been admitted, [ErrClosed] if the queue was
// completed before the call, and [waitable.ErrDestroyed] if the queue was
// destroyed before or while the producer was waiting.
//
// If consumers are blocked in Take, the item is handed to the oldest one
// directly without touching the buffer. Blocked producers are admitted in
// arrival order as consumers free capacity.
func (q *Queue[T]) Add(item T) error {
	q.mu.Lock()
	if q.destroyed {
		q.mu.Unlock()
		return waitable.ErrDestroyed
	}
	if q.completed {
		q.mu.Unlock()
		return ErrClosed
	}
	if slot, ok := q.takers.Pop(); ok {
		// Consumers queue only on an empty queue, so the item skips the
		// buffer and goes straight to the oldest of them.
		slot.Resolve(item, nil)
		q.mu.Unlock()
		return nil
	}
	if q.capacity != Unlimited && q.items.Len() == q.capacity {
		p := pendingAdd[T]{item: item, slot: waiters.NewSlot[struct{}]()}
		q.adders.Push(p)
		q.mu.Unlock()
		_, err := p.slot.Await()
		return err
	}
	q.items.Push(item)
	q.mu.Unlock()
	return nil
}

// TryAdd is Add without the suspension: it reports false wherever Add
// would have blocked or failed (queue full, completed, or destroyed), and
// true when the item was admitted, by buffer or by direct handoff.
func (q *Queue[T]) TryAdd(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.destroyed || q.completed {
		return false
	}
	if slot, ok := q.takers.Pop(); ok {
		slot.Resolve(item, nil)
		return true
	}
	if q.capacity != Unlimited && q.items.Len() == q.capacity {
		return false
	}
	q.items.Push(item)
	return true
}

// Take removes and returns the oldest item, blocking while the queue is
// empty and still open. It returns [ErrCompleted] once the queue has been
// completed and drained, and [waitable.ErrDestroyed] if the queue was
// destroyed before or while the consumer was waiting.
//
// When a take frees a slot of a full bounded queue, the oldest blocked
// producer's item is admitted in the same step, so capacity is refilled
// without a wakeup race and producers proceed in arrival order.
func (q *Queue[T]) Take() (T, error) {
	var zero T
	q.mu.Lock()
	if q.destroyed {
		q.mu.Unlock()
		return zero, waitable.ErrDestroyed
	}
	if item, ok := q.items.Pop(); ok {
		q.backfillLocked()
		q.mu.Unlock()
		return item, nil
	}
	if q.completed {
		q.mu.Unlock()
		return zero, ErrCompleted
	}
	slot := waiters.NewSlot[T]()
	q.takers.Push(slot)
	q.mu.Unlock()
	return slot.Await()
}

// TryTake is Take without the suspension: it returns [ErrEmpty] where Take
// would have blocked, and otherwise behaves exactly like Take, including
// the terminal [ErrCompleted] and the producer backfill.
func (q *Queue[T]) TryTake() (T, error) {
	var zero T
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.destroyed {
		return zero, waitable.ErrDestroyed
	}
	if item, ok := q.items.Pop(); ok {
		q.backfillLocked()
		return item, nil
	}
	if q.completed {
		return zero, ErrCompleted
	}
	return zero, ErrEmpty
}

// backfillLocked admits the oldest blocked producer, if any, into the slot
// a take just freed. Producers queue only on a full queue, so the refill
// keeps the buffered count constant and preserves admission order.
func (q *Queue[T]) backfillLocked() {
	if p, ok := q.adders.Pop(); ok {
		q.items.Push(p.item)
		p.slot.Resolve(struct{}{}, nil)
	}
}

// Complete half-closes the queue: all later Add calls fail with
// [ErrClosed], while buffered items, and items from producers blocked
// before the call, are still served. If the queue is already empty, every
// blocked consumer is resumed immediately with [ErrCompleted]. Complete is
// idempotent and returns [waitable.ErrDestroyed] only after destruction.
func (q *Queue[T]) Complete() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.destroyed {
		return waitable.ErrDestroyed
	}
	if q.completed {
		return nil
	}
	q.completed = true
	if q.items.Len() == 0 {
		var zero T
		for _, slot := range q.takers.PopAll() {
			slot.Resolve(zero, ErrCompleted)
		}
	}
	return nil
}

// Count returns the number of buffered items. Items carried by blocked,
// not-yet-admitted producers are not counted. After destruction Count
// reports zero.
func (q *Queue[T]) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Destroy tears the queue down: every blocked producer and consumer is
// resumed exactly once with [waitable.ErrDestroyed], buffered items are
// dropped, and all later operations fail immediately with the same error.
// Destroy is idempotent.
func (q *Queue[T]) Destroy() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.destroyed {
		return
	}
	q.destroyed = true
	var zero T
	for _, slot := range q.takers.PopAll() {
		slot.Resolve(zero, waitable.ErrDestroyed)
	}
	for _, p := range q.adders.PopAll() {
		p.slot.Resolve(struct{}{}, waitable.ErrDestroyed)
	}
	q.items.PopAll()
}
