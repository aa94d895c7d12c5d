// Package waiters implements the deferred-reply machinery shared by the
// blocking primitives: reply slots that are resolved exactly once, and the
// FIFO queues those slots wait in.
//
// Each primitive is a small state machine whose transitions run under a
// single mutex, one request at a time. A request that cannot be answered
// immediately parks on a [Slot]: the state machine enqueues the slot,
// releases its mutex, and the caller blocks in [Slot.Await] until a later
// transition resolves the slot. Resolution always happens while holding the
// owning primitive's mutex, which is what makes the exactly-once and
// FIFO-fairness invariants cheap to maintain.
package waiters

// A Slot is a deferred reply to one suspended request. It is resolved
// exactly once, with either a value or an error, and awaited exactly once
// by the goroutine that submitted the request.
//
// The slot is backed by a single-element buffered channel, so resolving
// never blocks the state machine that performs it.
type Slot[T any] struct {
	ch chan outcome[T]

	// resolved guards against double resolution. It is read and written only
	// while holding the owning primitive's mutex, never by the awaiting
	// goroutine.
	resolved bool
}

type outcome[T any] struct {
	value T
	err   error
}

// NewSlot returns a slot ready to be enqueued and awaited.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{ch: make(chan outcome[T], 1)}
}

// Resolve delivers the reply, waking the goroutine blocked in Await. The
// caller must hold the owning primitive's mutex.
//
// Resolving a slot twice panics: every waiter must receive exactly one
// outcome, and a second resolution indicates a bug in the state machine.
func (s *Slot[T]) Resolve(value T, err error) {
	if s.resolved {
		panic("waiters: slot resolved twice")
	}
	s.resolved = true
	s.ch <- outcome[T]{value: value, err: err}
}

// Await blocks until the slot is resolved and returns the delivered
// outcome. It must be called without holding the owning primitive's mutex.
func (s *Slot[T]) Await() (T, error) {
	o := <-s.ch
	return o.value, o.err
}

// A Queue is a slice-backed FIFO. The primitives use it both for waiter
// slots and for buffered items. It is not safe for concurrent use; like
// the rest of a primitive's state, it is mutated only under the owning
// mutex.
//
// The zero-value Queue is empty and ready to use.
type Queue[E any] struct {
	elems []E
	head  int
}

// Len returns the number of queued elements.
func (q *Queue[E]) Len() int {
	return len(q.elems) - q.head
}

// Push appends an element to the tail of the queue.
func (q *Queue[E]) Push(e E) {
	q.elems = append(q.elems, e)
}

// Pop removes and returns the oldest element. It reports false if the
// queue is empty.
func (q *Queue[E]) Pop() (E, bool) {
	var zero E
	if q.head == len(q.elems) {
		return zero, false
	}
	e := q.elems[q.head]
	q.elems[q.head] = zero // release the reference
	q.head++
	if q.head == len(q.elems) {
		// Everything consumed; restart at the front of the backing slice.
		q.elems = q.elems[:0]
		q.head = 0
	} else if q.head > len(q.elems)/2 && q.head >= 32 {
		// Keep the dead prefix from growing without bound.
		n := copy(q.elems, q.elems[q.head:])
		clear(q.elems[n:])
		q.elems = q.elems[:n]
		q.head = 0
	}
	return e, true
}

// PopAll removes and returns every queued element in FIFO order. It is
// used to flush waiter queues on broadcast events (count reaching zero,
// destruction).
func (q *Queue[E]) PopAll() []E {
	if q.Len() == 0 {
		return nil
	}
	out := make([]E, q.Len())
	copy(out, q.elems[q.head:])
	clear(q.elems[q.head:])
	q.elems = q.elems[:0]
	q.head = 0
	return out
}
