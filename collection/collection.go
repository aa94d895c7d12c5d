package collection

import (
	"iter"
)

// Collection is the blocking-collection capability: an ordered container
// that can be fed, drained, and half-closed. *blockingqueue.Queue[T]
// implements it; so can any other primitive exposing the same four
// operations.
//
// The contract mirrors the queue's semantics:
//
//   - Add admits an item, blocking as the implementation requires, and
//     returns an error once no more items can be accepted.
//   - Take removes the oldest item, blocking while none is available, and
//     returns a non-nil error as its terminal outcome, whether graceful
//     (completed and drained) or not (destroyed).
//   - Complete half-closes the collection.
//   - Count reports the number of buffered items without consuming.
type Collection[T any] interface {
	Add(item T) error
	Take() (T, error)
	Complete() error
	Count() int
}

// Items returns the collection's elements as a lazy sequence, consuming
// them as it goes. Each element is obtained with a blocking Take, so
// ranging over the sequence keeps pace with producers and ends when the
// collection reaches a terminal state, completion and destruction alike.
// No error is surfaced; the sequence simply stops.
//
// The sequence is destructive and not replayable: concurrent consumers
// ranging over the same collection each observe a disjoint subset of the
// items, and ranging again continues consuming the same underlying
// collection rather than restarting it. Breaking out of a range loop
// leaves the remaining items in place for other consumers.
func Items[T any](c Collection[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, err := c.Take()
			if err != nil {
				return
			}
			if !yield(item) {
				return
			}
		}
	}
}

// AddAll feeds every element of seq into the collection in order, blocking
// as Add does. It stops at the first failed Add and returns its error, so
// a completed or destroyed collection terminates the feed rather than
// discarding items silently. A nil return means the whole sequence was
// admitted.
func AddAll[T any](c Collection[T], seq iter.Seq[T]) error {
	for item := range seq {
		if err := c.Add(item); err != nil {
			return err
		}
	}
	return nil
}
