// Package blockingqueue provides a bounded or unbounded FIFO queue that
// blocks producers when full and consumers when empty, with half-close
// ("complete") and teardown ("destroy") semantics.
//
// # Comparison With Channels
//
// A buffered channel is Go's built-in blocking queue, and for most
// pipelines it should be your first choice. This package exists for the
// cases a channel cannot express:
//
//   - Unbounded capacity: producers never block, the buffer grows as
//     needed.
//   - Half-close from either role: Complete may be called even while
//     producers are blocked, and consumers drain the remaining items
//     before seeing [ErrCompleted]; closing a channel with senders still
//     active panics.
//   - Teardown: Destroy unblocks every waiting producer and consumer with
//     an error; there is no channel operation that does this.
//   - Fairness: blocked producers are admitted, and blocked consumers
//     served, strictly in arrival order, and TryAdd cannot overtake a
//     producer that is already waiting. Channel wakeups make no such
//     promise.
//   - Inspection: Count reports the buffered size without consuming.
//
// # Completion Versus Destruction
//
// Complete is the graceful end: a monotonic flag after which no new items
// are accepted, while everything already admitted (including the items of
// already-blocked producers, which are backfilled as consumers free
// capacity) is still delivered. Destroy is the abrupt end: pending and
// future requests on either side fail with [waitable.ErrDestroyed] and
// buffered items are dropped.
//
// # Implementation
//
// One mutex-guarded state machine per queue: the item buffer plus two FIFO
// waiter queues, one of suspended consumers (non-empty only while the
// queue is empty) and one of suspended producers with their items
// (non-empty only while a bounded queue is full). An Add meeting a queued
// consumer hands its item over directly; a Take on a full queue admits the
// oldest blocked producer in the same step. Both shortcuts preserve global
// FIFO order of admitted items.
package blockingqueue
