// Package semaphore provides a counting semaphore with strict FIFO
// fairness among blocked acquirers and explicit destruction semantics.
//
// # Why This Package Exists
//
// A buffered channel already makes a fine semaphore when all you need is
// "at most N at a time". What it cannot give you is ordering or teardown:
// channel wakeups barge (a fresh sender can slip past goroutines already
// blocked on the channel), and there is no way to fail every blocked
// sender at once. This package is the tailored variant for when those
// properties matter:
//
//   - FIFO fairness: blocked Acquire calls are granted permits strictly in
//     arrival order, and TryAcquire can never overtake a blocked waiter.
//   - Destruction: Destroy resumes every blocked acquirer exactly once
//     with [waitable.ErrDestroyed] and fails all later operations fast.
//   - Accounting: Release reports the number of free permits and rejects
//     releases that were never matched by an acquire, instead of silently
//     corrupting the count.
//
// # When NOT to Use This Package
//
// If you do not need fairness or destruction, prefer a plain buffered
// channel; it is smaller and faster. If you need weighted acquisition
// (taking several permits at once) or context cancellation, use
// golang.org/x/sync/semaphore instead. There is no one-size-fits-all
// semaphore; this package deliberately implements exactly one variant.
//
// # Implementation
//
// The semaphore is a mutex-guarded state machine: an acquired counter and
// a FIFO queue of reply slots, one per blocked acquirer. Every transition
// happens under the mutex, one request at a time. A Release with waiters
// queued hands the permit directly to the oldest slot rather than freeing
// it into the pool, which closes the race where a concurrent TryAcquire
// could steal a permit from a longer-waiting caller.
package semaphore
