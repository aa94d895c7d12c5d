// Package countdown provides a re-armable countdown latch: callers block
// until a counter, decremented by signals from other goroutines, reaches
// zero.
//
// # Comparison With sync.WaitGroup
//
// The latch covers the same "wait for N things" ground as sync.WaitGroup,
// with three differences that earn it a package:
//
//   - The zero transition is observable: Signal reports true exactly once
//     per countdown-to-zero, so the goroutine that opens the latch knows
//     it did.
//   - The latch is re-armable: Increase and Reset may be called at any
//     point in its life, including after it has opened, without the
//     "WaitGroup reuse before Wait returns" hazard.
//   - The latch is destroyable: Destroy releases every blocked waiter with
//     [waitable.ErrDestroyed] instead of leaking them, and fails all later
//     calls fast.
//
// If you only ever count down from a known N and wait once, sync.WaitGroup
// remains the better tool.
//
// # Implementation
//
// A mutex-guarded counter plus a FIFO queue of reply slots. The queue is
// non-empty only while the count is positive; the moment the count reaches
// zero (via Signal or Reset) the whole queue is flushed with success, and a
// Wait arriving at zero returns without queueing at all.
package countdown
