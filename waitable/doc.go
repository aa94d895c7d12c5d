// Package waitable defines the minimal "blockable resource" capability
// implemented by every primitive in this module, along with the shared
// destruction error.
//
// # Why This Package Exists
//
// The semaphore, countdown latch, and blocking queue in sibling packages
// all share one shape: callers block until some condition holds, waiters
// are woken in FIFO order, and destroying the primitive fails every
// pending and future request. The [Waitable] interface captures the first
// of those behaviours so that composition code (worker pools, fan-in
// selectors, gate chains) can accept "anything blockable" without caring
// which primitive it got.
//
// Only the blocking capability is unified here. The richer operations
// (release, signal, add/take) stay on the concrete types, because they
// differ per primitive and a wider interface would force every primitive
// to stub methods it cannot honour.
//
// # Destruction Semantics
//
// [ErrDestroyed] is the single, uniform failure for torn-down primitives.
// Each primitive guarantees that destruction resolves every queued waiter
// with this error exactly once, and that operations arriving after
// destruction fail immediately with it rather than hanging. There is no
// timeout or cancellation channel anywhere in this module: the supported
// modes are "block forever" and "never block", and destruction is the only
// way to unblock a waiting caller from the outside.
package waitable
