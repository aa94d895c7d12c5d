package waitable

import (
	"errors"
)

// ErrDestroyed is reported by blocking operations when the primitive they
// were waiting on was destroyed, and by any operation submitted to an
// already-destroyed primitive.
//
// Destruction is a broadcast event: every request queued at the moment of
// destruction receives this error exactly once, and the instance accepts no
// further work afterwards. Callers should match it with [errors.Is] because
// primitives may wrap it with operation-specific detail.
var ErrDestroyed = errors.New("waitable: destroyed")

// Waitable is the capability shared by every blocking primitive in this
// module: a resource that a caller can block on until it becomes available.
//
// The two methods are deliberately minimal so that higher-level fan-in and
// fan-out compositions can treat a semaphore, a countdown latch, or any
// future primitive uniformly:
//
//   - Wait() blocks the calling goroutine until the resource is available,
//     returning nil on success or [ErrDestroyed] if the primitive was torn
//     down while the caller was queued.
//   - IsFree() reports, without blocking, whether an immediate Wait would
//     have returned without suspending.
//
// IsFree is inherently racy under concurrency: by the time the caller acts
// on a true result, another goroutine may have consumed the availability.
// It is a probe for monitoring and opportunistic scheduling, not a lock.
type Waitable interface {
	// Wait blocks until the resource is available or the primitive is
	// destroyed. It is resumed exactly once.
	Wait() error

	// IsFree reports whether an immediate Wait would not block.
	IsFree() bool
}
