// Package blockingtest provides utilities for testing blocking
// synchronization primitives. The package offers a small framework for
// asserting that an operation suspends its caller, and that it later
// resumes with a particular outcome, without writing raw goroutine and
// timeout plumbing in every test.
//
// # Example Usage
//
// Start the operation under test with [Go], which runs it in its own
// goroutine and returns a handle:
//
//	pending := blockingtest.Go(sem.Acquire)
//	pending.StillBlocked(t)   // the semaphore is full, Acquire must suspend
//
//	_, err := sem.Release()   // free a permit
//	require.NoError(t, err)
//
//	require.NoError(t, pending.Unblocked(t))  // Acquire resumed with success
//
// Asserting "still blocked" is inherently a negative, timing-based check:
// the helper waits a short settle period and fails if the operation
// returned within it. That can miss a bug on a slow machine but never
// reports a false failure, which is the right trade-off for a test suite.
package blockingtest

import (
	"testing"
	"time"
)

const (
	// settle is how long StillBlocked gives a buggy operation to return
	// before declaring it genuinely suspended.
	settle = 25 * time.Millisecond

	// timeout bounds Unblocked so that a lost wakeup fails the test instead
	// of deadlocking the whole run.
	timeout = 5 * time.Second
)

// Pending is a handle to an operation started with [Go]: an operation that
// is expected to block now and resume later.
type Pending[T any] struct {
	done  chan struct{}
	value T
}

// Go runs f in a new goroutine and returns a handle for asserting on its
// completion. The operation's result is retrieved with [Pending.Unblocked].
func Go[T any](f func() T) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	go func() {
		p.value = f()
		close(p.done)
	}()
	return p
}

// Go2 runs a two-valued operation (the common (value, error) shape) and
// returns a handle delivering both results.
func Go2[A, B any](f func() (A, B)) *Pending[Result[A, B]] {
	return Go(func() Result[A, B] {
		a, b := f()
		return Result[A, B]{a, b}
	})
}

// Result pairs the two return values of an operation started with [Go2].
type Result[A, B any] struct {
	V A
	E B
}

// StillBlocked asserts that the operation has not returned yet. It waits a
// short settle period first, so an operation that wrongly returned
// immediately is caught rather than raced past.
func (p *Pending[T]) StillBlocked(t testing.TB) {
	t.Helper()
	select {
	case <-p.done:
		t.Fatalf("blockingtest: operation returned while it was expected to block")
	case <-time.After(settle):
	}
}

// Unblocked asserts that the operation resumes, and returns its result. A
// wakeup that never arrives fails the test after a generous timeout
// instead of hanging it.
func (p *Pending[T]) Unblocked(t testing.TB) T {
	t.Helper()
	select {
	case <-p.done:
		return p.value
	case <-time.After(timeout):
		t.Fatalf("blockingtest: operation still blocked after %v", timeout)
		panic("unreachable")
	}
}

// Done exposes the operation's completion channel for tests that need to
// select over several pending operations at once.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}
