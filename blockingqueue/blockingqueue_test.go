package blockingqueue_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/notorious-go/blocking/blockingqueue"
	"github.com/notorious-go/blocking/blockingtest"
	"github.com/notorious-go/blocking/waitable"
)

func TestNewRejectsZeroCapacity(t *testing.T) {
	require.Panics(t, func() { blockingqueue.New[int](0) })
}

func TestItemsAreTakenInAddOrder(t *testing.T) {
	q := blockingqueue.New[int](blockingqueue.Unlimited)
	for i := 1; i <= 5; i++ {
		require.NoError(t, q.Add(i))
	}
	require.Equal(t, 5, q.Count())

	for i := 1; i <= 5; i++ {
		item, err := q.Take()
		require.NoError(t, err)
		require.Equal(t, i, item)
	}
	require.Equal(t, 0, q.Count())
}

func TestAddBlocksWhenFullUntilTakeFreesCapacity(t *testing.T) {
	q := blockingqueue.New[string](1)
	require.NoError(t, q.Add("x"))

	pending := blockingtest.Go(func() error { return q.Add("y") })
	pending.StillBlocked(t)

	item, err := q.Take()
	require.NoError(t, err)
	require.Equal(t, "x", item)

	require.NoError(t, pending.Unblocked(t))
	item, err = q.Take()
	require.NoError(t, err)
	require.Equal(t, "y", item)
}

func TestTakeBlocksWhenEmptyAndAddHandsOffDirectly(t *testing.T) {
	q := blockingqueue.New[int](4)

	taker := blockingtest.Go2(q.Take)
	taker.StillBlocked(t)

	require.NoError(t, q.Add(7))
	got := taker.Unblocked(t)
	require.NoError(t, got.E)
	require.Equal(t, 7, got.V)

	// The handoff bypasses the buffer entirely.
	require.Equal(t, 0, q.Count())
}

func TestBlockedTakersAreServedFIFO(t *testing.T) {
	q := blockingqueue.New[int](blockingqueue.Unlimited)

	first := blockingtest.Go2(q.Take)
	first.StillBlocked(t)
	second := blockingtest.Go2(q.Take)
	second.StillBlocked(t)

	require.NoError(t, q.Add(1))
	got := first.Unblocked(t)
	require.NoError(t, got.E)
	require.Equal(t, 1, got.V)
	second.StillBlocked(t)

	require.NoError(t, q.Add(2))
	got = second.Unblocked(t)
	require.NoError(t, got.E)
	require.Equal(t, 2, got.V)
}

func TestBlockedAddersAreAdmittedFIFO(t *testing.T) {
	q := blockingqueue.New[int](1)
	require.NoError(t, q.Add(1))

	first := blockingtest.Go(func() error { return q.Add(2) })
	first.StillBlocked(t)
	second := blockingtest.Go(func() error { return q.Add(3) })
	second.StillBlocked(t)

	// Each take backfills exactly one blocked producer, oldest first, and
	// the buffered count stays at capacity until the producer queue drains.
	item, err := q.Take()
	require.NoError(t, err)
	require.Equal(t, 1, item)
	require.NoError(t, first.Unblocked(t))
	require.Equal(t, 1, q.Count())
	second.StillBlocked(t)

	item, err = q.Take()
	require.NoError(t, err)
	require.Equal(t, 2, item)
	require.NoError(t, second.Unblocked(t))

	item, err = q.Take()
	require.NoError(t, err)
	require.Equal(t, 3, item)
}

func TestTryAdd(t *testing.T) {
	q := blockingqueue.New[int](1)
	require.True(t, q.TryAdd(1))
	require.False(t, q.TryAdd(2), "full queue must refuse without blocking")

	_, err := q.Take()
	require.NoError(t, err)
	require.True(t, q.TryAdd(3))

	require.NoError(t, q.Complete())
	require.False(t, q.TryAdd(4), "completed queue must refuse")
}

func TestTryAddHandsOffToWaitingTaker(t *testing.T) {
	q := blockingqueue.New[int](1)
	taker := blockingtest.Go2(q.Take)
	taker.StillBlocked(t)

	require.True(t, q.TryAdd(9))
	got := taker.Unblocked(t)
	require.NoError(t, got.E)
	require.Equal(t, 9, got.V)
}

func TestTryTake(t *testing.T) {
	q := blockingqueue.New[int](2)

	_, err := q.TryTake()
	require.ErrorIs(t, err, blockingqueue.ErrEmpty)

	require.NoError(t, q.Add(5))
	item, err := q.TryTake()
	require.NoError(t, err)
	require.Equal(t, 5, item)

	require.NoError(t, q.Complete())
	_, err = q.TryTake()
	require.ErrorIs(t, err, blockingqueue.ErrCompleted)
}

func TestTryTakeBackfillsBlockedAdder(t *testing.T) {
	q := blockingqueue.New[int](1)
	require.NoError(t, q.Add(1))
	pending := blockingtest.Go(func() error { return q.Add(2) })
	pending.StillBlocked(t)

	item, err := q.TryTake()
	require.NoError(t, err)
	require.Equal(t, 1, item)
	require.NoError(t, pending.Unblocked(t))
	require.Equal(t, 1, q.Count())
}

func TestCompleteStopsAddsButServesBufferedItems(t *testing.T) {
	q := blockingqueue.New[int](blockingqueue.Unlimited)
	require.NoError(t, q.Add(1))
	require.NoError(t, q.Add(2))

	require.NoError(t, q.Complete())
	require.NoError(t, q.Complete(), "complete is idempotent")
	require.ErrorIs(t, q.Add(3), blockingqueue.ErrClosed)

	item, err := q.Take()
	require.NoError(t, err)
	require.Equal(t, 1, item)
	item, err = q.Take()
	require.NoError(t, err)
	require.Equal(t, 2, item)

	_, err = q.Take()
	require.ErrorIs(t, err, blockingqueue.ErrCompleted)
}

func TestCompleteReleasesBlockedTakers(t *testing.T) {
	q := blockingqueue.New[int](blockingqueue.Unlimited)
	first := blockingtest.Go2(q.Take)
	first.StillBlocked(t)
	second := blockingtest.Go2(q.Take)
	second.StillBlocked(t)

	require.NoError(t, q.Complete())
	require.ErrorIs(t, first.Unblocked(t).E, blockingqueue.ErrCompleted)
	require.ErrorIs(t, second.Unblocked(t).E, blockingqueue.ErrCompleted)
}

func TestCompleteStillAdmitsAlreadyBlockedAdders(t *testing.T) {
	q := blockingqueue.New[string](1)
	require.NoError(t, q.Add("a"))
	pending := blockingtest.Go(func() error { return q.Add("b") })
	pending.StillBlocked(t)

	// Completion gates new adds only; the producer that was already queued
	// is admitted once capacity frees.
	require.NoError(t, q.Complete())
	pending.StillBlocked(t)

	item, err := q.Take()
	require.NoError(t, err)
	require.Equal(t, "a", item)
	require.NoError(t, pending.Unblocked(t))

	item, err = q.Take()
	require.NoError(t, err)
	require.Equal(t, "b", item)

	_, err = q.Take()
	require.ErrorIs(t, err, blockingqueue.ErrCompleted)
}

func TestDestroyResolvesBothSides(t *testing.T) {
	q := blockingqueue.New[int](1)

	taker := blockingtest.Go2(q.Take)
	taker.StillBlocked(t)

	require.NoError(t, q.Add(1))
	// The add above woke the taker; park a producer next.
	got := taker.Unblocked(t)
	require.NoError(t, got.E)
	require.NoError(t, q.Add(2))
	adder := blockingtest.Go(func() error { return q.Add(3) })
	adder.StillBlocked(t)

	q.Destroy()
	q.Destroy() // idempotent
	require.ErrorIs(t, adder.Unblocked(t), waitable.ErrDestroyed)

	require.ErrorIs(t, q.Add(4), waitable.ErrDestroyed)
	require.False(t, q.TryAdd(4))
	_, err := q.Take()
	require.ErrorIs(t, err, waitable.ErrDestroyed)
	_, err = q.TryTake()
	require.ErrorIs(t, err, waitable.ErrDestroyed)
	require.ErrorIs(t, q.Complete(), waitable.ErrDestroyed)
	require.Equal(t, 0, q.Count())
}

func TestConcurrentProducerTwoConsumers(t *testing.T) {
	const total = 1000
	q := blockingqueue.New[int](blockingqueue.Unlimited)

	var mu sync.Mutex
	seen := make(map[int]int, total)
	drain := func() error {
		for {
			item, err := q.Take()
			if err != nil {
				return nil // completed
			}
			mu.Lock()
			seen[item]++
			mu.Unlock()
		}
	}

	var g errgroup.Group
	g.Go(drain)
	g.Go(drain)
	g.Go(func() error {
		for i := 1; i <= total; i++ {
			if err := q.Add(i); err != nil {
				return err
			}
		}
		return q.Complete()
	})
	require.NoError(t, g.Wait())

	// Both consumers together observe every item exactly once.
	require.Len(t, seen, total)
	for i := 1; i <= total; i++ {
		require.Equal(t, 1, seen[i], "item %d", i)
	}
}
