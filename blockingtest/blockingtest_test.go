package blockingtest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notorious-go/blocking/blockingtest"
)

func TestPendingObservesBlockingAndResumption(t *testing.T) {
	gate := make(chan int)

	pending := blockingtest.Go(func() int { return <-gate })
	pending.StillBlocked(t)

	gate <- 42
	require.Equal(t, 42, pending.Unblocked(t))
}

func TestGo2DeliversBothResults(t *testing.T) {
	gate := make(chan struct{})

	pending := blockingtest.Go2(func() (string, error) {
		<-gate
		return "done", nil
	})
	pending.StillBlocked(t)

	close(gate)
	got := pending.Unblocked(t)
	require.Equal(t, "done", got.V)
	require.NoError(t, got.E)
}

func TestDoneSelectsAcrossPendingOperations(t *testing.T) {
	first := make(chan struct{})
	second := make(chan struct{})

	a := blockingtest.Go(func() int { <-first; return 1 })
	b := blockingtest.Go(func() int { <-second; return 2 })

	close(second)
	select {
	case <-b.Done():
	case <-a.Done():
		t.Fatal("first operation should still be blocked")
	}

	close(first)
	require.Equal(t, 1, a.Unblocked(t))
	require.Equal(t, 2, b.Unblocked(t))
}
