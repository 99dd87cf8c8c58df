package fleet

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedFleet(t *testing.T, n int) *Fleet {
	t.Helper()
	f, err := New()
	require.NoError(t, err)
	require.NoError(t, f.Start(n))
	t.Cleanup(f.Stop)
	return f
}

func TestStartIdempotent(t *testing.T) {
	f := startedFleet(t, 2)

	assert.True(t, f.Running())
	assert.ErrorIs(t, f.Start(2), ErrAlreadyRunning)
	assert.True(t, f.Running())
	assert.Equal(t, 2, f.IdleWorkers())
}

func TestSubmitRunsTask(t *testing.T) {
	f := startedFleet(t, 1)

	done := make(chan struct{})
	require.NoError(t, f.Submit(func(ctx context.Context) error {
		close(done)
		return nil
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}

func TestSubmitRejectsWhenAllBusy(t *testing.T) {
	f := startedFleet(t, 2)

	gate := make(chan struct{})
	blocker := func(ctx context.Context) error {
		<-gate
		return nil
	}

	require.NoError(t, f.Submit(blocker))
	require.NoError(t, f.Submit(blocker))

	err := f.Submit(func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrNoWorkerAvailable)

	close(gate)

	// Workers report idle again and accept new work
	require.Eventually(t, func() bool {
		return f.IdleWorkers() == 2
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, f.Submit(func(ctx context.Context) error { return nil }))
}

func TestSubmitToStoppedFleet(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	err = f.Submit(func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestStopJoinsWorkers(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	require.NoError(t, f.Start(3))

	var ran atomic.Int64
	for i := 0; i < 3; i++ {
		require.NoError(t, f.Submit(func(ctx context.Context) error {
			time.Sleep(50 * time.Millisecond)
			ran.Add(1)
			return nil
		}))
	}

	// Stop blocks until accepted tasks complete
	f.Stop()
	assert.Equal(t, int64(3), ran.Load())
	assert.False(t, f.Running())

	// Stopping again is a no-op
	f.Stop()
}

func TestStopAndRestart(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	require.NoError(t, f.Start(1))
	f.Stop()

	require.NoError(t, f.Start(2))
	t.Cleanup(f.Stop)
	assert.Equal(t, 2, f.IdleWorkers())
}

func TestFailedTaskDoesNotKillWorker(t *testing.T) {
	f := startedFleet(t, 1)

	require.NoError(t, f.Submit(func(ctx context.Context) error {
		return errors.New("task failed")
	}))
	require.Eventually(t, func() bool {
		return f.IdleWorkers() == 1
	}, 2*time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	require.NoError(t, f.Submit(func(ctx context.Context) error {
		close(done)
		return nil
	}))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not accept work after a failed task")
	}
}
