//go:build !windows

package sig

import (
	"context"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func stopped(t *testing.T, h *Handler) {
	t.Helper()
	syscall.Kill(syscall.Getpid(), syscall.SIGUSR1)
	require.Never(t, func() bool {
		select {
		case _, ok := <-h.sigCh:
			return ok
		default:
			return false
		}
	}, 100*time.Millisecond, 10*time.Millisecond,
		"signal was delivered to channel after Loop returned")
}

func TestLoopContextCancel(t *testing.T) {
	var calls atomic.Int32
	h := New(ReceivedHandlerFunc(func(os.Signal) bool {
		calls.Add(1)
		return true
	}), syscall.SIGUSR1)

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Loop(ctx)
	}()

	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		require.Fail(t, "Loop did not exit after context cancellation")
	}

	require.Zero(t, calls.Load(), "handler should not have been called")
	stopped(t, h)
}

func TestLoopOnce(t *testing.T) {
	received := make(chan os.Signal, 1)
	h := New(Once(func(sig os.Signal) {
		received <- sig
	}), syscall.SIGUSR1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Loop(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	syscall.Kill(syscall.Getpid(), syscall.SIGUSR1)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.Fail(t, "Loop did not exit after signal")
	}

	require.Equal(t, syscall.SIGUSR1, <-received)
	stopped(t, h)
}

func TestLoopRepeats(t *testing.T) {
	var calls atomic.Int32
	h := New(ReceivedHandlerFunc(func(os.Signal) bool {
		calls.Add(1)
		return true
	}), syscall.SIGUSR2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Loop(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 3; i++ {
		syscall.Kill(syscall.Getpid(), syscall.SIGUSR2)
		n := int32(i + 1)
		require.Eventually(t, func() bool { return calls.Load() >= n },
			5*time.Second, 10*time.Millisecond)
	}

	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)
}
