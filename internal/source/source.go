// Package source implements the platform specific producers of input
// events: the Unix terminal, the Windows console, and a channel fed source
// for hosts without a terminal.
package source

import (
	"time"

	"github.com/peco/termevent/internal/input"
	"github.com/pkg/errors"
)

// ErrInterrupted is returned by TryRead when the wait was cut short by the
// source's Waker.
var ErrInterrupted = errors.New("interrupted by waker")

// Source produces input events.
type Source interface {
	// TryRead waits up to timeout for the next event. It returns (nil, nil)
	// when the timeout expires. A negative timeout waits forever.
	TryRead(timeout time.Duration) (input.Event, error)

	// Waker returns the handle that interrupts a blocked TryRead.
	Waker() Waker
}

// Waker interrupts a blocked TryRead from another goroutine. A Wake that
// happens while nobody waits makes the next TryRead return ErrInterrupted
// right away, until Reset is called.
type Waker interface {
	Wake() error
	Reset() error
}

// CursorPositioner is implemented by sources that can answer a cursor
// position query without a round trip through the terminal.
type CursorPositioner interface {
	CursorPosition() (col, row uint16, err error)
}

// pollMillis converts a timeout into the millisecond argument used by
// poll(2) and WaitForMultipleObjects, rounding up so that a short timeout
// never turns into a busy loop.
func pollMillis(d time.Duration) int {
	if d < 0 {
		return -1
	}
	return int((d + time.Millisecond - 1) / time.Millisecond)
}
