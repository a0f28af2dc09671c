package source

import (
	"io"
	"testing"
	"time"

	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/input"
	"github.com/stretchr/testify/require"
)

func TestNoTTY_ReadsKeys(t *testing.T) {
	in := make(chan []byte, 4)
	s := NewNoTTY(in, nil)

	in <- []byte("ab")
	ev, err := s.TryRead(0)
	require.NoError(t, err)
	require.Equal(t, input.Wrap(event.NewRune('a', event.ModNone)), ev)

	ev, err = s.TryRead(0)
	require.NoError(t, err)
	require.Equal(t, input.Wrap(event.NewRune('b', event.ModNone)), ev)
}

func TestNoTTY_ZeroTimeoutOnEmpty(t *testing.T) {
	s := NewNoTTY(make(chan []byte), nil)
	ev, err := s.TryRead(0)
	require.NoError(t, err)
	require.Nil(t, ev)
}

func TestNoTTY_Timeout(t *testing.T) {
	s := NewNoTTY(make(chan []byte), nil)
	start := time.Now()
	ev, err := s.TryRead(30 * time.Millisecond)
	require.NoError(t, err)
	require.Nil(t, ev)
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestNoTTY_EscapeAcrossChunks(t *testing.T) {
	in := make(chan []byte, 4)
	s := NewNoTTY(in, nil)

	// the second chunk is already queued, so the ESC must wait for it
	in <- []byte("\x1b")
	in <- []byte("[A")
	ev, err := s.TryRead(time.Second)
	require.NoError(t, err)
	require.Equal(t, input.Wrap(event.NewKey(event.KeyUp, event.ModNone)), ev)
}

func TestNoTTY_LoneEscape(t *testing.T) {
	in := make(chan []byte, 1)
	s := NewNoTTY(in, nil)

	in <- []byte("\x1b")
	ev, err := s.TryRead(time.Second)
	require.NoError(t, err)
	require.Equal(t, input.Wrap(event.NewKey(event.KeyEsc, event.ModNone)), ev)
}

func TestNoTTY_Resize(t *testing.T) {
	resize := make(chan event.ResizeEvent, 1)
	s := NewNoTTY(make(chan []byte), resize)

	resize <- event.ResizeEvent{Columns: 120, Rows: 40}
	ev, err := s.TryRead(time.Second)
	require.NoError(t, err)
	require.Equal(t, input.Wrap(event.ResizeEvent{Columns: 120, Rows: 40}), ev)
}

func TestNoTTY_Waker(t *testing.T) {
	s := NewNoTTY(make(chan []byte), nil)

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = s.Waker().Wake()
	}()

	ev, err := s.TryRead(input.Forever)
	require.ErrorIs(t, err, ErrInterrupted)
	require.Nil(t, ev)

	// the wake was consumed by the interrupted read
	ev, err = s.TryRead(0)
	require.NoError(t, err)
	require.Nil(t, ev)
}

func TestNoTTY_WakerReset(t *testing.T) {
	s := NewNoTTY(make(chan []byte), nil)
	require.NoError(t, s.Waker().Wake())
	require.NoError(t, s.Waker().Wake())
	require.NoError(t, s.Waker().Reset())

	ev, err := s.TryRead(0)
	require.NoError(t, err)
	require.Nil(t, ev)
}

func TestNoTTY_Closed(t *testing.T) {
	in := make(chan []byte, 1)
	s := NewNoTTY(in, nil)

	in <- []byte("x")
	close(in)

	ev, err := s.TryRead(time.Second)
	require.NoError(t, err)
	require.Equal(t, input.Wrap(event.NewRune('x', event.ModNone)), ev)

	_, err = s.TryRead(time.Second)
	require.ErrorIs(t, err, io.EOF)
}

func TestPollMillis(t *testing.T) {
	require.Equal(t, -1, pollMillis(input.Forever))
	require.Equal(t, 0, pollMillis(0))
	require.Equal(t, 1, pollMillis(time.Microsecond))
	require.Equal(t, 250, pollMillis(250*time.Millisecond))
}
