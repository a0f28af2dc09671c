package termevent

import (
	"errors"
	"testing"
	"time"

	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/input"
	"github.com/peco/termevent/internal/source"
	"github.com/stretchr/testify/require"
)

// useState replaces the shared state for the duration of a test.
func useState(t *testing.T, s *state) *state {
	t.Helper()
	prev := global
	global = s
	t.Cleanup(func() { global = prev })
	return s
}

// noTTY installs a channel fed reader and returns its input channel.
func noTTY(t *testing.T, opts ...Option) chan []byte {
	t.Helper()
	useState(t, newState())
	in := make(chan []byte, 16)
	require.NoError(t, Init(append([]Option{WithInput(in)}, opts...)...))
	return in
}

func TestPoll_EmptyZeroTimeout(t *testing.T) {
	noTTY(t)

	ok, err := Poll(0)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPoll_Timeout(t *testing.T) {
	noTTY(t)

	start := time.Now()
	ok, err := Poll(30 * time.Millisecond)
	require.NoError(t, err)
	require.False(t, ok)
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestRead(t *testing.T) {
	in := noTTY(t)
	in <- []byte("x\x1b[B")

	ok, err := Poll(time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	ev, err := Read()
	require.NoError(t, err)
	require.Equal(t, event.NewRune('x', event.ModNone), ev)

	ev, ok, err = TryRead()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, event.NewKey(event.KeyDown, event.ModNone), ev)

	ev, ok, err = TryRead()
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, ev)
}

func TestRead_SkipsReplies(t *testing.T) {
	in := noTTY(t)
	in <- []byte("\x1b[3;4Rq")

	ev, err := Read()
	require.NoError(t, err)
	require.Equal(t, event.NewRune('q', event.ModNone), ev)

	// the reply stays queued for whoever asked for it
	got, err := global.read(input.CursorPositionFilter)
	require.NoError(t, err)
	require.Equal(t, input.CursorPosition{Column: 3, Row: 2}, got)
}

func TestResize(t *testing.T) {
	resize := make(chan event.ResizeEvent, 1)
	noTTY(t, WithResize(resize))

	resize <- event.ResizeEvent{Columns: 80, Rows: 25}
	ev, err := Read()
	require.NoError(t, err)
	require.Equal(t, event.ResizeEvent{Columns: 80, Rows: 25}, ev)
}

func TestInit(t *testing.T) {
	t.Run("twice", func(t *testing.T) {
		noTTY(t)
		require.ErrorIs(t, Init(WithInput(make(chan []byte))), ErrAlreadyInitialized)
	})
	t.Run("resize requires input", func(t *testing.T) {
		useState(t, newState())
		require.Error(t, Init(WithResize(make(chan event.ResizeEvent))))
	})
	t.Run("nil output", func(t *testing.T) {
		useState(t, newState())
		require.Error(t, Init(WithOutput(nil)))
	})
}

func TestInit_FailureIsNotCached(t *testing.T) {
	s := useState(t, newState())
	boom := errors.New("no device")
	attempts := 0
	s.open = func() (source.Source, error) {
		attempts++
		if attempts == 1 {
			return nil, boom
		}
		return source.NewNoTTY(make(chan []byte), nil), nil
	}

	_, err := Poll(0)
	require.ErrorIs(t, err, boom)

	ok, err := Poll(0)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 2, attempts)
}

func TestPoll_GivesUpOnLock(t *testing.T) {
	noTTY(t)

	require.True(t, global.acquire(0))
	defer global.release()

	start := time.Now()
	ok, err := Poll(20 * time.Millisecond)
	require.NoError(t, err)
	require.False(t, ok)
	require.Less(t, time.Since(start), time.Second)

	_, ok, err = TryRead()
	require.NoError(t, err)
	require.False(t, ok)
}
