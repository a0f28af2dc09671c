//go:build unix

package termevent

import (
	"testing"

	"github.com/creack/pty"
	"github.com/peco/termevent/internal/source"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func TestRawMode_NotATerminal(t *testing.T) {
	noTTY(t)

	require.ErrorIs(t, EnableRawMode(), ErrNotATerminal)
	require.False(t, IsRawModeEnabled())
	require.NoError(t, DisableRawMode())
	require.NoError(t, DisableRawMode())
}

func TestRawMode(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty not available: %s", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	src, err := source.NewTTY(tty)
	require.NoError(t, err)
	defer src.Close()

	useState(t, newState())
	require.NoError(t, Init(withSource(src)))

	fd := int(tty.Fd())
	before, err := term.GetState(fd)
	require.NoError(t, err)

	require.NoError(t, EnableRawMode())
	require.True(t, IsRawModeEnabled())
	require.NoError(t, EnableRawMode(), "enabling twice is a no-op")

	require.NoError(t, DisableRawMode())
	require.False(t, IsRawModeEnabled())
	require.NoError(t, DisableRawMode(), "disabling twice is a no-op")

	after, err := term.GetState(fd)
	require.NoError(t, err)
	require.Equal(t, before, after)
}
