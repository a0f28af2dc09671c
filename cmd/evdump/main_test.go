package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/peco/termevent"
	"github.com/peco/termevent/config"
	"github.com/stretchr/testify/require"
)

func TestLoop(t *testing.T) {
	in := make(chan []byte, 4)
	require.NoError(t, termevent.Init(termevent.WithInput(in)))

	stream, err := termevent.NewEventStream()
	require.NoError(t, err)
	defer stream.Close()

	var quit config.Key
	require.NoError(t, quit.UnmarshalFlag("q"))

	var buf bytes.Buffer
	in <- []byte("x\x1b[Oq")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, loop(ctx, stream, quit, printer{w: &buf}))
	require.Equal(t, "key     x              press U+0078\r\nfocus   lost\r\nkey     q              press U+0071\r\n", buf.String())

	ctx, cancel = context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, loop(ctx, stream, quit, printer{w: &buf}), context.DeadlineExceeded)
}

func TestEnableModes(t *testing.T) {
	cfg := config.Default()
	cfg.Mouse = true
	cfg.FocusChange = true
	cfg.KeyboardEnhancement = config.Enhancements{"disambiguate-escape-codes"}

	var buf bytes.Buffer
	restore, err := enableModes(&buf, cfg)
	require.NoError(t, err)
	require.Equal(t, "\x1b[?1000h\x1b[?1002h\x1b[?1003h\x1b[?1015h\x1b[?1006h\x1b[?1004h\x1b[>1u", buf.String())

	buf.Reset()
	restore()
	require.Equal(t, "\x1b[<1u\x1b[?1004l\x1b[?1006l\x1b[?1015l\x1b[?1003l\x1b[?1002l\x1b[?1000l", buf.String())
}

type limitedWriter struct {
	n int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("closed")
	}
	w.n--
	return len(p), nil
}

func TestEnableModes_PartialFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Mouse = true
	cfg.BracketedPaste = true

	w := &limitedWriter{n: 1}
	restore, err := enableModes(w, cfg)
	require.Error(t, err)

	// only mouse capture needs undoing
	w.n = 10
	restore()
	require.Equal(t, 9, w.n)

	_, err = enableModes(io.Discard, &config.Config{KeyboardEnhancement: config.Enhancements{"bogus"}})
	require.Error(t, err)
}
