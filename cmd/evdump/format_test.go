package main

import (
	"bytes"
	"testing"

	"github.com/peco/termevent/event"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		ev   event.Event
		want string
	}{
		{event.NewRune('a', event.ModNone), "key     a              press U+0061"},
		{event.NewRune('日', event.ModAlt), "key     M-日           press U+65E5"},
		{event.NewKey(event.KeyF(5), event.ModControl), "key     C-F5           press"},
		{event.KeyEvent{Code: event.KeyEnter, Kind: event.KindRelease, State: event.StateKeypad}, "key     Enter          release keypad"},
		{event.MouseEvent{Kind: event.MouseDown, Button: event.MouseRight, Column: 3, Row: 9}, "mouse   down right at 3,9"},
		{event.MouseEvent{Kind: event.MouseScrollUp, Column: 1, Row: 2, Modifiers: event.ModControl}, "mouse   scroll-up at 1,2 with C"},
		{event.ResizeEvent{Columns: 80, Rows: 24}, "resize  80x24"},
		{event.FocusGainedEvent{}, "focus   gained"},
		{event.FocusLostEvent{}, "focus   lost"},
		{event.PasteEvent{Text: "a\nb"}, `paste   "a\nb"`},
	}

	var p printer
	for _, c := range cases {
		require.Equal(t, c.want, p.format(c.ev))
	}
}

func TestFormat_Tcell(t *testing.T) {
	p := printer{tcell: true}
	require.Equal(t, "focus   gained  tcell=[EventFocus]", p.format(event.FocusGainedEvent{}))
	require.Equal(t, `paste   "x"  tcell=[EventPaste EventKey EventPaste]`, p.format(event.PasteEvent{Text: "x"}))
}

func TestPrinterRow(t *testing.T) {
	var buf bytes.Buffer
	p := printer{w: &buf}
	require.NoError(t, p.row(event.ResizeEvent{Columns: 1, Rows: 2}))
	require.NoError(t, p.notef("cursor at %d,%d", 4, 5))
	require.Equal(t, "resize  1x2\r\n# cursor at 4,5\r\n", buf.String())
}
