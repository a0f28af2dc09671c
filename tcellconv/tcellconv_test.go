package tcellconv

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/peco/termevent/event"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	cases := []struct {
		in   event.KeyEvent
		key  tcell.Key
		r    rune
		mods tcell.ModMask
	}{
		{event.NewRune('a', event.ModNone), tcell.KeyRune, 'a', tcell.ModNone},
		{event.NewRune('A', event.ModShift), tcell.KeyRune, 'A', tcell.ModNone},
		{event.NewRune('x', event.ModAlt), tcell.KeyRune, 'x', tcell.ModAlt},
		{event.NewKey(event.KeyEnter, event.ModNone), tcell.KeyEnter, 0, tcell.ModNone},
		{event.NewKey(event.KeyBackspace, event.ModNone), tcell.KeyBackspace, 0, tcell.ModNone},
		{event.NewKey(event.KeyUp, event.ModShift), tcell.KeyUp, 0, tcell.ModShift},
		{event.NewKey(event.KeyEsc, event.ModNone), tcell.KeyEscape, 0, tcell.ModNone},
		{event.NewKey(event.KeyBackTab, event.ModShift), tcell.KeyBacktab, 0, tcell.ModShift},
		{event.NewKey(event.KeyF(5), event.ModControl|event.ModAlt), tcell.KeyF5, 0, tcell.ModCtrl | tcell.ModAlt},
		{event.NewKey(event.KeyF(35), event.ModNone), tcell.KeyF35, 0, tcell.ModNone},
		{event.NewKey(event.KeyHome, event.ModSuper), tcell.KeyHome, 0, tcell.ModMeta},
	}

	for _, c := range cases {
		t.Run(c.in.String(), func(t *testing.T) {
			got := Key(c.in)
			require.NotNil(t, got)
			require.Equal(t, c.key, got.Key())
			require.Equal(t, c.mods, got.Modifiers())
			if c.key == tcell.KeyRune {
				require.Equal(t, c.r, got.Rune())
			}
		})
	}
}

func TestKey_Control(t *testing.T) {
	for _, in := range []event.KeyEvent{
		event.NewRune('c', event.ModControl),
		event.NewRune('C', event.ModControl|event.ModShift),
	} {
		got := Key(in)
		require.NotNil(t, got)
		require.NotZero(t, got.Modifiers()&tcell.ModCtrl, "%s", in)
		if got.Key() == tcell.KeyRune {
			require.Equal(t, 'c', got.Rune(), "%s", in)
		} else {
			require.Equal(t, tcell.KeyCtrlC, got.Key(), "%s", in)
		}
	}
}

func TestKey_Dropped(t *testing.T) {
	release := event.NewRune('a', event.ModNone)
	release.Kind = event.KindRelease
	require.Nil(t, Key(release))
	require.Empty(t, ToTcell(release))

	require.Nil(t, Key(event.NewKey(event.KeyMediaPlay, event.ModNone)))
	require.Nil(t, Key(event.NewKey(event.KeyLeftShift, event.ModShift)))

	repeat := event.NewRune('a', event.ModNone)
	repeat.Kind = event.KindRepeat
	require.NotNil(t, Key(repeat))
}

func TestMouse(t *testing.T) {
	cases := []struct {
		in  event.MouseEvent
		btn tcell.ButtonMask
	}{
		{event.MouseEvent{Kind: event.MouseDown, Button: event.MouseLeft}, tcell.ButtonPrimary},
		{event.MouseEvent{Kind: event.MouseDown, Button: event.MouseRight}, tcell.ButtonSecondary},
		{event.MouseEvent{Kind: event.MouseDrag, Button: event.MouseMiddle}, tcell.ButtonMiddle},
		{event.MouseEvent{Kind: event.MouseUp, Button: event.MouseLeft}, tcell.ButtonNone},
		{event.MouseEvent{Kind: event.MouseMoved}, tcell.ButtonNone},
		{event.MouseEvent{Kind: event.MouseScrollUp}, tcell.WheelUp},
		{event.MouseEvent{Kind: event.MouseScrollDown}, tcell.WheelDown},
		{event.MouseEvent{Kind: event.MouseScrollLeft}, tcell.WheelLeft},
		{event.MouseEvent{Kind: event.MouseScrollRight}, tcell.WheelRight},
	}
	for _, c := range cases {
		c.in.Column, c.in.Row = 7, 3
		c.in.Modifiers = event.ModControl
		got := Mouse(c.in)
		require.Equal(t, c.btn, got.Buttons(), "%v", c.in.Kind)
		x, y := got.Position()
		require.Equal(t, 7, x)
		require.Equal(t, 3, y)
		require.Equal(t, tcell.ModCtrl, got.Modifiers())
	}
}

func TestToTcell(t *testing.T) {
	evs := ToTcell(event.ResizeEvent{Columns: 120, Rows: 40})
	require.Len(t, evs, 1)
	resize, ok := evs[0].(*tcell.EventResize)
	require.True(t, ok)
	w, h := resize.Size()
	require.Equal(t, 120, w)
	require.Equal(t, 40, h)

	evs = ToTcell(event.FocusLostEvent{})
	require.Len(t, evs, 1)
	focus, ok := evs[0].(*tcell.EventFocus)
	require.True(t, ok)
	require.False(t, focus.Focused)

	evs = ToTcell(event.NewRune('q', event.ModNone))
	require.Len(t, evs, 1)
	require.IsType(t, &tcell.EventKey{}, evs[0])
}

func TestToTcell_Paste(t *testing.T) {
	evs := ToTcell(event.PasteEvent{Text: "hé\r\nx\ty"})
	require.Len(t, evs, 8)

	start, ok := evs[0].(*tcell.EventPaste)
	require.True(t, ok)
	require.True(t, start.Start())
	end, ok := evs[len(evs)-1].(*tcell.EventPaste)
	require.True(t, ok)
	require.True(t, end.End())

	var keys []tcell.Key
	var runes []rune
	for _, ev := range evs[1 : len(evs)-1] {
		k := ev.(*tcell.EventKey)
		keys = append(keys, k.Key())
		if k.Key() == tcell.KeyRune {
			runes = append(runes, k.Rune())
		}
	}
	require.Equal(t, []tcell.Key{tcell.KeyRune, tcell.KeyRune, tcell.KeyEnter, tcell.KeyRune, tcell.KeyTab, tcell.KeyRune}, keys)
	require.Equal(t, []rune("héxy"), runes)
}
