package source

import (
	"unicode"
	"unicode/utf16"

	"github.com/peco/termevent/event"
)

// Windows console input records. The layouts match the Win32 structures so
// that the console source can read them directly.
type keyEventRecord struct {
	KeyDown         int32
	RepeatCount     uint16
	VirtualKeyCode  uint16
	VirtualScanCode uint16
	UnicodeChar     uint16
	ControlKeyState uint32
}

type mouseEventRecord struct {
	X               int16
	Y               int16
	ButtonState     uint32
	ControlKeyState uint32
	EventFlags      uint32
}

// control key state
const (
	rightAltPressed  = 0x0001
	leftAltPressed   = 0x0002
	rightCtrlPressed = 0x0004
	leftCtrlPressed  = 0x0008
	shiftPressed     = 0x0010
	numLockOn        = 0x0020
	capsLockOn       = 0x0080
)

// mouse button state and event flags
const (
	fromLeft1stButton = 0x0001
	rightmostButton   = 0x0002
	fromLeft2ndButton = 0x0004

	mouseMoved    = 0x0001
	mouseWheeled  = 0x0004
	mouseHWheeled = 0x0008
)

const (
	vkSpace = 0x20
	vkF1    = 0x70
	vkF24   = 0x87
)

var vkKeys = map[uint16]event.Key{
	0x08: event.KeyBackspace,
	0x09: event.KeyTab,
	0x0d: event.KeyEnter,
	0x13: event.KeyPause,
	0x14: event.KeyCapsLock,
	0x1b: event.KeyEsc,
	0x21: event.KeyPageUp,
	0x22: event.KeyPageDown,
	0x23: event.KeyEnd,
	0x24: event.KeyHome,
	0x25: event.KeyLeft,
	0x26: event.KeyUp,
	0x27: event.KeyRight,
	0x28: event.KeyDown,
	0x2c: event.KeyPrintScreen,
	0x2d: event.KeyInsert,
	0x2e: event.KeyDelete,
	0x5d: event.KeyMenu,
	0x90: event.KeyNumLock,
	0x91: event.KeyScrollLock,
}

var mouseButtons = []struct {
	bit    uint32
	button event.MouseButton
}{
	{fromLeft1stButton, event.MouseLeft},
	{rightmostButton, event.MouseRight},
	{fromLeft2ndButton, event.MouseMiddle},
}

const allMouseButtons = fromLeft1stButton | rightmostButton | fromLeft2ndButton

// consoleDecoder turns console records into events. It keeps the state
// that spans records: the high half of a surrogate pair and the buttons
// held at the last mouse report.
type consoleDecoder struct {
	surrogate uint16
	buttons   uint32
}

func controlModifiers(state uint32) event.KeyModifiers {
	var mods event.KeyModifiers
	if state&shiftPressed != 0 {
		mods |= event.ModShift
	}
	if state&(leftCtrlPressed|rightCtrlPressed) != 0 {
		mods |= event.ModControl
	}
	if state&(leftAltPressed|rightAltPressed) != 0 {
		mods |= event.ModAlt
	}
	return mods
}

func controlState(state uint32) event.KeyEventState {
	var s event.KeyEventState
	if state&capsLockOn != 0 {
		s |= event.StateCapsLock
	}
	if state&numLockOn != 0 {
		s |= event.StateNumLock
	}
	return s
}

func (d *consoleDecoder) key(r keyEventRecord) (event.KeyEvent, bool) {
	ev := event.KeyEvent{
		Modifiers: controlModifiers(r.ControlKeyState),
		State:     controlState(r.ControlKeyState),
	}
	if r.KeyDown == 0 {
		ev.Kind = event.KindRelease
	}

	if code, ok := vkKeys[r.VirtualKeyCode]; ok {
		if code == event.KeyTab && ev.Modifiers.Has(event.ModShift) {
			code = event.KeyBackTab
		}
		ev.Code = code
		return ev, true
	}
	if vk := r.VirtualKeyCode; vk >= vkF1 && vk <= vkF24 {
		ev.Code = event.KeyF(int(vk-vkF1) + 1)
		return ev, true
	}

	c := r.UnicodeChar
	var ch rune
	switch {
	case utf16.IsSurrogate(rune(c)):
		if c < 0xdc00 {
			d.surrogate = c
			return ev, false
		}
		if d.surrogate == 0 {
			return ev, false
		}
		ch = utf16.DecodeRune(rune(d.surrogate), rune(c))
		d.surrogate = 0
		if ch == unicode.ReplacementChar {
			return ev, false
		}
	case c != 0:
		ch = rune(c)
	case r.VirtualKeyCode == vkSpace:
		ch = ' '
	case ev.Modifiers.Has(event.ModControl):
		// control combinations without a character, like Ctrl+2
		vk := rune(r.VirtualKeyCode)
		switch {
		case vk >= '0' && vk <= '9':
			ch = vk
		case vk >= 'A' && vk <= 'Z':
			ch = unicode.ToLower(vk)
		default:
			return ev, false
		}
	default:
		// modifier keys on their own
		return ev, false
	}

	switch {
	case ch >= 0x01 && ch <= 0x1a && ev.Modifiers.Has(event.ModControl):
		ch = 'a' + ch - 0x01
	case ch >= 0x20 && ev.Modifiers.Has(event.ModControl|event.ModAlt):
		// AltGr is reported as Ctrl+Alt, and the character already
		// reflects it
		ev.Modifiers &^= event.ModControl | event.ModAlt
	}

	ev.Code = event.KeyRune
	ev.Rune = ch
	return ev, true
}

func clampCoord(v int16) uint16 {
	if v < 0 {
		return 0
	}
	return uint16(v)
}

// mouse decodes a mouse record. windowTop is the first buffer row shown in
// the window, so that rows are relative to the visible area.
func (d *consoleDecoder) mouse(r mouseEventRecord, windowTop int16) (event.MouseEvent, bool) {
	ev := event.MouseEvent{
		Column:    clampCoord(r.X),
		Row:       clampCoord(r.Y - windowTop),
		Modifiers: controlModifiers(r.ControlKeyState),
	}
	pressed := r.ButtonState & allMouseButtons

	switch {
	case r.EventFlags&mouseWheeled != 0:
		if int16(r.ButtonState>>16) > 0 {
			ev.Kind = event.MouseScrollUp
		} else {
			ev.Kind = event.MouseScrollDown
		}
		return ev, true
	case r.EventFlags&mouseHWheeled != 0:
		if int16(r.ButtonState>>16) > 0 {
			ev.Kind = event.MouseScrollRight
		} else {
			ev.Kind = event.MouseScrollLeft
		}
		return ev, true
	case r.EventFlags&mouseMoved != 0:
		d.buttons = pressed
		if pressed == 0 {
			ev.Kind = event.MouseMoved
			return ev, true
		}
		for _, b := range mouseButtons {
			if pressed&b.bit != 0 {
				ev.Kind = event.MouseDrag
				ev.Button = b.button
				break
			}
		}
		return ev, true
	}

	// a click, a double click, or a release
	prev := d.buttons
	d.buttons = pressed
	for _, b := range mouseButtons {
		if pressed&b.bit != 0 && prev&b.bit == 0 {
			ev.Kind = event.MouseDown
			ev.Button = b.button
			return ev, true
		}
	}
	for _, b := range mouseButtons {
		if prev&b.bit != 0 && pressed&b.bit == 0 {
			ev.Kind = event.MouseUp
			ev.Button = b.button
			return ev, true
		}
	}
	return ev, false
}
