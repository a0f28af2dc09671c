// Package tcellconv converts termevent events into tcell events, so that
// programs built around tcell's event loop can be fed from termevent.
package tcellconv

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/peco/termevent/event"
)

var keys = map[event.Key]tcell.Key{
	event.KeyBackspace:   tcell.KeyBackspace,
	event.KeyEnter:       tcell.KeyEnter,
	event.KeyLeft:        tcell.KeyLeft,
	event.KeyRight:       tcell.KeyRight,
	event.KeyUp:          tcell.KeyUp,
	event.KeyDown:        tcell.KeyDown,
	event.KeyHome:        tcell.KeyHome,
	event.KeyEnd:         tcell.KeyEnd,
	event.KeyPageUp:      tcell.KeyPgUp,
	event.KeyPageDown:    tcell.KeyPgDn,
	event.KeyTab:         tcell.KeyTab,
	event.KeyBackTab:     tcell.KeyBacktab,
	event.KeyDelete:      tcell.KeyDelete,
	event.KeyInsert:      tcell.KeyInsert,
	event.KeyNull:        tcell.KeyCtrlSpace,
	event.KeyEsc:         tcell.KeyEscape,
	event.KeyPrintScreen: tcell.KeyPrint,
	event.KeyPause:       tcell.KeyPause,
}

// ToTcell converts ev into the tcell events a tcell screen would have
// produced for the same input. Key releases and keys tcell has no name for
// convert to nothing. A paste becomes a paste start, one key event per
// character and a paste end.
func ToTcell(ev event.Event) []tcell.Event {
	switch ev := ev.(type) {
	case event.KeyEvent:
		if k := Key(ev); k != nil {
			return []tcell.Event{k}
		}
	case event.MouseEvent:
		return []tcell.Event{Mouse(ev)}
	case event.ResizeEvent:
		return []tcell.Event{tcell.NewEventResize(int(ev.Columns), int(ev.Rows))}
	case event.FocusGainedEvent:
		return []tcell.Event{tcell.NewEventFocus(true)}
	case event.FocusLostEvent:
		return []tcell.Event{tcell.NewEventFocus(false)}
	case event.PasteEvent:
		return paste(ev.Text)
	}
	return nil
}

// Modifiers converts a modifier set. Super maps to tcell's Meta, Hyper has
// no counterpart.
func Modifiers(m event.KeyModifiers) tcell.ModMask {
	var mod tcell.ModMask
	if m&event.ModShift != 0 {
		mod |= tcell.ModShift
	}
	if m&event.ModControl != 0 {
		mod |= tcell.ModCtrl
	}
	if m&event.ModAlt != 0 {
		mod |= tcell.ModAlt
	}
	if m&(event.ModMeta|event.ModSuper) != 0 {
		mod |= tcell.ModMeta
	}
	return mod
}

// Key converts a key event. It returns nil for releases and for keys
// tcell does not know.
func Key(ev event.KeyEvent) *tcell.EventKey {
	if ev.Kind == event.KindRelease {
		return nil
	}

	mods := ev.Modifiers
	if ev.IsRune() {
		// the character already reflects shift
		mods &^= event.ModShift
		mod := Modifiers(mods)
		r := unicode.ToLower(ev.Rune)
		if mods&event.ModControl != 0 && r >= 'a' && r <= 'z' {
			k := tcell.KeyCtrlA + tcell.Key(r-'a')
			return tcell.NewEventKey(k, rune(k), mod)
		}
		return tcell.NewEventKey(tcell.KeyRune, ev.Rune, mod)
	}

	mod := Modifiers(mods)
	if n := ev.Code.FunctionKey(); n > 0 {
		return tcell.NewEventKey(tcell.KeyF1+tcell.Key(n-1), 0, mod)
	}
	k, ok := keys[ev.Code]
	if !ok {
		return nil
	}
	return tcell.NewEventKey(k, rune(k), mod)
}

// Mouse converts a mouse event. tcell reports button state rather than
// transitions, so releases and plain motion carry no button.
func Mouse(ev event.MouseEvent) *tcell.EventMouse {
	var btn tcell.ButtonMask
	switch ev.Kind {
	case event.MouseDown, event.MouseDrag:
		btn = button(ev.Button)
	case event.MouseScrollUp:
		btn = tcell.WheelUp
	case event.MouseScrollDown:
		btn = tcell.WheelDown
	case event.MouseScrollLeft:
		btn = tcell.WheelLeft
	case event.MouseScrollRight:
		btn = tcell.WheelRight
	default:
		btn = tcell.ButtonNone
	}
	return tcell.NewEventMouse(int(ev.Column), int(ev.Row), btn, Modifiers(ev.Modifiers))
}

func button(b event.MouseButton) tcell.ButtonMask {
	switch b {
	case event.MouseRight:
		return tcell.ButtonSecondary
	case event.MouseMiddle:
		return tcell.ButtonMiddle
	default:
		return tcell.ButtonPrimary
	}
}

func paste(text string) []tcell.Event {
	evs := make([]tcell.Event, 0, len(text)+2)
	evs = append(evs, tcell.NewEventPaste(true))
	var prev rune
	for _, r := range text {
		cr := prev == '\r'
		prev = r
		switch r {
		case '\n':
			if cr {
				continue
			}
			evs = append(evs, tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone))
		case '\r':
			evs = append(evs, tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone))
		case '\t':
			evs = append(evs, tcell.NewEventKey(tcell.KeyTab, '\t', tcell.ModNone))
		default:
			evs = append(evs, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		}
	}
	return append(evs, tcell.NewEventPaste(false))
}
