package ansi

import (
	"strings"
	"unicode/utf8"

	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/input"
)

// kitty keyboard protocol functional key codes
const (
	kittyCapsLock       = 57358
	kittyF13            = 57376
	kittyF35            = 57398
	kittyKeypad0        = 57399
	kittyKeypadBegin    = 57427
	kittyMediaPlay      = 57428
	kittyLeftShift      = 57441
	kittyIsoLevel5Shift = 57454
)

var kittyLockKeys = []event.Key{
	event.KeyCapsLock,
	event.KeyScrollLock,
	event.KeyNumLock,
	event.KeyPrintScreen,
	event.KeyPause,
	event.KeyMenu,
}

// keypad keys after the ten digits, starting at 57409
var kittyKeypad = []event.KeyEvent{
	event.NewRune('.', event.ModNone),
	event.NewRune('/', event.ModNone),
	event.NewRune('*', event.ModNone),
	event.NewRune('-', event.ModNone),
	event.NewRune('+', event.ModNone),
	event.NewKey(event.KeyEnter, event.ModNone),
	event.NewRune('=', event.ModNone),
	event.NewRune(',', event.ModNone),
	event.NewKey(event.KeyLeft, event.ModNone),
	event.NewKey(event.KeyRight, event.ModNone),
	event.NewKey(event.KeyUp, event.ModNone),
	event.NewKey(event.KeyDown, event.ModNone),
	event.NewKey(event.KeyPageUp, event.ModNone),
	event.NewKey(event.KeyPageDown, event.ModNone),
	event.NewKey(event.KeyHome, event.ModNone),
	event.NewKey(event.KeyEnd, event.ModNone),
	event.NewKey(event.KeyInsert, event.ModNone),
	event.NewKey(event.KeyDelete, event.ModNone),
	event.NewKey(event.KeyKeypadBegin, event.ModNone),
}

// translateFunctionalKey maps kitty private-use code points to keys.
func translateFunctionalKey(cp uint32) (event.KeyEvent, event.KeyEventState, bool) {
	switch {
	case cp >= kittyCapsLock && cp < kittyCapsLock+uint32(len(kittyLockKeys)):
		return event.NewKey(kittyLockKeys[cp-kittyCapsLock], event.ModNone), event.StateNone, true
	case cp >= kittyF13 && cp <= kittyF35:
		return event.NewKey(event.KeyF(int(cp-kittyF13)+13), event.ModNone), event.StateNone, true
	case cp >= kittyKeypad0 && cp < kittyKeypad0+10:
		return event.NewRune(rune('0'+cp-kittyKeypad0), event.ModNone), event.StateKeypad, true
	case cp >= kittyKeypad0+10 && cp <= kittyKeypadBegin:
		return kittyKeypad[cp-kittyKeypad0-10], event.StateKeypad, true
	case cp >= kittyMediaPlay && cp < kittyLeftShift:
		return event.NewKey(event.KeyMediaPlay+event.Key(cp-kittyMediaPlay), event.ModNone), event.StateNone, true
	case cp >= kittyLeftShift && cp <= kittyIsoLevel5Shift:
		return event.NewKey(event.KeyLeftShift+event.Key(cp-kittyLeftShift), event.ModNone), event.StateNone, true
	}
	return event.KeyEvent{}, event.StateNone, false
}

// modifierForKey returns the modifier implied by pressing a modifier key
// on its own.
func modifierForKey(k event.Key) event.KeyModifiers {
	switch k {
	case event.KeyLeftShift, event.KeyRightShift:
		return event.ModShift
	case event.KeyLeftControl, event.KeyRightControl:
		return event.ModControl
	case event.KeyLeftAlt, event.KeyRightAlt:
		return event.ModAlt
	case event.KeyLeftSuper, event.KeyRightSuper:
		return event.ModSuper
	case event.KeyLeftHyper, event.KeyRightHyper:
		return event.ModHyper
	case event.KeyLeftMeta, event.KeyRightMeta:
		return event.ModMeta
	}
	return event.ModNone
}

// parseCSIu handles ESC [ code[:shifted[:base]] [; mods[:kind] [; text]] u
func parseCSIu(buf []byte) (input.Event, error) {
	parts := strings.Split(params(buf, 2), ";")

	codes := strings.Split(parts[0], ":")
	cp, err := parseCodepoint(codes[0])
	if err != nil {
		return nil, err
	}

	var mods, kind uint16 = 1, 1
	if len(parts) > 1 {
		if mods, kind, err = modifiersAndKind(parts[1]); err != nil {
			return nil, err
		}
	}
	modifiers := parseModifiers(mods)
	state := parseModifiersToState(mods)

	k, extra, ok := translateFunctionalKey(cp)
	if !ok {
		switch cp {
		case 0x1b:
			k = event.NewKey(event.KeyEsc, event.ModNone)
		case '\r':
			k = event.NewKey(event.KeyEnter, event.ModNone)
		case '\t':
			if modifiers.Has(event.ModShift) {
				k = event.NewKey(event.KeyBackTab, event.ModNone)
			} else {
				k = event.NewKey(event.KeyTab, event.ModNone)
			}
		case 0x7f:
			k = event.NewKey(event.KeyBackspace, event.ModNone)
		default:
			r := rune(cp)
			if !utf8.ValidRune(r) {
				return nil, invalid(buf)
			}
			k = event.NewRune(r, event.ModNone)
		}
	}

	if k.IsRune() && modifiers.Has(event.ModShift) && len(codes) > 1 && codes[1] != "" {
		// with alternate key reporting, the second sub-parameter is the
		// shifted key
		shifted, err := parseCodepoint(codes[1])
		if err == nil && utf8.ValidRune(rune(shifted)) {
			k.Rune = rune(shifted)
		}
	}

	k.Modifiers = modifiers | modifierForKey(k.Code)
	k.Kind = parseKind(kind)
	k.State = state | extra
	return input.Wrap(k), nil
}

func parseCodepoint(s string) (uint32, error) {
	var v uint32
	if s == "" {
		return 0, ErrInvalidSequence
	}
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return 0, ErrInvalidSequence
		}
		v = v*10 + uint32(c-'0')
		if v > utf8.MaxRune {
			return 0, ErrInvalidSequence
		}
	}
	return v, nil
}
