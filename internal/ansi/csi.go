package ansi

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/input"
	"github.com/pkg/errors"
)

var (
	pasteStart = []byte("\x1b[200~")
	pasteEnd   = []byte("\x1b[201~")
)

// maxCSILength bounds non-paste CSI sequences so garbage parameters
// cannot grow the buffer forever.
const maxCSILength = 64

func isFinalByte(c byte) bool {
	return c >= 0x40 && c <= 0x7e
}

func isParameterByte(c byte) bool {
	return c >= 0x20 && c <= 0x3f
}

func invalid(buf []byte) error {
	return errors.Wrapf(ErrInvalidSequence, "unknown CSI sequence %q", buf)
}

func parseCSI(buf []byte, more bool) (input.Event, error) {
	if len(buf) == 2 {
		if more {
			return nil, nil
		}
		return char('[', event.ModAlt), nil
	}

	switch buf[2] {
	case '[':
		if len(buf) == 3 {
			return nil, nil
		}
		// Linux console function keys
		if c := buf[3]; c >= 'A' && c <= 'E' {
			return key(event.KeyF(int(c-'A')+1), event.ModNone), nil
		}
		return nil, invalid(buf)
	case 'D':
		return key(event.KeyLeft, event.ModNone), nil
	case 'C':
		return key(event.KeyRight, event.ModNone), nil
	case 'A':
		return key(event.KeyUp, event.ModNone), nil
	case 'B':
		return key(event.KeyDown, event.ModNone), nil
	case 'H':
		return key(event.KeyHome, event.ModNone), nil
	case 'F':
		return key(event.KeyEnd, event.ModNone), nil
	case 'E':
		return key(event.KeyKeypadBegin, event.ModNone), nil
	case 'Z':
		return key(event.KeyBackTab, event.ModShift), nil
	case 'P', 'Q', 'R', 'S':
		return key(event.KeyF(int(buf[2]-'P')+1), event.ModNone), nil
	case 'I':
		return input.Wrap(event.FocusGainedEvent{}), nil
	case 'O':
		return input.Wrap(event.FocusLostEvent{}), nil
	case 'c':
		return input.PrimaryDeviceAttributes{}, nil
	case 'M':
		return parseX10Mouse(buf)
	case '<':
		return parseSGRMouse(buf)
	case '?':
		return parseCSIPrivate(buf)
	case ';':
		return parseCSIParams(buf)
	}

	if buf[2] >= '0' && buf[2] <= '9' {
		if bytes.HasPrefix(buf, pasteStart) {
			return parseBracketedPaste(buf)
		}
		return parseCSIParams(buf)
	}
	return nil, invalid(buf)
}

// parseCSIParams handles ESC [ <params> <final> where params start with a
// digit or ';'.
func parseCSIParams(buf []byte) (input.Event, error) {
	if len(buf) == 3 {
		return nil, nil
	}

	last := buf[len(buf)-1]
	if !isFinalByte(last) {
		if !isParameterByte(last) || len(buf) > maxCSILength {
			return nil, invalid(buf)
		}
		return nil, nil
	}

	switch last {
	case 'M':
		return parseRxvtMouse(buf)
	case '~':
		return parseSpecialKey(buf)
	case 'u':
		return parseCSIu(buf)
	case 'R':
		return parseCursorPosition(buf)
	}
	return parseModifiedKey(buf)
}

// parseCSIPrivate handles ESC [ ? ... replies.
func parseCSIPrivate(buf []byte) (input.Event, error) {
	if len(buf) == 3 {
		return nil, nil
	}

	last := buf[len(buf)-1]
	switch {
	case last == 'u':
		return parseKeyboardEnhancementFlags(buf)
	case last == 'c':
		return input.PrimaryDeviceAttributes{}, nil
	case isFinalByte(last):
		return nil, invalid(buf)
	case !isParameterByte(last) || len(buf) > maxCSILength:
		return nil, invalid(buf)
	}
	return nil, nil
}

func parseBracketedPaste(buf []byte) (input.Event, error) {
	if !bytes.HasSuffix(buf, pasteEnd) || len(buf) < len(pasteStart)+len(pasteEnd) {
		return nil, nil
	}
	body := buf[len(pasteStart) : len(buf)-len(pasteEnd)]
	text := string(body)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return input.Wrap(event.PasteEvent{Text: text}), nil
}

// params returns the parameter string between the introducer and the
// final byte.
func params(buf []byte, introducer int) string {
	return string(buf[introducer : len(buf)-1])
}

func parseNumber(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSequence, "expected a number, got %q", s)
	}
	return uint16(v), nil
}

func parseCursorPosition(buf []byte) (input.Event, error) {
	// ESC [ row ; col R
	parts := strings.Split(params(buf, 2), ";")
	if len(parts) != 2 {
		return nil, invalid(buf)
	}
	row, err := parseNumber(parts[0])
	if err != nil {
		return nil, err
	}
	col, err := parseNumber(parts[1])
	if err != nil {
		return nil, err
	}
	return input.CursorPosition{Column: zeroBased(col), Row: zeroBased(row)}, nil
}

func parseKeyboardEnhancementFlags(buf []byte) (input.Event, error) {
	// ESC [ ? flags u
	v, err := strconv.ParseUint(params(buf, 3), 10, 8)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSequence, "invalid keyboard enhancement flags %q", buf)
	}
	return input.KeyboardEnhancementFlags{
		Flags: event.KeyboardEnhancementFlags(v).Truncate(),
	}, nil
}

// parseModifiers decodes the xterm modifier parameter, which is the
// modifier bitmask plus one.
func parseModifiers(v uint16) event.KeyModifiers {
	mask := zeroBased(v)
	var mods event.KeyModifiers
	if mask&1 != 0 {
		mods |= event.ModShift
	}
	if mask&2 != 0 {
		mods |= event.ModAlt
	}
	if mask&4 != 0 {
		mods |= event.ModControl
	}
	if mask&8 != 0 {
		mods |= event.ModSuper
	}
	if mask&16 != 0 {
		mods |= event.ModHyper
	}
	if mask&32 != 0 {
		mods |= event.ModMeta
	}
	return mods
}

func parseModifiersToState(v uint16) event.KeyEventState {
	mask := zeroBased(v)
	var state event.KeyEventState
	if mask&64 != 0 {
		state |= event.StateCapsLock
	}
	if mask&128 != 0 {
		state |= event.StateNumLock
	}
	return state
}

func parseKind(v uint16) event.KeyEventKind {
	switch v {
	case 2:
		return event.KindRepeat
	case 3:
		return event.KindRelease
	default:
		return event.KindPress
	}
}

// modifiersAndKind parses a "mods[:kind]" parameter. An empty parameter
// means no modifiers.
func modifiersAndKind(s string) (uint16, uint16, error) {
	if s == "" {
		return 1, 1, nil
	}
	modStr, kindStr, hasKind := strings.Cut(s, ":")
	mods, err := parseNumber(modStr)
	if err != nil {
		return 0, 0, err
	}
	kind := uint16(1)
	if hasKind {
		if kind, err = parseNumber(kindStr); err != nil {
			return 0, 0, err
		}
	}
	return mods, kind, nil
}

// parseModifiedKey handles ESC [ 1 ; mods[:kind] X for cursor and F1-F4
// keys.
func parseModifiedKey(buf []byte) (input.Event, error) {
	parts := strings.Split(params(buf, 2), ";")

	var mods, kind uint16 = 1, 1
	if len(parts) > 1 {
		var err error
		if mods, kind, err = modifiersAndKind(parts[1]); err != nil {
			return nil, err
		}
	}

	var code event.Key
	switch buf[len(buf)-1] {
	case 'A':
		code = event.KeyUp
	case 'B':
		code = event.KeyDown
	case 'C':
		code = event.KeyRight
	case 'D':
		code = event.KeyLeft
	case 'F':
		code = event.KeyEnd
	case 'H':
		code = event.KeyHome
	case 'E':
		code = event.KeyKeypadBegin
	case 'P':
		code = event.KeyF1
	case 'Q':
		code = event.KeyF2
	case 'R':
		code = event.KeyF3
	case 'S':
		code = event.KeyF4
	default:
		return nil, invalid(buf)
	}

	return input.Wrap(event.KeyEvent{
		Code:      code,
		Modifiers: parseModifiers(mods),
		Kind:      parseKind(kind),
		State:     parseModifiersToState(mods),
	}), nil
}

// parseSpecialKey handles ESC [ n ~ and ESC [ n ; mods[:kind] ~.
func parseSpecialKey(buf []byte) (input.Event, error) {
	parts := strings.Split(params(buf, 2), ";")
	n, err := parseNumber(parts[0])
	if err != nil {
		return nil, err
	}

	var mods, kind uint16 = 1, 1
	if len(parts) > 1 {
		if mods, kind, err = modifiersAndKind(parts[1]); err != nil {
			return nil, err
		}
	}

	var code event.Key
	switch {
	case n == 1 || n == 7:
		code = event.KeyHome
	case n == 2:
		code = event.KeyInsert
	case n == 3:
		code = event.KeyDelete
	case n == 4 || n == 8:
		code = event.KeyEnd
	case n == 5:
		code = event.KeyPageUp
	case n == 6:
		code = event.KeyPageDown
	case n >= 11 && n <= 15:
		code = event.KeyF(int(n) - 10)
	case n >= 17 && n <= 21:
		code = event.KeyF(int(n) - 11)
	case n >= 23 && n <= 26:
		code = event.KeyF(int(n) - 12)
	case n == 28 || n == 29:
		code = event.KeyF(int(n) - 15)
	case n >= 31 && n <= 34:
		code = event.KeyF(int(n) - 17)
	default:
		return nil, invalid(buf)
	}

	return input.Wrap(event.KeyEvent{
		Code:      code,
		Modifiers: parseModifiers(mods),
		Kind:      parseKind(kind),
		State:     parseModifiersToState(mods),
	}), nil
}

func zeroBased(v uint16) uint16 {
	if v == 0 {
		return 0
	}
	return v - 1
}
