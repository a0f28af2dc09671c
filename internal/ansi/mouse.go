package ansi

import (
	"strings"

	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/input"
	"github.com/pkg/errors"
)

// parseCb decodes the button byte shared by all mouse encodings.
//
//	bits 0-1: button number, with bits 6-7 extending it
//	bit 2: shift, bit 3: alt (meta), bit 4: control
//	bit 5: motion
func parseCb(cb uint16) (event.MouseEventKind, event.MouseButton, event.KeyModifiers, error) {
	number := (cb & 0b0000_0011) | ((cb & 0b1100_0000) >> 4)
	dragging := cb&0b0010_0000 != 0

	var kind event.MouseEventKind
	var button event.MouseButton
	switch {
	case number == 0 && !dragging:
		kind, button = event.MouseDown, event.MouseLeft
	case number == 1 && !dragging:
		kind, button = event.MouseDown, event.MouseMiddle
	case number == 2 && !dragging:
		kind, button = event.MouseDown, event.MouseRight
	case number == 0 && dragging:
		kind, button = event.MouseDrag, event.MouseLeft
	case number == 1 && dragging:
		kind, button = event.MouseDrag, event.MouseMiddle
	case number == 2 && dragging:
		kind, button = event.MouseDrag, event.MouseRight
	case number == 3 && !dragging:
		// X10 reports every release as button 3
		kind, button = event.MouseUp, event.MouseLeft
	case (number == 3 || number == 4 || number == 5) && dragging:
		kind = event.MouseMoved
	case number == 4:
		kind = event.MouseScrollUp
	case number == 5:
		kind = event.MouseScrollDown
	case number == 6:
		kind = event.MouseScrollLeft
	case number == 7:
		kind = event.MouseScrollRight
	default:
		return 0, 0, 0, errors.Wrapf(ErrInvalidSequence, "unknown mouse button %d", cb)
	}

	var mods event.KeyModifiers
	if cb&0b0000_0100 != 0 {
		mods |= event.ModShift
	}
	if cb&0b0000_1000 != 0 {
		mods |= event.ModAlt
	}
	if cb&0b0001_0000 != 0 {
		mods |= event.ModControl
	}
	return kind, button, mods, nil
}

func mouse(kind event.MouseEventKind, button event.MouseButton, mods event.KeyModifiers, col, row uint16) input.Event {
	return input.Wrap(event.MouseEvent{
		Kind:      kind,
		Button:    button,
		Column:    col,
		Row:       row,
		Modifiers: mods,
	})
}

// parseX10Mouse handles ESC [ M Cb Cx Cy, where each value is a single
// byte offset by 32.
func parseX10Mouse(buf []byte) (input.Event, error) {
	if len(buf) < 6 {
		return nil, nil
	}
	if buf[3] < 32 {
		return nil, invalid(buf)
	}

	kind, button, mods, err := parseCb(uint16(buf[3] - 32))
	if err != nil {
		return nil, err
	}
	col := zeroBased(uint16(sub32(buf[4])))
	row := zeroBased(uint16(sub32(buf[5])))
	return mouse(kind, button, mods, col, row), nil
}

func sub32(b byte) byte {
	if b < 32 {
		return 0
	}
	return b - 32
}

// parseRxvtMouse handles ESC [ Cb ; Cx ; Cy M
func parseRxvtMouse(buf []byte) (input.Event, error) {
	parts := strings.Split(params(buf, 2), ";")
	if len(parts) != 3 {
		return nil, invalid(buf)
	}
	cb, err := parseNumber(parts[0])
	if err != nil {
		return nil, err
	}
	if cb < 32 {
		return nil, invalid(buf)
	}
	kind, button, mods, err := parseCb(cb - 32)
	if err != nil {
		return nil, err
	}
	col, err := parseNumber(parts[1])
	if err != nil {
		return nil, err
	}
	row, err := parseNumber(parts[2])
	if err != nil {
		return nil, err
	}
	return mouse(kind, button, mods, zeroBased(col), zeroBased(row)), nil
}

// parseSGRMouse handles ESC [ < Cb ; Cx ; Cy M (press) and ... m (release).
func parseSGRMouse(buf []byte) (input.Event, error) {
	last := buf[len(buf)-1]
	if last != 'M' && last != 'm' {
		if (last >= '0' && last <= '9') || last == ';' || last == '<' {
			if len(buf) > maxCSILength {
				return nil, invalid(buf)
			}
			return nil, nil
		}
		return nil, invalid(buf)
	}

	parts := strings.Split(params(buf, 3), ";")
	if len(parts) < 3 {
		return nil, invalid(buf)
	}
	cb, err := parseNumber(parts[0])
	if err != nil {
		return nil, err
	}
	kind, button, mods, err := parseCb(cb)
	if err != nil {
		return nil, err
	}
	col, err := parseNumber(parts[1])
	if err != nil {
		return nil, err
	}
	row, err := parseNumber(parts[2])
	if err != nil {
		return nil, err
	}

	if last == 'm' && kind == event.MouseDown {
		kind = event.MouseUp
	}
	return mouse(kind, button, mods, zeroBased(col), zeroBased(row)), nil
}
