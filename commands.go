package termevent

import (
	"fmt"
	"io"

	"github.com/peco/termevent/event"
	"github.com/pkg/errors"
)

// Mouse tracking modes: normal, button event, any event, urxvt and SGR
// encodings.
var mouseModes = []string{"1000", "1002", "1003", "1015", "1006"}

func write(w io.Writer, what, seq string) error {
	if _, err := io.WriteString(w, seq); err != nil {
		return errors.Wrapf(err, "failed to %s", what)
	}
	return nil
}

// EnableMouseCapture asks the terminal to report mouse events.
func EnableMouseCapture(w io.Writer) error {
	var seq string
	for _, m := range mouseModes {
		seq += "\x1b[?" + m + "h"
	}
	return write(w, "enable mouse capture", seq)
}

// DisableMouseCapture undoes EnableMouseCapture.
func DisableMouseCapture(w io.Writer) error {
	var seq string
	for i := len(mouseModes) - 1; i >= 0; i-- {
		seq += "\x1b[?" + mouseModes[i] + "l"
	}
	return write(w, "disable mouse capture", seq)
}

// EnableBracketedPaste makes pasted text arrive as a single PasteEvent.
func EnableBracketedPaste(w io.Writer) error {
	return write(w, "enable bracketed paste", "\x1b[?2004h")
}

func DisableBracketedPaste(w io.Writer) error {
	return write(w, "disable bracketed paste", "\x1b[?2004l")
}

// EnableFocusChange asks the terminal to report focus changes.
func EnableFocusChange(w io.Writer) error {
	return write(w, "enable focus change", "\x1b[?1004h")
}

func DisableFocusChange(w io.Writer) error {
	return write(w, "disable focus change", "\x1b[?1004l")
}

// PushKeyboardEnhancementFlags enables the given kitty keyboard protocol
// flags, saving the current ones on the terminal's stack.
func PushKeyboardEnhancementFlags(w io.Writer, flags event.KeyboardEnhancementFlags) error {
	return write(w, "push keyboard enhancement flags", fmt.Sprintf("\x1b[>%du", flags.Truncate()))
}

// PopKeyboardEnhancementFlags restores the flags saved by the last push.
func PopKeyboardEnhancementFlags(w io.Writer) error {
	return write(w, "pop keyboard enhancement flags", "\x1b[<1u")
}
