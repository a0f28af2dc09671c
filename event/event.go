// Package event defines the events that termevent delivers to callers:
// key presses, mouse reports, terminal resizes, focus changes and
// bracketed pastes.
//
// All event values are small, immutable and comparable, so they can be
// used as map keys or compared with == in tests.
package event

// Event is implemented by every event type in this package. The set of
// implementations is closed; use a type switch to tell them apart.
type Event interface {
	event()
}

// KeyEvent is a keyboard event. For character keys Code is KeyRune and
// Rune holds the character.
type KeyEvent struct {
	Code      Key
	Rune      rune
	Modifiers KeyModifiers
	Kind      KeyEventKind
	State     KeyEventState
}

// MouseEvent is a mouse report. Column and Row are 0-based.
type MouseEvent struct {
	Kind      MouseEventKind
	Button    MouseButton // valid for Down, Up and Drag
	Column    uint16
	Row       uint16
	Modifiers KeyModifiers
}

// ResizeEvent reports the new size of the terminal in cells.
type ResizeEvent struct {
	Columns uint16
	Rows    uint16
}

// FocusGainedEvent is sent when the terminal window gains focus.
type FocusGainedEvent struct{}

// FocusLostEvent is sent when the terminal window loses focus.
type FocusLostEvent struct{}

// PasteEvent carries text delivered through bracketed paste.
type PasteEvent struct {
	Text string
}

func (KeyEvent) event()         {}
func (MouseEvent) event()       {}
func (ResizeEvent) event()      {}
func (FocusGainedEvent) event() {}
func (FocusLostEvent) event()   {}
func (PasteEvent) event()       {}

// NewKey creates a pressed key event for a non-character key.
func NewKey(code Key, mods KeyModifiers) KeyEvent {
	return KeyEvent{Code: code, Modifiers: mods}
}

// NewRune creates a pressed key event for a character key.
func NewRune(r rune, mods KeyModifiers) KeyEvent {
	return KeyEvent{Code: KeyRune, Rune: r, Modifiers: mods}
}

// IsRune returns true if the event is for a character key.
func (k KeyEvent) IsRune() bool {
	return k.Code == KeyRune
}

// WithKind returns a copy of k with the kind replaced.
func (k KeyEvent) WithKind(kind KeyEventKind) KeyEvent {
	k.Kind = kind
	return k
}
