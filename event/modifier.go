package event

import "strings"

// KeyModifiers is a set of modifier keys held during a key or mouse event.
type KeyModifiers uint8

const (
	ModNone    KeyModifiers = 0
	ModShift   KeyModifiers = 1 << 0
	ModControl KeyModifiers = 1 << 1
	ModAlt     KeyModifiers = 1 << 2
	ModSuper   KeyModifiers = 1 << 3
	ModHyper   KeyModifiers = 1 << 4
	ModMeta    KeyModifiers = 1 << 5
)

// Has returns true if all modifiers in mod are set in m.
func (m KeyModifiers) Has(mod KeyModifiers) bool {
	return m&mod == mod
}

// String renders the modifiers in the "C-S-M" style used by key
// specifications. The empty set renders as "".
func (m KeyModifiers) String() string {
	var parts []string
	if m&ModControl != 0 {
		parts = append(parts, "C")
	}
	if m&ModShift != 0 {
		parts = append(parts, "S")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "M")
	}
	if m&ModSuper != 0 {
		parts = append(parts, "Super")
	}
	if m&ModHyper != 0 {
		parts = append(parts, "Hyper")
	}
	if m&ModMeta != 0 {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "-")
}

// KeyEventKind tells a press from a repeat or a release. Terminals only
// report repeats and releases when asked to via keyboard enhancement
// flags; the Windows console always reports releases.
type KeyEventKind uint8

const (
	KindPress KeyEventKind = iota
	KindRepeat
	KindRelease
)

func (k KeyEventKind) String() string {
	switch k {
	case KindPress:
		return "press"
	case KindRepeat:
		return "repeat"
	case KindRelease:
		return "release"
	default:
		return "unknown"
	}
}

// KeyEventState carries extra lock/keypad information, when the terminal
// reports it.
type KeyEventState uint8

const (
	StateNone     KeyEventState = 0
	StateKeypad   KeyEventState = 1 << 0
	StateCapsLock KeyEventState = 1 << 1
	StateNumLock  KeyEventState = 1 << 2
)

// KeyboardEnhancementFlags are the progressive enhancement flags of the
// kitty keyboard protocol.
type KeyboardEnhancementFlags uint8

const (
	DisambiguateEscapeCodes     KeyboardEnhancementFlags = 0b0000_0001
	ReportEventTypes            KeyboardEnhancementFlags = 0b0000_0010
	ReportAlternateKeys         KeyboardEnhancementFlags = 0b0000_0100
	ReportAllKeysAsEscapeCodes  KeyboardEnhancementFlags = 0b0000_1000
	ReportAssociatedText        KeyboardEnhancementFlags = 0b0001_0000
	allKeyboardEnhancementFlags                          = DisambiguateEscapeCodes | ReportEventTypes | ReportAlternateKeys | ReportAllKeysAsEscapeCodes | ReportAssociatedText
)

var enhancementNames = []struct {
	flag KeyboardEnhancementFlags
	name string
}{
	{DisambiguateEscapeCodes, "disambiguate-escape-codes"},
	{ReportEventTypes, "report-event-types"},
	{ReportAlternateKeys, "report-alternate-keys"},
	{ReportAllKeysAsEscapeCodes, "report-all-keys-as-escape-codes"},
	{ReportAssociatedText, "report-associated-text"},
}

// Truncate drops bits that do not correspond to a known flag.
func (f KeyboardEnhancementFlags) Truncate() KeyboardEnhancementFlags {
	return f & allKeyboardEnhancementFlags
}

func (f KeyboardEnhancementFlags) String() string {
	var parts []string
	for _, e := range enhancementNames {
		if f&e.flag != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseKeyboardEnhancementFlag converts a flag name as printed by String
// back to its value.
func ParseKeyboardEnhancementFlag(s string) (KeyboardEnhancementFlags, bool) {
	for _, e := range enhancementNames {
		if e.name == s {
			return e.flag, true
		}
	}
	return 0, false
}
