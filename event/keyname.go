package event

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

// ErrUnknownKey is returned by ParseKey when the key name is not known.
var ErrUnknownKey = errors.New("no such key")

var modifierPrefixes = []struct {
	prefix string
	mod    KeyModifiers
}{
	{"C-", ModControl},
	{"S-", ModShift},
	{"M-", ModAlt},
	{"Super-", ModSuper},
	{"Hyper-", ModHyper},
	{"Meta-", ModMeta},
}

// ParseKey converts a key specification such as "C-c", "M-x",
// "S-ArrowUp", "F5", "Esc" or "a" into a pressed KeyEvent.
func ParseKey(spec string) (KeyEvent, error) {
	var mods KeyModifiers
	key := strings.TrimSpace(spec)

OUTER:
	for len(key) > 1 {
		for _, p := range modifierPrefixes {
			if strings.HasPrefix(key, p.prefix) && len(key) > len(p.prefix) {
				mods |= p.mod
				key = key[len(p.prefix):]
				continue OUTER
			}
		}
		break
	}

	if key == "Space" {
		return NewRune(' ', mods), nil
	}

	if k, ok := nameToKey[key]; ok && k != KeyRune {
		return NewKey(k, mods), nil
	}

	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || size != len(key) {
		return KeyEvent{}, errors.Wrapf(ErrUnknownKey, "failed to parse '%s'", spec)
	}
	if unicode.IsUpper(r) {
		mods |= ModShift
	}
	return NewRune(r, mods), nil
}

// String renders the key event in the same notation ParseKey accepts.
// The kind is not part of the rendering.
func (k KeyEvent) String() string {
	var s string
	mods := k.Modifiers
	if k.IsRune() && unicode.IsUpper(k.Rune) {
		// Shift is implied by the character itself
		mods &^= ModShift
	}
	if m := mods.String(); m != "" {
		s = m + "-"
	}

	switch {
	case k.IsRune() && k.Rune == ' ':
		s += "Space"
	case k.IsRune():
		s += string(k.Rune)
	default:
		s += k.Code.String()
	}
	return s
}

// Width returns the number of terminal cells String occupies.
func (k KeyEvent) Width() int {
	return runewidth.StringWidth(k.String())
}
