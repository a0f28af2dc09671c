package event

import "strconv"

// Key identifies a keyboard key. Character keys use KeyRune, with the
// character carried in KeyEvent.Rune.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune
	KeyBackspace
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyBackTab
	KeyDelete
	KeyInsert
	KeyNull
	KeyEsc
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause
	KeyMenu
	KeyKeypadBegin

	// Media keys, only reported by terminals speaking the kitty
	// keyboard protocol with all keys reported as escape codes.
	KeyMediaPlay
	KeyMediaPause
	KeyMediaPlayPause
	KeyMediaReverse
	KeyMediaStop
	KeyMediaFastForward
	KeyMediaRewind
	KeyMediaTrackNext
	KeyMediaTrackPrevious
	KeyMediaRecord
	KeyLowerVolume
	KeyRaiseVolume
	KeyMuteVolume

	// Modifier keys pressed on their own, same protocol requirement
	// as the media keys.
	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	KeyLeftSuper
	KeyLeftHyper
	KeyLeftMeta
	KeyRightShift
	KeyRightControl
	KeyRightAlt
	KeyRightSuper
	KeyRightHyper
	KeyRightMeta
	KeyIsoLevel3Shift
	KeyIsoLevel5Shift
)

// Function keys occupy their own range so that F(n) is simple arithmetic.
const (
	KeyF1 Key = 0x100 + iota
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// MaxFunctionKey is the highest function key number a terminal can
// report (kitty goes up to F35).
const MaxFunctionKey = 35

// KeyF returns the key for function key n (1-based). It returns KeyNone
// when n is out of range.
func KeyF(n int) Key {
	if n < 1 || n > MaxFunctionKey {
		return KeyNone
	}
	return KeyF1 + Key(n-1)
}

// FunctionKey returns the function key number of k, or 0 if k is not a
// function key.
func (k Key) FunctionKey() int {
	if k < KeyF1 || k > KeyF1+MaxFunctionKey-1 {
		return 0
	}
	return int(k-KeyF1) + 1
}

var keyNames = map[Key]string{
	KeyNone:               "None",
	KeyRune:               "Rune",
	KeyBackspace:          "BS",
	KeyEnter:              "Enter",
	KeyLeft:               "ArrowLeft",
	KeyRight:              "ArrowRight",
	KeyUp:                 "ArrowUp",
	KeyDown:               "ArrowDown",
	KeyHome:               "Home",
	KeyEnd:                "End",
	KeyPageUp:             "Pgup",
	KeyPageDown:           "Pgdn",
	KeyTab:                "Tab",
	KeyBackTab:            "BackTab",
	KeyDelete:             "Delete",
	KeyInsert:             "Insert",
	KeyNull:               "Null",
	KeyEsc:                "Esc",
	KeyCapsLock:           "CapsLock",
	KeyScrollLock:         "ScrollLock",
	KeyNumLock:            "NumLock",
	KeyPrintScreen:        "PrintScreen",
	KeyPause:              "Pause",
	KeyMenu:               "Menu",
	KeyKeypadBegin:        "KeypadBegin",
	KeyMediaPlay:          "MediaPlay",
	KeyMediaPause:         "MediaPause",
	KeyMediaPlayPause:     "MediaPlayPause",
	KeyMediaReverse:       "MediaReverse",
	KeyMediaStop:          "MediaStop",
	KeyMediaFastForward:   "MediaFastForward",
	KeyMediaRewind:        "MediaRewind",
	KeyMediaTrackNext:     "MediaTrackNext",
	KeyMediaTrackPrevious: "MediaTrackPrevious",
	KeyMediaRecord:        "MediaRecord",
	KeyLowerVolume:        "LowerVolume",
	KeyRaiseVolume:        "RaiseVolume",
	KeyMuteVolume:         "MuteVolume",
	KeyLeftShift:          "LeftShift",
	KeyLeftControl:        "LeftControl",
	KeyLeftAlt:            "LeftAlt",
	KeyLeftSuper:          "LeftSuper",
	KeyLeftHyper:          "LeftHyper",
	KeyLeftMeta:           "LeftMeta",
	KeyRightShift:         "RightShift",
	KeyRightControl:       "RightControl",
	KeyRightAlt:           "RightAlt",
	KeyRightSuper:         "RightSuper",
	KeyRightHyper:         "RightHyper",
	KeyRightMeta:          "RightMeta",
	KeyIsoLevel3Shift:     "IsoLevel3Shift",
	KeyIsoLevel5Shift:     "IsoLevel5Shift",
}

var nameToKey = map[string]Key{}

func init() {
	for k, n := range keyNames {
		nameToKey[n] = k
	}
	for i := 1; i <= MaxFunctionKey; i++ {
		nameToKey["F"+strconv.Itoa(i)] = KeyF(i)
	}
	// shorter aliases accepted when parsing
	nameToKey["Space"] = KeyRune
	nameToKey["Escape"] = KeyEsc
	nameToKey["Backspace"] = KeyBackspace
	nameToKey["Up"] = KeyUp
	nameToKey["Down"] = KeyDown
	nameToKey["Left"] = KeyLeft
	nameToKey["Right"] = KeyRight
}

// String returns the name of the key as used in key specifications.
func (k Key) String() string {
	if n := k.FunctionKey(); n > 0 {
		return "F" + strconv.Itoa(n)
	}
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}
