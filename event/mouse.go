package event

// MouseButton identifies the button in Down, Up and Drag mouse events.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// MouseEventKind is what happened in a mouse event.
type MouseEventKind uint8

const (
	MouseDown MouseEventKind = iota
	MouseUp
	MouseDrag
	MouseMoved
	MouseScrollDown
	MouseScrollUp
	MouseScrollLeft
	MouseScrollRight
)

func (k MouseEventKind) String() string {
	switch k {
	case MouseDown:
		return "down"
	case MouseUp:
		return "up"
	case MouseDrag:
		return "drag"
	case MouseMoved:
		return "moved"
	case MouseScrollDown:
		return "scroll-down"
	case MouseScrollUp:
		return "scroll-up"
	case MouseScrollLeft:
		return "scroll-left"
	case MouseScrollRight:
		return "scroll-right"
	default:
		return "unknown"
	}
}

// HasButton returns true if Button is meaningful for this kind.
func (k MouseEventKind) HasButton() bool {
	return k == MouseDown || k == MouseUp || k == MouseDrag
}
