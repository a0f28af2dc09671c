package input

// Filter decides whether an event is what a caller is waiting for. Events
// that do not match stay queued for callers using other filters.
type Filter interface {
	Eval(Event) bool
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(Event) bool

func (f FilterFunc) Eval(ev Event) bool {
	return f(ev)
}

type eventFilter struct{}
type cursorPositionFilter struct{}
type keyboardEnhancementFlagsFilter struct{}
type primaryDeviceAttributesFilter struct{}
type anyFilter struct{}

var (
	// EventFilter matches events meant for library users.
	EventFilter Filter = eventFilter{}
	// CursorPositionFilter matches cursor position replies.
	CursorPositionFilter Filter = cursorPositionFilter{}
	// KeyboardEnhancementFlagsFilter matches keyboard enhancement flags
	// replies, and also primary device attributes replies: terminals
	// without the protocol only answer the latter.
	KeyboardEnhancementFlagsFilter Filter = keyboardEnhancementFlagsFilter{}
	// PrimaryDeviceAttributesFilter matches primary device attributes
	// replies.
	PrimaryDeviceAttributesFilter Filter = primaryDeviceAttributesFilter{}
	// AnyFilter matches everything.
	AnyFilter Filter = anyFilter{}
)

func (eventFilter) Eval(ev Event) bool {
	_, ok := ev.(Public)
	return ok
}

func (cursorPositionFilter) Eval(ev Event) bool {
	_, ok := ev.(CursorPosition)
	return ok
}

func (keyboardEnhancementFlagsFilter) Eval(ev Event) bool {
	switch ev.(type) {
	case KeyboardEnhancementFlags, PrimaryDeviceAttributes:
		return true
	}
	return false
}

func (primaryDeviceAttributesFilter) Eval(ev Event) bool {
	_, ok := ev.(PrimaryDeviceAttributes)
	return ok
}

func (anyFilter) Eval(Event) bool {
	return true
}
