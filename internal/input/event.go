// Package input holds the event representation shared by the parser, the
// event sources and the reader. Besides wrapping public events it carries
// the replies to terminal queries, which never leave the library.
package input

import (
	"fmt"

	"github.com/peco/termevent/event"
)

// Event is what sources produce and the reader queues.
type Event interface {
	internal()
}

// Public wraps an event that is delivered to library users.
type Public struct {
	event.Event
}

// CursorPosition is the reply to a cursor position request. Both values
// are 0-based.
type CursorPosition struct {
	Column uint16
	Row    uint16
}

// KeyboardEnhancementFlags is the reply to a keyboard enhancement flags
// query.
type KeyboardEnhancementFlags struct {
	Flags event.KeyboardEnhancementFlags
}

// PrimaryDeviceAttributes is the reply to a primary device attributes
// query. Its content is not interesting, only its arrival.
type PrimaryDeviceAttributes struct{}

func (Public) internal()                   {}
func (CursorPosition) internal()           {}
func (KeyboardEnhancementFlags) internal() {}
func (PrimaryDeviceAttributes) internal()  {}

// Wrap lifts a public event into an internal one.
func Wrap(ev event.Event) Event {
	return Public{Event: ev}
}

func (p Public) String() string {
	return fmt.Sprintf("%#v", p.Event)
}
