// Package ansi decodes the byte stream coming from a terminal into
// events. Decoding is incremental: bytes can arrive in chunks of any
// size, and a sequence split across chunks is held in a buffer until it
// completes.
package ansi

import (
	"unicode"
	"unicode/utf8"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/input"
	"github.com/pkg/errors"
)

// ErrInvalidSequence is returned by Parse when the buffered bytes cannot
// be the beginning of anything this package understands.
var ErrInvalidSequence = errors.New("could not parse an event")

const (
	esc = 0x1b

	// bufferSize is enough for every sequence except long pastes, which
	// grow the buffer as needed.
	bufferSize = 256
)

// Parser accumulates bytes and emits decoded events in order.
type Parser struct {
	buf    []byte
	events []input.Event
}

// NewParser creates an empty parser.
func NewParser() *Parser {
	return &Parser{
		buf:    make([]byte, 0, bufferSize),
		events: make([]input.Event, 0, 32),
	}
}

// Advance feeds b to the parser. more tells the parser whether more input
// is known to be immediately available after b; it decides whether a
// lone ESC is the Escape key or the start of a sequence.
func (p *Parser) Advance(b []byte, more bool) {
	for i, c := range b {
		more := i+1 < len(b) || more

		p.buf = append(p.buf, c)
		ev, err := Parse(p.buf, more)
		if err != nil {
			if pdebug.Enabled {
				pdebug.Printf("ansi: discarding %q: %s", p.buf, err)
			}
			p.buf = p.buf[:0]
			continue
		}
		if ev != nil {
			p.events = append(p.events, ev)
			p.buf = p.buf[:0]
		}
	}
}

// Next pops the oldest decoded event.
func (p *Parser) Next() (input.Event, bool) {
	if len(p.events) == 0 {
		return nil, false
	}
	ev := p.events[0]
	copy(p.events, p.events[1:])
	p.events[len(p.events)-1] = nil
	p.events = p.events[:len(p.events)-1]
	return ev, true
}

// Pending returns the number of bytes of an incomplete sequence held by
// the parser.
func (p *Parser) Pending() int {
	return len(p.buf)
}

// Parse classifies buf, which holds the bytes received since the last
// complete event. It returns the event once buf forms a complete
// sequence, (nil, nil) when buf is a valid but incomplete prefix, and
// ErrInvalidSequence when buf can never become valid.
func Parse(buf []byte, more bool) (input.Event, error) {
	if len(buf) == 0 {
		return nil, nil
	}

	switch c := buf[0]; {
	case c == esc:
		return parseEscape(buf, more)
	case c == '\r' || c == '\n':
		return key(event.KeyEnter, event.ModNone), nil
	case c == '\t':
		return key(event.KeyTab, event.ModNone), nil
	case c == 0x7f:
		return key(event.KeyBackspace, event.ModNone), nil
	case c == 0x00:
		return char(' ', event.ModControl), nil
	case c >= 0x01 && c <= 0x1a:
		return char(rune('a'+c-0x01), event.ModControl), nil
	case c >= 0x1c && c <= 0x1f:
		return char(rune('4'+c-0x1c), event.ModControl), nil
	default:
		return parseUTF8(buf)
	}
}

func parseEscape(buf []byte, more bool) (input.Event, error) {
	if len(buf) == 1 {
		if more {
			// could be the start of a sequence
			return nil, nil
		}
		return key(event.KeyEsc, event.ModNone), nil
	}

	switch buf[1] {
	case 'O':
		return parseSS3(buf, more)
	case '[':
		return parseCSI(buf, more)
	case esc:
		return key(event.KeyEsc, event.ModAlt), nil
	}

	// ESC followed by anything else is that thing with Alt held
	ev, err := Parse(buf[1:], more)
	if ev == nil || err != nil {
		return ev, err
	}
	return withAlt(ev), nil
}

func parseSS3(buf []byte, more bool) (input.Event, error) {
	if len(buf) == 2 {
		if more {
			return nil, nil
		}
		return char('O', event.ModAlt|event.ModShift), nil
	}

	switch buf[2] {
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
	case 'P', 'Q', 'R', 'S':
		return key(event.KeyF(int(buf[2]-'P')+1), event.ModNone), nil
	}
	return nil, errors.Wrapf(ErrInvalidSequence, "unknown SS3 sequence %q", buf)
}

func parseUTF8(buf []byte) (input.Event, error) {
	if !utf8.FullRune(buf) {
		// a valid prefix of a multi-byte character
		return nil, nil
	}

	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return nil, errors.Wrapf(ErrInvalidSequence, "invalid UTF-8 %q", buf)
	}

	mods := event.ModNone
	if unicode.IsUpper(r) {
		mods = event.ModShift
	}
	return char(r, mods), nil
}

func key(code event.Key, mods event.KeyModifiers) input.Event {
	return input.Wrap(event.NewKey(code, mods))
}

func char(r rune, mods event.KeyModifiers) input.Event {
	return input.Wrap(event.NewRune(r, mods))
}

func withAlt(ev input.Event) input.Event {
	p, ok := ev.(input.Public)
	if !ok {
		return ev
	}
	k, ok := p.Event.(event.KeyEvent)
	if !ok {
		return ev
	}
	k.Modifiers |= event.ModAlt
	return input.Wrap(k)
}
