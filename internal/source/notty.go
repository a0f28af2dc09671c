package source

import (
	"io"
	"time"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/ansi"
	"github.com/peco/termevent/internal/input"
)

// NoTTY reads terminal bytes from a channel instead of a device. It is
// used by hosts that relay a remote terminal, and by tests.
type NoTTY struct {
	input  <-chan []byte
	resize <-chan event.ResizeEvent
	waker  *chanWaker
	parser *ansi.Parser
	eof    bool
}

// NewNoTTY creates a source fed by in. resize may be nil. Closing in makes
// TryRead return io.EOF once the already received bytes are consumed.
func NewNoTTY(in <-chan []byte, resize <-chan event.ResizeEvent) *NoTTY {
	return &NoTTY{
		input:  in,
		resize: resize,
		waker:  newChanWaker(),
		parser: ansi.NewParser(),
	}
}

func (s *NoTTY) Waker() Waker {
	return s.waker
}

func (s *NoTTY) TryRead(timeout time.Duration) (input.Event, error) {
	to := input.NewTimeout(timeout)
	for {
		if ev, ok := s.parser.Next(); ok {
			return ev, nil
		}
		if s.eof {
			return nil, io.EOF
		}

		ev, handled, err := s.receive(to)
		if err != nil || ev != nil {
			return ev, err
		}
		if !handled {
			return nil, nil
		}
	}
}

// receive waits for one channel operation. handled is false when the
// timeout expired before anything arrived.
func (s *NoTTY) receive(to input.Timeout) (input.Event, bool, error) {
	// check what is ready first, so that a zero timeout still sees it
	select {
	case b, ok := <-s.input:
		return s.onInput(b, ok)
	case ev, ok := <-s.resize:
		return s.onResize(ev, ok)
	case <-s.waker.ch:
		return nil, true, ErrInterrupted
	default:
	}

	if to.Elapsed() {
		return nil, false, nil
	}

	var expired <-chan time.Time
	if to.Bounded() {
		timer := time.NewTimer(to.Leftover())
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case b, ok := <-s.input:
		return s.onInput(b, ok)
	case ev, ok := <-s.resize:
		return s.onResize(ev, ok)
	case <-s.waker.ch:
		return nil, true, ErrInterrupted
	case <-expired:
		return nil, false, nil
	}
}

func (s *NoTTY) onInput(b []byte, ok bool) (input.Event, bool, error) {
	if !ok {
		if pdebug.Enabled {
			pdebug.Printf("notty: input closed, %d bytes pending", s.parser.Pending())
		}
		s.eof = true
		return nil, true, nil
	}
	s.parser.Advance(b, len(s.input) > 0)
	return nil, true, nil
}

func (s *NoTTY) onResize(ev event.ResizeEvent, ok bool) (input.Event, bool, error) {
	if !ok {
		s.resize = nil
		return nil, true, nil
	}
	return input.Wrap(ev), true, nil
}

type chanWaker struct {
	ch chan struct{}
}

func newChanWaker() *chanWaker {
	return &chanWaker{ch: make(chan struct{}, 1)}
}

func (w *chanWaker) Wake() error {
	select {
	case w.ch <- struct{}{}:
	default:
	}
	return nil
}

func (w *chanWaker) Reset() error {
	select {
	case <-w.ch:
	default:
	}
	return nil
}
