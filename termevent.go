// Package termevent reads input events from the terminal: key presses,
// mouse reports, resizes, focus changes and bracketed pastes.
//
// All functions share one process-wide reader, created on first use. It
// reads from the controlling terminal on Unix and from the console on
// Windows, unless Init was called to feed it from a channel instead.
//
//	for {
//		ev, err := termevent.Read()
//		if err != nil {
//			return err
//		}
//		if k, ok := ev.(event.KeyEvent); ok && k.Rune == 'q' {
//			return nil
//		}
//	}
package termevent

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/input"
	"github.com/peco/termevent/internal/reader"
	"github.com/peco/termevent/internal/source"
	"github.com/pkg/errors"
)

var (
	// ErrAlreadyInitialized is returned by Init once the reader exists.
	ErrAlreadyInitialized = errors.New("termevent: already initialized")
	// ErrCursorPositionTimeout is returned when the terminal does not
	// answer a cursor position request in time.
	ErrCursorPositionTimeout = errors.New("termevent: the cursor position could not be read within a normal duration")
	// ErrNotATerminal is returned by raw mode functions when the reader is
	// not attached to a terminal.
	ErrNotATerminal = errors.New("termevent: not a terminal")
	// ErrStreamClosed is returned by EventStream.Next after Close.
	ErrStreamClosed = errors.New("termevent: event stream closed")
)

// state is the shared reader and what is needed to create it.
type state struct {
	// lock is a one-slot semaphore held while the reader is in use. A
	// channel lets waiters give up after a timeout.
	lock chan struct{}

	mu     sync.Mutex
	reader *reader.Reader
	output io.Writer
	open   func() (source.Source, error)
}

var global = newState()

func newState() *state {
	return &state{
		lock:   make(chan struct{}, 1),
		output: os.Stdout,
		open:   openPlatformSource,
	}
}

// acquire takes the lock, waiting at most timeout. A negative timeout
// waits forever.
func (s *state) acquire(timeout time.Duration) bool {
	select {
	case s.lock <- struct{}{}:
		return true
	default:
	}

	switch {
	case timeout == 0:
		return false
	case timeout < 0:
		s.lock <- struct{}{}
		return true
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case s.lock <- struct{}{}:
		return true
	case <-t.C:
		return false
	}
}

func (s *state) release() {
	<-s.lock
}

// ensure returns the reader, creating it on first use. A failure to open
// the source is returned as is; the next call tries again.
func (s *state) ensure() (*reader.Reader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reader != nil {
		return s.reader, nil
	}

	if pdebug.Enabled {
		g := pdebug.Marker("termevent: opening event source")
		defer g.End()
	}
	src, err := s.open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize input reader")
	}
	s.reader = reader.New(src)
	return s.reader, nil
}

func (s *state) source() (source.Source, error) {
	r, err := s.ensure()
	if err != nil {
		return nil, err
	}
	return r.Source(), nil
}

func (s *state) writer() io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

func (s *state) poll(timeout time.Duration, filter input.Filter) (bool, error) {
	to := input.NewTimeout(timeout)
	if !s.acquire(timeout) {
		return false, nil
	}
	defer s.release()

	r, err := s.ensure()
	if err != nil {
		return false, err
	}
	return r.Poll(to.Leftover(), filter)
}

func (s *state) read(filter input.Filter) (input.Event, error) {
	s.acquire(input.Forever)
	defer s.release()

	r, err := s.ensure()
	if err != nil {
		return nil, err
	}
	return r.Read(filter)
}

func (s *state) tryRead(filter input.Filter) (input.Event, bool, error) {
	if !s.acquire(0) {
		return nil, false, nil
	}
	defer s.release()

	r, err := s.ensure()
	if err != nil {
		return nil, false, err
	}
	return r.TryRead(filter)
}

func public(ev input.Event) event.Event {
	return ev.(input.Public).Event
}

// Poll reports whether an event is available, waiting at most timeout.
// Use a negative timeout to wait until one arrives. Poll never waits past
// timeout, including the time spent waiting for other readers.
func Poll(timeout time.Duration) (bool, error) {
	return global.poll(timeout, input.EventFilter)
}

// Read blocks until an event is available and returns it.
func Read() (event.Event, error) {
	ev, err := global.read(input.EventFilter)
	if err != nil {
		return nil, err
	}
	return public(ev), nil
}

// TryRead returns an event if one is available right away.
func TryRead() (event.Event, bool, error) {
	ev, ok, err := global.tryRead(input.EventFilter)
	if err != nil || !ok {
		return nil, false, err
	}
	return public(ev), true, nil
}
