package termevent

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/input"
	"github.com/peco/termevent/internal/source"
)

// EventStream adapts the blocking reader to callers that are woken up
// when input is ready, such as event loops and schedulers.
//
// Poll never blocks. When nothing is available it starts at most one
// background goroutine that waits for input and then calls the wake
// function it was given, once.
type EventStream struct {
	state    *state
	waker    source.Waker
	mu       sync.Mutex // orders waker use against the end of a wait
	waiting  atomic.Bool
	shutdown atomic.Bool
	ready    chan struct{}
}

// Result is a value delivered by EventStream.Events.
type Result struct {
	Event event.Event
	Err   error
}

// NewEventStream creates a stream over the shared reader, creating the
// reader if needed.
func NewEventStream() (*EventStream, error) {
	return newEventStream(global)
}

func newEventStream(s *state) (*EventStream, error) {
	src, err := s.source()
	if err != nil {
		return nil, err
	}
	return &EventStream{
		state: s,
		waker: src.Waker(),
		ready: make(chan struct{}, 1),
	}, nil
}

// Poll returns the next event if one is available right away. Otherwise
// it arranges for wake to be called when the stream should be polled
// again, and returns false.
func (s *EventStream) Poll(wake func()) (event.Event, bool, error) {
	ok, err := s.state.poll(0, input.EventFilter)
	if err != nil {
		return nil, false, err
	}
	if ok {
		ev, ok, err := s.state.tryRead(input.EventFilter)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return public(ev), true, nil
		}
	}

	if s.waiting.CompareAndSwap(false, true) {
		go s.wait(wake)
	}
	return nil, false, nil
}

func (s *EventStream) wait(wake func()) {
	if pdebug.Enabled {
		g := pdebug.Marker("stream: waiting for input")
		defer g.End()
	}

	// returns on input, on error, or when the waker fires
	_, err := s.state.poll(input.Forever, input.EventFilter)
	if err != nil && pdebug.Enabled {
		pdebug.Printf("stream: poll failed: %s", err)
	}

	// a Wake aimed at this wait may land after input already ended it
	s.mu.Lock()
	s.waiting.Store(false)
	if err := s.waker.Reset(); err != nil && pdebug.Enabled {
		pdebug.Printf("stream: waker reset failed: %s", err)
	}
	s.mu.Unlock()
	wake()
}

// interrupt ends a pending background wait. It does nothing when no wait
// is pending, so no wake is left behind for a later poll.
func (s *EventStream) interrupt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.waiting.Load() {
		return nil
	}
	if pdebug.Enabled {
		pdebug.Printf("stream: waking background wait")
	}
	return s.waker.Wake()
}

// Next blocks until an event arrives, ctx is done, or the stream is
// closed.
func (s *EventStream) Next(ctx context.Context) (event.Event, error) {
	wake := func() {
		select {
		case s.ready <- struct{}{}:
		default:
		}
	}

	for {
		if s.shutdown.Load() {
			return nil, ErrStreamClosed
		}

		ev, ok, err := s.Poll(wake)
		if err != nil {
			return nil, err
		}
		if ok {
			return ev, nil
		}

		select {
		case <-ctx.Done():
			// release the reader held by the background wait
			_ = s.interrupt()
			return nil, ctx.Err()
		case <-s.ready:
		}
	}
}

// Events delivers events on a channel until ctx is done, the stream is
// closed, or reading fails. The channel is closed afterwards.
func (s *EventStream) Events(ctx context.Context) <-chan Result {
	ch := make(chan Result)
	go func() {
		defer close(ch)
		for {
			ev, err := s.Next(ctx)
			if err != nil {
				if err == ErrStreamClosed || ctx.Err() != nil {
					return
				}
			}
			select {
			case ch <- Result{Event: ev, Err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// Close stops the stream. A pending background wait is interrupted and
// ends without delivering anything.
func (s *EventStream) Close() error {
	s.shutdown.Store(true)
	return s.interrupt()
}
