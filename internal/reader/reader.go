// Package reader implements the shared event reader. Events fetched from
// the source are queued in arrival order; callers pick the first event
// matching their filter and leave everything else queued for others.
package reader

import (
	"time"

	"github.com/google/btree"
	"github.com/lestrrat-go/pdebug"
	"github.com/peco/termevent/internal/input"
	"github.com/peco/termevent/internal/source"
	"github.com/pkg/errors"
)

// queued is an event tagged with its arrival sequence. The queue is
// ordered by sequence, so removing one entry never reorders the others.
type queued struct {
	seq uint64
	ev  input.Event
}

// Less implements the btree.Item interface
func (q queued) Less(than btree.Item) bool {
	return q.seq < than.(queued).seq
}

// Reader is not safe for concurrent use. Callers serialize access.
type Reader struct {
	source source.Source
	queue  *btree.BTree
	seq    uint64
}

func New(src source.Source) *Reader {
	return &Reader{
		source: src,
		queue:  btree.New(32),
	}
}

// Source returns the source events are read from.
func (r *Reader) Source() source.Source {
	return r.source
}

// Waker returns the waker of the underlying source.
func (r *Reader) Waker() source.Waker {
	return r.source.Waker()
}

// Len returns the number of queued events.
func (r *Reader) Len() int {
	return r.queue.Len()
}

func (r *Reader) push(ev input.Event) {
	r.seq++
	r.queue.ReplaceOrInsert(queued{seq: r.seq, ev: ev})
}

// find returns the oldest queued event matching filter.
func (r *Reader) find(filter input.Filter) (queued, bool) {
	var found queued
	var ok bool
	r.queue.Ascend(func(it btree.Item) bool {
		q := it.(queued)
		if filter.Eval(q.ev) {
			found, ok = q, true
			return false
		}
		return true
	})
	return found, ok
}

func (r *Reader) take(filter input.Filter) (input.Event, bool) {
	q, ok := r.find(filter)
	if !ok {
		return nil, false
	}
	r.queue.Delete(q)
	return q.ev, true
}

// Poll reports whether an event matching filter is available, waiting up
// to timeout for one. A negative timeout waits until one arrives or the
// waker fires. Events that do not match are queued for later.
func (r *Reader) Poll(timeout time.Duration, filter input.Filter) (bool, error) {
	if _, ok := r.find(filter); ok {
		return true, nil
	}

	to := input.NewTimeout(timeout)
	for {
		ev, err := r.source.TryRead(to.Leftover())
		if err != nil {
			if errors.Is(err, source.ErrInterrupted) {
				if pdebug.Enabled {
					pdebug.Printf("reader: poll interrupted")
				}
				return false, nil
			}
			return false, err
		}

		if ev != nil {
			matched := filter.Eval(ev)
			r.push(ev)
			if matched {
				return true, nil
			}
			if pdebug.Enabled {
				pdebug.Printf("reader: queued %#v, %d waiting", ev, r.queue.Len())
			}
		} else if to.Bounded() {
			// the source gave up waiting
			return false, nil
		}

		if to.Elapsed() {
			return false, nil
		}
	}
}

// Read blocks until an event matching filter is available, then removes
// and returns it. A wake up does not end Read.
func (r *Reader) Read(filter input.Filter) (input.Event, error) {
	for {
		if ev, ok := r.take(filter); ok {
			return ev, nil
		}
		if _, err := r.Poll(input.Forever, filter); err != nil {
			return nil, err
		}
	}
}

// TryRead returns the first queued or immediately available event
// matching filter without waiting.
func (r *Reader) TryRead(filter input.Filter) (input.Event, bool, error) {
	ok, err := r.Poll(0, filter)
	if err != nil || !ok {
		return nil, false, err
	}
	ev, ok := r.take(filter)
	return ev, ok, nil
}
