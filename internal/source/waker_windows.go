//go:build windows

package source

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// eventWaker is an auto-reset event object. A satisfied wait resets it.
type eventWaker struct {
	h windows.Handle
}

func newEventWaker() (*eventWaker, error) {
	h, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create waker event")
	}
	return &eventWaker{h: h}, nil
}

func (w *eventWaker) Wake() error {
	return errors.Wrap(windows.SetEvent(w.h), "failed to wake")
}

func (w *eventWaker) Reset() error {
	return errors.Wrap(windows.ResetEvent(w.h), "failed to reset waker")
}

func (w *eventWaker) close() {
	windows.CloseHandle(w.h)
}
