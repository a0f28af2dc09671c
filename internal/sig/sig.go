// Package sig forwards OS signals to a handler until told to stop.
package sig

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ReceivedHandler is called for each received signal. Returning false
// makes Loop return.
type ReceivedHandler interface {
	Handle(os.Signal) bool
}

type ReceivedHandlerFunc func(os.Signal) bool

// Handle calls the underlying function with the received signal.
func (s ReceivedHandlerFunc) Handle(sig os.Signal) bool {
	return s(sig)
}

// Once wraps fn into a handler that stops after the first signal.
func Once(fn func(os.Signal)) ReceivedHandler {
	return ReceivedHandlerFunc(func(sig os.Signal) bool {
		fn(sig)
		return false
	})
}

type Handler struct {
	onSignalReceived ReceivedHandler
	sigCh            chan os.Signal
}

// New creates a new signal handler that forwards the specified signals
// (default: SIGTERM, SIGINT, SIGHUP) to h.
func New(h ReceivedHandler, sigs ...os.Signal) *Handler {
	if len(sigs) == 0 {
		sigs = append(sigs, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	return &Handler{
		onSignalReceived: h,
		sigCh:            ch,
	}
}

// Loop listens for OS signals and invokes the handler for each of them,
// until the context is done or the handler returns false.
func (h *Handler) Loop(ctx context.Context) error {
	defer signal.Stop(h.sigCh)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-h.sigCh:
			if !h.onSignalReceived.Handle(sig) {
				return nil
			}
		}
	}
}
