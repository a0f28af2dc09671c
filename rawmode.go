package termevent

import (
	"sync"

	"github.com/lestrrat-go/pdebug"
)

// fder is implemented by sources attached to a terminal device.
type fder interface {
	Fd() int
}

var rawMode struct {
	mu    sync.Mutex
	saved *savedMode
}

func (s *state) terminalFd() (int, error) {
	src, err := s.source()
	if err != nil {
		return 0, err
	}
	f, ok := src.(fder)
	if !ok {
		return 0, ErrNotATerminal
	}
	return f.Fd(), nil
}

// EnableRawMode switches the terminal to raw mode, remembering the mode it
// was in. Enabling it again is a no-op.
func EnableRawMode() error {
	rawMode.mu.Lock()
	defer rawMode.mu.Unlock()

	if rawMode.saved != nil {
		return nil
	}

	fd, err := global.terminalFd()
	if err != nil {
		return err
	}
	saved, err := makeRaw(fd)
	if err != nil {
		return err
	}
	if pdebug.Enabled {
		pdebug.Printf("termevent: raw mode enabled on fd %d", fd)
	}
	rawMode.saved = saved
	return nil
}

// DisableRawMode restores the mode saved by EnableRawMode. Calling it
// when raw mode is not enabled is a no-op.
func DisableRawMode() error {
	rawMode.mu.Lock()
	defer rawMode.mu.Unlock()

	if rawMode.saved == nil {
		return nil
	}
	if err := rawMode.saved.restore(); err != nil {
		return err
	}
	if pdebug.Enabled {
		pdebug.Printf("termevent: raw mode disabled")
	}
	rawMode.saved = nil
	return nil
}

// IsRawModeEnabled reports whether EnableRawMode is in effect.
func IsRawModeEnabled() bool {
	rawMode.mu.Lock()
	defer rawMode.mu.Unlock()
	return rawMode.saved != nil
}

// withRawMode runs fn in raw mode, entering it only for the duration of
// the call if it was not enabled. Sources without a terminal run fn as is.
func withRawMode(fn func() error) error {
	if IsRawModeEnabled() {
		return fn()
	}
	if err := EnableRawMode(); err != nil {
		if err == ErrNotATerminal {
			return fn()
		}
		return err
	}
	defer DisableRawMode()
	return fn()
}
