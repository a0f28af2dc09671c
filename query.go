package termevent

import (
	"io"
	"time"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/termevent/internal/input"
	"github.com/peco/termevent/internal/source"
	"github.com/pkg/errors"
)

var queryTimeout = 2 * time.Second

const (
	requestCursorPosition   = "\x1b[6n"
	requestEnhancementFlags = "\x1b[?u"
	requestDeviceAttributes = "\x1b[c"
)

// CursorPosition returns the 0-based column and row of the cursor.
func CursorPosition() (col, row uint16, err error) {
	return global.cursorPosition()
}

func (s *state) cursorPosition() (col, row uint16, err error) {
	src, err := s.source()
	if err != nil {
		return 0, 0, err
	}
	if cp, ok := src.(source.CursorPositioner); ok {
		return cp.CursorPosition()
	}

	if pdebug.Enabled {
		g := pdebug.Marker("termevent: cursor position query")
		defer g.End()
	}

	err = withRawMode(func() error {
		if _, err := io.WriteString(s.writer(), requestCursorPosition); err != nil {
			return errors.Wrap(err, "failed to request cursor position")
		}

		ok, err := s.poll(queryTimeout, input.CursorPositionFilter)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCursorPositionTimeout
		}

		ev, err := s.read(input.CursorPositionFilter)
		if err != nil {
			return err
		}
		pos := ev.(input.CursorPosition)
		col, row = pos.Column, pos.Row
		return nil
	})
	return col, row, err
}

// SupportsKeyboardEnhancement reports whether the terminal implements the
// kitty keyboard protocol. Terminals that do not answer in time are
// assumed not to.
func SupportsKeyboardEnhancement() (bool, error) {
	return global.supportsKeyboardEnhancement()
}

func (s *state) supportsKeyboardEnhancement() (bool, error) {
	src, err := s.source()
	if err != nil {
		return false, err
	}
	if _, ok := src.(source.CursorPositioner); ok {
		// a native console, not a terminal emulator
		return false, nil
	}

	if pdebug.Enabled {
		g := pdebug.Marker("termevent: keyboard enhancement query")
		defer g.End()
	}

	var supported bool
	err = withRawMode(func() error {
		// terminals that do not know the first query still answer the
		// second one
		if _, err := io.WriteString(s.writer(), requestEnhancementFlags+requestDeviceAttributes); err != nil {
			return errors.Wrap(err, "failed to query keyboard enhancement flags")
		}

		to := input.NewTimeout(queryTimeout)
		ok, err := s.poll(to.Leftover(), input.KeyboardEnhancementFlagsFilter)
		if err != nil || !ok {
			return err
		}

		ev, err := s.read(input.KeyboardEnhancementFlagsFilter)
		if err != nil {
			return err
		}
		if _, ok := ev.(input.KeyboardEnhancementFlags); !ok {
			return nil
		}
		supported = true

		// consume the device attributes reply that follows
		ok, err = s.poll(to.Leftover(), input.PrimaryDeviceAttributesFilter)
		if err != nil || !ok {
			return err
		}
		_, err = s.read(input.PrimaryDeviceAttributesFilter)
		return err
	})
	return supported, err
}
