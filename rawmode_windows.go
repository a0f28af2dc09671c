//go:build windows

package termevent

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// raw mode on the console keeps the input records intact. Turning on
// virtual terminal input, as term.MakeRaw does, would turn keys into
// escape sequences.
const notRawMode = windows.ENABLE_LINE_INPUT | windows.ENABLE_ECHO_INPUT | windows.ENABLE_PROCESSED_INPUT

type savedMode struct {
	h    windows.Handle
	mode uint32
}

func makeRaw(fd int) (*savedMode, error) {
	h := windows.Handle(fd)
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return nil, errors.Wrap(err, "failed to get console mode")
	}
	if err := windows.SetConsoleMode(h, mode&^notRawMode); err != nil {
		return nil, errors.Wrap(err, "failed to enable raw mode")
	}
	return &savedMode{h: h, mode: mode}, nil
}

func (m *savedMode) restore() error {
	return errors.Wrap(windows.SetConsoleMode(m.h, m.mode), "failed to disable raw mode")
}
