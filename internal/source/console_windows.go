//go:build windows

package source

import (
	"time"
	"unsafe"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/input"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

type inputRecord struct {
	EventType uint16
	_         [2]byte
	Event     [16]byte
}

const (
	keyEvent              = 0x0001
	mouseEvent            = 0x0002
	windowBufferSizeEvent = 0x0004
	focusEvent            = 0x0010
)

const recordBufferSize = 32

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInputW = kernel32.NewProc("ReadConsoleInputW")
)

func readConsoleInput(h windows.Handle, records []inputRecord) (int, error) {
	var n uint32
	r0, _, e1 := procReadConsoleInputW.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&records[0])),
		uintptr(len(records)),
		uintptr(unsafe.Pointer(&n)),
	)
	if r0 == 0 {
		return 0, errors.Wrap(e1, "ReadConsoleInputW failed")
	}
	return int(n), nil
}

func numberOfConsoleInputEvents(h windows.Handle) (int, error) {
	var n uint32
	if err := windows.GetNumberOfConsoleInputEvents(h, &n); err != nil {
		return 0, errors.Wrap(err, "GetNumberOfConsoleInputEvents failed")
	}
	return int(n), nil
}

// Console reads events from the Windows console input buffer.
type Console struct {
	in       windows.Handle
	out      windows.Handle
	origMode uint32
	waker    *eventWaker
	decoder  consoleDecoder
	records  [recordBufferSize]inputRecord
	pending  []input.Event
}

// OpenConsole opens the console input and output buffers and enables
// window and mouse input.
func OpenConsole() (*Console, error) {
	in, err := openConsoleHandle("CONIN$")
	if err != nil {
		return nil, err
	}
	out, err := openConsoleHandle("CONOUT$")
	if err != nil {
		windows.CloseHandle(in)
		return nil, err
	}

	var mode uint32
	if err := windows.GetConsoleMode(in, &mode); err != nil {
		windows.CloseHandle(in)
		windows.CloseHandle(out)
		return nil, errors.Wrap(err, "failed to get console mode")
	}
	newMode := (mode | windows.ENABLE_WINDOW_INPUT | windows.ENABLE_MOUSE_INPUT | windows.ENABLE_EXTENDED_FLAGS) &^ windows.ENABLE_QUICK_EDIT_MODE
	if err := windows.SetConsoleMode(in, newMode); err != nil {
		windows.CloseHandle(in)
		windows.CloseHandle(out)
		return nil, errors.Wrap(err, "failed to set console mode")
	}

	waker, err := newEventWaker()
	if err != nil {
		windows.SetConsoleMode(in, mode)
		windows.CloseHandle(in)
		windows.CloseHandle(out)
		return nil, err
	}

	if pdebug.Enabled {
		pdebug.Printf("console: mode %#x -> %#x", mode, newMode)
	}
	return &Console{
		in:       in,
		out:      out,
		origMode: mode,
		waker:    waker,
	}, nil
}

func openConsoleHandle(name string) (windows.Handle, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return windows.InvalidHandle, errors.Wrapf(err, "invalid name %s", name)
	}
	h, err := windows.CreateFile(p,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil, windows.OPEN_EXISTING, 0, 0)
	if err != nil {
		return windows.InvalidHandle, errors.Wrapf(err, "failed to open %s", name)
	}
	return h, nil
}

// Fd returns the console input handle.
func (s *Console) Fd() int {
	return int(s.in)
}

func (s *Console) Waker() Waker {
	return s.waker
}

// Close restores the console mode and releases the handles.
func (s *Console) Close() error {
	windows.SetConsoleMode(s.in, s.origMode)
	s.waker.close()
	windows.CloseHandle(s.out)
	return windows.CloseHandle(s.in)
}

func (s *Console) screenInfo() (windows.ConsoleScreenBufferInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(s.out, &info); err != nil {
		return info, errors.Wrap(err, "failed to get console screen buffer info")
	}
	return info, nil
}

// CursorPosition answers a cursor position query from the screen buffer,
// relative to the visible window.
func (s *Console) CursorPosition() (uint16, uint16, error) {
	info, err := s.screenInfo()
	if err != nil {
		return 0, 0, err
	}
	return clampCoord(info.CursorPosition.X), clampCoord(info.CursorPosition.Y - info.Window.Top), nil
}

func (s *Console) TryRead(timeout time.Duration) (input.Event, error) {
	to := input.NewTimeout(timeout)
	handles := []windows.Handle{s.in, s.waker.h}

	for {
		if len(s.pending) > 0 {
			ev := s.pending[0]
			s.pending = s.pending[1:]
			return ev, nil
		}

		ms := uint32(windows.INFINITE)
		if to.Bounded() {
			ms = uint32(pollMillis(to.Leftover()))
		}
		r, err := windows.WaitForMultipleObjects(handles, false, ms)
		if err != nil {
			return nil, errors.Wrap(err, "failed to wait for console input")
		}

		switch r {
		case windows.WAIT_OBJECT_0:
			if err := s.read(); err != nil {
				return nil, err
			}
		case windows.WAIT_OBJECT_0 + 1:
			if pdebug.Enabled {
				pdebug.Printf("console: woken up")
			}
			return nil, ErrInterrupted
		case uint32(windows.WAIT_TIMEOUT):
			return nil, nil
		default:
			return nil, errors.Errorf("unexpected wait result %#x", r)
		}
	}
}

func (s *Console) read() error {
	n, err := numberOfConsoleInputEvents(s.in)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if n > len(s.records) {
		n = len(s.records)
	}

	n, err = readConsoleInput(s.in, s.records[:n])
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		ev, err := s.decode(&s.records[i])
		if err != nil {
			return err
		}
		if ev != nil {
			s.pending = append(s.pending, input.Wrap(ev))
		}
	}
	return nil
}

func (s *Console) decode(r *inputRecord) (event.Event, error) {
	switch r.EventType {
	case keyEvent:
		kr := *(*keyEventRecord)(unsafe.Pointer(&r.Event))
		if ev, ok := s.decoder.key(kr); ok {
			return ev, nil
		}
	case mouseEvent:
		mr := *(*mouseEventRecord)(unsafe.Pointer(&r.Event))
		info, err := s.screenInfo()
		if err != nil {
			return nil, err
		}
		if ev, ok := s.decoder.mouse(mr, info.Window.Top); ok {
			return ev, nil
		}
	case windowBufferSizeEvent:
		// the record carries the buffer size; report the window instead
		info, err := s.screenInfo()
		if err != nil {
			return nil, err
		}
		return event.ResizeEvent{
			Columns: uint16(info.Window.Right - info.Window.Left + 1),
			Rows:    uint16(info.Window.Bottom - info.Window.Top + 1),
		}, nil
	case focusEvent:
		if *(*int32)(unsafe.Pointer(&r.Event)) != 0 {
			return event.FocusGainedEvent{}, nil
		}
		return event.FocusLostEvent{}, nil
	}
	return nil, nil
}
