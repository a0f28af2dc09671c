//go:build unix

package source

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/ansi"
	"github.com/peco/termevent/internal/input"
	"github.com/peco/termevent/internal/sig"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const ttyBufferSize = 1024

// TTY reads events from the controlling terminal. Resizes arrive through
// SIGWINCH, which is forwarded into a pipe so that a single poll(2) can
// wait for input, resizes and the waker at the same time.
type TTY struct {
	file    *os.File
	owned   bool
	fd      int
	resize  [2]int
	waker   *pipeWaker
	parser  *ansi.Parser
	buf     [ttyBufferSize]byte
	stopSig context.CancelFunc
}

// OpenTTY opens standard input if it is a terminal, /dev/tty otherwise.
func OpenTTY() (*TTY, error) {
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		if pdebug.Enabled {
			pdebug.Printf("tty: using stdin")
		}
		return NewTTY(os.Stdin)
	}

	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open /dev/tty")
	}
	if pdebug.Enabled {
		pdebug.Printf("tty: using /dev/tty")
	}
	s, err := NewTTY(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// NewTTY creates a source reading from f, which must be a terminal, such
// as the slave side of a pseudo terminal. Close does not close f.
func NewTTY(f *os.File) (*TTY, error) {
	var resize [2]int
	if err := newPipe(resize[:]); err != nil {
		return nil, errors.Wrap(err, "failed to create resize pipe")
	}

	waker, err := newPipeWaker()
	if err != nil {
		closeFds(resize[:])
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &TTY{
		file:    f,
		fd:      int(f.Fd()),
		resize:  resize,
		waker:   waker,
		parser:  ansi.NewParser(),
		stopSig: cancel,
	}

	h := sig.New(sig.ReceivedHandlerFunc(func(os.Signal) bool {
		s.notifyResize()
		return true
	}), unix.SIGWINCH)
	go h.Loop(ctx)

	return s, nil
}

// Fd returns the terminal file descriptor.
func (s *TTY) Fd() int {
	return s.fd
}

func (s *TTY) Waker() Waker {
	return s.waker
}

// Close stops the resize forwarding and releases the pipes. The terminal
// itself is closed only if it was opened by OpenTTY.
func (s *TTY) Close() error {
	s.stopSig()
	closeFds(s.resize[:])
	s.waker.close()
	if s.owned {
		return s.file.Close()
	}
	return nil
}

func (s *TTY) notifyResize() {
	// a full pipe already has a pending notification
	_, _ = unix.Write(s.resize[1], []byte{0})
}

func (s *TTY) TryRead(timeout time.Duration) (input.Event, error) {
	to := input.NewTimeout(timeout)
	fds := []unix.PollFd{
		{Fd: int32(s.fd), Events: unix.POLLIN},
		{Fd: int32(s.resize[0]), Events: unix.POLLIN},
		{Fd: int32(s.waker.r), Events: unix.POLLIN},
	}

	for {
		if ev, ok := s.parser.Next(); ok {
			return ev, nil
		}

		n, err := unix.Poll(fds, pollMillis(to.Leftover()))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, errors.Wrap(err, "failed to poll terminal")
		}
		if n == 0 {
			return nil, nil
		}

		if fds[2].Revents&unix.POLLIN != 0 {
			if pdebug.Enabled {
				pdebug.Printf("tty: woken up")
			}
			if err := s.waker.Reset(); err != nil {
				return nil, err
			}
			return nil, ErrInterrupted
		}

		if fds[1].Revents&unix.POLLIN != 0 {
			if err := drain(s.resize[0]); err != nil {
				return nil, err
			}
			ev, err := s.size()
			if err != nil {
				return nil, err
			}
			return ev, nil
		}

		switch revents := fds[0].Revents; {
		case revents&unix.POLLIN != 0:
			if err := s.read(); err != nil {
				return nil, err
			}
		case revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0:
			return nil, errors.Wrap(io.EOF, "terminal hung up")
		}
	}
}

func (s *TTY) read() error {
	for {
		n, err := unix.Read(s.fd, s.buf[:])
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return nil
		case err != nil:
			return errors.Wrap(err, "failed to read terminal")
		case n == 0:
			return io.EOF
		}

		more := n == len(s.buf) || s.readable()
		s.parser.Advance(s.buf[:n], more)
		return nil
	}
}

// readable reports whether more input is already waiting.
func (s *TTY) readable() bool {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	return err == nil && n > 0 && fds[0].Revents&unix.POLLIN != 0
}

func (s *TTY) size() (input.Event, error) {
	cols, rows, err := term.GetSize(s.fd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get terminal size")
	}
	return input.Wrap(event.ResizeEvent{Columns: uint16(cols), Rows: uint16(rows)}), nil
}
