//go:build unix

package source

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// pipeWaker is a self-pipe: writing a byte makes the read end readable,
// which wakes up a poll(2) watching it.
type pipeWaker struct {
	r, w int
}

func newPipeWaker() (*pipeWaker, error) {
	var p [2]int
	if err := newPipe(p[:]); err != nil {
		return nil, errors.Wrap(err, "failed to create waker pipe")
	}
	return &pipeWaker{r: p[0], w: p[1]}, nil
}

func (w *pipeWaker) Wake() error {
	_, err := unix.Write(w.w, []byte{0})
	if err != nil && err != unix.EAGAIN {
		return errors.Wrap(err, "failed to wake")
	}
	return nil
}

func (w *pipeWaker) Reset() error {
	return drain(w.r)
}

func (w *pipeWaker) close() {
	closeFds([]int{w.r, w.w})
}

func newPipe(p []int) error {
	if err := unix.Pipe(p); err != nil {
		return err
	}
	for _, fd := range p {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			closeFds(p)
			return err
		}
	}
	return nil
}

// drain empties a non-blocking pipe.
func drain(fd int) error {
	var buf [64]byte
	for {
		n, err := unix.Read(fd, buf[:])
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return nil
		case err != nil:
			return errors.Wrap(err, "failed to drain pipe")
		case n < len(buf):
			return nil
		}
	}
}

func closeFds(fds []int) {
	for _, fd := range fds {
		unix.Close(fd)
	}
}
