//go:build unix

package termevent

import (
	"github.com/pkg/errors"
	"golang.org/x/term"
)

type savedMode struct {
	fd    int
	state *term.State
}

func makeRaw(fd int) (*savedMode, error) {
	st, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to enable raw mode")
	}
	return &savedMode{fd: fd, state: st}, nil
}

func (m *savedMode) restore() error {
	return errors.Wrap(term.Restore(m.fd, m.state), "failed to disable raw mode")
}
