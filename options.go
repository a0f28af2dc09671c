package termevent

import (
	"io"

	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/source"
	"github.com/pkg/errors"
)

// Option configures the shared reader in Init.
type Option func(*config) error

type config struct {
	input  <-chan []byte
	resize <-chan event.ResizeEvent
	output io.Writer
	source source.Source
}

// WithInput feeds the reader from ch instead of the terminal. Each value
// is a chunk of raw terminal bytes. Closing ch makes reads fail with
// io.EOF.
func WithInput(ch <-chan []byte) Option {
	return func(c *config) error {
		if ch == nil {
			return errors.New("input channel is required")
		}
		c.input = ch
		return nil
	}
}

// WithResize delivers resize events from ch. It requires WithInput.
func WithResize(ch <-chan event.ResizeEvent) Option {
	return func(c *config) error {
		c.resize = ch
		return nil
	}
}

// WithOutput sets where terminal queries are written. The default is
// standard output.
func WithOutput(w io.Writer) Option {
	return func(c *config) error {
		if w == nil {
			return errors.New("output writer is required")
		}
		c.output = w
		return nil
	}
}

func withSource(src source.Source) Option {
	return func(c *config) error {
		c.source = src
		return nil
	}
}

// Init configures and creates the shared reader. Calling it is optional:
// without it the reader is created on first use with the platform
// terminal. Init fails with ErrAlreadyInitialized once the reader exists.
func Init(opts ...Option) error {
	return global.init(opts...)
}

func (s *state) init(opts ...Option) error {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return err
		}
	}
	if cfg.resize != nil && cfg.input == nil {
		return errors.New("WithResize requires WithInput")
	}

	s.mu.Lock()
	if s.reader != nil {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	if cfg.output != nil {
		s.output = cfg.output
	}
	switch {
	case cfg.source != nil:
		src := cfg.source
		s.open = func() (source.Source, error) { return src, nil }
	case cfg.input != nil:
		in, resize := cfg.input, cfg.resize
		s.open = func() (source.Source, error) { return source.NewNoTTY(in, resize), nil }
	}
	s.mu.Unlock()

	_, err := s.ensure()
	return err
}
