// evdump prints the events termevent decodes from the terminal, one per
// line. It is meant for checking what a terminal actually sends.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lestrrat-go/pdebug"
	"github.com/oklog/run"
	"github.com/peco/termevent"
	"github.com/peco/termevent/config"
	"github.com/peco/termevent/internal/sig"
	"github.com/pkg/errors"
)

func main() {
	var opts options
	if err := dump(context.Background(), &opts, os.Args[1:], os.Stdout); err != nil {
		if err == errHelp {
			os.Stderr.Write(opts.help())
			return
		}
		fmt.Fprintf(os.Stderr, "evdump: %s\n", err)
		os.Exit(1)
	}
}

func dump(ctx context.Context, opts *options, args []string, out io.Writer) error {
	if _, err := opts.parse(args); err != nil {
		return err
	}
	cfg, err := opts.config()
	if err != nil {
		return err
	}

	if err := termevent.EnableRawMode(); err != nil {
		return errors.Wrap(err, "failed to enable raw mode")
	}
	defer termevent.DisableRawMode()

	restore, err := enableModes(out, cfg)
	defer restore()
	if err != nil {
		return err
	}

	p := printer{w: out, tcell: opts.OptTcell}
	if cfg.CursorOnStart {
		col, row, err := termevent.CursorPosition()
		if err != nil {
			return err
		}
		p.notef("cursor at %d,%d", col, row)
	}
	if ok, err := termevent.SupportsKeyboardEnhancement(); err == nil {
		p.notef("keyboard enhancement supported: %t", ok)
	}
	p.notef("press %s to quit", cfg.QuitKey)

	stream, err := termevent.NewEventStream()
	if err != nil {
		return err
	}
	defer stream.Close()

	var g run.Group
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			return loop(ctx, stream, cfg.QuitKey, p)
		}, func(error) {
			cancel()
		})
	}
	{
		ctx, cancel := context.WithCancel(ctx)
		h := sig.New(sig.Once(func(s os.Signal) {
			p.notef("received %s", s)
		}))
		g.Add(func() error {
			return h.Loop(ctx)
		}, func(error) {
			cancel()
		})
	}

	if err := g.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loop(ctx context.Context, stream *termevent.EventStream, quit config.Key, p printer) error {
	if pdebug.Enabled {
		g := pdebug.Marker("evdump: event loop")
		defer g.End()
	}

	for {
		ev, err := stream.Next(ctx)
		if err != nil {
			return err
		}
		if err := p.row(ev); err != nil {
			return errors.Wrap(err, "failed to print event")
		}
		if quit.Matches(ev) {
			return nil
		}
	}
}

// enableModes switches on what cfg asks for. The returned function undoes
// whatever was switched on, even when enabling failed halfway.
func enableModes(w io.Writer, cfg *config.Config) (func(), error) {
	var undo []func(io.Writer) error
	restore := func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i](w)
		}
	}

	flags, err := cfg.KeyboardEnhancement.Flags()
	if err != nil {
		return restore, err
	}

	steps := []struct {
		on      bool
		enable  func(io.Writer) error
		disable func(io.Writer) error
	}{
		{cfg.Mouse, termevent.EnableMouseCapture, termevent.DisableMouseCapture},
		{cfg.BracketedPaste, termevent.EnableBracketedPaste, termevent.DisableBracketedPaste},
		{cfg.FocusChange, termevent.EnableFocusChange, termevent.DisableFocusChange},
		{flags != 0, func(w io.Writer) error {
			return termevent.PushKeyboardEnhancementFlags(w, flags)
		}, termevent.PopKeyboardEnhancementFlags},
	}
	for _, s := range steps {
		if !s.on {
			continue
		}
		if err := s.enable(w); err != nil {
			return restore, err
		}
		undo = append(undo, s.disable)
	}
	return restore, nil
}
