package main

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/jessevdk/go-flags"
	"github.com/peco/termevent/config"
	"github.com/pkg/errors"
)

type options struct {
	OptHelp    bool        `short:"h" long:"help" description:"show this help message and exit"`
	OptRcfile  string      `long:"rcfile" description:"path to the settings file"`
	OptMouse   bool        `long:"mouse" description:"report mouse events"`
	OptPaste   bool        `long:"paste" description:"report bracketed pastes as a single event"`
	OptFocus   bool        `long:"focus" description:"report focus changes"`
	OptEnhance []string    `long:"enhance" description:"kitty keyboard flag to push, may be repeated"`
	OptCursor  bool        `long:"cursor" description:"print the cursor position before reading"`
	OptQuit    *config.Key `long:"quit" description:"key that ends the dump (default C-c)"`
	OptTcell   bool        `long:"tcell" description:"also show the tcell events each event converts to"`
}

var errHelp = errors.New("help requested")

func (o *options) parse(args []string) ([]string, error) {
	p := flags.NewParser(o, flags.PrintErrors)
	rest, err := p.ParseArgs(args)
	if err != nil {
		return nil, errors.Wrap(err, "invalid command line options")
	}
	if o.OptHelp {
		return nil, errHelp
	}
	if _, err := config.Enhancements(o.OptEnhance).Flags(); err != nil {
		return nil, errors.Wrap(err, "invalid command line options")
	}
	return rest, nil
}

func (o options) help() []byte {
	buf := bytes.Buffer{}

	fmt.Fprintf(&buf, `
Usage: evdump [options]

Prints every terminal event it reads until the quit key is pressed.

Options:
`)

	t := reflect.TypeOf(o)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag

		var opt string
		if s := tag.Get("short"); s != "" {
			opt = fmt.Sprintf("-%s, --%s", s, tag.Get("long"))
		} else {
			opt = fmt.Sprintf("--%s", tag.Get("long"))
		}
		fmt.Fprintf(&buf, "  %-21s %s\n", opt, tag.Get("description"))
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

// config loads the settings file, if any, and lets the command line
// switch on more.
func (o options) config() (*config.Config, error) {
	cfg := config.Default()

	rcfile := o.OptRcfile
	if rcfile == "" {
		if file, err := config.LocateRcfile(config.DefaultConfigLocator); err == nil {
			rcfile = file
		}
	}
	if rcfile != "" {
		if err := cfg.ReadFilename(rcfile); err != nil {
			return nil, err
		}
	}

	cfg.Mouse = cfg.Mouse || o.OptMouse
	cfg.BracketedPaste = cfg.BracketedPaste || o.OptPaste
	cfg.FocusChange = cfg.FocusChange || o.OptFocus
	cfg.CursorOnStart = cfg.CursorOnStart || o.OptCursor
	cfg.KeyboardEnhancement = append(cfg.KeyboardEnhancement, o.OptEnhance...)
	if o.OptQuit != nil {
		cfg.QuitKey = *o.OptQuit
	}
	return cfg, nil
}
