package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/peco/termevent/event"
	"github.com/peco/termevent/tcellconv"
)

const (
	kindColumn = 7
	keyColumn  = 14
)

type printer struct {
	w     io.Writer
	tcell bool
}

// row prints one line. Raw mode leaves output post processing off, hence
// the explicit carriage return.
func (p printer) row(ev event.Event) error {
	_, err := io.WriteString(p.w, p.format(ev)+"\r\n")
	return err
}

func (p printer) notef(format string, args ...any) error {
	_, err := fmt.Fprintf(p.w, "# "+format+"\r\n", args...)
	return err
}

func (p printer) format(ev event.Event) string {
	kind, detail := describe(ev)
	s := runewidth.FillRight(kind, kindColumn) + " " + detail
	if p.tcell {
		var types []string
		for _, tev := range tcellconv.ToTcell(ev) {
			types = append(types, strings.TrimPrefix(fmt.Sprintf("%T", tev), "*tcell."))
		}
		s += "  tcell=[" + strings.Join(types, " ") + "]"
	}
	return strings.TrimRight(s, " ")
}

func describe(ev event.Event) (string, string) {
	switch ev := ev.(type) {
	case event.KeyEvent:
		return "key", describeKey(ev)
	case event.MouseEvent:
		return "mouse", describeMouse(ev)
	case event.ResizeEvent:
		return "resize", fmt.Sprintf("%dx%d", ev.Columns, ev.Rows)
	case event.FocusGainedEvent:
		return "focus", "gained"
	case event.FocusLostEvent:
		return "focus", "lost"
	case event.PasteEvent:
		return "paste", fmt.Sprintf("%q", ev.Text)
	}
	return "?", fmt.Sprintf("%#v", ev)
}

func describeKey(k event.KeyEvent) string {
	var b strings.Builder
	b.WriteString(k.String())
	if pad := keyColumn - k.Width(); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(" ")
	b.WriteString(k.Kind.String())
	if k.IsRune() {
		fmt.Fprintf(&b, " %U", k.Rune)
	}
	if k.State&event.StateKeypad != 0 {
		b.WriteString(" keypad")
	}
	if k.State&event.StateCapsLock != 0 {
		b.WriteString(" capslock")
	}
	if k.State&event.StateNumLock != 0 {
		b.WriteString(" numlock")
	}
	return b.String()
}

func describeMouse(m event.MouseEvent) string {
	s := m.Kind.String()
	switch m.Kind {
	case event.MouseDown, event.MouseUp, event.MouseDrag:
		s += " " + m.Button.String()
	}
	s += fmt.Sprintf(" at %d,%d", m.Column, m.Row)
	if mods := m.Modifiers.String(); mods != "" {
		s += " with " + mods
	}
	return s
}
