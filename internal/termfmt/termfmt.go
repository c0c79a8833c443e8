// Terminal style helpers, cut down from
// https://raw.githubusercontent.com/shabbyrobe/golib/master/termfmt/termfmt.go
// Provided under an MIT license.

// Package termfmt styles the status lines printed around a run.
package termfmt

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode"
)

type Escape interface {
	Wrap(out string) string
}

var enabled atomic.Bool

func init() {
	enabled.Store(true)
}

// SetEnabled turns escapes on or off globally, e.g. for --no-color or when stdout isn't a tty.
func SetEnabled(on bool) { enabled.Store(on) }

func Enabled() bool { return enabled.Load() }

func With(escs ...Escape) Style { return (Style{}).With(escs...) }
func Bold() Style               { return (Style{}).Bold() }
func Fg(c16 C16Name) Style      { return (Style{}).Fg(c16) }

// Marker styles for the lines that open and close a run.
var (
	Pending = Bold().Fg(Cyan)
	Success = Bold().Fg(Green)
	Failure = Bold().Fg(Red)
	Muted   = Fg(DarkGrey)
)

type Style struct {
	escapes []Escape
	v       any
}

var _ fmt.Formatter = Style{}

func (c Style) With(escs ...Escape) Style {
	// copy, so derived styles never share a backing array
	c.escapes = append(append([]Escape(nil), c.escapes...), escs...)
	return c
}

func (c Style) Bold() Style          { return c.With(BoldEscape{}) }
func (c Style) Fg(c16 C16Name) Style { return c.With(C16Color{Name: c16}) }
func (c Style) Bg(c16 C16Name) Style { return c.With(C16Color{Name: c16, Bg: true}) }

func (c Style) V(v any) Style {
	c.v = v
	return c
}

func (c Style) Sprint(v any) string { return fmt.Sprint(c.V(v)) }

func (c Style) Sprintf(format string, a ...any) string {
	return c.Sprint(fmt.Sprintf(format, a...))
}

func (c Style) Format(f fmt.State, verb rune) {
	v := printable(fmt.Sprintf(buildValueFormat(f, verb), c.v))
	if Enabled() {
		for i := len(c.escapes) - 1; i >= 0; i-- {
			v = c.escapes[i].Wrap(v)
		}
	}
	f.Write([]byte(v))
}

func buildValueFormat(f fmt.State, verb rune) string {
	s := "%"
	for _, flag := range " +-0#" {
		if f.Flag(int(flag)) {
			s += string(flag)
		}
	}
	if width, ok := f.Width(); ok {
		s += strconv.Itoa(width)
	}
	if prec, ok := f.Precision(); ok {
		s += "." + strconv.Itoa(prec)
	}
	return s + string(verb)
}

type BoldEscape struct{}

func (b BoldEscape) Wrap(v string) string { return fmt.Sprintf("\x1b[1m%s\x1b[0m", v) }

type C16Name uint8

const (
	DefaultColor C16Name = iota

	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	LightGrey

	DarkGrey
	LightRed
	LightGreen
	LightYellow
	LightBlue
	LightMagenta
	LightCyan
	White
)

type C16Color struct {
	Name C16Name
	Bg   bool
}

func (c C16Color) Wrap(out string) string {
	var cv uint8
	if c.Name == DefaultColor {
		cv = 39
	} else {
		// Our enum starts at one, adjust so it starts at 0.  The lower 8 colours run from 30 to
		// 37, the upper 8 from 90 to 97.
		cv = uint8(c.Name) - 1
		if c.Name < DarkGrey {
			cv += 30
		} else {
			cv += 90 - 8
		}
	}

	if c.Bg {
		cv += 10
	}

	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", cv, out)
}

func printable(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) || r == '\n' {
			return r
		}
		return -1
	}, v)
}
