// Package colour wraps rendered log lines in ANSI colour sequences and
// decides whether a destination should be colourised by default.
package colour

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Wrap surrounds text with the escape sequences for attrs. The sink that
// owns the record has already decided colour is wanted, so the global
// no-colour detection in the color package is overridden. Text comes back
// unchanged when attrs is empty.
func Wrap(text string, attrs ...color.Attribute) string {
	if len(attrs) == 0 {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

// Terminal reports whether w writes to an interactive terminal. Only
// *os.File destinations can; everything else is assumed not to.
func Terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
