package format

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/avensley/tracelog/core"
)

// Trace styles, in increasing order of verbosity.
const (
	StyleBare     = "bare"
	StyleSimple   = "simple"
	StyleClean    = "clean"
	StyleDetailed = "detailed"
	StyleFull     = "full"
)

// DefaultTraceStyle is applied by %{trace}% placeholders without an
// argument.
const DefaultTraceStyle = StyleClean

// Trace renders a call site in the named style:
//
//	bare      main.go:42
//	simple    github.com.acme.svc@run:42
//	clean     cmd/svc/main.go@run:42
//	detailed  every stack frame in clean form, outermost first, joined by " -> "
//	full      a newline-wrapped block, one indented frame per line, most recent call last
//
// File paths render relative to the working directory when they lie
// inside it. An unknown style fails with ErrInvalidFormatSpecifier.
func Trace(site *core.CallSite, style string) (string, error) {
	switch style {
	case StyleBare:
		return filepath.Base(site.File) + ":" + strconv.Itoa(site.Line), nil
	case StyleSimple:
		return site.Scope + "@" + site.Function + ":" + strconv.Itoa(site.Line), nil
	case StyleClean:
		return cleanFrame(site.File, site.Function, site.Line), nil
	case StyleDetailed:
		frames := site.Stack()
		parts := make([]string, len(frames))
		for i, f := range frames {
			parts[i] = cleanFrame(f.File, f.Function, f.Line)
		}
		return strings.Join(parts, " -> "), nil
	case StyleFull:
		var b strings.Builder
		b.WriteString("\nStack (most recent call last):")
		for _, f := range site.Stack() {
			b.WriteString("\n  File \"")
			b.WriteString(relPath(f.File))
			b.WriteString("\", line ")
			b.WriteString(strconv.Itoa(f.Line))
			b.WriteString(", in ")
			b.WriteString(f.Function)
		}
		b.WriteByte('\n')
		return b.String(), nil
	default:
		return "", errors.Wrapf(ErrInvalidFormatSpecifier, "trace style %q", style)
	}
}

func cleanFrame(file, function string, line int) string {
	return relPath(file) + "@" + function + ":" + strconv.Itoa(line)
}
