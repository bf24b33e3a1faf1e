package format

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/avensley/tracelog/core"
)

// ErrInvalidFormatSpecifier is returned when a placeholder names neither a
// record field nor an extra field, or a trace placeholder names an unknown
// style.
var ErrInvalidFormatSpecifier = errors.New("invalid format specifier")

// DefaultTemplate is the line shape used by sinks configured without a
// formatter.
const DefaultTemplate = "[%{lvl}%][%{time}%][%{trace}%] - %{msg}%"

// DefaultTimeSpec is the datetime spec applied by %{time}% placeholders
// without an argument.
const DefaultTimeSpec = "YYYY-MM-DD hh:mm:ss.SSS z"

// bufferPool recycles rendering buffers to reduce allocations.
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// Interpret expands every %{...}% placeholder in template against rec and
// returns the result. Literal text outside placeholders is copied
// verbatim, including unpaired %{ and }% fragments.
func Interpret(template string, rec *core.Record) (string, error) {
	buf := getBuffer()
	defer putBuffer(buf)
	if err := interpret(buf, template, rec, false); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render expands template against rec and appends the record terminator:
// a single newline, or, when the record carries an attached error, the
// error's full representation on its own line, newline-terminated. An
// empty rendered line gains no separating newline, so the error text
// starts the output. Errors attached with pkg/errors render their stack
// traces.
func Render(template string, rec *core.Record) (string, error) {
	buf := getBuffer()
	defer putBuffer(buf)
	if err := interpret(buf, template, rec, false); err != nil {
		return "", err
	}
	if rec.Err != nil {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "%+v\n", rec.Err)
		return buf.String(), nil
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

// interpret walks template left to right. Each %{ pairs with the first }%
// after it; text without a complete pair is literal. fromMsg marks that we
// are already one level inside a message expansion, which stops %{msg}%
// from recursing further.
func interpret(buf *bytes.Buffer, template string, rec *core.Record, fromMsg bool) error {
	for {
		open := strings.Index(template, "%{")
		if open < 0 {
			buf.WriteString(template)
			return nil
		}
		end := strings.Index(template[open+2:], "}%")
		if end < 0 {
			buf.WriteString(template)
			return nil
		}
		buf.WriteString(template[:open])
		if err := expand(buf, template[open+2:open+2+end], rec, fromMsg); err != nil {
			return err
		}
		template = template[open+2+end+2:]
	}
}

// expand renders one placeholder's inner text. Only time and trace take a
// colon argument; any other inner text containing a colon is treated as a
// literal extra-field key.
func expand(buf *bytes.Buffer, inner string, rec *core.Record, fromMsg bool) error {
	if i := strings.IndexByte(inner, ':'); i >= 0 {
		switch inner[:i] {
		case "time":
			buf.WriteString(Time(rec.Time, inner[i+1:]))
			return nil
		case "trace":
			text, err := Trace(rec.Site, inner[i+1:])
			if err != nil {
				return err
			}
			buf.WriteString(text)
			return nil
		}
		return expandExtra(buf, inner, rec)
	}

	switch inner {
	case "name", "logger-name":
		buf.WriteString(rec.LoggerName)
	case "lvl", "level":
		buf.WriteString(rec.Level.Name)
	case "time":
		buf.WriteString(Time(rec.Time, DefaultTimeSpec))
	case "trace":
		text, err := Trace(rec.Site, DefaultTraceStyle)
		if err != nil {
			return err
		}
		buf.WriteString(text)
	case "gname", "global-name":
		buf.WriteString(rec.Scope)
	case "pname", "process-name":
		buf.WriteString(rec.Process.Name)
	case "pid", "process-identifier":
		buf.WriteString(strconv.Itoa(rec.Process.ID))
	case "tname", "thread-name":
		buf.WriteString(rec.Goroutine.Name)
	case "tid", "thread-identifier":
		buf.WriteString(strconv.FormatInt(rec.Goroutine.ID, 10))
	case "msg", "message":
		if fromMsg {
			buf.WriteString(rec.Message)
			return nil
		}
		return interpret(buf, rec.Message, rec, true)
	default:
		return expandExtra(buf, inner, rec)
	}
	return nil
}

func expandExtra(buf *bytes.Buffer, key string, rec *core.Record) error {
	if v, ok := rec.Extra[key]; ok {
		buf.WriteString(core.Stringify(v))
		return nil
	}
	return errors.Wrapf(ErrInvalidFormatSpecifier, "format specifier %q", key)
}
