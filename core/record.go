package core

import (
	"fmt"
	"time"
)

// Record is a single log event. It is assembled once per accepted call
// and shared read-only by every sink; nothing may mutate it after
// construction.
//
// Extra holds caller-supplied fields addressable from format templates as
// %{<key>}% placeholders. Err is an optionally attached error; template
// rendering appends its full representation after the formatted line.
type Record struct {
	LoggerName string
	Scope      string
	Level      Level
	Time       time.Time
	Site       *CallSite
	Process    ProcessInfo
	Goroutine  GoroutineInfo
	Message    string
	Extra      map[string]any
	Err        error
}

// Stringify renders a message or extra-field value the way records carry
// them. Strings pass through; errors and Stringers use their own text;
// everything else goes through fmt.
func Stringify(v any) string {
	switch m := v.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case fmt.Stringer:
		return m.String()
	default:
		return fmt.Sprint(m)
	}
}
