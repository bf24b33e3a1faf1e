package core

import (
	"runtime"
	"strings"
)

// maxStackDepth bounds how many frames a call site captures. Stacks deeper
// than this are truncated at the outer end.
const maxStackDepth = 64

// CallSite pins a log call to its source location. File and Line point at
// the call itself, Function is the bare function name (method receivers
// included), and Scope is the caller's package import path in dotted form,
// e.g. "github.com.avensley.tracelog.logger". The raw program counters of
// the whole stack are kept for trace styles that render more than the
// innermost frame.
type CallSite struct {
	File     string
	Line     int
	Function string
	Scope    string

	pcs []uintptr
}

// Frame is one entry of an expanded call stack.
type Frame struct {
	File     string
	Line     int
	Function string
}

// Capture records the call site skip frames above the caller of Capture;
// skip 0 reports the caller itself. Frames belonging to the runtime are
// stepped over, so a capture from inside a deferred function during a
// panic lands on the panicking function rather than on runtime.gopanic.
func Capture(skip int) *CallSite {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return &CallSite{File: "unknown", Function: "unknown"}
	}
	stack := make([]uintptr, n)
	copy(stack, pcs[:n])

	frames := runtime.CallersFrames(stack)
	f, more := frames.Next()
	for strings.HasPrefix(f.Function, "runtime.") && more {
		f, more = frames.Next()
	}
	return &CallSite{
		File:     f.File,
		Line:     f.Line,
		Function: bareFunc(f.Function),
		Scope:    ScopeOf(f.Function),
		pcs:      stack,
	}
}

// SiteFromPC builds a call site from a single program counter, as carried
// by log/slog records. A zero pc yields an unknown site.
func SiteFromPC(pc uintptr) *CallSite {
	if pc == 0 {
		return &CallSite{File: "unknown", Function: "unknown"}
	}
	f, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return &CallSite{
		File:     f.File,
		Line:     f.Line,
		Function: bareFunc(f.Function),
		Scope:    ScopeOf(f.Function),
		pcs:      []uintptr{pc},
	}
}

// Stack expands the captured program counters into frames, outermost
// first. Goroutine bootstrap frames are dropped. A site captured without
// counters yields itself as the only frame.
func (c *CallSite) Stack() []Frame {
	if len(c.pcs) == 0 {
		return []Frame{{File: c.File, Line: c.Line, Function: c.Function}}
	}
	frames := runtime.CallersFrames(c.pcs)
	var out []Frame
	for {
		f, more := frames.Next()
		if f.Function != "runtime.main" && f.Function != "runtime.goexit" && f.Function != "" {
			out = append(out, Frame{File: f.File, Line: f.Line, Function: bareFunc(f.Function)})
		}
		if !more {
			break
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ScopeOf derives the dotted package path from a fully qualified function
// name as reported by the runtime. "github.com/acme/svc/db.(*Store).Save"
// becomes "github.com.acme.svc.db"; "main.main" becomes "main".
func ScopeOf(funcName string) string {
	pkg := funcName
	if i := strings.LastIndexByte(pkg, '/'); i >= 0 {
		if j := strings.IndexByte(pkg[i+1:], '.'); j >= 0 {
			pkg = pkg[:i+1+j]
		}
	} else if j := strings.IndexByte(pkg, '.'); j >= 0 {
		pkg = pkg[:j]
	}
	return strings.ReplaceAll(pkg, "/", ".")
}

// bareFunc strips the package qualifier from a runtime function name,
// keeping method receivers: "github.com/acme/svc/db.(*Store).Save"
// becomes "(*Store).Save".
func bareFunc(funcName string) string {
	name := funcName
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
