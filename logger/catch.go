package logger

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/avensley/tracelog/core"
)

// PanicError wraps a recovered panic value that was not an error.
type PanicError struct {
	Value any
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// catcher holds the resolved options of one Catch or CatchErr call.
type catcher struct {
	level   string
	message any
	onError func(error)
	reraise bool
	only    []func(error) bool
	exclude []func(error) bool
}

// CatchOption configures Catch and CatchErr.
type CatchOption func(*catcher)

// CatchLevel logs caught failures at the named level instead of ERROR.
func CatchLevel(name string) CatchOption {
	return func(c *catcher) {
		c.level = name
	}
}

// CatchMessage logs caught failures with this message instead of
// DefaultErrorMessage.
func CatchMessage(message any) CatchOption {
	return func(c *catcher) {
		c.message = message
	}
}

// CatchOnError invokes fn with the caught failure after logging it.
func CatchOnError(fn func(error)) CatchOption {
	return func(c *catcher) {
		c.onError = fn
	}
}

// Reraise makes Catch re-panic after logging, and CatchErr keep the
// caught error instead of clearing it.
func Reraise() CatchOption {
	return func(c *catcher) {
		c.reraise = true
	}
}

// CatchOnly restricts catching to failures fn matches. Multiple
// CatchOnly options accept a failure when any of them match.
func CatchOnly(fn func(error) bool) CatchOption {
	return func(c *catcher) {
		c.only = append(c.only, fn)
	}
}

// CatchExclude exempts failures fn matches; they propagate untouched and
// unlogged. Exclusions override CatchOnly.
func CatchExclude(fn func(error) bool) CatchOption {
	return func(c *catcher) {
		c.exclude = append(c.exclude, fn)
	}
}

// CatchTarget restricts catching to failures matching target under
// errors.Is.
func CatchTarget(target error) CatchOption {
	return CatchOnly(func(err error) bool {
		return errors.Is(err, target)
	})
}

func newCatcher(opts []CatchOption) *catcher {
	c := &catcher{level: core.LevelError}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *catcher) accepts(err error) bool {
	for _, fn := range c.exclude {
		if fn(err) {
			return false
		}
	}
	if len(c.only) == 0 {
		return true
	}
	for _, fn := range c.only {
		if fn(err) {
			return true
		}
	}
	return false
}

// emit logs the caught failure against the given call site. Render and
// write failures cannot surface mid-unwind and are dropped; the original
// failure always takes precedence.
func (c *catcher) emit(l *Logger, site *core.CallSite, err error) {
	st := l.state.Load()
	if len(st.sinks) > 0 && !st.disabledFor(site.Scope) {
		if lvl, ok := st.levels[c.level]; ok {
			message := c.message
			if message == nil {
				message = DefaultErrorMessage
			}
			extra := map[string]any{"fname": site.Function, "ftype": "function"}
			_ = l.dispatch(st, site, lvl, message, extra, err)
		}
	}
	if c.onError != nil {
		c.onError(err)
	}
}

// Catch recovers a panic in the surrounding function, logs it with the
// site of the function that panicked, and suppresses it unless Reraise
// is set. It must be deferred directly:
//
//	defer log.Catch()
//
// Panic values that are not errors are wrapped in *PanicError before
// matching and logging. Failures rejected by CatchOnly or CatchExclude
// re-panic untouched.
func (l *Logger) Catch(opts ...CatchOption) {
	v := recover()
	if v == nil {
		return
	}
	err, ok := v.(error)
	if !ok {
		err = &PanicError{Value: v}
	}
	c := newCatcher(opts)
	if !c.accepts(err) {
		panic(v)
	}
	c.emit(l, core.Capture(1), err)
	if c.reraise {
		panic(v)
	}
}

// CatchErr logs the error the surrounding function is about to return
// and, unless Reraise is set, clears it. It must be deferred with a
// pointer to a named return value:
//
//	func run() (err error) {
//		defer log.CatchErr(&err)
//		...
//	}
//
// A nil *errp on return is a no-op. Failures rejected by CatchOnly or
// CatchExclude stay in *errp untouched and unlogged.
func (l *Logger) CatchErr(errp *error, opts ...CatchOption) {
	if errp == nil || *errp == nil {
		return
	}
	err := *errp
	c := newCatcher(opts)
	if !c.accepts(err) {
		return
	}
	c.emit(l, core.Capture(1), err)
	if !c.reraise {
		*errp = nil
	}
}
