package logger

import (
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/avensley/tracelog/core"
	"github.com/avensley/tracelog/sink"
)

// Level and Record alias the core types so most callers only import this
// package.
type (
	Level  = core.Level
	Record = core.Record
)

// ErrSinkDoesNotExist is returned by Remove for ids with no registered
// sink.
var ErrSinkDoesNotExist = errors.New("sink does not exist")

// ErrLevelDoesNotExist mirrors core.ErrLevelDoesNotExist for callers
// that only import this package.
var ErrLevelDoesNotExist = core.ErrLevelDoesNotExist

// DefaultErrorMessage is the message used by error logging when the
// caller supplies none.
const DefaultErrorMessage = "Received error in process '%{pname}%' (%{pid}%), on goroutine '%{tname}%' (%{tid}%)"

type registeredSink struct {
	id int
	s  *sink.Sink
}

// state is one immutable snapshot of a logger's mutable configuration.
// Mutations copy, modify and republish; dispatch only loads.
type state struct {
	levels   map[string]core.Level
	sinks    []registeredSink // ascending id, the dispatch order
	disabled map[string]struct{}
}

// Logger dispatches records to registered sinks. The zero value is not
// usable; construct with New.
type Logger struct {
	name  string
	clock clock.Clock

	mu     sync.Mutex // serializes mutations; dispatch never takes it
	nextID int
	state  atomic.Pointer[state]
}

// New constructs a logger carrying the default level table, no sinks and
// an empty disabled-scope set.
func New(name string, opts ...Option) *Logger {
	l := &Logger{name: name, clock: clock.New(), nextID: 1}
	st := &state{
		levels:   core.DefaultLevels(),
		disabled: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l, st)
	}
	l.state.Store(st)
	return l
}

// Name returns the logger's name.
func (l *Logger) Name() string { return l.name }

// mutate republishes a modified copy of the current state. Callers hold
// l.mu.
func (l *Logger) mutate(fn func(*state)) {
	cur := l.state.Load()
	next := &state{
		levels:   make(map[string]core.Level, len(cur.levels)),
		sinks:    make([]registeredSink, len(cur.sinks)),
		disabled: make(map[string]struct{}, len(cur.disabled)),
	}
	for k, v := range cur.levels {
		next.levels[k] = v
	}
	copy(next.sinks, cur.sinks)
	for k := range cur.disabled {
		next.disabled[k] = struct{}{}
	}
	fn(next)
	l.state.Store(next)
}

// Add registers w as a sink and returns its id. The caller keeps
// ownership of w; removing the sink does not close it. Colour defaults
// to on when w is a terminal.
func (l *Logger) Add(w io.Writer, opts ...SinkOption) (int, error) {
	set, err := l.applySinkOptions(opts)
	if err != nil {
		return 0, err
	}
	set.defaultColourFromWriter(w)
	return l.register(sink.New(w, set.config()), set.onClose), nil
}

// AddFunc registers fn as a sink and returns its id. Each accepted
// record arrives as one rendered string.
func (l *Logger) AddFunc(fn func(string) error, opts ...SinkOption) (int, error) {
	set, err := l.applySinkOptions(opts)
	if err != nil {
		return 0, err
	}
	return l.register(sink.NewFunc(fn, set.config()), set.onClose), nil
}

// AddFile opens path for appending, creating missing parent directories,
// registers it as a sink and returns the sink's id. The logger owns the
// file; removing the sink or closing the logger closes it. See Buffered
// for write buffering.
func (l *Logger) AddFile(path string, opts ...SinkOption) (int, error) {
	set, err := l.applySinkOptions(opts)
	if err != nil {
		return 0, err
	}
	s, err := sink.NewFile(path, set.buffered, set.config())
	if err != nil {
		return 0, err
	}
	return l.register(s, set.onClose), nil
}

func (l *Logger) register(s *sink.Sink, extraClose []func() error) int {
	for _, fn := range extraClose {
		s.OnClose(fn)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.mutate(func(st *state) {
		st.sinks = append(st.sinks, registeredSink{id: id, s: s})
	})
	return id
}

// Remove deregisters the sink with the given id and closes it, returning
// the close failure if any. Ids are never reused.
func (l *Logger) Remove(id int) error {
	var target *sink.Sink
	l.mu.Lock()
	l.mutate(func(st *state) {
		for i, rs := range st.sinks {
			if rs.id == id {
				target = rs.s
				st.sinks = append(st.sinks[:i], st.sinks[i+1:]...)
				return
			}
		}
	})
	l.mu.Unlock()
	if target == nil {
		return errors.Wrapf(ErrSinkDoesNotExist, "sink %d", id)
	}
	return target.Close()
}

// AddLevel inserts or replaces a level and returns it. Colour attributes
// apply when a colourising sink writes records of this level.
func (l *Logger) AddLevel(name string, severity int, colours ...color.Attribute) core.Level {
	lvl := core.Level{Name: name, Severity: severity, Colours: colours}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mutate(func(st *state) {
		st.levels[name] = lvl
	})
	return lvl
}

// RemoveLevel deletes the named level from the table.
func (l *Logger) RemoveLevel(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	found := false
	l.mutate(func(st *state) {
		if _, ok := st.levels[name]; ok {
			found = true
			delete(st.levels, name)
		}
	})
	if !found {
		return errors.Wrapf(core.ErrLevelDoesNotExist, "level %q", name)
	}
	return nil
}

// Disable mutes records whose scope equals any given scope or falls
// under it in dotted-path terms. With no arguments the caller's own
// scope is muted.
func (l *Logger) Disable(scopes ...string) {
	if len(scopes) == 0 {
		scopes = []string{core.Capture(1).Scope}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mutate(func(st *state) {
		for _, s := range scopes {
			st.disabled[s] = struct{}{}
		}
	})
}

// Enable lifts Disable for the given scopes, or for the caller's own
// scope with no arguments. Enabling a scope that was never disabled is a
// no-op.
func (l *Logger) Enable(scopes ...string) {
	if len(scopes) == 0 {
		scopes = []string{core.Capture(1).Scope}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mutate(func(st *state) {
		for _, s := range scopes {
			delete(st.disabled, s)
		}
	})
}

// disabledFor reports whether scope, or any dotted prefix of it, is in
// the disabled set.
func (st *state) disabledFor(scope string) bool {
	if len(st.disabled) == 0 {
		return false
	}
	for i := 0; i < len(scope); i++ {
		if scope[i] == '.' {
			if _, ok := st.disabled[scope[:i]]; ok {
				return true
			}
		}
	}
	_, ok := st.disabled[scope]
	return ok
}

// Log dispatches message at the named level. The error reports unknown
// levels, failed placeholder lookups and destination write failures.
func (l *Logger) Log(level string, message any) error {
	return l.log(2, level, message, nil, nil)
}

// LogWith is Log with extra fields, addressable from format templates as
// %{<key>}% placeholders.
func (l *Logger) LogWith(level string, message any, extra map[string]any) error {
	return l.log(2, level, message, extra, nil)
}

// LogAt dispatches message at an explicit level value, bypassing the
// level table.
func (l *Logger) LogAt(level core.Level, message any) error {
	st := l.state.Load()
	if len(st.sinks) == 0 {
		return nil
	}
	site := core.Capture(1)
	if st.disabledFor(site.Scope) {
		return nil
	}
	return l.dispatch(st, site, level, message, nil, nil)
}

// LogError logs err at ERROR with the default error message. The error's
// full representation is appended to each rendered line.
func (l *Logger) LogError(err error) error {
	return l.log(2, core.LevelError, DefaultErrorMessage, nil, err)
}

// LogErrorAs is LogError with an explicit level and message; a nil
// message falls back to DefaultErrorMessage.
func (l *Logger) LogErrorAs(level string, err error, message any) error {
	if message == nil {
		message = DefaultErrorMessage
	}
	return l.log(2, level, message, nil, err)
}

// Trace logs message at TRACE.
func (l *Logger) Trace(message any) error {
	return l.log(2, core.LevelTrace, message, nil, nil)
}

// Debug logs message at DEBUG.
func (l *Logger) Debug(message any) error {
	return l.log(2, core.LevelDebug, message, nil, nil)
}

// Info logs message at INFO.
func (l *Logger) Info(message any) error {
	return l.log(2, core.LevelInfo, message, nil, nil)
}

// Success logs message at SUCCESS.
func (l *Logger) Success(message any) error {
	return l.log(2, core.LevelSuccess, message, nil, nil)
}

// Warning logs message at WARNING.
func (l *Logger) Warning(message any) error {
	return l.log(2, core.LevelWarning, message, nil, nil)
}

// Error logs message at ERROR.
func (l *Logger) Error(message any) error {
	return l.log(2, core.LevelError, message, nil, nil)
}

// Critical logs message at CRITICAL.
func (l *Logger) Critical(message any) error {
	return l.log(2, core.LevelCritical, message, nil, nil)
}

// log is the shared entry point behind every public logging method. skip
// is the call-site capture depth: 2 when the public method sits directly
// between the user and log, 3 with one more wrapper in between.
//
// The order is fixed: empty-sink fast path, call-site capture, disabled
// check, level resolution, record construction, fan-out. A muted scope
// returns nil even for a level name that would not resolve.
func (l *Logger) log(skip int, level string, message any, extra map[string]any, attached error) error {
	st := l.state.Load()
	if len(st.sinks) == 0 {
		// Fast path: nothing can consume the record, so skip the
		// call-site capture and level resolution entirely.
		return nil
	}
	site := core.Capture(skip)
	if st.disabledFor(site.Scope) {
		return nil
	}
	lvl, ok := st.levels[level]
	if !ok {
		return errors.Wrapf(core.ErrLevelDoesNotExist, "level %q", level)
	}
	return l.dispatch(st, site, lvl, message, extra, attached)
}

// dispatch builds the record and fans it out. The disabled check has
// already passed. The first sink failure returns immediately; later
// sinks are not attempted.
func (l *Logger) dispatch(st *state, site *core.CallSite, lvl core.Level, message any, extra map[string]any, attached error) error {
	rec := &core.Record{
		LoggerName: l.name,
		Scope:      site.Scope,
		Level:      lvl,
		Time:       l.clock.Now(),
		Site:       site,
		Process:    core.CurrentProcess(),
		Goroutine:  core.CurrentGoroutine(),
		Message:    core.Stringify(message),
		Extra:      extra,
		Err:        attached,
	}
	for _, rs := range st.sinks {
		if err := rs.s.Log(rec); err != nil {
			return err
		}
	}
	return nil
}

// Close runs every registered sink's close capability exactly once,
// aggregating failures. Sinks stay registered and the logger stays
// usable; spent close capabilities never rerun.
func (l *Logger) Close() error {
	st := l.state.Load()
	var err error
	for _, rs := range st.sinks {
		err = multierr.Append(err, rs.s.Close())
	}
	return err
}

// Levels returns the registered levels sorted by severity, then name.
func (l *Logger) Levels() []core.Level {
	st := l.state.Load()
	out := make([]core.Level, 0, len(st.levels))
	for _, lvl := range st.levels {
		out = append(out, lvl)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity < out[j].Severity
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Sinks returns the ids of the registered sinks in dispatch order.
func (l *Logger) Sinks() []int {
	st := l.state.Load()
	out := make([]int, len(st.sinks))
	for i, rs := range st.sinks {
		out[i] = rs.id
	}
	return out
}
