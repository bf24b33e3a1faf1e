package logger

import (
	"io"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/avensley/tracelog/colour"
	"github.com/avensley/tracelog/core"
	"github.com/avensley/tracelog/sink"
)

// Option configures a Logger at construction.
type Option func(*Logger, *state)

// WithClock substitutes the logger's time source. Tests pass
// clock.NewMock() to pin record timestamps.
func WithClock(c clock.Clock) Option {
	return func(l *Logger, _ *state) {
		l.clock = c
	}
}

// WithLevels registers additional levels at construction, on top of the
// default table.
func WithLevels(levels ...core.Level) Option {
	return func(_ *Logger, st *state) {
		for _, lvl := range levels {
			st.levels[lvl.Name] = lvl
		}
	}
}

// sinkSettings accumulates SinkOptions before the sink is built.
type sinkSettings struct {
	template  string
	formatter sink.FormatFunc
	filter    sink.FilterFunc
	colourise *bool
	minSev    int
	minLevel  string
	buffered  bool
	onClose   []func() error
}

// SinkOption configures one sink at registration.
type SinkOption func(*sinkSettings)

// Format sets the sink's format template.
func Format(template string) SinkOption {
	return func(s *sinkSettings) {
		s.template = template
	}
}

// FormatFunc replaces the sink's template pipeline with fn. The result
// of fn is written exactly as returned: no terminator, no attached
// error, no colour.
func FormatFunc(fn sink.FormatFunc) SinkOption {
	return func(s *sinkSettings) {
		s.formatter = fn
	}
}

// Filter makes the sink consult fn after the severity floor; records it
// rejects are skipped silently.
func Filter(fn sink.FilterFunc) SinkOption {
	return func(s *sinkSettings) {
		s.filter = fn
	}
}

// MinLevel sets the sink's severity floor to the named level's severity,
// resolved against the logger's table at registration time.
func MinLevel(name string) SinkOption {
	return func(s *sinkSettings) {
		s.minLevel = name
	}
}

// MinSeverity sets the sink's severity floor directly. The floor is
// inclusive: records at exactly this severity pass.
func MinSeverity(severity int) SinkOption {
	return func(s *sinkSettings) {
		s.minSev = severity
	}
}

// Colourise forces colour on or off for the sink, overriding the
// terminal detection applied to writer sinks.
func Colourise(on bool) SinkOption {
	return func(s *sinkSettings) {
		s.colourise = &on
	}
}

// Buffered makes a file sink write through a buffer that flushes on
// close. Ignored by writer and function sinks.
func Buffered() SinkOption {
	return func(s *sinkSettings) {
		s.buffered = true
	}
}

// OnClose registers an extra close capability for the sink, run when the
// sink is removed or the logger is closed.
func OnClose(fn func() error) SinkOption {
	return func(s *sinkSettings) {
		s.onClose = append(s.onClose, fn)
	}
}

// applySinkOptions folds opts and resolves a MinLevel name against the
// current level table.
func (l *Logger) applySinkOptions(opts []SinkOption) (*sinkSettings, error) {
	set := &sinkSettings{}
	for _, opt := range opts {
		opt(set)
	}
	if set.minLevel != "" {
		lvl, ok := l.state.Load().levels[set.minLevel]
		if !ok {
			return nil, errors.Wrapf(core.ErrLevelDoesNotExist, "level %q", set.minLevel)
		}
		set.minSev = lvl.Severity
	}
	return set, nil
}

// defaultColourFromWriter turns colour on for terminal destinations when
// no explicit Colourise option was given.
func (set *sinkSettings) defaultColourFromWriter(w io.Writer) {
	if set.colourise == nil {
		on := colour.Terminal(w)
		set.colourise = &on
	}
}

func (set *sinkSettings) config() sink.Config {
	colourise := false
	if set.colourise != nil {
		colourise = *set.colourise
	}
	return sink.Config{
		Template:    set.template,
		Formatter:   set.formatter,
		Filter:      set.filter,
		Colourise:   colourise,
		MinSeverity: set.minSev,
	}
}
