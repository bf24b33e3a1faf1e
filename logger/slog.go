package logger

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/avensley/tracelog/core"
)

// SlogHandler adapts a Logger to the slog.Handler interface, so the
// logger can stand behind log/slog callers:
//
//	slog.SetDefault(slog.New(h))
//
// Attributes become extra fields on the dispatched record, with group
// names folded into dotted key prefixes. The logger stamps records with
// its own clock; the slog record time is ignored.
type SlogHandler struct {
	l      *Logger
	minSev int
	attrs  map[string]any
	group  string
}

// NewSlogHandler wraps l in a handler that drops slog records mapping
// below the named level.
func NewSlogHandler(l *Logger, minLevel string) (*SlogHandler, error) {
	lvl, ok := l.state.Load().levels[minLevel]
	if !ok {
		return nil, errors.Wrapf(ErrLevelDoesNotExist, "level %q", minLevel)
	}
	return &SlogHandler{l: l, minSev: lvl.Severity}, nil
}

// Enabled reports whether records at the given slog level reach the
// logger. Levels whose mapped name has been removed are disabled.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	lvl, ok := h.l.state.Load().levels[slogLevelName(level)]
	return ok && lvl.Severity >= h.minSev
}

// Handle dispatches a slog record through the wrapped logger's sinks.
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	st := h.l.state.Load()
	if len(st.sinks) == 0 {
		return nil
	}
	site := core.SiteFromPC(record.PC)
	if st.disabledFor(site.Scope) {
		return nil
	}
	name := slogLevelName(record.Level)
	lvl, ok := st.levels[name]
	if !ok {
		return errors.Wrapf(ErrLevelDoesNotExist, "level %q", name)
	}
	var extra map[string]any
	if len(h.attrs) > 0 || record.NumAttrs() > 0 {
		extra = make(map[string]any, len(h.attrs)+record.NumAttrs())
		for k, v := range h.attrs {
			extra[k] = v
		}
		record.Attrs(func(a slog.Attr) bool {
			flattenAttr(extra, h.group, a)
			return true
		})
	}
	return h.l.dispatch(st, site, lvl, record.Message, extra, nil)
}

// WithAttrs returns a handler that carries the given attributes on every
// record, under the current group prefix.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	merged := make(map[string]any, len(h.attrs)+len(attrs))
	for k, v := range h.attrs {
		merged[k] = v
	}
	for _, a := range attrs {
		flattenAttr(merged, h.group, a)
	}
	return &SlogHandler{l: h.l, minSev: h.minSev, attrs: merged, group: h.group}
}

// WithGroup returns a handler that qualifies subsequent attribute keys
// with name.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &SlogHandler{l: h.l, minSev: h.minSev, attrs: h.attrs, group: group}
}

// slogLevelName maps a slog level to the nearest built-in level name.
func slogLevelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return core.LevelError
	case level >= slog.LevelWarn:
		return core.LevelWarning
	case level >= slog.LevelInfo:
		return core.LevelInfo
	default:
		return core.LevelDebug
	}
}

// flattenAttr resolves a and stores it in extra under its group-prefixed
// key. Group attrs recurse with an extended prefix; a group with an
// empty key inlines its members. Empty non-group attrs are skipped per
// the slog.Handler contract.
func flattenAttr(extra map[string]any, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		prefix := group
		if a.Key != "" {
			prefix = a.Key
			if group != "" {
				prefix = group + "." + a.Key
			}
		}
		for _, ga := range a.Value.Group() {
			flattenAttr(extra, prefix, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}
	extra[key] = a.Value.Any()
}
