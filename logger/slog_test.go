package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/pkg/errors"

	"github.com/avensley/tracelog/core"
)

func TestSlogHandler_Enabled(t *testing.T) {
	l := New("svc")
	sh, err := NewSlogHandler(l, core.LevelWarning)
	if err != nil {
		t.Fatalf("NewSlogHandler() error = %v", err)
	}

	ctx := context.Background()
	if sh.Enabled(ctx, slog.LevelDebug) {
		t.Error("Debug enabled below a WARNING floor")
	}
	if sh.Enabled(ctx, slog.LevelInfo) {
		t.Error("Info enabled below a WARNING floor")
	}
	if !sh.Enabled(ctx, slog.LevelWarn) {
		t.Error("Warn disabled at its own floor")
	}
	if !sh.Enabled(ctx, slog.LevelError) {
		t.Error("Error disabled above a WARNING floor")
	}

	// The mapping consults the live level table.
	if err := l.RemoveLevel(core.LevelWarning); err != nil {
		t.Fatalf("RemoveLevel() error = %v", err)
	}
	if sh.Enabled(ctx, slog.LevelWarn) {
		t.Error("Warn enabled after its level was removed")
	}
}

func TestSlogHandler_UnknownMinLevel(t *testing.T) {
	_, err := NewSlogHandler(New("svc"), "NOPE")
	if !errors.Is(err, ErrLevelDoesNotExist) {
		t.Fatalf("NewSlogHandler() error = %v, want ErrLevelDoesNotExist", err)
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	l := New("svc", WithClock(testClock()))
	if _, err := l.Add(&buf, Format("%{time}% %{lvl}% %{msg}% key=%{key}% count=%{count}%")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	sh, err := NewSlogHandler(l, core.LevelDebug)
	if err != nil {
		t.Fatalf("NewSlogHandler() error = %v", err)
	}

	slog.New(sh).Info("test message", "key", "value", "count", 42)

	// The record carries the logger's clock, not the slog record time.
	want := "2024-03-14 09:26:53.589 +0000 INFO test message key=value count=42\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	l := New("svc")
	if _, err := l.Add(&buf, Format("%{request_id}% %{auth.user_id}%")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	sh, err := NewSlogHandler(l, core.LevelDebug)
	if err != nil {
		t.Fatalf("NewSlogHandler() error = %v", err)
	}

	// Attributes attached before the group stay unqualified.
	slog.New(sh).With("request_id", "req-123").WithGroup("auth").Info("m", "user_id", 123)

	if got, want := buf.String(), "req-123 123\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSlogHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New("svc")
	if _, err := l.Add(&buf, Format("%{msg}%")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	sh, err := NewSlogHandler(l, core.LevelInfo)
	if err != nil {
		t.Fatalf("NewSlogHandler() error = %v", err)
	}
	log := slog.New(sh)

	log.Debug("quiet")
	if buf.Len() > 0 {
		t.Fatalf("below-floor slog record written: %q", buf.String())
	}
	log.Info("loud")
	if got, want := buf.String(), "loud\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSlogHandler_DisabledScope(t *testing.T) {
	var buf bytes.Buffer
	l := New("svc")
	if _, err := l.Add(&buf, Format("%{msg}%")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	sh, err := NewSlogHandler(l, core.LevelDebug)
	if err != nil {
		t.Fatalf("NewSlogHandler() error = %v", err)
	}

	// The scope comes from the slog record's program counter, so muting
	// this package silences slog callers here too.
	l.Disable("github.com.avensley.tracelog.logger")
	slog.New(sh).Info("muted")
	if buf.Len() != 0 {
		t.Errorf("muted scope wrote %q through slog", buf.String())
	}
}

func TestSlogHandler_NoSinks(t *testing.T) {
	sh, err := NewSlogHandler(New("svc"), core.LevelDebug)
	if err != nil {
		t.Fatalf("NewSlogHandler() error = %v", err)
	}
	rec := slog.NewRecord(testClock().Now(), slog.LevelInfo, "dropped", 0)
	if err := sh.Handle(context.Background(), rec); err != nil {
		t.Errorf("Handle() with no sinks error = %v, want nil", err)
	}
}

func TestSlogLevelName(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug - 4, core.LevelDebug},
		{slog.LevelDebug, core.LevelDebug},
		{slog.LevelInfo, core.LevelInfo},
		{slog.LevelInfo + 2, core.LevelInfo},
		{slog.LevelWarn, core.LevelWarning},
		{slog.LevelError, core.LevelError},
		{slog.LevelError + 8, core.LevelError},
	}
	for _, tt := range tests {
		if got := slogLevelName(tt.level); got != tt.want {
			t.Errorf("slogLevelName(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestFlattenAttr(t *testing.T) {
	extra := make(map[string]any)

	flattenAttr(extra, "", slog.String("plain", "x"))
	flattenAttr(extra, "req", slog.Int("status", 200))
	flattenAttr(extra, "app", slog.Group("db",
		slog.String("host", "localhost"),
		slog.Int("port", 5432),
	))
	// A group with an empty key inlines its members.
	flattenAttr(extra, "", slog.Attr{Value: slog.GroupValue(slog.String("inline", "here"))})
	// The zero attr is skipped.
	flattenAttr(extra, "", slog.Attr{})

	want := map[string]any{
		"plain":       "x",
		"req.status":  int64(200),
		"app.db.host": "localhost",
		"app.db.port": int64(5432),
		"inline":      "here",
	}
	if len(extra) != len(want) {
		t.Fatalf("flattened %d attrs, want %d: %v", len(extra), len(want), extra)
	}
	for k, v := range want {
		if got, ok := extra[k]; !ok || got != v {
			t.Errorf("extra[%q] = %v (%T), want %v (%T)", k, got, got, v, v)
		}
	}
}
