package sink

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/avensley/tracelog/colour"
	"github.com/avensley/tracelog/core"
	"github.com/avensley/tracelog/format"
)

// fileBufferSize is the bufio.Writer size for buffered file sinks.
const fileBufferSize = 64 * 1024

// Sink is one registered destination: a write capability plus the Config
// fixed at registration. Sinks are safe for concurrent Log calls to the
// extent their destination is; the sink itself adds no locking.
type Sink struct {
	write  func(string) error
	closes []func() error
	cfg    Config
	once   sync.Once
}

// New wraps a caller-owned writer. The sink takes no close capability;
// ownership of w stays with the caller.
func New(w io.Writer, cfg Config) *Sink {
	normalize(&cfg)
	return &Sink{
		write: func(text string) error {
			_, err := io.WriteString(w, text)
			return err
		},
		cfg: cfg,
	}
}

// NewFunc wraps a raw write function. No close capability is taken.
func NewFunc(fn func(string) error, cfg Config) *Sink {
	normalize(&cfg)
	return &Sink{write: fn, cfg: cfg}
}

// NewFile opens path for appending, creating the file and any missing
// parent directories. The sink owns the file; Close closes it. With
// buffered set, writes go through a bufio.Writer that Close flushes
// before the file is closed.
func NewFile(path string, buffered bool, cfg Config) (*Sink, error) {
	normalize(&cfg)
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create log directory %q", dir)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %q", path)
	}

	s := &Sink{cfg: cfg}
	if buffered {
		bw := bufio.NewWriterSize(f, fileBufferSize)
		s.write = func(text string) error {
			_, err := bw.WriteString(text)
			return err
		}
		s.closes = append(s.closes, bw.Flush, f.Close)
	} else {
		s.write = func(text string) error {
			_, err := io.WriteString(f, text)
			return err
		}
		s.closes = append(s.closes, f.Close)
	}
	return s, nil
}

func normalize(cfg *Config) {
	if cfg.Template == "" && cfg.Formatter == nil {
		cfg.Template = format.DefaultTemplate
	}
}

// Config returns the sink's registration-time configuration.
func (s *Sink) Config() Config { return s.cfg }

// OnClose appends an extra close capability, run after the sink's own.
// Must not be called once the sink is in use.
func (s *Sink) OnClose(fn func() error) {
	s.closes = append(s.closes, fn)
}

// Log runs the per-sink pipeline on rec: severity floor, filter, render,
// colour, write. Records failing the floor or filter are skipped with a
// nil return; every other failure propagates.
func (s *Sink) Log(rec *core.Record) error {
	if rec.Level.Severity < s.cfg.MinSeverity {
		return nil
	}
	if s.cfg.Filter != nil && !s.cfg.Filter(rec) {
		return nil
	}

	var text string
	if s.cfg.Formatter != nil {
		text = s.cfg.Formatter(rec)
	} else {
		rendered, err := format.Render(s.cfg.Template, rec)
		if err != nil {
			return err
		}
		if s.cfg.Colourise && len(rec.Level.Colours) > 0 {
			rendered = colour.Wrap(rendered, rec.Level.Colours...)
		}
		text = rendered
	}
	return s.write(text)
}

// Close runs the sink's close capabilities exactly once, aggregating
// their failures. Later calls return nil.
func (s *Sink) Close() error {
	var err error
	s.once.Do(func() {
		for _, fn := range s.closes {
			err = multierr.Append(err, fn())
		}
	})
	return err
}
