package benchmark

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/avensley/tracelog/core"
	"github.com/avensley/tracelog/format"
	"github.com/avensley/tracelog/logger"
)

var (
	sinkString string
	sinkSite   *core.CallSite
)

// Benchmark logger construction
func BenchmarkLoggerCreation(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = logger.New("bench")
	}
}

// Benchmark sink registration and removal
func BenchmarkSinkRegistration(b *testing.B) {
	l := logger.New("bench")

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		id, err := l.AddFunc(discardSink)
		if err != nil {
			b.Fatal(err)
		}
		if err := l.Remove(id); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark the default template end to end
func BenchmarkInfoDefaultTemplate(b *testing.B) {
	l := discardLogger()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = l.Info("benchmark message")
	}
}

// Benchmark a message-only template
func BenchmarkInfoMessageOnly(b *testing.B) {
	l := discardLogger(logger.Format("%{msg}%"))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = l.Info("benchmark message")
	}
}

// Benchmark extra-field expansion through the template
func BenchmarkExtraFields(b *testing.B) {
	b.Run("one", func(b *testing.B) {
		l := discardLogger(logger.Format("%{msg}% user=%{user}%"))
		extra := map[string]any{"user": "alice"}

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.LogWith(core.LevelInfo, "request handled", extra)
		}
	})

	b.Run("five", func(b *testing.B) {
		l := discardLogger(logger.Format(
			"%{msg}% user=%{user}% region=%{region}% status=%{status}% latency=%{latency}% attempt=%{attempt}%"))
		extra := map[string]any{
			"user":    "alice",
			"region":  "eu-west-1",
			"status":  200,
			"latency": 150 * time.Millisecond,
			"attempt": 3,
		}

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.LogWith(core.LevelInfo, "request handled", extra)
		}
	})
}

// Benchmark the five trace styles
func BenchmarkTraceStyles(b *testing.B) {
	styles := []string{
		format.StyleBare,
		format.StyleSimple,
		format.StyleClean,
		format.StyleDetailed,
		format.StyleFull,
	}
	for _, style := range styles {
		b.Run(style, func(b *testing.B) {
			l := discardLogger(logger.Format("%{trace:" + style + "}%"))

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = l.Info("benchmark message")
			}
		})
	}
}

// Benchmark datetime rendering, through the template and direct
func BenchmarkDatetime(b *testing.B) {
	b.Run("default-spec", func(b *testing.B) {
		l := discardLogger(logger.Format("%{time}%"))

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.Info("benchmark message")
		}
	})

	b.Run("custom-spec", func(b *testing.B) {
		l := discardLogger(logger.Format("%{time:ddd DD MMMM YYYY HH:mm:ss.SSSSSS z}%"))

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.Info("benchmark message")
		}
	})

	// Repeated calls with an identical instant and spec hit the
	// formatter's cache.
	b.Run("direct-cached", func(b *testing.B) {
		now := time.Now()

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			sinkString = format.Time(now, format.DefaultTimeSpec)
		}
	})
}

// Benchmark fan-out across sink counts
func BenchmarkMultiSink(b *testing.B) {
	for _, n := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("%d", n), func(b *testing.B) {
			l := logger.New("bench")
			for j := 0; j < n; j++ {
				if _, err := l.AddFunc(discardSink, logger.Format("%{lvl}% %{msg}%")); err != nil {
					b.Fatal(err)
				}
			}

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = l.Info("benchmark message")
			}
		})
	}
}

// Benchmark attached-error rendering, including the %+v stack
func BenchmarkAttachedError(b *testing.B) {
	l := discardLogger(logger.Format("%{lvl}% %{msg}%"))
	cause := errors.New("benchmark failure")

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = l.LogError(cause)
	}
}

// Benchmark a deferred Catch around a panicking function
func BenchmarkCatch(b *testing.B) {
	l := discardLogger(logger.Format("%{lvl}% %{msg}%"))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		func() {
			defer l.Catch()
			panic("benchmark panic")
		}()
	}
}

// Benchmark one level of placeholder recursion inside the message
func BenchmarkMessageRecursion(b *testing.B) {
	l := discardLogger(logger.Format("%{msg}%"))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = l.Info("level %{lvl}% at %{time:HH:mm}%")
	}
}

// Benchmark a function formatter bypassing the template pipeline
func BenchmarkFunctionFormatter(b *testing.B) {
	l := logger.New("bench")
	_, err := l.AddFunc(discardSink, logger.FormatFunc(func(r *logger.Record) string {
		return r.Level.Name + " " + r.Message
	}))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = l.Info("benchmark message")
	}
}

// Benchmark predicate filtering, accepting and rejecting
func BenchmarkFilter(b *testing.B) {
	b.Run("accept", func(b *testing.B) {
		l := discardLogger(
			logger.Format("%{msg}%"),
			logger.Filter(func(r *logger.Record) bool { return true }),
		)

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.Info("benchmark message")
		}
	})

	b.Run("reject", func(b *testing.B) {
		l := discardLogger(
			logger.Format("%{msg}%"),
			logger.Filter(func(r *logger.Record) bool { return false }),
		)

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.Info("benchmark message")
		}
	})
}

// Benchmark a record dropped by the severity floor
func BenchmarkBelowFloor(b *testing.B) {
	l := discardLogger(logger.MinLevel(core.LevelError))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = l.Debug("filtered message")
	}
}

// Benchmark file sinks, raw and buffered
func BenchmarkFileSink(b *testing.B) {
	b.Run("unbuffered", func(b *testing.B) {
		l := logger.New("bench")
		path := filepath.Join(b.TempDir(), "bench.log")
		if _, err := l.AddFile(path, logger.Format("%{lvl}% %{msg}%")); err != nil {
			b.Fatal(err)
		}

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.Info("file benchmark message")
		}
		b.StopTimer()
		_ = l.Close()
	})

	b.Run("buffered", func(b *testing.B) {
		l := logger.New("bench")
		path := filepath.Join(b.TempDir(), "bench.log")
		if _, err := l.AddFile(path, logger.Format("%{lvl}% %{msg}%"), logger.Buffered()); err != nil {
			b.Fatal(err)
		}

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.Info("file benchmark message")
		}
		b.StopTimer()
		_ = l.Close()
	})
}

// Benchmark concurrent logging through one shared logger
func BenchmarkConcurrent(b *testing.B) {
	l := discardLogger()

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = l.Info("benchmark message")
		}
	})
}

// Benchmark message coercion across carrier types
func BenchmarkStringify(b *testing.B) {
	inputs := []any{
		"plain string",
		42,
		3.14,
		errors.New("an error"),
		1500 * time.Millisecond,
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sinkString = core.Stringify(inputs[i%len(inputs)])
	}
}

// Benchmark call-site capture, the cost every sinked record pays
func BenchmarkCapture(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sinkSite = core.Capture(0)
	}
}

// Benchmark goroutine identity lookup with a label registered
func BenchmarkGoroutineIdentity(b *testing.B) {
	core.LabelGoroutine("bench-worker")
	defer core.UnlabelGoroutine()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g := core.CurrentGoroutine()
		_ = g.ID
	}
}

// Benchmark the template interpreter alone
func BenchmarkInterpret(b *testing.B) {
	rec := &core.Record{
		LoggerName: "bench",
		Level:      core.Level{Name: core.LevelInfo, Severity: core.SeverityInfo},
		Time:       time.Now(),
		Site:       core.Capture(0),
		Process:    core.CurrentProcess(),
		Goroutine:  core.CurrentGoroutine(),
		Message:    "benchmark message",
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s, err := format.Interpret(format.DefaultTemplate, rec)
		if err != nil {
			b.Fatal(err)
		}
		sinkString = s
	}
}
