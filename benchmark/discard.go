package benchmark

import "github.com/avensley/tracelog/logger"

// discardSink swallows rendered lines so sink I/O stays out of the
// measurements.
func discardSink(line string) error {
	_ = len(line)
	return nil
}

// discardLogger returns a logger with a single swallow-everything sink.
func discardLogger(opts ...logger.SinkOption) *logger.Logger {
	l := logger.New("bench")
	if _, err := l.AddFunc(discardSink, opts...); err != nil {
		panic(err)
	}
	return l
}
