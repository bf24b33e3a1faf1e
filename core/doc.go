// Package core defines the shared types used across the tracelog library.
//
// It provides the Level type for named severities, the Record type that
// represents a single log event, the CallSite type that pins a record to
// the source location that produced it, and the process and goroutine
// identity values records carry.
//
// Records are immutable by contract. A record is assembled once per
// accepted log call and then shared read-only by every sink, so nothing
// downstream may write to it, and no synchronization is needed to read
// it from concurrent sinks.
//
// CallSite captures the raw program counters of the calling stack at log
// time and expands them into frames only when a trace style actually
// needs them, which keeps the common single-frame styles cheap.
//
// The runtime does not name goroutines, so goroutine names come from a
// process-wide label registry. A goroutine that wants to appear under a
// name in log output registers one with LabelGoroutine and removes it
// with UnlabelGoroutine when done; unlabelled goroutines report the
// DefaultGoroutineName.
package core
