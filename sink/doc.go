// Package sink couples write destinations with per-destination
// configuration.
//
// A Sink owns exactly one write capability and the immutable Config fixed
// at registration: a formatter (a format template or a function), an
// optional record filter, a colourisation flag and an inclusive severity
// floor. Log runs the full per-sink pipeline in order: severity floor,
// filter, render, colour, write. Failures at any step return to the
// caller; nothing is swallowed.
//
// Three constructors adapt the supported destination kinds. New wraps a
// caller-owned io.Writer and takes no close capability. NewFunc wraps a
// raw write function. NewFile opens a path for appending, creating
// missing parent directories, and owns the resulting file; closing the
// sink closes the file, flushing first when the sink is buffered.
//
// Close runs a sink's close capabilities exactly once. Later calls are
// no-ops, so removal paths and process-exit paths can both close without
// coordinating.
package sink
