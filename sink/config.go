package sink

import "github.com/avensley/tracelog/core"

// FormatFunc renders a record into the exact text a sink writes. The
// result is written as returned: no terminator is appended, no attached
// error is rendered and no colour is applied.
type FormatFunc func(*core.Record) string

// FilterFunc decides whether a sink accepts a record. It runs after the
// severity floor and must not mutate the record.
type FilterFunc func(*core.Record) bool

// Config fixes a sink's behaviour at registration time.
type Config struct {
	// Template is the format template rendered when Formatter is nil. An
	// empty template falls back to format.DefaultTemplate.
	Template string

	// Formatter, when set, replaces the template pipeline entirely.
	Formatter FormatFunc

	// Filter, when set, must return true for a record to be written.
	Filter FilterFunc

	// Colourise wraps template output in the record's level colours.
	Colourise bool

	// MinSeverity is the inclusive severity floor; records below it are
	// skipped without rendering.
	MinSeverity int
}
