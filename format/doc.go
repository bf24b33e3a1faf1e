// Package format renders records into text.
//
// The entry point is the format template: a string mixing literal text
// with %{...}% placeholders, e.g.
//
//	[%{lvl}%][%{time:YYYY-MM-DD hh:mm:ss}%] %{name}%: %{msg}%
//
// Interpret expands the placeholders; Render additionally terminates
// the line and appends any attached error's full representation on its
// own line.
// Placeholder keys that name no record field fall through to the
// record's extra fields, and a key found nowhere fails with
// ErrInvalidFormatSpecifier.
//
// Placeholders are scanned in a single non-greedy left-to-right pass:
// each %{ pairs with the first }% after it, the first match wins, and
// placeholders do not nest. The one exception is the %{msg}% family,
// which interprets the record's message as a template exactly one level
// deep; a message consisting of %{msg}% renders as itself.
//
// Two placeholders take an argument after a colon. %{time:<spec>}%
// formats the record's timestamp with the datetime token table (see
// Time), and %{trace:<style>}% renders the record's call site in one of
// the five trace styles (see Trace).
//
// Rendering borrows scratch buffers from a shared pool so steady-state
// formatting stays allocation-light.
package format
