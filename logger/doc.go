// Package logger is the registration and dispatch surface of tracelog.
//
// A Logger owns a name, a table of named levels, a registry of sinks and
// a set of disabled scopes. Logging resolves the level name, builds one
// immutable record carrying the call site, timestamp, process and
// goroutine identity, and hands the record to every registered sink in
// registration order. Each sink applies its own severity floor, filter,
// formatter and colour decision, so one logger fans a single record out
// to destinations with entirely different shapes.
//
//	log := logger.New("api")
//	log.AddFile("/var/log/api.log", logger.MinLevel("INFO"))
//	log.Add(os.Stderr, logger.MinLevel("WARNING"))
//	defer log.Close()
//
//	log.Info("listening on :8080")
//
// All mutation goes through one mutex per logger, and the mutable state
// lives behind an atomic snapshot that mutation copies and republishes.
// Dispatch only loads the snapshot, so logging never contends with
// registration and a mid-flight record sees a consistent view.
//
// Every log method returns an error. Unknown level names, unknown
// placeholder keys and destination write failures all surface on the
// call that triggered them; nothing is silently swallowed. When no
// sink is registered, log calls return nil immediately without touching
// the runtime for caller information.
//
// Records from entire package subtrees can be muted with Disable, which
// matches dotted-path prefixes of the caller's scope. The deferred
// catchers Catch and CatchErr log panics and returned errors with the
// call site of the function that failed. For interoperating with
// log/slog-based code, NewSlogHandler adapts a Logger into an
// slog.Handler.
//
// A process-wide default logger writing to stderr backs the package-level
// convenience functions; SetDefault replaces it.
package logger
