package logger_test

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/avensley/tracelog/logger"
)

// Use the package-level default logger for quick, no-setup logging.
func Example() {
	_ = logger.Info("Application started")
	_ = logger.Warning("cache still cold")
	_ = logger.LogWith("INFO", "user login", map[string]any{"username": "alice"})
}

// Route records through any function; the template controls the line
// shape.
func ExampleLogger_AddFunc() {
	log := logger.New("orders")
	_, _ = log.AddFunc(func(line string) error {
		fmt.Print(line)
		return nil
	}, logger.Format("[%{lvl}%] %{name}%: %{msg}%"))

	_ = log.Info("service started")
	_ = log.Warning("queue depth rising")

	// Output:
	// [INFO] orders: service started
	// [WARNING] orders: queue depth rising
}

// Register levels beyond the built-in table and log at them by name.
func ExampleLogger_AddLevel() {
	log := logger.New("billing")
	_, _ = log.AddFunc(func(line string) error {
		fmt.Print(line)
		return nil
	}, logger.Format("[%{lvl}%] %{msg}%"))

	log.AddLevel("AUDIT", 35)
	_ = log.Log("AUDIT", "invoice 1042 amended")

	// Output:
	// [AUDIT] invoice 1042 amended
}

// Pin the clock for reproducible timestamps.
func ExampleWithClock() {
	mock := clock.NewMock()
	mock.Set(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))

	log := logger.New("jobs", logger.WithClock(mock))
	_, _ = log.AddFunc(func(line string) error {
		fmt.Print(line)
		return nil
	}, logger.Format("%{time:YYYY-MM-DD hh:mm}% %{msg}%"))

	_ = log.Info("nightly sweep done")

	// Output:
	// 2024-07-01 12:00 nightly sweep done
}

// A deferred Catch turns panics into records instead of crashes.
func ExampleLogger_Catch() {
	log := logger.New("worker")
	_, _ = log.AddFunc(func(line string) error {
		fmt.Print(line)
		return nil
	}, logger.FormatFunc(func(r *logger.Record) string {
		return fmt.Sprintf("%s in %s: %v\n", r.Level.Name, r.Extra["fname"], r.Err)
	}))

	func() {
		defer log.Catch()
		reconcile()
	}()

	// Output:
	// ERROR in reconcile: panic: checksum mismatch
}

func reconcile() {
	panic("checksum mismatch")
}
