package core

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/petermattis/goid"
)

// ProcessInfo identifies the running process.
type ProcessInfo struct {
	Name string
	ID   int
}

// GoroutineInfo identifies the goroutine that produced a record.
type GoroutineInfo struct {
	Name string
	ID   int64
}

// DefaultGoroutineName is reported for goroutines without a label.
const DefaultGoroutineName = "goroutine"

var (
	processOnce sync.Once
	process     ProcessInfo

	labelMu sync.RWMutex
	labels  = make(map[int64]string)
)

// CurrentProcess returns the name and pid of the running process. The name
// is the executable's basename, falling back to os.Args[0] when the
// executable path cannot be resolved. Both are captured once and cached;
// the call never fails.
func CurrentProcess() ProcessInfo {
	processOnce.Do(func() {
		var name string
		if exe, err := os.Executable(); err == nil {
			name = filepath.Base(exe)
		} else if len(os.Args) > 0 {
			name = filepath.Base(os.Args[0])
		}
		process = ProcessInfo{Name: name, ID: os.Getpid()}
	})
	return process
}

// CurrentGoroutine returns the identity of the calling goroutine. The id
// is the runtime's goroutine id; the name is the registered label, or
// DefaultGoroutineName when none is set.
func CurrentGoroutine() GoroutineInfo {
	id := goid.Get()
	labelMu.RLock()
	name, ok := labels[id]
	labelMu.RUnlock()
	if !ok {
		name = DefaultGoroutineName
	}
	return GoroutineInfo{Name: name, ID: id}
}

// LabelGoroutine registers name for the calling goroutine. The label
// stays until UnlabelGoroutine; goroutine ids are reused by the runtime,
// so long-lived labels on short-lived goroutines leak onto successors.
func LabelGoroutine(name string) {
	id := goid.Get()
	labelMu.Lock()
	labels[id] = name
	labelMu.Unlock()
}

// UnlabelGoroutine removes the calling goroutine's label.
func UnlabelGoroutine() {
	id := goid.Get()
	labelMu.Lock()
	delete(labels, id)
	labelMu.Unlock()
}
