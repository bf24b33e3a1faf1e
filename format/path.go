package format

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	cwdOnce sync.Once
	cwd     string

	// relCache memoizes rendered paths; log sites repeat heavily.
	relCache sync.Map // string -> string
)

// relPath renders file relative to the working directory when it lies
// inside it, absolute otherwise.
func relPath(file string) string {
	if v, ok := relCache.Load(file); ok {
		return v.(string)
	}
	cwdOnce.Do(func() {
		if wd, err := os.Getwd(); err == nil {
			cwd = wd
		}
	})
	out := file
	if cwd != "" && filepath.IsAbs(file) {
		if rel, err := filepath.Rel(cwd, file); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			out = rel
		}
	}
	relCache.Store(file, out)
	return out
}
