// Package debuglog implements the append-only diagnostic trace used by the
// LLM gateway and the extraction pipeline. Writes are best-effort: the file
// is opened and closed per entry and every failure is swallowed, so a broken
// log path can never affect extraction results.
package debuglog

import (
	"fmt"
	"os"
	"time"
)

// Logger appends timestamped lines to a single file
type Logger struct {
	path string
}

// New creates a logger writing to path. An empty path disables writing;
// all methods remain safe to call.
func New(path string) *Logger {
	return &Logger{path: path}
}

// Nop returns a disabled logger
func Nop() *Logger {
	return &Logger{}
}

// Printf appends one formatted entry. Errors are discarded.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(f, "%s   %s\n", time.Now().Format(time.RFC3339Nano), line)
}

// Truncate shortens s for log previews, marking elided content
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
