// Package logging writes timestamped log lines to stderr in the form
// "2006-01-02 15:04:05 - LEVEL - message".
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	verbose bool
	now     = time.Now
)

// SetOutput redirects log output. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetVerbose enables DEBUG-level output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// Infof logs an informational message.
func Infof(format string, args ...any) {
	write("INFO", format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...any) {
	write("ERROR", format, args...)
}

// Debugf logs a message only when verbose output is enabled.
func Debugf(format string, args ...any) {
	mu.Lock()
	v := verbose
	mu.Unlock()
	if v {
		write("DEBUG", format, args...)
	}
}

func write(level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "%s - %s - %s\n",
		now().Format("2006-01-02 15:04:05"), level, fmt.Sprintf(format, args...))
}
