// Package logger provides verbose logging for the dashreport CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// and extraction traces are printed to stderr so users can see which
// fields matched while a report was parsed.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("[WARN] ", format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "[ERROR] "+format+"\n", args...)
}

// Trace prints a field-level record as component.field key=value pairs.
// A trailing key without a value is printed with an empty value.
func Trace(component, field string, kv ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}

	var b strings.Builder
	b.WriteString("[TRACE] ")
	b.WriteString(component)
	b.WriteByte('.')
	b.WriteString(field)
	for i := 0; i < len(kv); i += 2 {
		var v any = ""
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		fmt.Fprintf(&b, " %v=%q", kv[i], fmt.Sprint(v))
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(output, b.String())
}

// Tracer adapts Trace to interfaces that take a tracer value.
type Tracer struct{}

// Trace forwards to the package-level Trace.
func (Tracer) Trace(component, field string, kv ...any) {
	Trace(component, field, kv...)
}
