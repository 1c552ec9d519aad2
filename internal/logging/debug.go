package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
	forced bool
)

// DebugEnabled returns true if debug mode is enabled via TF_DEBUG environment
// variable or SetDebug.
func DebugEnabled() bool {
	mu.Lock()
	on := forced
	mu.Unlock()
	return on || os.Getenv("TF_DEBUG") != ""
}

// SetDebug turns debug output on regardless of TF_DEBUG. Used by --verbose.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	forced = enabled
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		write("debug", fmt.Sprintf(format, args...))
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		write("debug", fmt.Sprintln(args...))
	}
}

// Warnf reports a recovered failure. Always printed.
func Warnf(format string, args ...interface{}) {
	write("warn", fmt.Sprintf(format, args...))
}

// Errorf reports a failure the caller could not recover from. Always printed.
func Errorf(format string, args ...interface{}) {
	write("error", fmt.Sprintf(format, args...))
}

// SetOutput redirects log output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	previous := output
	output = w
	return previous
}

func write(level, message string) {
	mu.Lock()
	defer mu.Unlock()
	if len(message) == 0 || message[len(message)-1] != '\n' {
		message += "\n"
	}
	fmt.Fprintf(output, "taskflow %s: %s", level, message)
}
