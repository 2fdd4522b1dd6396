package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
	logger *slog.Logger
)

// DebugEnabled returns true if debug mode is enabled via OPDASH_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("OPDASH_DEBUG") != ""
}

// SetOutput redirects log output, mainly for tests. It resets the cached logger.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	logger = nil
}

// Logger returns the process logger. Debug records are emitted only when
// OPDASH_DEBUG is set at the time the logger is first built.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		level := slog.LevelInfo
		if DebugEnabled() {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
	}
	return logger
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		Logger().Debug(fmt.Sprintf(format, args...))
	}
}

// Debugln prints a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		Logger().Debug(fmt.Sprint(args...))
	}
}
