// Package monitoring holds the diagnostic logging used across the playground.
package monitoring

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/mattn/go-isatty"

	"github.com/banshee-data/tda.playground/internal/timeutil"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

var debugEnabled atomic.Bool

// clock times Timed steps.
var clock timeutil.Clock = timeutil.RealClock{}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebug toggles Debugf output on every ComponentLogger.
func SetDebug(on bool) { debugEnabled.Store(on) }

// DebugEnabled reports whether debug messages are emitted.
func DebugEnabled() bool { return debugEnabled.Load() }

// Setup points the standard logger at logPath and stderr. Parent directories
// of logPath are created as needed. The returned closer releases the log file.
func Setup(logPath string, debug bool) (io.Closer, error) {
	SetDebug(debug)
	if logPath == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}
	if dir := filepath.Dir(logPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(f, os.Stderr))
	log.SetFlags(log.LstdFlags)
	return f, nil
}

// Timed logs how long the step named name took when the returned func runs.
//
//	defer monitoring.Timed("sweep")()
func Timed(name string) func() {
	start := clock.Now()
	return func() {
		Logf("%q  %.2f ms", name, float64(clock.Since(start).Microseconds())/1000)
	}
}

// colorize reports whether ANSI colours should be written to stderr.
var colorize = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
