package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
)

var (
	verbose atomic.Bool

	mu         sync.Mutex
	console    io.Writer = os.Stdout
	errConsole io.Writer = os.Stderr
	outputFile *os.File
	outputPath string

	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
)

// SetVerbose enables or disables debug logging for the current process.
func SetVerbose(enabled bool) {
	verbose.Store(enabled)
}

// Verbose reports whether debug logging is enabled.
func Verbose() bool {
	return verbose.Load()
}

// SetConsole redirects console output (normally stdout and stderr) to w and
// returns a function restoring the previous writers. Used by tests.
func SetConsole(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	prevOut, prevErr := console, errConsole
	console, errConsole = w, w
	return func() {
		mu.Lock()
		defer mu.Unlock()
		console, errConsole = prevOut, prevErr
	}
}

// SetOutputFile configures optional file logging while preserving console output.
// Passing an empty path disables file logging.
func SetOutputFile(path string) error {
	path = strings.TrimSpace(path)

	mu.Lock()
	defer mu.Unlock()

	if path == outputPath {
		return nil
	}

	if outputFile != nil {
		err := outputFile.Close()
		outputFile = nil
		outputPath = ""
		if err != nil {
			return err
		}
	}

	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	outputFile = f
	outputPath = path
	return nil
}

// Close flushes and closes the log file if one is configured.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if outputFile == nil {
		return nil
	}
	err := outputFile.Close()
	outputFile = nil
	outputPath = ""
	return err
}

// Writer returns a writer that tees to the console and the log file. Callers
// must not hold it across SetOutputFile or SetConsole calls.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	if outputFile == nil {
		return console
	}
	return io.MultiWriter(console, outputFile)
}

// write sends msg to w, colored when c is non-nil, and the plain text to the
// log file. Must be called with mu held.
func write(w io.Writer, c *color.Color, msg string) {
	if c != nil {
		fmt.Fprint(w, c.Sprint(msg))
	} else {
		fmt.Fprint(w, msg)
	}
	if outputFile != nil {
		fmt.Fprint(outputFile, msg)
	}
}

// Infof prints formatted output regardless of verbosity level.
func Infof(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	write(console, nil, fmt.Sprintf(format, args...))
}

// Infoln prints output regardless of verbosity level.
func Infoln(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	write(console, nil, fmt.Sprintln(args...))
}

// Warnf prints a non-fatal problem in yellow.
func Warnf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	write(console, warnColor, fmt.Sprintf(format, args...))
}

// Errorf prints a fatal problem in red on stderr.
func Errorf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	write(errConsole, errorColor, fmt.Sprintf(format, args...))
}

// Debugf prints formatted output only when verbose mode is enabled.
func Debugf(format string, args ...any) {
	if !Verbose() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	write(console, nil, fmt.Sprintf(format, args...))
}
