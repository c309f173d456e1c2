// Package logger provides logging for the Pileus CLI.
//
// Every run writes JSON lines to its own log file (see Setup). When verbose
// mode is enabled via the --verbose flag, the same entries are also printed to
// stderr in a human-readable form.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// FileTimeLayout is the timestamp layout used in per-run log file names.
const FileTimeLayout = "2006-01-02_15-04-05"

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	console io.Writer = newConsoleWriter(os.Stderr)
	logFile io.Writer

	base = zerolog.New(dispatcher{}).With().Timestamp().Logger()
)

// Config configures the per-run log file.
type Config struct {
	// Dir is the directory the log file is created in. Defaults to ".".
	Dir string

	// Verbose enables debug entries and console output.
	Verbose bool

	// Console receives human-readable output in verbose mode.
	// Defaults to the current output writer.
	Console io.Writer

	// Now returns the run start time. Defaults to time.Now.
	Now func() time.Time
}

// FileName returns the log file name for a run started at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("pileus_API_service_%s.log", t.Format(FileTimeLayout))
}

// Setup opens the per-run log file and applies cfg.
// The returned function closes the file and detaches it from the logger.
func Setup(cfg Config) (string, func() error, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating log directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("opening log file: %w", err)
	}

	mu.Lock()
	logFile = f
	verbose = cfg.Verbose
	if cfg.Console != nil {
		output = cfg.Console
		console = newConsoleWriter(cfg.Console)
	}
	mu.Unlock()

	closeFn := func() error {
		mu.Lock()
		if logFile == f {
			logFile = nil
		}
		mu.Unlock()
		return f.Close()
	}
	return path, closeFn, nil
}

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

// SetOutput sets the console writer for verbose logs.
// Defaults to os.Stderr. The TUI passes io.Discard.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	console = newConsoleWriter(w)
}

// Base returns the root structured logger.
func Base() zerolog.Logger {
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// Debug logs a debug message. Debug entries are dropped unless verbose.
func Debug(format string, args ...any) {
	base.Debug().Msgf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	base.Info().Msgf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	base.Warn().Msgf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	base.Error().Msgf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
	mu.RUnlock()
	base.Debug().Str("section", name).Msg("section")
}

func newConsoleWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
}

// dispatcher routes entries to the log file and, in verbose mode, the console.
type dispatcher struct{}

func (d dispatcher) Write(p []byte) (int, error) {
	return d.WriteLevel(zerolog.NoLevel, p)
}

func (dispatcher) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	mu.RLock()
	defer mu.RUnlock()

	if level == zerolog.DebugLevel || level == zerolog.TraceLevel {
		if !verbose {
			return len(p), nil
		}
	}
	if logFile != nil {
		if _, err := logFile.Write(p); err != nil {
			return 0, err
		}
	}
	if verbose && console != nil {
		if _, err := console.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}
