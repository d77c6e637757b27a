package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthur-debert/omniharness/pkg/paths"
	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	current = newDefaultLogger()
)

func newDefaultLogger() *zerolog.Logger {
	l := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	return &l
}

// Get returns the process-wide logger
func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set installs l as the process-wide logger and returns the previous one.
// A nil logger installs a disabled one.
func Set(l *zerolog.Logger) *zerolog.Logger {
	if l == nil {
		nop := zerolog.Nop()
		l = &nop
	}
	mu.Lock()
	defer mu.Unlock()
	previous := current
	current = l
	return previous
}

// SetLevel changes the severity threshold of the installed logger in place,
// so holders of the pointer returned by Get observe the change.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	*current = current.Level(level)
}

// Level returns the severity threshold of the installed logger
func Level() zerolog.Level {
	return Get().GetLevel()
}

// New creates a trace-level logger writing plain console lines to w.
// Timestamps are left out so the output is stable across runs.
func New(w io.Writer) *zerolog.Logger {
	l := zerolog.New(zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}).Level(zerolog.TraceLevel)
	return &l
}

// SetupLogger configures the process-wide logger based on verbosity level.
// It writes to stderr and to a log file under the XDG state directory.
func SetupLogger(verbosity int) {
	var level zerolog.Level
	switch verbosity {
	case 0:
		level = zerolog.WarnLevel
	case 1:
		level = zerolog.InfoLevel
	case 2:
		level = zerolog.DebugLevel
	default:
		level = zerolog.TraceLevel
	}
	zerolog.SetGlobalLevel(level)

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	writers := []io.Writer{consoleWriter}

	logFile := getLogFilePath()
	logFileHandle, err := setupLogFile(logFile)
	if err == nil {
		writers = append(writers, logFileHandle)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	l := ctx.Logger().Level(level)
	Set(&l)

	if err != nil {
		l.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	l.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// WithFields returns a logger with additional fields
func WithFields(fields map[string]interface{}) zerolog.Logger {
	return Get().With().Fields(fields).Logger()
}

// getLogFilePath returns the path to the log file
// It respects XDG_STATE_HOME and OMNIHARNESS_STATE_DIR
func getLogFilePath() string {
	return paths.LogFilePath()
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// Must logs a fatal error and exits if err is not nil
func Must(err error, msg string) {
	if err != nil {
		Get().Fatal().Err(err).Msg(msg)
	}
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
