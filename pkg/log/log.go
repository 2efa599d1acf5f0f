// Package log provides the process-wide structured logger used by gitflow.
// Records are written to stderr so that structured command output on stdout
// stays machine-readable.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Level names accepted by ParseLevel.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = LevelWarn

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, slog.LevelWarn, "")
)

// Options configures the global logger.
type Options struct {
	// Level is one of debug, info, warn or error. Empty means DefaultLevel.
	Level string

	// Output receives log records. Nil means stderr.
	Output io.Writer

	// RunID correlates all records of one invocation. Empty generates one.
	RunID string
}

// Setup replaces the global logger and returns the run id attached to
// every record.
func Setup(opts Options) (string, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return "", err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	id := opts.RunID
	if id == "" {
		id = uuid.NewString()
	}

	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(out, level, id)
	return id, nil
}

// ParseLevel converts a level name into a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return slog.LevelWarn, nil
	case LevelDebug:
		return slog.LevelDebug, nil
	case LevelInfo:
		return slog.LevelInfo, nil
	case LevelWarn, "warning":
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q (expected debug, info, warn or error)", name)
	}
}

func newLogger(w io.Writer, level slog.Level, id string) *slog.Logger {
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if id != "" {
		l = l.With("run_id", id)
	}
	return l
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { current().Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { current().Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { current().Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { current().Error(msg, args...) }

// RedactURL removes any userinfo from a URL so that credentials embedded in
// remote URLs never reach the log. Strings that are not absolute URLs are
// returned unchanged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	if u.User == nil {
		return raw
	}
	u.User = url.User("redacted")
	return u.String()
}
