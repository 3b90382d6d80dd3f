// Package log provides categorized structured logging for soundfetch.
//
// Records are written through log/slog. Every record carries a category
// and the run ID of the current process so that lines from one operator
// session can be grouped.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Category groups log records by subsystem.
type Category string

const (
	CatConfig  Category = "config"
	CatSession Category = "session"
	CatFetch   Category = "fetch"
	CatLibrary Category = "library"
	CatTrace   Category = "trace"
)

var (
	mu     sync.RWMutex
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	runID  = uuid.NewString()
	closer io.Closer
)

// ParseLevel maps a config level name onto a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", name)
	}
}

// Init configures the package logger. An empty path logs to stderr.
// The returned function flushes and closes any log file.
func Init(level, path string) (func() error, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	var c io.Closer
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w, c = f, f
	}

	SetOutput(w, lvl)
	mu.Lock()
	closer = c
	mu.Unlock()
	return Close, nil
}

// SetOutput replaces the log destination. Used by Init and tests.
func SetOutput(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close releases the log file opened by Init, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// RunID returns the identifier attached to every record of this process.
func RunID() string {
	return runID
}

func emit(level slog.Level, cat Category, msg string, kv ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	args := append([]any{"cat", string(cat), "run", runID}, kv...)
	l.Log(context.Background(), level, msg, args...)
}

// Debug logs at debug level.
func Debug(cat Category, msg string, kv ...any) { emit(slog.LevelDebug, cat, msg, kv...) }

// Info logs at info level.
func Info(cat Category, msg string, kv ...any) { emit(slog.LevelInfo, cat, msg, kv...) }

// Warn logs at warn level.
func Warn(cat Category, msg string, kv ...any) { emit(slog.LevelWarn, cat, msg, kv...) }

// Error logs at error level.
func Error(cat Category, msg string, kv ...any) { emit(slog.LevelError, cat, msg, kv...) }

// ErrorErr logs err under the "error" key at error level.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	emit(slog.LevelError, cat, msg, append([]any{"error", err}, kv...)...)
}
