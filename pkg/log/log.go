package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelCritical sits above slog.LevelError.
const LevelCritical = slog.Level(12)

var (
	// logger is the global logger instance
	logger atomic.Pointer[slog.Logger]
	// level controls the log level
	level = new(slog.LevelVar)
	// bound holds attributes attached to every record until ClearContext
	bound atomic.Pointer[[]slog.Attr]
)

func init() {
	// Default to warning level (quiet mode)
	level.Set(slog.LevelWarn)
	SetOutput(os.Stderr)
}

// ParseLevel maps a configured level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARNING", "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// Configure sets the minimum level from its configured name.
func Configure(name string) error {
	l, err := ParseLevel(name)
	if err != nil {
		return err
	}
	level.Set(l)
	return nil
}

// SetVerbose enables debug logging
func SetVerbose(verbose bool) {
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelWarn)
	}
}

// SetQuiet disables all logging except errors
func SetQuiet(quiet bool) {
	if quiet {
		level.Set(slog.LevelError)
	}
}

// SetOutput changes the log output destination
func SetOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	logger.Store(slog.New(&contextHandler{Handler: h}))
}

// SetFile sends logs to a size-rotated file.
func SetFile(path string) io.Closer {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	SetOutput(lj)
	return lj
}

// GetLogger returns a logger tagged with a component name.
func GetLogger(name string) *slog.Logger {
	if name == "" {
		return logger.Load()
	}
	return logger.Load().With("logger", name)
}

// BindContext attaches id and the key/value pairs in kv to every record
// logged afterwards, from any logger, until ClearContext is called.
// It is process-wide: request handlers should use With instead.
func BindContext(id string, kv ...any) {
	r := slog.Record{}
	r.Add(kv...)
	attrs := []slog.Attr{slog.String("context_id", id)}
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	bound.Store(&attrs)
}

// ClearContext drops everything added by BindContext.
func ClearContext() {
	bound.Store(nil)
}

// NewRunID returns a fresh identifier for BindContext.
func NewRunID() string {
	return uuid.NewString()
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	logger.Load().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	logger.Load().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	logger.Load().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	logger.Load().Error(msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return logger.Load().With(args...)
}

type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := bound.Load(); attrs != nil {
		r = r.Clone()
		r.AddAttrs(*attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
